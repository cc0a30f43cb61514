// Package templates holds the fixed response template catalog. Placeholders
// like {name} and {priority_level} are adapted by the drafting model, never
// substituted programmatically.
package templates

// Catalog keys, one per category plus a distinct urgent template selectable
// whenever priority is urgent regardless of category.
const (
	AccessIssue    = "access_issue"
	BillingInquiry = "billing_inquiry"
	FeatureRequest = "feature_request"
	TechnicalIssue = "technical_issue"
	UrgentIssue    = "urgent_issue"
)

var catalog = map[string]string{
	AccessIssue: `Hello {name},

I understand you're having trouble accessing the {feature}. Let me help you resolve this.

{diagnosis}

{resolution_steps}

Priority Status: {priority_level}
Estimated Resolution: {eta}

Please let me know if you need any clarification.

Best regards,
Support Team`,

	BillingInquiry: `Hi {name},

Thank you for your inquiry about {billing_topic}.

{explanation}

{next_steps}

If you have any questions, don't hesitate to ask.

Best regards,
Billing Team`,

	FeatureRequest: `Hello {name},

Thank you for your feature suggestion regarding {feature_name}.

{acknowledgment}

{status_update}

{timeline}

We appreciate your input in making our product better.

Best regards,
Product Team`,

	TechnicalIssue: `Hi {name},

Thank you for reporting the technical issue you're experiencing with {affected_component}.

{technical_analysis}

{solution_steps}

Current Status: {status}
Expected Resolution: {timeline}

If you need immediate assistance, you can reach our technical team at:
{support_contact}

Best regards,
Technical Support Team`,

	UrgentIssue: `URGENT RESPONSE

Hello {name},

We understand the critical nature of your issue regarding {issue_summary}.

{immediate_actions}

{escalation_status}

We have assigned a dedicated specialist to your case:
Specialist: {specialist_name}
Direct Contact: {specialist_contact}

We are treating this with highest priority and will provide updates every {update_frequency}.

Urgent Support Line: {urgent_support_contact}

Best regards,
Senior Support Team`,
}

// Catalog returns a copy of the template catalog so callers cannot mutate the
// shared map.
func Catalog() map[string]string {
	out := make(map[string]string, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out
}
