package llm

import (
	"context"

	"github.com/openai/openai-go"
)

// Provider abstracts the hosted completion service. Both agents consume it:
// the analysis and response agents with a forced function tool, the sentiment
// fallback estimator as plain text completion.
type Provider interface {
	Complete(ctx context.Context, systemMessage, userMessage string, opts ...Option) (*Response, error)
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
	Tools       []openai.ChatCompletionToolParam

	// ForceTool names the single function tool the model must call. Empty
	// means free-form completion.
	ForceTool string
}

// WithTool forces the completion to call the named function tool.
func WithTool(name string, tool openai.ChatCompletionToolParam) Option {
	return func(o *Options) {
		o.Tools = []openai.ChatCompletionToolParam{tool}
		o.ForceTool = name
	}
}

// WithMaxTokens bounds the completion length.
func WithMaxTokens(n int64) Option {
	return func(o *Options) { o.MaxTokens = n }
}

// FunctionResponse is the structured result of a function tool call.
type FunctionResponse struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Response is one completion result. FunctionCall is set when the model
// answered through a tool call, Content when it answered free-form.
type Response struct {
	Content      string
	FunctionCall *FunctionResponse
	Usage        Usage
}
