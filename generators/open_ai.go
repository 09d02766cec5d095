package generators

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/reusee/armplan/debugs"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/nets"
	"github.com/reusee/armplan/vars"
	"github.com/reusee/dscope"
)

// OpenAI talks to any OpenAI compatible chat completions endpoint.
type OpenAI struct {
	args   GeneratorArgs
	apiKey string
	client nets.HTTPClient

	Count      dscope.Inject[BPETokenCounter]
	Logger     dscope.Inject[logs.Logger]
	Tap        dscope.Inject[debugs.Tap]
	MaxRetries dscope.Inject[MaxRetries]
}

var _ Generator = new(OpenAI)

func (o *OpenAI) Args() GeneratorArgs {
	return o.args
}

func (o *OpenAI) CountTokens(text string) (int, error) {
	return o.Count()(text)
}

func (o *OpenAI) buildRequest(state State) ChatCompletionRequest {
	req := ChatCompletionRequest{
		Model:               o.args.Model,
		Messages:            stateToOpenAIMessages(state),
		MaxCompletionTokens: vars.DerefOrZero(o.args.MaxGenerateTokens),
		Temperature:         vars.DerefOrZero(o.args.temperature()),
	}

	if constraints, ok := As[Constraints](state); ok && constraints.ResponseSchema != nil {
		req.ResponseFormat = &ResponseFormat{
			Type: "json_schema",
			JSONSchema: &JSONSchema{
				Name:   vars.FirstNonZero(constraints.ResponseSchema.Name, "response"),
				Schema: constraints.ResponseSchema.ToOpenAI(),
			},
		}
	}

	return req
}

func (o *OpenAI) Generate(ctx context.Context, state State) (ret State, err error) {
	req := o.buildRequest(state)

	if *debugOpenAI {
		o.Logger().InfoContext(ctx, "open ai request",
			"request", req,
		)
	}

	if *tapOpenAI {
		o.Tap()(ctx, "before chat completion", map[string]any{
			"messages": req.Messages,
			"args":     o.args,
		})
	}

	bodyBytes, err := json.Marshal(req)
	if err != nil {
		return state, err
	}

	ret, err = doWithRetry(ctx, o.Logger(), o.MaxRetries(), func() (State, error) {
		o.Logger().InfoContext(ctx, "generating",
			"model", o.args.Model,
		)
		resp, err := o.do(ctx, bodyBytes)
		if err != nil {
			return state, OpenAIError{
				Err:     err,
				Request: req,
			}
		}
		return appendOpenAIResponse(state, resp)
	})
	if err != nil {
		return ret, err
	}

	return ret.Flush()
}

func (o *OpenAI) do(ctx context.Context, body []byte) (*ChatCompletionResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.args.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if o.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		var statusErr error
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != nil {
			errResp.Error.HTTPStatusCode = resp.StatusCode
			statusErr = errResp.Error
		} else {
			statusErr = fmt.Errorf("bad status: %d, body: %s", resp.StatusCode, respBody)
		}
		if resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode == http.StatusServiceUnavailable {
			return nil, errors.Join(statusErr, ErrRetryable)
		}
		return nil, statusErr
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if *debugOpenAI {
		o.Logger().InfoContext(ctx, "open ai response",
			"details", completion,
		)
	}

	return &completion, nil
}

func appendOpenAIResponse(state State, resp *ChatCompletionResponse) (ret State, err error) {
	ret = state

	if resp.Usage != nil {
		var usage Usage
		usage.PromptTokens = resp.Usage.PromptTokens
		if resp.Usage.PromptTokensDetails != nil {
			usage.CachedTokens = resp.Usage.PromptTokensDetails.CachedTokens
		}
		usage.OutputTokens = resp.Usage.CompletionTokens
		if resp.Usage.CompletionTokensDetails != nil {
			usage.OutputTokens -= resp.Usage.CompletionTokensDetails.ReasoningTokens
			usage.ThoughtTokens = resp.Usage.CompletionTokensDetails.ReasoningTokens
		}
		if ret, err = ret.AppendContent(&Content{
			Role:  RoleLog,
			Parts: []Part{usage},
		}); err != nil {
			return state, err
		}
	}

	if len(resp.Choices) == 0 {
		return state, errors.Join(fmt.Errorf("no choices"), ErrRetryable)
	}
	choice := resp.Choices[0]

	content := &Content{
		Role: RoleAssistant,
	}
	if choice.Message.ReasoningContent != "" {
		content.Parts = append(content.Parts, Thought(choice.Message.ReasoningContent))
	}
	if choice.Message.Content != "" {
		content.Parts = append(content.Parts, Text(choice.Message.Content))
	}
	if len(content.Parts) > 0 {
		if ret, err = ret.AppendContent(content); err != nil {
			return state, err
		}
	}

	if reason := choice.FinishReason; reason != "" {
		if ret, err = ret.AppendContent(&Content{
			Role: RoleLog,
			Parts: []Part{
				FinishReason(reason),
			},
		}); err != nil {
			return state, err
		}
		switch reason {
		case "content_filter":
			return state, fmt.Errorf("reply %w", ErrBlocked)
		case "error":
			return state, errors.Join(errors.New(reason), ErrRetryable)
		}
	}

	return ret, nil
}

func stateToOpenAIMessages(state State) (messages []ChatCompletionMessage) {
	if state.SystemPrompt() != "" {
		messages = append(messages, ChatCompletionMessage{
			Role:    string(RoleSystem),
			Content: state.SystemPrompt(),
		})
	}

	for _, content := range state.Contents() {
		role, ok := content.Role.forOpenAI()
		if !ok {
			continue
		}
		for _, part := range content.Parts {
			text, ok := part.(Text)
			if !ok || len(text) == 0 {
				continue
			}
			if len(messages) > 0 && messages[len(messages)-1].Role == role {
				messages[len(messages)-1].Content += string(text)
				continue
			}
			messages = append(messages, ChatCompletionMessage{
				Role:    role,
				Content: string(text),
			})
		}
	}

	return
}

type NewOpenAI func(args GeneratorArgs, apiKey string) *OpenAI

func (Module) NewOpenAI(
	inject dscope.InjectStruct,
	client nets.HTTPClient,
) NewOpenAI {
	return func(args GeneratorArgs, apiKey string) *OpenAI {
		ret := &OpenAI{
			args:   args,
			client: client,
			apiKey: apiKey,
		}
		inject(&ret)
		return ret
	}
}

type ChatCompletionRequest struct {
	Model               string                  `json:"model"`
	Messages            []ChatCompletionMessage `json:"messages"`
	MaxCompletionTokens int                     `json:"max_completion_tokens,omitempty"`
	Temperature         float32                 `json:"temperature,omitempty"`
	ResponseFormat      *ResponseFormat         `json:"response_format,omitempty"`
}

type ResponseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *JSONSchema `json:"json_schema,omitempty"`
}

type JSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict,omitempty"`
	Schema map[string]any `json:"schema"`
}

type ChatCompletionMessage struct {
	Role             string `json:"role"`
	Content          string `json:"content"`
	ReasoningContent string `json:"reasoning_content,omitempty"`
}

type ChatCompletionResponse struct {
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   *CompletionUsage       `json:"usage,omitempty"`
}

type ChatCompletionChoice struct {
	Message      ChatCompletionMessage `json:"message"`
	FinishReason string                `json:"finish_reason"`
}

type CompletionUsage struct {
	PromptTokens            int                      `json:"prompt_tokens"`
	CompletionTokens        int                      `json:"completion_tokens"`
	PromptTokensDetails     *PromptTokensDetails     `json:"prompt_tokens_details,omitempty"`
	CompletionTokensDetails *CompletionTokensDetails `json:"completion_tokens_details,omitempty"`
}

type PromptTokensDetails struct {
	CachedTokens int `json:"cached_tokens,omitempty"`
}

type CompletionTokensDetails struct {
	ReasoningTokens int `json:"reasoning_tokens,omitempty"`
}

type ErrorResponse struct {
	Error *APIError `json:"error,omitempty"`
}

type APIError struct {
	Code           any     `json:"code,omitempty"`
	Message        string  `json:"message,omitempty"`
	Param          *string `json:"param,omitempty"`
	Type           string  `json:"type,omitempty"`
	HTTPStatusCode int     `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}
