package generators

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	generativelanguage "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"github.com/reusee/armplan/logs"
	"github.com/reusee/armplan/nets"
	"github.com/reusee/armplan/vars"
	"github.com/reusee/dscope"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
)

// Gemini generates through the Generative Language gRPC API.
type Gemini struct {
	args       GeneratorArgs
	GetClient  dscope.Inject[GetGeminiClient]
	Counter    dscope.Inject[GeminiTokenCounter]
	Logger     dscope.Inject[logs.Logger]
	MaxRetries dscope.Inject[MaxRetries]
}

var _ Generator = Gemini{}

func (g Gemini) Args() GeneratorArgs {
	return g.args
}

func (g Gemini) CountTokens(text string) (int, error) {
	return g.Counter()(text)
}

// ErrBlocked is returned when the provider refuses the prompt or the reply on safety grounds.
var ErrBlocked = errors.New("blocked by safety filter")

func geminiText(text string) *generativelanguagepb.Part {
	return &generativelanguagepb.Part{
		Data: &generativelanguagepb.Part_Text{
			Text: text,
		},
	}
}

func geminiContents(state State) ([]*generativelanguagepb.Content, error) {
	var ret []*generativelanguagepb.Content
	for _, content := range state.Contents() {
		role, ok := content.Role.forGemini()
		if !ok {
			continue
		}
		var parts []*generativelanguagepb.Part
		for _, part := range content.Parts {
			p, err := part.ToGemini()
			if err != nil {
				return nil, err
			}
			if p != nil {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		ret = append(ret, &generativelanguagepb.Content{
			Role:  role,
			Parts: parts,
		})
	}
	return ret, nil
}

func (g Gemini) buildRequest(state State) (*generativelanguagepb.GenerateContentRequest, error) {
	contents, err := geminiContents(state)
	if err != nil {
		return nil, err
	}

	config := &generativelanguagepb.GenerationConfig{
		Temperature: g.args.temperature(),
	}
	if n := g.args.MaxGenerateTokens; n != nil {
		config.MaxOutputTokens = vars.PtrTo(int32(*n))
	}

	req := &generativelanguagepb.GenerateContentRequest{
		Model:            g.args.Model,
		GenerationConfig: config,
		Contents:         contents,
	}
	if prompt := state.SystemPrompt(); prompt != "" {
		req.SystemInstruction = &generativelanguagepb.Content{
			Role:  string(RoleSystem),
			Parts: []*generativelanguagepb.Part{geminiText(prompt)},
		}
	}

	if constraints, ok := As[Constraints](state); ok {
		if schema := constraints.ResponseSchema; schema != nil {
			config.ResponseMimeType = "application/json"
			config.ResponseSchema = schema.ToGemini()
		}
		if req.SafetySettings, err = constraints.Safety.ToGemini(); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// appendGeminiResponse records the usage, the first candidate and its finish reason in state.
func appendGeminiResponse(state State, resp *generativelanguagepb.GenerateContentResponse) (State, error) {
	if reason := resp.GetPromptFeedback().GetBlockReason(); reason > 0 {
		return nil, fmt.Errorf("prompt %w: %s", ErrBlocked, reason)
	}

	var logParts []Part
	if metadata := resp.GetUsageMetadata(); metadata != nil {
		logParts = append(logParts, Usage{
			PromptTokens: int(metadata.GetPromptTokenCount()),
			CachedTokens: int(metadata.GetCachedContentTokenCount()),
			OutputTokens: int(metadata.GetCandidatesTokenCount()),
		})
	}

	if len(resp.GetCandidates()) == 0 {
		return nil, errors.Join(errors.New("no candidates"), ErrRetryable)
	}
	candidate := resp.GetCandidates()[0]
	reason := candidate.GetFinishReason()
	if reason == generativelanguagepb.Candidate_SAFETY {
		return nil, fmt.Errorf("reply %w", ErrBlocked)
	}

	reply := &Content{
		Role: RoleModel,
	}
	for _, part := range candidate.GetContent().GetParts() {
		p, err := PartFromGemini(part)
		if err != nil {
			return nil, err
		}
		reply.Parts = append(reply.Parts, p)
	}
	if reason > 0 {
		logParts = append(logParts, FinishReason(reason.String()))
	}

	var err error
	for _, content := range []*Content{
		{Role: RoleLog, Parts: logParts},
		reply,
	} {
		if len(content.Parts) == 0 {
			continue
		}
		if state, err = state.AppendContent(content); err != nil {
			return nil, err
		}
	}
	return state, nil
}

func (g Gemini) Generate(ctx context.Context, state State) (State, error) {
	client, err := g.GetClient()(ctx, g.args.APIKey)
	if err != nil {
		return state, err
	}
	req, err := g.buildRequest(state)
	if err != nil {
		return state, err
	}

	logger := g.Logger()
	ret, err := doWithRetry(ctx, logger, g.MaxRetries(), func() (State, error) {
		logger.InfoContext(ctx, "generating", "model", g.args.Model)
		resp, err := client.GenerateContent(ctx, req)
		if err != nil {
			return nil, wrap(err)
		}
		if *debugGemini {
			logger.InfoContext(ctx, "gemini response", "details", resp)
		}
		return appendGeminiResponse(state, resp)
	})
	if err != nil {
		return state, err
	}
	return ret.Flush()
}

type GetGeminiClient = func(ctx context.Context, key string) (*generativelanguage.GenerativeClient, error)

// GetGeminiClient returns one client per API key, dialing through the proxy-aware dialer.
func (Module) GetGeminiClient(
	dialer nets.Dialer,
	apiKey GoogleAPIKey,
) GetGeminiClient {
	var mu sync.Mutex
	clients := make(map[string]*generativelanguage.GenerativeClient)
	return func(ctx context.Context, key string) (*generativelanguage.GenerativeClient, error) {
		key = vars.FirstNonZero(key, string(apiKey))
		if key == "" {
			return nil, errors.New("no Google API key configured")
		}

		mu.Lock()
		defer mu.Unlock()
		if client, ok := clients[key]; ok {
			return client, nil
		}
		client, err := generativelanguage.NewGenerativeClient(ctx,
			option.WithAPIKey(key),
			option.WithGRPCDialOption(
				grpc.WithContextDialer(func(ctx context.Context, addr string) (net.Conn, error) {
					return dialer.DialContext(ctx, "tcp", addr)
				}),
			),
		)
		if err != nil {
			return nil, wrap(err)
		}
		clients[key] = client
		return client, nil
	}
}

type NewGemini func(args GeneratorArgs) Gemini

func (Module) NewGemini(
	inject dscope.InjectStruct,
) NewGemini {
	return func(args GeneratorArgs) Gemini {
		ret := Gemini{
			args: args,
		}
		inject(&ret)
		return ret
	}
}
