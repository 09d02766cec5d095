package generators

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
	"google.golang.org/genai"
	googletokenizer "google.golang.org/genai/tokenizer"
)

// TokenCounter estimates prompt length. The estimate only needs to be close enough for the prompt length guard.
type TokenCounter = func(text string) (int, error)

type BPETokenCounter TokenCounter

func (Module) BPETokenCounter() BPETokenCounter {
	getCodec := sync.OnceValues(func() (tokenizer.Codec, error) {
		return tokenizer.Get(tokenizer.O200kBase)
	})
	return func(text string) (int, error) {
		codec, err := getCodec()
		if err != nil {
			return 0, err
		}
		return codec.Count(text)
	}
}

// localGeminiVocabulary is the newest vocabulary the local tokenizer ships.
const localGeminiVocabulary = "gemini-1.5-pro"

type GeminiTokenCounter TokenCounter

func (Module) GeminiTokenCounter() GeminiTokenCounter {
	getTokenizer := sync.OnceValues(func() (*googletokenizer.LocalTokenizer, error) {
		return googletokenizer.NewLocalTokenizer(localGeminiVocabulary)
	})
	return func(text string) (int, error) {
		tok, err := getTokenizer()
		if err != nil {
			return 0, err
		}
		resp, err := tok.CountTokens([]*genai.Content{
			genai.NewContentFromText(text, genai.RoleUser),
		}, nil)
		if err != nil {
			return 0, err
		}
		return int(resp.TotalTokens), nil
	}
}
