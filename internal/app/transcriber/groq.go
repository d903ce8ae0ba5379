package transcriber

import (
	"context"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

const (
	// GroqBaseURL is Groq's OpenAI-compatible API endpoint.
	GroqBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is the Whisper variant used for all transcriptions.
	DefaultModel = "whisper-large-v3-turbo"
)

// GroqTranscriber implements Transcriber against Groq's Whisper API
// through the OpenAI-compatible client.
type GroqTranscriber struct {
	client *openai.Client
	model  string
}

// NewGroqTranscriber creates a transcriber authenticated with apiKey.
func NewGroqTranscriber(apiKey string) *GroqTranscriber {
	config := openai.DefaultConfig(apiKey)
	config.BaseURL = GroqBaseURL
	return &GroqTranscriber{
		client: openai.NewClientWithConfig(config),
		model:  DefaultModel,
	}
}

// Transcribe sends the audio stream to the engine and returns its
// best-effort transcript. No post-processing is applied.
func (g *GroqTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	req := openai.AudioRequest{
		Model:    g.model,
		Reader:   audio,
		FilePath: filename,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	resp, err := g.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %w", err)
	}

	return resp.Text, nil
}
