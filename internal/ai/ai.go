package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/thywilljoshua/scriptgen/internal/document"
)

// ModelRequest is everything the model delegate needs for one script generation.
type ModelRequest struct {
	SystemInstruction string
	Document          document.EncodedPayload
	Text              string
	OutputSchema      map[string]any
}

// Delegate is the external generative model. It returns the raw response text.
type Delegate interface {
	Generate(ctx context.Context, req ModelRequest) (string, error)
}

// Replay answers every request with the contents of a previously captured response file.
type Replay struct {
	Path string
}

func (r Replay) Generate(ctx context.Context, req ModelRequest) (string, error) {
	b, err := os.ReadFile(r.Path)
	if err != nil {
		return "", fmt.Errorf("replay %s: %w", r.Path, err)
	}
	return string(b), nil
}
