// Package script holds the scene-by-scene narration script produced by the
// model delegate, the output contract it must satisfy, and the computations
// derived from a finished script.
package script

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/thywilljoshua/scriptgen/internal/failure"
)

// JSON keys of the output contract.
const (
	KeyScene        = "scene"
	KeyNarration    = "narasi"
	KeyKeySentences = "kalimatKunci"
	KeyVisual       = "visual"
)

// Scene is one segment of the video script.
type Scene struct {
	Scene        string   `json:"scene"`
	Narration    string   `json:"narasi"`
	KeySentences []string `json:"kalimatKunci"`
	VisualPrompt string   `json:"visual"`
}

// Result is either a script or a classified failure, never both.
// The zero value is neither; it accompanies an error from the caller.
type Result struct {
	script  []Scene
	ok      bool
	failure *failure.Failure
}

// Success wraps a decoded script.
func Success(s []Scene) Result {
	return Result{script: s, ok: true}
}

// Failed wraps a classified failure.
func Failed(f *failure.Failure) Result {
	if f == nil {
		f = failure.New(failure.Unknown, "", nil)
	}
	return Result{failure: f}
}

// Script returns the scenes and true on success.
func (r Result) Script() ([]Scene, bool) {
	if !r.ok {
		return nil, false
	}
	return r.script, true
}

// Failure returns the failure and true when the generation failed.
func (r Result) Failure() (*failure.Failure, bool) {
	return r.failure, r.failure != nil
}

// Err returns the failure as an error, or nil on success.
func (r Result) Err() error {
	if r.failure == nil {
		return nil
	}
	return r.failure
}

// Save writes scenes as indented JSON.
func Save(scenes []Scene, path string) error {
	data, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal script: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write script to %s: %w", path, err)
	}
	return nil
}

// Load reads a script saved with Save and validates it against the output contract.
func Load(path string) ([]Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script from %s: %w", path, err)
	}
	res := Parse(string(data))
	if f, failed := res.Failure(); failed {
		return nil, fmt.Errorf("parse script from %s: %w", path, f)
	}
	s, _ := res.Script()
	return s, nil
}
