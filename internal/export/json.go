package export

import (
	"encoding/json"
	"fmt"

	"github.com/thywilljoshua/scriptgen/internal/script"
)

// JSONRenderer writes the scenes in the model's output contract, so the file
// can be loaded again with script.Load.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

func (r *JSONRenderer) Extension() string {
	return ".json"
}

func (r *JSONRenderer) Render(doc Document) ([]byte, error) {
	scenes := make([]script.Scene, len(doc.Sections))
	for i, s := range doc.Sections {
		scenes[i] = script.Scene{
			Scene:        s.Scene,
			Narration:    s.Narration,
			KeySentences: s.KeySentences,
			VisualPrompt: s.VisualPrompt,
		}
	}
	data, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}
