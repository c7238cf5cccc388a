package script

// Schema returns the JSON schema of the output contract. It is sent to the
// model delegate as the structured-output constraint and used locally to
// validate the response before it is trusted.
func Schema() map[string]any {
	str := func() map[string]any { return map[string]any{"type": "string"} }
	scene := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			KeyScene:     str(),
			KeyNarration: str(),
			KeyKeySentences: map[string]any{
				"type":        "array",
				"minItems":    1,
				"items":       str(),
				"description": "List of concise key points from the narration.",
			},
			KeyVisual: str(),
		},
		"required": []string{KeyScene, KeyNarration, KeyKeySentences, KeyVisual},
	}
	return map[string]any{
		"type":     "array",
		"minItems": 1,
		"items":    scene,
	}
}
