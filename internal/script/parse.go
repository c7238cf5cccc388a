package script

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/thywilljoshua/scriptgen/internal/failure"
)

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func contract() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		b, err := json.Marshal(Schema())
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("script.json", bytes.NewReader(b)); err != nil {
			compileErr = fmt.Errorf("add schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile("script.json")
	})
	return compiled, compileErr
}

// Parse validates raw model output against the output contract and decodes it.
// Any structural mismatch is a MalformedResponse; nothing is partially trusted.
func Parse(raw string) Result {
	text := stripCodeFences(raw)
	if text == "" {
		return Failed(failure.New(failure.EmptyResponse, "no text returned by model", nil))
	}

	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return malformed(fmt.Errorf("decode response: %w", err))
	}
	schema, err := contract()
	if err != nil {
		return malformed(err)
	}
	if err := schema.Validate(doc); err != nil {
		return malformed(fmt.Errorf("response does not match schema: %w", err))
	}

	var scenes []Scene
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&scenes); err != nil {
		return malformed(fmt.Errorf("decode scenes: %w", err))
	}
	return Success(scenes)
}

func malformed(err error) Result {
	return Failed(failure.New(failure.MalformedResponse, err.Error(), err))
}

// stripCodeFences removes a ```json ... ``` wrapper if the model added one.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
