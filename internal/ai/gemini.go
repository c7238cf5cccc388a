package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	genai "google.golang.org/genai"

	"github.com/thywilljoshua/scriptgen/internal/failure"
)

// GeminiConfig configures the Gemini delegate.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature *float32
	Timeout     time.Duration
	BaseURL     string // override for tests and proxies
}

type Gemini struct {
	client  *genai.Client
	model   string
	temp    *float32
	timeout time.Duration
	log     *slog.Logger
}

func NewGemini(ctx context.Context, cfg GeminiConfig, logger *slog.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("missing GEMINI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-pro"
	}
	if logger == nil {
		logger = slog.Default()
	}
	cc := &genai.ClientConfig{APIKey: cfg.APIKey, Backend: genai.BackendGeminiAPI}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	c, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Gemini{client: c, model: cfg.Model, temp: cfg.Temperature, timeout: cfg.Timeout, log: logger}, nil
}

// Generate sends the document inline together with the instructions and
// asks for JSON constrained by req.OutputSchema.
func (g *Gemini) Generate(ctx context.Context, req ModelRequest) (string, error) {
	data, err := req.Document.Decode()
	if err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	content := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: req.Document.MIMEType, Data: data}},
				{Text: req.Text},
			},
		},
	}
	conf := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    toSchema(req.OutputSchema),
		Temperature:       g.temp,
	}

	start := time.Now()
	g.log.Debug("gemini.generate.start", "model", g.model, "mime", req.Document.MIMEType, "bytes", len(data))
	res, err := g.client.Models.GenerateContent(ctx, g.model, content, conf)
	if err != nil {
		g.log.Debug("gemini.generate.error", "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("gemini API call failed: %w", statusError(err))
	}
	text := res.Text()
	g.log.Debug("gemini.generate.ok", "response_bytes", len(text), "elapsed_ms", time.Since(start).Milliseconds())
	return text, nil
}

// statusError lifts the numeric and textual status out of a genai API error
// so the failure classifier can see it.
func statusError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &failure.StatusError{Code: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &failure.StatusError{Code: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message, Err: err}
	}
	return err
}

// toSchema converts a JSON schema map into the genai schema descriptor.
// Keywords Gemini does not understand (e.g. additionalProperties) are dropped.
func toSchema(m map[string]any) *genai.Schema {
	if m == nil {
		return nil
	}
	s := &genai.Schema{}
	if t, ok := m["type"].(string); ok {
		s.Type = schemaType(t)
	}
	if d, ok := m["description"].(string); ok {
		s.Description = d
	}
	if n, ok := asInt64(m["minItems"]); ok {
		s.MinItems = genai.Ptr(n)
	}
	if n, ok := asInt64(m["maxItems"]); ok {
		s.MaxItems = genai.Ptr(n)
	}
	if items, ok := m["items"].(map[string]any); ok {
		s.Items = toSchema(items)
	}
	if props, ok := m["properties"].(map[string]any); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for k, v := range props {
			if pm, ok := v.(map[string]any); ok {
				s.Properties[k] = toSchema(pm)
			}
		}
	}
	s.Required = stringList(m["required"])
	if len(s.Required) > 0 && len(s.Properties) > 0 {
		s.PropertyOrdering = s.Required
	}
	s.Enum = stringList(m["enum"])
	return s
}

func schemaType(t string) genai.Type {
	switch t {
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func stringList(v any) []string {
	switch l := v.(type) {
	case []string:
		return l
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
