// Package generate runs the document-to-script pipeline:
// validate → encode → build request → model delegate → parse.
package generate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/thywilljoshua/scriptgen/internal/ai"
	"github.com/thywilljoshua/scriptgen/internal/document"
	"github.com/thywilljoshua/scriptgen/internal/failure"
	"github.com/thywilljoshua/scriptgen/internal/script"
)

var (
	ErrNoDocument = errors.New("no document selected")
	ErrBusy       = errors.New("a script generation is already in progress")
)

type Config struct {
	Delegate ai.Delegate
	Builder  ai.Builder
	Logger   *slog.Logger
}

type Pipeline struct {
	delegate ai.Delegate
	builder  ai.Builder
	log      *slog.Logger
}

func New(cfg Config) *Pipeline {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Pipeline{delegate: cfg.Delegate, builder: cfg.Builder, log: cfg.Logger}
}

// Run turns one document into a script. Every classified outcome is reported
// through the Result; the error is non-nil only when there is no document or
// ctx was cancelled while the delegate call was outstanding.
func (p *Pipeline) Run(ctx context.Context, in document.UserInput) (script.Result, error) {
	if in.Document == nil {
		return script.Result{}, ErrNoDocument
	}
	rid := uuid.New().String()
	start := time.Now()
	log := p.log.With("req_id", rid, "document", in.Document.Name)
	log.Info("generate.start", "mime", in.Document.MediaType, "size", in.Document.Size, "personalized", in.Name != "")

	v, err := document.Validate(in.Document)
	if err != nil {
		log.Warn("generate.invalid_document", "error", err)
		return failed(err), nil
	}
	payload, err := document.Encode(v)
	if err != nil {
		log.Error("generate.encode_error", "error", err)
		return failed(err), nil
	}
	if pages, err := document.PageCount(payload); err != nil {
		log.Warn("generate.pdf_inspect_failed", "error", err)
	} else if pages > 0 {
		log.Info("generate.pdf_pages", "pages", pages)
	}

	if p.delegate == nil {
		return failed(errors.New("no model delegate configured")), nil
	}
	req := p.builder.Build(payload, in.Name)
	text, err := p.delegate.Generate(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			log.Info("generate.cancelled", "elapsed_ms", time.Since(start).Milliseconds())
			return script.Result{}, ctx.Err()
		}
		f := failure.FromDelegate(err)
		log.Error("generate.delegate_error", "category", f.Category, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return script.Failed(f), nil
	}

	res := script.Parse(text)
	if f, bad := res.Failure(); bad {
		log.Error("generate.bad_response", "category", f.Category, "detail", f.Detail,
			"response_bytes", len(text), "elapsed_ms", time.Since(start).Milliseconds())
		return res, nil
	}
	scenes, _ := res.Script()
	log.Info("generate.ok", "scenes", len(scenes), "words", script.WordCount(scenes),
		"elapsed_ms", time.Since(start).Milliseconds())
	return res, nil
}

func failed(err error) script.Result {
	if f, ok := failure.As(err); ok {
		return script.Failed(f)
	}
	return script.Failed(failure.New(failure.Unknown, err.Error(), err))
}
