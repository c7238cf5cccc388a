package generate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/thywilljoshua/scriptgen/internal/ai"
	"github.com/thywilljoshua/scriptgen/internal/document"
	"github.com/thywilljoshua/scriptgen/internal/failure"
)

const oneScene = `[{"scene":"Pembukaan","narasi":"Halo, saya Ana. Mari belajar.","kalimatKunci":["Mari belajar"],"visual":"Teacher at whiteboard"}]`

type fakeDelegate struct {
	mu    sync.Mutex
	calls int
	last  ai.ModelRequest
	text  string
	err   error
	wait  chan struct{} // when set, Generate blocks until closed or ctx is done
}

func (f *fakeDelegate) Generate(ctx context.Context, req ai.ModelRequest) (string, error) {
	f.mu.Lock()
	f.calls++
	f.last = req
	wait := f.wait
	f.mu.Unlock()
	if wait != nil {
		select {
		case <-wait:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func (f *fakeDelegate) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pdfInput(name string) document.UserInput {
	return document.UserInput{Name: name, Document: document.FromBytes("materi.pdf", document.MediaPDF, []byte("%PDF-1.4 not really"))}
}

func TestRunSuccess(t *testing.T) {
	d := &fakeDelegate{text: oneScene}
	p := New(Config{Delegate: d, Logger: quietLogger()})

	res, err := p.Run(context.Background(), pdfInput("Ana"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	scenes, ok := res.Script()
	if !ok || len(scenes) != 1 || scenes[0].Scene != "Pembukaan" {
		t.Fatalf("unexpected result %+v", res)
	}
	if d.last.Document.MIMEType != document.MediaPDF {
		t.Fatalf("delegate got mime %q", d.last.Document.MIMEType)
	}
	if !strings.Contains(d.last.SystemInstruction, "Halo, saya Ana.") {
		t.Fatalf("greeting not personalized")
	}
}

func TestRunValidationNeverReachesDelegate(t *testing.T) {
	d := &fakeDelegate{text: oneScene}
	p := New(Config{Delegate: d, Logger: quietLogger()})

	cases := map[string]struct {
		doc  *document.Document
		want failure.Category
	}{
		"unsupported": {document.FromBytes("a.png", "image/png", []byte("x")), failure.UnsupportedFormat},
		"too large":   {document.New("big.pdf", document.MediaPDF, document.MaxSize+1, nil), failure.TooLarge},
	}
	for name, tc := range cases {
		res, err := p.Run(context.Background(), document.UserInput{Document: tc.doc})
		if err != nil {
			t.Fatalf("%s: run: %v", name, err)
		}
		f, failed := res.Failure()
		if !failed || f.Category != tc.want {
			t.Fatalf("%s: expected %s, got %+v", name, tc.want, f)
		}
	}
	if d.callCount() != 0 {
		t.Fatalf("delegate called %d times", d.callCount())
	}
}

func TestRunNoDocument(t *testing.T) {
	p := New(Config{Delegate: &fakeDelegate{}, Logger: quietLogger()})
	res, err := p.Run(context.Background(), document.UserInput{Name: "Ana"})
	if !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument, got %v", err)
	}
	if _, ok := res.Script(); ok {
		t.Fatalf("missing document must not look like a successful script")
	}
	if _, failed := res.Failure(); failed {
		t.Fatalf("missing document is reported through err, not the result")
	}
}

func TestRunClassifiesDelegateErrors(t *testing.T) {
	cases := map[string]failure.Category{
		"googleapi: Error 429: RESOURCE_EXHAUSTED": failure.QuotaExceeded,
		"503 the model is overloaded":              failure.ServiceUnavailable,
		"getaddrinfo ENOTFOUND":                    failure.Unknown,
	}
	for msg, want := range cases {
		p := New(Config{Delegate: &fakeDelegate{err: errors.New(msg)}, Logger: quietLogger()})
		res, err := p.Run(context.Background(), pdfInput(""))
		if err != nil {
			t.Fatalf("%s: run: %v", msg, err)
		}
		f, failed := res.Failure()
		if !failed || f.Category != want {
			t.Fatalf("%s: expected %s, got %+v", msg, want, f)
		}
		if f.Retryable() != (want == failure.QuotaExceeded) {
			t.Fatalf("%s: retry affordance = %v", msg, f.Retryable())
		}
	}
}

func TestRunBadResponses(t *testing.T) {
	cases := map[string]failure.Category{
		"":                        failure.EmptyResponse,
		`[{"scene":"A"}]`:         failure.MalformedResponse,
		`I cannot read this file`: failure.MalformedResponse,
	}
	for text, want := range cases {
		p := New(Config{Delegate: &fakeDelegate{text: text}, Logger: quietLogger()})
		res, _ := p.Run(context.Background(), pdfInput(""))
		if f, failed := res.Failure(); !failed || f.Category != want {
			t.Fatalf("%q: expected %s, got %+v", text, want, f)
		}
	}
}

func TestSessionRejectsOverlappingGenerate(t *testing.T) {
	d := &fakeDelegate{text: oneScene, wait: make(chan struct{})}
	s := NewSession(New(Config{Delegate: d, Logger: quietLogger()}))
	if err := s.SetDocument(pdfInput("").Document); err != nil {
		t.Fatalf("set document: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := s.Generate(context.Background())
		done <- err
	}()
	waitFor(t, func() bool { return d.callCount() == 1 })

	if !s.State().Generating {
		t.Fatalf("state should report generating")
	}
	busy, err := s.Generate(context.Background())
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if _, ok := busy.Script(); ok {
		t.Fatalf("rejected generate must not carry a script")
	}
	if err := s.Reset(); !errors.Is(err, ErrBusy) {
		t.Fatalf("reset during generation: expected ErrBusy, got %v", err)
	}

	close(d.wait)
	if err := <-done; err != nil {
		t.Fatalf("first generate: %v", err)
	}
	st := s.State()
	if st.Generating || st.Failure != nil || len(st.Script) != 1 {
		t.Fatalf("unexpected final state %+v", st)
	}
	if d.callCount() != 1 {
		t.Fatalf("delegate called %d times", d.callCount())
	}
	if _, ok := s.Estimate(); !ok {
		t.Fatalf("expected an estimate for the current script")
	}
}

func TestSessionCancelLeavesCleanState(t *testing.T) {
	d := &fakeDelegate{text: oneScene, wait: make(chan struct{})}
	s := NewSession(New(Config{Delegate: d, Logger: quietLogger()}))
	_ = s.SetDocument(pdfInput("").Document)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Generate(ctx)
		done <- err
	}()
	waitFor(t, func() bool { return d.callCount() == 1 })
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if st := s.State(); st.Generating || st.Failure != nil || st.Script != nil {
		t.Fatalf("state not clean after cancel: %+v", st)
	}
	if _, ok := s.Estimate(); ok {
		t.Fatalf("no script means no estimate")
	}
}

func TestSessionFailureThenRetry(t *testing.T) {
	d := &fakeDelegate{err: errors.New("429 Too Many Requests")}
	s := NewSession(New(Config{Delegate: d, Logger: quietLogger()}))
	_ = s.SetDocument(pdfInput("").Document)

	if _, err := s.Generate(context.Background()); err != nil {
		t.Fatalf("generate: %v", err)
	}
	st := s.State()
	if st.Failure == nil || !st.Failure.Retryable() || st.Script != nil {
		t.Fatalf("expected retryable failure, got %+v", st)
	}

	d.mu.Lock()
	d.err, d.text = nil, oneScene
	d.mu.Unlock()
	if _, err := s.Generate(context.Background()); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if st := s.State(); st.Failure != nil || len(st.Script) != 1 {
		t.Fatalf("retry did not replace state: %+v", st)
	}
}

func TestSessionSetDocumentRejects(t *testing.T) {
	s := NewSession(New(Config{Delegate: &fakeDelegate{}, Logger: quietLogger()}))
	good := pdfInput("").Document
	_ = s.SetDocument(good)

	err := s.SetDocument(document.FromBytes("x.txt", "text/plain", []byte("x")))
	if f, ok := failure.As(err); !ok || f.Category != failure.UnsupportedFormat {
		t.Fatalf("expected UnsupportedFormat, got %v", err)
	}
	if s.Input().Document != good {
		t.Fatalf("rejected document must not replace the current one")
	}
	if s.State().Failure == nil {
		t.Fatalf("rejection should be visible in state")
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := s.Generate(context.Background()); !errors.Is(err, ErrNoDocument) {
		t.Fatalf("expected ErrNoDocument after reset, got %v", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
