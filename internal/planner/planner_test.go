package planner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sant0-9/planea/internal/document"
	"github.com/sant0-9/planea/internal/llm"
	"github.com/sant0-9/planea/internal/metrics"
)

// fakeProvider counts calls and answers with a fixed response or error.
type fakeProvider struct {
	calls   atomic.Int32
	content string
	err     error
	prompts []string
	mu      sync.Mutex
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.prompts = append(f.prompts, req.Messages[0].Content)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content, Model: req.Model}, nil
}

func sampleRequest() LessonRequest {
	return LessonRequest{
		Subject:    "Matemáticas",
		Grade:      "3° primaria",
		Competency: "Resuelve problemas con fracciones",
		Duration:   "50 minutos",
		Topic:      "Fracciones equivalentes",
	}
}

func newTestPlanner(t *testing.T, p llm.Provider) *Planner {
	t.Helper()
	return New(p, document.NewExporter(t.TempDir()), nil, Options{Model: "test-model", MaxTokens: 800})
}

func TestLessonRequestComplete(t *testing.T) {
	full := sampleRequest()
	if !full.Complete() {
		t.Fatal("full request reported incomplete")
	}

	blanks := map[string]func(r *LessonRequest){
		"subject":    func(r *LessonRequest) { r.Subject = "" },
		"grade":      func(r *LessonRequest) { r.Grade = "" },
		"competency": func(r *LessonRequest) { r.Competency = "" },
		"duration":   func(r *LessonRequest) { r.Duration = "" },
		"topic":      func(r *LessonRequest) { r.Topic = "   " },
	}
	for name, blank := range blanks {
		t.Run(name, func(t *testing.T) {
			r := sampleRequest()
			blank(&r)
			if r.Complete() {
				t.Errorf("request with empty %s reported complete", name)
			}
		})
	}
}

func TestLessonRequestKeyDistinguishesFieldBoundaries(t *testing.T) {
	a := LessonRequest{Subject: "ab", Grade: "c", Competency: "d", Duration: "e", Topic: "f"}
	b := LessonRequest{Subject: "a", Grade: "bc", Competency: "d", Duration: "e", Topic: "f"}
	if a.Key() == b.Key() {
		t.Error("distinct requests share a cache key")
	}
	if a.Key() != a.Key() {
		t.Error("Key is not stable")
	}
}

func TestGenerate_Incomplete_NoNetworkCall(t *testing.T) {
	fp := &fakeProvider{content: "plan"}
	p := newTestPlanner(t, fp)

	req := sampleRequest()
	req.Duration = ""
	before := testutil.ToFloat64(metrics.GenerationsTotal.WithLabelValues("incomplete"))

	_, _, err := p.Generate(context.Background(), req)
	if !errors.Is(err, ErrIncompleteRequest) {
		t.Fatalf("err = %v, want ErrIncompleteRequest", err)
	}
	if fp.calls.Load() != 0 {
		t.Errorf("provider called %d times, want 0", fp.calls.Load())
	}
	if after := testutil.ToFloat64(metrics.GenerationsTotal.WithLabelValues("incomplete")); after != before+1 {
		t.Errorf("incomplete counter: got %f, want %f", after, before+1)
	}
}

func TestGenerate_IdenticalRequests_OneNetworkCall(t *testing.T) {
	fp := &fakeProvider{content: "Propósito\nInicio"}
	p := newTestPlanner(t, fp)
	hitsBefore := testutil.ToFloat64(metrics.CacheHitsTotal)
	successBefore := testutil.ToFloat64(metrics.GenerationsTotal.WithLabelValues("success"))

	first, cached, err := p.Generate(context.Background(), sampleRequest())
	if err != nil || cached {
		t.Fatalf("first Generate: text=%q cached=%v err=%v", first, cached, err)
	}
	second, cached, err := p.Generate(context.Background(), sampleRequest())
	if err != nil || !cached {
		t.Fatalf("second Generate: text=%q cached=%v err=%v", second, cached, err)
	}

	if first != second {
		t.Errorf("cached text %q differs from first %q", second, first)
	}
	if fp.calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1", fp.calls.Load())
	}
	if hits := testutil.ToFloat64(metrics.CacheHitsTotal); hits != hitsBefore+1 {
		t.Errorf("cache hits: got %f, want %f", hits, hitsBefore+1)
	}
	if success := testutil.ToFloat64(metrics.GenerationsTotal.WithLabelValues("success")); success != successBefore+2 {
		t.Errorf("success counter: got %f, want %f", success, successBefore+2)
	}
}

func TestGenerate_DifferentRequests_SeparateCalls(t *testing.T) {
	fp := &fakeProvider{content: "plan"}
	p := newTestPlanner(t, fp)

	other := sampleRequest()
	other.Topic = "Decimales"

	p.Generate(context.Background(), sampleRequest()) //nolint:errcheck
	p.Generate(context.Background(), other)           //nolint:errcheck

	if fp.calls.Load() != 2 {
		t.Errorf("provider called %d times, want 2", fp.calls.Load())
	}
	if p.CacheLen() != 2 {
		t.Errorf("CacheLen() = %d, want 2", p.CacheLen())
	}
}

func TestGenerate_PassesPromptAndModel(t *testing.T) {
	fp := &fakeProvider{content: "plan"}
	p := newTestPlanner(t, fp)

	req := sampleRequest()
	if _, _, err := p.Generate(context.Background(), req); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(fp.prompts) != 1 {
		t.Fatalf("prompts = %d", len(fp.prompts))
	}
	for _, v := range req.Fields() {
		if !strings.Contains(fp.prompts[0], v) {
			t.Errorf("prompt missing %q", v)
		}
	}
}

func TestGenerate_FailureNotCached(t *testing.T) {
	fp := &fakeProvider{err: &llm.CompletionError{Kind: llm.KindHTTPStatus, Provider: "fake", StatusCode: 500, Body: "boom"}}
	p := newTestPlanner(t, fp)

	for i := 0; i < 2; i++ {
		_, _, err := p.Generate(context.Background(), sampleRequest())
		var ce *llm.CompletionError
		if !errors.As(err, &ce) || ce.Kind != llm.KindHTTPStatus {
			t.Fatalf("attempt %d: err = %v", i, err)
		}
	}
	if fp.calls.Load() != 2 {
		t.Errorf("provider called %d times, want 2", fp.calls.Load())
	}
	if p.CacheLen() != 0 {
		t.Errorf("CacheLen() = %d, want 0", p.CacheLen())
	}
}

func TestGenerate_ClearCache(t *testing.T) {
	fp := &fakeProvider{content: "plan"}
	p := newTestPlanner(t, fp)

	p.Generate(context.Background(), sampleRequest()) //nolint:errcheck
	p.ClearCache()
	_, cached, _ := p.Generate(context.Background(), sampleRequest())

	if cached {
		t.Error("result served from cache after ClearCache")
	}
	if fp.calls.Load() != 2 {
		t.Errorf("provider called %d times, want 2", fp.calls.Load())
	}
}

// blockingProvider holds every call until release is closed.
type blockingProvider struct {
	fakeProvider
	release chan struct{}
}

func (b *blockingProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	<-b.release
	return b.fakeProvider.Complete(ctx, req)
}

func TestGenerate_ConcurrentIdenticalRequests_OneNetworkCall(t *testing.T) {
	bp := &blockingProvider{fakeProvider: fakeProvider{content: "plan"}, release: make(chan struct{})}
	p := newTestPlanner(t, bp)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := p.Generate(context.Background(), sampleRequest()); err != nil {
				t.Errorf("Generate: %v", err)
			}
		}()
	}
	close(bp.release)
	wg.Wait()

	if bp.calls.Load() != 1 {
		t.Errorf("provider called %d times, want 1", bp.calls.Load())
	}
}

// gatedProvider signals when a call starts and holds it until release is
// closed; it fails if its context was cancelled while held.
type gatedProvider struct {
	fakeProvider
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedProvider) Complete(ctx context.Context, req *llm.CompletionRequest) (*llm.CompletionResponse, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	if err := ctx.Err(); err != nil {
		return nil, &llm.CompletionError{Kind: llm.KindTransport, Provider: "gated", Err: err}
	}
	return g.fakeProvider.Complete(ctx, req)
}

func TestGenerate_CancelledCallerDoesNotFailOthers(t *testing.T) {
	gp := &gatedProvider{
		fakeProvider: fakeProvider{content: "plan"},
		started:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	p := newTestPlanner(t, gp)

	ctxA, cancelA := context.WithCancel(context.Background())
	defer cancelA()
	errA := make(chan error, 1)
	go func() {
		_, _, err := p.Generate(ctxA, sampleRequest())
		errA <- err
	}()
	<-gp.started

	type result struct {
		text string
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		text, _, err := p.Generate(context.Background(), sampleRequest())
		resB <- result{text, err}
	}()

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller: err = %v, want context.Canceled", err)
	}

	close(gp.release)
	b := <-resB
	if b.err != nil {
		t.Fatalf("second caller: %v", b.err)
	}
	if b.text != "plan" {
		t.Errorf("second caller text = %q, want %q", b.text, "plan")
	}
	if n := gp.calls.Load(); n != 1 {
		t.Errorf("provider called %d times, want 1", n)
	}
	if p.CacheLen() != 1 {
		t.Errorf("CacheLen() = %d, want 1", p.CacheLen())
	}
}

func TestGenerate_AlreadyCancelled_NoNetworkCall(t *testing.T) {
	fp := &fakeProvider{content: "plan"}
	p := newTestPlanner(t, fp)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := p.Generate(ctx, sampleRequest()); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if fp.calls.Load() != 0 {
		t.Errorf("provider called %d times, want 0", fp.calls.Load())
	}
}

func TestPlan_ExportsDocument(t *testing.T) {
	fp := &fakeProvider{content: "Propósito\n\nActividades"}
	p := newTestPlanner(t, fp)

	plan, err := p.Plan(context.Background(), sampleRequest())
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if plan.Text != fp.content {
		t.Errorf("Text = %q", plan.Text)
	}
	if plan.Document == nil || plan.Document.Paragraphs != 2 {
		t.Fatalf("Document = %+v", plan.Document)
	}
	if filepath.Ext(plan.Document.Path) != document.Extension {
		t.Errorf("path = %s", plan.Document.Path)
	}
}

func TestPlan_FailureIsNeverExported(t *testing.T) {
	fp := &fakeProvider{err: &llm.CompletionError{Kind: llm.KindShape, Provider: "fake", Body: "{}"}}
	dir := t.TempDir()
	p := New(fp, document.NewExporter(dir), nil, Options{})

	if _, err := p.Plan(context.Background(), sampleRequest()); err == nil {
		t.Fatal("expected error")
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "*"))
	if len(matches) != 0 {
		t.Errorf("files written after failure: %v", matches)
	}
}

func TestPlan_ExportFailure(t *testing.T) {
	fp := &fakeProvider{content: "plan"}
	p := New(fp, document.NewExporter(filepath.Join(t.TempDir(), "missing")), nil, Options{})
	before := testutil.ToFloat64(metrics.ExportFailuresTotal)

	_, err := p.Plan(context.Background(), sampleRequest())
	if !errors.Is(err, ErrExport) {
		t.Fatalf("err = %v, want ErrExport", err)
	}
	if after := testutil.ToFloat64(metrics.ExportFailuresTotal); after != before+1 {
		t.Errorf("export failures: got %f, want %f", after, before+1)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "success"},
		{"incomplete", ErrIncompleteRequest, "incomplete"},
		{"export", ErrExport, "export"},
		{"http", &llm.CompletionError{Kind: llm.KindHTTPStatus}, "http_status"},
		{"shape", &llm.CompletionError{Kind: llm.KindShape}, "shape_mismatch"},
		{"transport", &llm.CompletionError{Kind: llm.KindTransport, Err: context.DeadlineExceeded}, "transport"},
		{"canceled", context.Canceled, "canceled"},
		{"deadline", fmt.Errorf("wait: %w", context.DeadlineExceeded), "canceled"},
		{"other", errors.New("x"), "transport"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outcome(tt.err); got != tt.want {
				t.Errorf("Outcome() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailureMessage(t *testing.T) {
	err := &llm.CompletionError{Kind: llm.KindHTTPStatus, Provider: "openrouter", StatusCode: 500, Body: "boom"}
	msg := FailureMessage(err)
	if !strings.HasPrefix(msg, ErrorMarker) {
		t.Errorf("message %q lacks marker", msg)
	}
	if !strings.Contains(msg, "500") || !strings.Contains(msg, "boom") {
		t.Errorf("message %q lacks detail", msg)
	}
}
