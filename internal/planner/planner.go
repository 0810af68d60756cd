// Package planner runs one lesson plan submission: validate the form, consult
// the result cache, call the completion provider, and export the document.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sant0-9/planea/internal/cache"
	"github.com/sant0-9/planea/internal/document"
	"github.com/sant0-9/planea/internal/llm"
	"github.com/sant0-9/planea/internal/logger"
	"github.com/sant0-9/planea/internal/metrics"
)

// ErrorMarker prefixes every failure shown to the user.
const ErrorMarker = "❌ Error al generar la planeación:"

var (
	// ErrIncompleteRequest means at least one of the five fields is empty.
	ErrIncompleteRequest = errors.New("por favor llena todos los campos")
	// ErrExport wraps failures writing the .docx file.
	ErrExport = errors.New("no se pudo crear el documento")
)

type Options struct {
	Model     string
	MaxTokens int
}

type Planner struct {
	provider  llm.Provider
	exporter  *document.Exporter
	log       *logger.Logger
	model     string
	maxTokens int

	results *cache.Cache[string, string]
	group   singleflight.Group
}

func New(provider llm.Provider, exporter *document.Exporter, log *logger.Logger, opts Options) *Planner {
	if log == nil {
		log = logger.Nop()
	}
	return &Planner{
		provider:  provider,
		exporter:  exporter,
		log:       log,
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		results:   cache.New[string, string](),
	}
}

// Plan is a successful submission.
type Plan struct {
	Request  LessonRequest
	Text     string
	Cached   bool
	Document *document.Metadata
}

// Generate returns the completion text for req, serving identical requests
// from the cache. Only successes are cached. Concurrent identical requests
// share a single network call, which runs detached from any one caller's
// cancellation; a caller that gives up gets its own ctx error.
func (p *Planner) Generate(ctx context.Context, req LessonRequest) (text string, cached bool, err error) {
	if !req.Complete() {
		metrics.GenerationsTotal.WithLabelValues(Outcome(ErrIncompleteRequest)).Inc()
		return "", false, ErrIncompleteRequest
	}
	if err := ctx.Err(); err != nil {
		metrics.GenerationsTotal.WithLabelValues(Outcome(err)).Inc()
		return "", false, err
	}

	key := req.Key()
	if text, ok := p.results.Get(key); ok {
		metrics.CacheHitsTotal.Inc()
		metrics.GenerationsTotal.WithLabelValues(Outcome(nil)).Inc()
		p.log.Debug("lesson plan served from cache", "subject", req.Subject, "topic", req.Topic)
		return text, true, nil
	}

	flight := context.WithoutCancel(ctx)
	ch := p.group.DoChan(key, func() (interface{}, error) {
		if text, ok := p.results.Get(key); ok {
			return text, nil
		}
		text, err := p.complete(flight, req)
		if err != nil {
			return "", err
		}
		p.results.Put(key, text)
		return text, nil
	})

	select {
	case <-ctx.Done():
		err := ctx.Err()
		metrics.GenerationsTotal.WithLabelValues(Outcome(err)).Inc()
		p.log.Debug("caller stopped waiting for lesson plan", "error", err)
		return "", false, err
	case res := <-ch:
		if res.Err != nil {
			metrics.GenerationsTotal.WithLabelValues(Outcome(res.Err)).Inc()
			return "", false, res.Err
		}
		metrics.GenerationsTotal.WithLabelValues(Outcome(nil)).Inc()
		return res.Val.(string), false, nil
	}
}

func (p *Planner) complete(ctx context.Context, req LessonRequest) (string, error) {
	start := time.Now()
	resp, err := p.provider.Complete(ctx, llm.NewUserRequest(p.model, req.Prompt(), p.maxTokens))
	elapsed := time.Since(start)
	metrics.CompletionDuration.WithLabelValues(p.model).Observe(elapsed.Seconds())

	if err != nil {
		p.log.Warn("completion failed",
			"provider", p.provider.Name(),
			"kind", Outcome(err),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return "", err
	}
	p.log.Info("completion succeeded",
		"provider", p.provider.Name(),
		"model", resp.Model,
		"finish_reason", resp.FinishReason,
		"total_tokens", resp.Usage.TotalTokens,
		"duration_ms", elapsed.Milliseconds(),
	)
	return resp.Content, nil
}

// Plan generates the text and exports it. A failed generation is never
// exported.
func (p *Planner) Plan(ctx context.Context, req LessonRequest) (*Plan, error) {
	text, cached, err := p.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	meta, err := p.exporter.Export(document.Compose(text))
	if err != nil {
		metrics.ExportFailuresTotal.Inc()
		p.log.Error("document export failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}
	p.log.Debug("document exported", "path", meta.Path, "paragraphs", meta.Paragraphs)

	return &Plan{
		Request:  req,
		Text:     text,
		Cached:   cached,
		Document: meta,
	}, nil
}

// ClearCache drops every memoized result.
func (p *Planner) ClearCache() {
	p.results.Clear()
}

// CacheLen is the number of memoized results.
func (p *Planner) CacheLen() int {
	return p.results.Len()
}

// Outcome labels an error for metrics and logs.
func Outcome(err error) string {
	var ce *llm.CompletionError
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrIncompleteRequest):
		return "incomplete"
	case errors.Is(err, ErrExport):
		return "export"
	case errors.As(err, &ce):
		return ce.Kind.String()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "transport"
	}
}

// FailureMessage is the text shown in the error banner for err.
func FailureMessage(err error) string {
	return ErrorMarker + " " + err.Error()
}
