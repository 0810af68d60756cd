package planner

import (
	"strings"

	"github.com/sant0-9/planea/internal/prompts"
)

// LessonRequest is the five-field form input for one submission.
type LessonRequest struct {
	Subject    string `json:"asignatura"`
	Grade      string `json:"grado"`
	Competency string `json:"competencia"`
	Duration   string `json:"duracion"`
	Topic      string `json:"tema"`
}

// Fields returns the values in form order.
func (r LessonRequest) Fields() []string {
	return []string{r.Subject, r.Grade, r.Competency, r.Duration, r.Topic}
}

// Complete reports whether every field has non-whitespace content.
func (r LessonRequest) Complete() bool {
	for _, f := range r.Fields() {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// Key is the canonical cache key: the exact five values joined by a unit
// separator, which cannot be typed into a form field.
func (r LessonRequest) Key() string {
	return strings.Join(r.Fields(), "\x1f")
}

func (r LessonRequest) Prompt() string {
	return prompts.BuildLessonPlan(r.Subject, r.Grade, r.Competency, r.Duration, r.Topic)
}
