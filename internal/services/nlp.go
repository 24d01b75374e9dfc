package services

import (
	"fmt"
	"sync"

	"github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
)

const (
	LabelPerson = "PERSON"
	LabelSkill  = "SKILL"
)

// Span is a labelled piece of text found by a recogniser.
type Span struct {
	Text  string
	Label string
}

// EntityRecognizer labels spans of text. Implementations need not be safe
// for concurrent use; NLPModels serialises every call.
type EntityRecognizer interface {
	Recognize(text string) ([]Span, error)
}

type lockedRecognizer struct {
	mu    sync.Mutex
	inner EntityRecognizer
}

func (l *lockedRecognizer) Recognize(text string) ([]Span, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inner.Recognize(text)
}

// NLPModels owns the process-wide recognisers. Either model may be nil when
// it failed to load; it is never replaced afterwards, only dropped by Close.
type NLPModels struct {
	mu      sync.RWMutex
	generic EntityRecognizer
	skills  EntityRecognizer
}

// NewNLPModels wraps already-constructed recognisers. Nil is allowed for
// either one.
func NewNLPModels(generic, skills EntityRecognizer) *NLPModels {
	m := &NLPModels{}
	if generic != nil {
		m.generic = &lockedRecognizer{inner: generic}
	}
	if skills != nil {
		m.skills = &lockedRecognizer{inner: skills}
	}
	return m
}

// LoadNLPModels loads both models once at start-up. Failures are logged and
// leave the corresponding model nil.
func LoadNLPModels(cfg config.NLPConfig, logger *zap.Logger) *NLPModels {
	var generic, skills EntityRecognizer

	if cfg.GenericModelEnabled {
		r, err := NewProseRecognizer()
		if err != nil {
			logger.Warn("generic NLP model unavailable, name extraction disabled", zap.Error(err))
		} else {
			generic = r
			logger.Info("generic NLP model loaded")
		}
	} else {
		logger.Info("generic NLP model disabled by configuration")
	}

	model, err := LoadSkillModel(cfg.SkillModelPath)
	if err != nil {
		logger.Warn("skill model unavailable, skill extraction disabled",
			zap.String("path", cfg.SkillModelPath),
			zap.Error(err),
		)
	} else {
		skills = model
		logger.Info("skill model loaded",
			zap.String("name", model.Name()),
			zap.Int("phrases", model.Size()),
		)
	}

	return NewNLPModels(generic, skills)
}

func (m *NLPModels) Generic() EntityRecognizer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generic
}

func (m *NLPModels) Skills() EntityRecognizer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.skills
}

// Close drops both models. Calls already holding a recogniser finish
// normally; later lookups see no model.
func (m *NLPModels) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.generic = nil
	m.skills = nil
}

// proseRecognizer runs the prose English NER model, which labels PERSON and
// GPE spans.
type proseRecognizer struct {
	model *prose.Model
}

// NewProseRecognizer loads the bundled model once by parsing a sample
// sentence and keeps it for every later call.
func NewProseRecognizer() (r EntityRecognizer, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("loading prose model: %v", rec)
		}
	}()

	doc, err := prose.NewDocument("Jane Doe is a software engineer.", prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("loading prose model: %w", err)
	}
	if doc.Model == nil {
		return nil, fmt.Errorf("loading prose model: no model attached")
	}

	return &proseRecognizer{model: doc.Model}, nil
}

func (p *proseRecognizer) Recognize(text string) ([]Span, error) {
	doc, err := prose.NewDocument(text,
		prose.WithSegmentation(false),
		prose.UsingModel(p.model),
	)
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	entities := doc.Entities()
	spans := make([]Span, 0, len(entities))
	for _, ent := range entities {
		spans = append(spans, Span{Text: ent.Text, Label: ent.Label})
	}
	return spans, nil
}
