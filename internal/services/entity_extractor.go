package services

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
)

// nameWindow is how many leading characters are searched for the
// candidate's name before falling back to the whole document.
const nameWindow = 300

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\(?\b\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
	nonDigit     = regexp.MustCompile(`\D`)
)

type EntityExtractor interface {
	Extract(text string) models.EntitySet
}

type entityExtractor struct {
	models *NLPModels
	logger *zap.Logger
}

func NewEntityExtractor(nlpModels *NLPModels, logger *zap.Logger) EntityExtractor {
	return &entityExtractor{
		models: nlpModels,
		logger: logger,
	}
}

// Extract never fails. Fields whose model is missing or errors are left
// empty.
func (e *entityExtractor) Extract(text string) models.EntitySet {
	return models.EntitySet{
		Name:   e.extractName(text),
		Email:  emailPattern.FindString(text),
		Phone:  nonDigit.ReplaceAllString(phonePattern.FindString(text), ""),
		Skills: e.extractSkills(text),
	}
}

func (e *entityExtractor) extractName(text string) string {
	generic := e.models.Generic()
	if generic == nil {
		return ""
	}

	head := leadingRunes(text, nameWindow)
	if name, ok := e.firstPerson(generic, head); ok {
		return name
	}
	if head == text {
		return ""
	}

	// Complete lines of the head have been searched already; resume at the
	// line the window cut through.
	rest := text[strings.LastIndexByte(head, '\n')+1:]
	name, _ := e.firstPerson(generic, rest)
	return name
}

// firstPerson runs the recogniser one line at a time so that a name never
// runs on into the line below it, and returns the first PERSON in document
// order.
func (e *entityExtractor) firstPerson(r EntityRecognizer, text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		spans, err := r.Recognize(line)
		if err != nil {
			e.logger.Warn("generic model failed", zap.Error(err))
			return "", false
		}

		for _, span := range spans {
			if span.Label == LabelPerson {
				if name := strings.TrimSpace(span.Text); name != "" {
					return name, true
				}
			}
		}
	}
	return "", false
}

func (e *entityExtractor) extractSkills(text string) []string {
	skillModel := e.models.Skills()
	if skillModel == nil {
		return nil
	}

	spans, err := skillModel.Recognize(text)
	if err != nil {
		e.logger.Warn("skill model failed", zap.Error(err))
		return nil
	}

	set := make(map[string]struct{})
	for _, span := range spans {
		if span.Label != LabelSkill {
			continue
		}
		skill := strings.ToLower(strings.Join(strings.Fields(span.Text), " "))
		if skill != "" {
			set[skill] = struct{}{}
		}
	}

	if len(set) == 0 {
		return nil
	}

	skills := make([]string, 0, len(set))
	for s := range set {
		skills = append(skills, s)
	}
	sort.Strings(skills)

	return skills
}

func leadingRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
