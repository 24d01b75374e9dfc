package services

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// skillModelFile is the on-disk artifact produced by the offline training
// scripts.
type skillModelFile struct {
	Name   string   `yaml:"name"`
	Skills []string `yaml:"skills"`
}

// SkillModel recognises skill phrases by longest match over a lexicon.
type SkillModel struct {
	name string
	// index maps the first token of each phrase to every phrase starting
	// with it, longest first.
	index map[string][][]string
	size  int
}

func LoadSkillModel(path string) (*SkillModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skill model: %w", err)
	}

	var file skillModelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse skill model: %w", err)
	}

	return NewSkillModel(file.Name, file.Skills)
}

func NewSkillModel(name string, phrases []string) (*SkillModel, error) {
	m := &SkillModel{
		name:  name,
		index: make(map[string][][]string),
	}

	seen := make(map[string]bool)
	for _, phrase := range phrases {
		tokens := tokenValues(tokenizeSkills(phrase))
		if len(tokens) == 0 {
			continue
		}
		key := strings.Join(tokens, " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		m.index[tokens[0]] = append(m.index[tokens[0]], tokens)
		m.size++
	}

	if m.size == 0 {
		return nil, fmt.Errorf("skill model %q contains no phrases", name)
	}

	for _, candidates := range m.index {
		sort.SliceStable(candidates, func(i, j int) bool {
			return len(candidates[i]) > len(candidates[j])
		})
	}

	return m, nil
}

func (m *SkillModel) Name() string {
	return m.name
}

func (m *SkillModel) Size() int {
	return m.size
}

// Recognize returns one span per matched phrase with the text as written in
// the input.
func (m *SkillModel) Recognize(text string) ([]Span, error) {
	tokens := tokenizeSkills(text)

	var spans []Span
	for i := 0; i < len(tokens); {
		n := m.matchAt(tokens, i)
		if n == 0 {
			i++
			continue
		}
		spans = append(spans, Span{
			Text:  text[tokens[i].start:tokens[i+n-1].end],
			Label: LabelSkill,
		})
		i += n
	}

	return spans, nil
}

func (m *SkillModel) matchAt(tokens []skillToken, i int) int {
	for _, phrase := range m.index[tokens[i].value] {
		if i+len(phrase) > len(tokens) {
			continue
		}
		matched := true
		for k, want := range phrase {
			if tokens[i+k].value != want {
				matched = false
				break
			}
		}
		if matched {
			return len(phrase)
		}
	}
	return 0
}

type skillToken struct {
	value      string
	start, end int
}

// tokenizeSkills splits on anything but letters, digits and + # . so that
// names like c++, c# and node.js stay whole. Trailing dots are dropped.
func tokenizeSkills(text string) []skillToken {
	var tokens []skillToken
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		word := strings.TrimRight(text[start:end], ".")
		if word != "" {
			tokens = append(tokens, skillToken{
				value: strings.ToLower(word),
				start: start,
				end:   start + len(word),
			})
		}
		start = -1
	}

	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(text))

	return tokens
}

func tokenValues(tokens []skillToken) []string {
	values := make([]string, len(tokens))
	for i, t := range tokens {
		values[i] = t.value
	}
	return values
}
