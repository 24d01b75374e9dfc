package services

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fakeRecognizer labels every listed name it finds, in list order, and
// records the texts it was asked about.
type fakeRecognizer struct {
	names []string
	err   error
	calls []string
}

func (f *fakeRecognizer) Recognize(text string) ([]Span, error) {
	f.calls = append(f.calls, text)
	if f.err != nil {
		return nil, f.err
	}

	var spans []Span
	for _, name := range f.names {
		if strings.Contains(text, name) {
			spans = append(spans, Span{Text: name, Label: LabelPerson})
		}
	}
	return spans, nil
}

func newTestSkillModel(t *testing.T) *SkillModel {
	t.Helper()

	model, err := NewSkillModel("test", []string{"python", "machine learning", "c++", "node.js", "django"})
	if err != nil {
		t.Fatal(err)
	}
	return model
}

func TestExtractNamePrefersDocumentHead(t *testing.T) {
	generic := &fakeRecognizer{names: []string{"Jane Doe", "John Smith"}}
	extractor := NewEntityExtractor(NewNLPModels(generic, nil), zap.NewNop())

	text := "John Smith\n" + strings.Repeat("experience ", 40) + "\nReference: Jane Doe"
	set := extractor.Extract(text)

	if set.Name != "John Smith" {
		t.Fatalf("expected name from the head of the document, got %q", set.Name)
	}
	if len(generic.calls) != 1 || generic.calls[0] != "John Smith" {
		t.Fatalf("expected only the first line to be scanned, got %q", generic.calls)
	}
}

func TestExtractNameScansLineByLine(t *testing.T) {
	// Recognises any run of capitalised words, the way a NER model joins
	// adjacent proper nouns.
	generic := &capitalRunRecognizer{}
	extractor := NewEntityExtractor(NewNLPModels(generic, nil), zap.NewNop())

	set := extractor.Extract("\nJane Doe\nSenior Software Engineer\njane@example.com")
	if set.Name != "Jane Doe" {
		t.Fatalf("expected name to stop at the line break, got %q", set.Name)
	}
	if len(generic.calls) != 1 {
		t.Fatalf("expected blank lines to be skipped, got calls %q", generic.calls)
	}
}

func TestExtractNameFallbackStartsAtCutLine(t *testing.T) {
	generic := &fakeRecognizer{names: []string{"Jane Doe"}}
	extractor := NewEntityExtractor(NewNLPModels(generic, nil), zap.NewNop())

	first := strings.Repeat("a", 100)
	cut := strings.Repeat("b", 250) + " Jane Doe"
	set := extractor.Extract(first + "\n" + cut)

	if set.Name != "Jane Doe" {
		t.Fatalf("expected name from the line cut by the window, got %q", set.Name)
	}
	want := []string{first, strings.Repeat("b", nameWindow-101), cut}
	if len(generic.calls) != len(want) {
		t.Fatalf("expected calls %q, got %q", want, generic.calls)
	}
	for i := range want {
		if generic.calls[i] != want[i] {
			t.Fatalf("expected calls %q, got %q", want, generic.calls)
		}
	}
}

type capitalRunRecognizer struct {
	calls []string
}

func (c *capitalRunRecognizer) Recognize(text string) ([]Span, error) {
	c.calls = append(c.calls, text)

	var run []string
	for _, word := range strings.Fields(text) {
		if word[0] < 'A' || word[0] > 'Z' {
			break
		}
		run = append(run, word)
	}
	if len(run) == 0 {
		return nil, nil
	}
	return []Span{{Text: strings.Join(run, " "), Label: LabelPerson}}, nil
}

func TestExtractNameFallsBackToWholeText(t *testing.T) {
	generic := &fakeRecognizer{names: []string{"Jane Doe"}}
	extractor := NewEntityExtractor(NewNLPModels(generic, nil), zap.NewNop())

	text := strings.Repeat("summary ", 60) + "Jane Doe"
	set := extractor.Extract(text)

	if set.Name != "Jane Doe" {
		t.Fatalf("expected name from the whole document, got %q", set.Name)
	}
	if len(generic.calls) != 2 {
		t.Fatalf("expected head and full scans, got %d calls", len(generic.calls))
	}
}

func TestExtractNameShortTextScannedOnce(t *testing.T) {
	generic := &fakeRecognizer{}
	extractor := NewEntityExtractor(NewNLPModels(generic, nil), zap.NewNop())

	set := extractor.Extract("short resume without a person")
	if set.Name != "" {
		t.Fatalf("expected no name, got %q", set.Name)
	}
	if len(generic.calls) != 1 {
		t.Fatalf("expected a single scan, got %d", len(generic.calls))
	}
}

func TestExtractContactDetails(t *testing.T) {
	extractor := NewEntityExtractor(NewNLPModels(nil, nil), zap.NewNop())

	tests := []struct {
		text  string
		email string
		phone string
	}{
		{"Reach me at jane.doe@example.com or (555) 123-4567.", "jane.doe@example.com", "5551234567"},
		{"Phone: 555.987.6543\nMail: j_smith+cv@mail.co.uk", "j_smith+cv@mail.co.uk", "5559876543"},
		{"Tel 555 222 3333", "", "5552223333"},
		{"no contact details here", "", ""},
	}

	for _, tt := range tests {
		set := extractor.Extract(tt.text)
		if set.Email != tt.email {
			t.Errorf("Extract(%q).Email = %q, want %q", tt.text, set.Email, tt.email)
		}
		if set.Phone != tt.phone {
			t.Errorf("Extract(%q).Phone = %q, want %q", tt.text, set.Phone, tt.phone)
		}
	}
}

func TestExtractSkillsNormalised(t *testing.T) {
	extractor := NewEntityExtractor(NewNLPModels(nil, newTestSkillModel(t)), zap.NewNop())

	set := extractor.Extract("Python, python and Machine  Learning; C++ and Node.js. Also PYTHON.")

	want := []string{"c++", "machine learning", "node.js", "python"}
	if len(set.Skills) != len(want) {
		t.Fatalf("expected skills %v, got %v", want, set.Skills)
	}
	for i := range want {
		if set.Skills[i] != want[i] {
			t.Fatalf("expected skills %v, got %v", want, set.Skills)
		}
	}
}

func TestExtractWithoutModels(t *testing.T) {
	extractor := NewEntityExtractor(NewNLPModels(nil, nil), zap.NewNop())

	set := extractor.Extract("Jane Doe, Python developer")
	if set.Name != "" || set.Skills != nil {
		t.Fatalf("expected model fields to be empty, got %+v", set)
	}
	if !set.IsEmpty() {
		t.Fatalf("expected empty entity set, got %+v", set)
	}
}

func TestExtractModelErrorsDegrade(t *testing.T) {
	failing := &fakeRecognizer{err: errors.New("model crashed")}
	extractor := NewEntityExtractor(NewNLPModels(failing, failing), zap.NewNop())

	set := extractor.Extract("Jane Doe jane@example.com")
	if set.Name != "" || set.Skills != nil {
		t.Fatalf("expected failing models to leave fields empty, got %+v", set)
	}
	if set.Email != "jane@example.com" {
		t.Fatalf("expected email to survive model failure, got %q", set.Email)
	}
}

func TestExtractIgnoresOtherLabels(t *testing.T) {
	generic := &labelRecognizer{spans: []Span{{Text: "Berlin", Label: "GPE"}, {Text: "  ", Label: LabelPerson}}}
	extractor := NewEntityExtractor(NewNLPModels(generic, nil), zap.NewNop())

	if set := extractor.Extract("Lives in Berlin"); set.Name != "" {
		t.Fatalf("expected no name, got %q", set.Name)
	}
}

type labelRecognizer struct {
	spans []Span
}

func (l *labelRecognizer) Recognize(string) ([]Span, error) {
	return l.spans, nil
}

func TestLeadingRunes(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"héllo wörld", 4, "héll"},
		{"", 3, ""},
	}

	for _, tt := range tests {
		if got := leadingRunes(tt.in, tt.n); got != tt.want {
			t.Errorf("leadingRunes(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
