package services

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
)

type fakeDecoder struct {
	formats     []string
	unavailable bool
	text        string
	err         error
	panicWith   any

	calls    int
	seenPath string
	existed  bool
}

func (f *fakeDecoder) Formats() []string { return f.formats }
func (f *fakeDecoder) Available() bool   { return !f.unavailable }

func (f *fakeDecoder) Decode(path string) (string, error) {
	f.calls++
	f.seenPath = path
	_, statErr := os.Stat(path)
	f.existed = statErr == nil

	if f.panicWith != nil {
		panic(f.panicWith)
	}
	return f.text, f.err
}

type fakeOCR struct {
	text string
}

func (f *fakeOCR) Recognize([]byte) (string, error) { return f.text, nil }
func (f *fakeOCR) Close() error                     { return nil }

func newTestPipeline(t *testing.T, maxFileSize int64, decoders ...Decoder) (ExtractionPipeline, string) {
	t.Helper()

	dir := t.TempDir()
	storage := NewTransientStorage(dir, zap.NewNop())
	return NewExtractionPipeline(storage, maxFileSize, zap.NewNop(), decoders...), dir
}

func assertKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s (%v)", want, got, err)
	}
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected transient files to be removed, found %d", len(entries))
	}
}

func TestExtractUnsupportedFormat(t *testing.T) {
	decoder := &fakeDecoder{formats: []string{"pdf", "txt"}, text: "Jane Doe"}
	pipeline, _ := newTestPipeline(t, testMaxFileSize, decoder)

	for _, name := range []string{"resume.txt", "resume", "resume.pdf.exe", "resume.doc"} {
		_, err := pipeline.Extract(models.NewDocument(name, []byte("Jane Doe")))
		assertKind(t, err, KindUnsupportedFormat)
	}

	if decoder.calls != 0 {
		t.Fatalf("decoder should not run for unsupported formats, ran %d times", decoder.calls)
	}
}

func TestExtractExtensionIsCaseInsensitive(t *testing.T) {
	decoder := &fakeDecoder{formats: []string{"pdf"}, text: "Jane Doe"}
	pipeline, _ := newTestPipeline(t, testMaxFileSize, decoder)

	text, err := pipeline.Extract(models.NewDocument("RESUME.PDF", []byte("%PDF")))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "Jane Doe" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestExtractOversizedInput(t *testing.T) {
	decoder := &fakeDecoder{formats: []string{"pdf"}, text: "Jane Doe"}
	pipeline, dir := newTestPipeline(t, 10, decoder)

	_, err := pipeline.Extract(models.NewDocument("resume.pdf", bytes.Repeat([]byte("x"), 11)))
	assertKind(t, err, KindOversizedInput)

	// Declared size alone is enough; content is not read for large uploads.
	_, err = pipeline.Extract(models.Document{Filename: "resume.pdf", Size: 1 << 20})
	assertKind(t, err, KindOversizedInput)

	if decoder.calls != 0 {
		t.Fatalf("decoder should not run for oversized input, ran %d times", decoder.calls)
	}
	assertDirEmpty(t, dir)

	if _, err := pipeline.Extract(models.NewDocument("resume.pdf", bytes.Repeat([]byte("x"), 10))); err != nil {
		t.Fatalf("expected input at the limit to be accepted: %v", err)
	}
}

func TestExtractUnavailableDecoder(t *testing.T) {
	pipeline, _ := newTestPipeline(t, testMaxFileSize, NewImageDecoder(nil))

	_, err := pipeline.Extract(models.NewDocument("scan.png", []byte("png")))
	assertKind(t, err, KindUnsupportedFormat)

	_, err = pipeline.Extract(models.NewDocument("resume.docx", []byte("docx")))
	assertKind(t, err, KindUnsupportedFormat)
}

func TestExtractDecoderFailures(t *testing.T) {
	tests := []struct {
		name    string
		decoder *fakeDecoder
	}{
		{"error", &fakeDecoder{formats: []string{"pdf"}, err: errors.New("corrupt xref")}},
		{"panic", &fakeDecoder{formats: []string{"pdf"}, panicWith: "index out of range"}},
		{"blank", &fakeDecoder{formats: []string{"pdf"}, text: "  \n\t "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline, dir := newTestPipeline(t, testMaxFileSize, tt.decoder)

			_, err := pipeline.Extract(models.NewDocument("resume.pdf", []byte("%PDF-1.4")))
			assertKind(t, err, KindExtractionFailure)
			assertDirEmpty(t, dir)
		})
	}
}

func TestExtractStagesAndRemovesTransientFile(t *testing.T) {
	decoder := &fakeDecoder{formats: []string{"pdf"}, text: "Jane Doe"}
	pipeline, dir := newTestPipeline(t, testMaxFileSize, decoder)

	if _, err := pipeline.Extract(models.NewDocument("resume.pdf", []byte("%PDF-1.4"))); err != nil {
		t.Fatal(err)
	}

	if !decoder.existed {
		t.Fatal("expected transient file to exist while decoding")
	}
	if filepath.Dir(decoder.seenPath) != dir || filepath.Ext(decoder.seenPath) != ".pdf" {
		t.Fatalf("unexpected transient path %q", decoder.seenPath)
	}
	assertDirEmpty(t, dir)
}

func TestExtractCorruptPDF(t *testing.T) {
	pipeline, dir := newTestPipeline(t, testMaxFileSize, NewPDFDecoder())

	_, err := pipeline.Extract(models.NewDocument("resume.pdf", []byte("this is not a pdf")))
	assertKind(t, err, KindExtractionFailure)
	assertDirEmpty(t, dir)
}

func TestExtractDOCX(t *testing.T) {
	xmlBody := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Jane Doe</w:t></w:r></w:p>
<w:p><w:r><w:t>Python</w:t></w:r><w:r><w:tab/></w:r><w:r><w:t xml:space="preserve">Go </w:t></w:r><w:r><w:t>Django</w:t></w:r></w:p>
<w:p><w:r><w:t>jane@example.com</w:t></w:r><w:r><w:br/></w:r><w:r><w:t>555-123-4567</w:t></w:r></w:p>
</w:body>
</w:document>`

	pipeline, dir := newTestPipeline(t, testMaxFileSize, NewDOCXDecoder())

	text, err := pipeline.Extract(models.NewDocument("resume.docx", buildDOCX(t, xmlBody)))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := "Jane Doe\nPython\tGo Django\njane@example.com\n555-123-4567"
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}
	assertDirEmpty(t, dir)
}

func TestExtractDOCXWithoutDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<styles/>"))
	zw.Close()

	pipeline, _ := newTestPipeline(t, testMaxFileSize, NewDOCXDecoder())

	_, err := pipeline.Extract(models.NewDocument("resume.docx", buf.Bytes()))
	assertKind(t, err, KindExtractionFailure)

	_, err = pipeline.Extract(models.NewDocument("resume.docx", []byte("not a zip")))
	assertKind(t, err, KindExtractionFailure)
}

func TestExtractImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.Black)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	pipeline, _ := newTestPipeline(t, testMaxFileSize, NewImageDecoder(&fakeOCR{text: "Jane Doe"}))

	text, err := pipeline.Extract(models.NewDocument("scan.png", buf.Bytes()))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if text != "Jane Doe" {
		t.Fatalf("unexpected OCR text %q", text)
	}

	_, err = pipeline.Extract(models.NewDocument("scan.jpg", []byte("not an image")))
	assertKind(t, err, KindExtractionFailure)
}

func TestExtractFile(t *testing.T) {
	decoder := &fakeDecoder{formats: []string{"pdf"}, text: "Jane Doe"}
	pipeline, _ := newTestPipeline(t, testMaxFileSize, decoder)

	_, err := pipeline.ExtractFile(filepath.Join(t.TempDir(), "missing.pdf"))
	assertKind(t, err, KindResourceMissing)

	path := filepath.Join(t.TempDir(), "stored.pdf")
	os.WriteFile(path, []byte("%PDF-1.4"), 0o644)

	text, err := pipeline.ExtractFile(path)
	if err != nil {
		t.Fatalf("ExtractFile: %v", err)
	}
	if text != "Jane Doe" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestSupportedFormats(t *testing.T) {
	pipeline, _ := newTestPipeline(t, testMaxFileSize,
		NewPDFDecoder(),
		NewDOCXDecoder(),
		NewImageDecoder(nil),
		&fakeDecoder{formats: []string{"txt"}},
	)

	got := pipeline.SupportedFormats()
	want := []string{"pdf", "docx"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

const testMaxFileSize = 5 * 1024 * 1024

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("[Content_Types].xml")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))

	w, err = zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(documentXML))

	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
