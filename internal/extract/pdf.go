// Package extract decodes PDF bytes into positioned text fragments.
// It is the pipeline's only PDF-aware layer; everything downstream works on
// the statement.Document it produces.
package extract

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/FACorreiaa/bank-statement-parser/internal/statement"
)

// Extractor turns a source file into a decoded document. The pipeline depends
// on this interface so tests can feed synthetic documents.
type Extractor interface {
	Extract(path string) (*statement.Document, error)
}

// PDFExtractor extracts positioned text using the ledongthuc/pdf reader.
type PDFExtractor struct{}

// NewPDFExtractor returns the default PDF-backed extractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract opens and decodes one PDF file.
func (e *PDFExtractor) Extract(path string) (*statement.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	doc, err := Decode(f, info.Size())
	if err != nil {
		return nil, err
	}
	doc.SourceFile = path
	return doc, nil
}

// Decode reads a PDF from an io.ReaderAt and returns its pages of positioned
// fragments. Pages that fail to decode are returned empty rather than
// aborting the document; the caller decides whether an all-empty document is
// acceptable.
func Decode(r *os.File, size int64) (doc *statement.Document, err error) {
	// The pdf library panics on some malformed files.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pdf decode crashed: %v", rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("pdf decode: %w", err)
	}

	numPages := reader.NumPage()
	doc = &statement.Document{PageCount: numPages}

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		out := statement.Page{Number: i}
		if !page.V.IsNull() {
			content := page.Content()
			out.Fragments = make([]statement.Fragment, 0, len(content.Text))
			for _, t := range content.Text {
				if t.S == "" {
					continue
				}
				out.Fragments = append(out.Fragments, statement.Fragment{
					Text:   t.S,
					X:      t.X,
					Y:      t.Y,
					Width:  t.W,
					Height: t.FontSize,
					Page:   i,
				})
			}
		}
		doc.Pages = append(doc.Pages, out)
	}
	return doc, nil
}

// IsEmpty reports whether a decoded document yielded no text at all. A
// non-empty page count with zero fragments is the signature of a
// password-protected or image-only PDF.
func IsEmpty(doc *statement.Document) bool {
	for _, p := range doc.Pages {
		if len(p.Fragments) > 0 {
			return false
		}
	}
	return true
}
