// Package pdf holds read-only scans over documents parsed by
// github.com/digitorus/pdf.
package pdf

import (
	"fmt"
	"io"

	pdflib "github.com/digitorus/pdf"
)

// FontInfo describes a font registered in a page's resources.
type FontInfo struct {
	Page     int    // 1-based page number
	Resource string // key in the page's /Resources /Font dictionary
	BaseFont string
	ID       uint32 // object number, 0 for direct font dictionaries
}

// Open parses a PDF. Malformed files that make the reader panic are
// reported as errors.
func Open(r io.ReaderAt, size int64) (rdr *pdflib.Reader, err error) {
	defer func() {
		if p := recover(); p != nil {
			rdr = nil
			err = fmt.Errorf("failed to parse PDF: %v", p)
		}
	}()
	return pdflib.NewReader(r, size)
}

// ScanFonts lists the fonts registered in the resources of every page.
func ScanFonts(r *pdflib.Reader) (found []FontInfo, err error) {
	if r == nil {
		return nil, nil
	}
	defer func() {
		if p := recover(); p != nil {
			found = nil
			err = fmt.Errorf("failed to scan fonts: %v", p)
		}
	}()

	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		fonts := page.V.Key("Resources").Key("Font")
		if fonts.IsNull() {
			continue
		}
		for _, name := range fonts.Keys() {
			font := fonts.Key(name)
			info := FontInfo{
				Page:     i,
				Resource: name,
				ID:       font.GetPtr().GetID(),
			}
			if baseFont := font.Key("BaseFont"); baseFont.Kind() == pdflib.Name {
				info.BaseFont = baseFont.Name()
			}
			found = append(found, info)
		}
	}
	return found, nil
}

// CountFontPages returns the number of pages in r and the number of pages
// registering a font under resource.
func CountFontPages(r *pdflib.Reader, resource string) (pages, matched int, err error) {
	fonts, err := ScanFonts(r)
	if err != nil {
		return 0, 0, err
	}
	seen := make(map[int]bool)
	for _, f := range fonts {
		if f.Resource == resource && !seen[f.Page] {
			seen[f.Page] = true
			matched++
		}
	}
	return r.NumPage(), matched, nil
}
