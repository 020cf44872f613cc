package watermark

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sigillum/sigillum/document"
	"github.com/sigillum/sigillum/fonts"
)

// FontResource is the name the watermark font is registered under in each
// page's /Resources /Font dictionary.
const FontResource = "FWM"

const (
	fontSize    = 8
	marginLeft  = 10
	marginTop   = 15
	lineSpacing = -10

	// The last line is moved far up from the others.
	lastLineOffset = 500
)

// Apply adds text to every page of doc. One font object is shared by all
// pages; each page gets its own content stream appended to /Contents.
//
// A page that cannot be dereferenced aborts the operation. Since objects are
// edited in place, doc must be discarded after an error. Page objects that
// are not dictionaries are skipped.
func Apply(doc *document.Document, text string) error {
	pages, err := doc.Pages()
	if err != nil {
		return fmt.Errorf("failed to read page tree: %w", err)
	}

	font := doc.Insert(fonts.Standard(fonts.Helvetica).Dict(FontResource))

	for i, id := range pages {
		if err := applyPage(doc, id, font, text); err != nil {
			return fmt.Errorf("page %d (object %v): %w", i+1, id, err)
		}
	}
	return nil
}

func applyPage(doc *document.Document, id document.ObjectID, font document.Reference, text string) error {
	obj, err := doc.Get(id)
	if err != nil {
		return err
	}
	page, ok := obj.(document.Dict)
	if !ok {
		return nil
	}

	box := doc.MediaBox(page)
	content := doc.Insert(document.Stream{
		Dict: document.Dict{},
		Data: Program(text, box[3]),
	})

	page["Contents"] = appendContents(doc, page["Contents"], content)
	addFont(doc, page, font)

	doc.Set(id, page)
	return nil
}

// Program returns the content stream drawing text on a page of the given
// height.
func Program(text string, height float64) []byte {
	var buf bytes.Buffer
	buf.WriteString("q\nBT\n")
	fmt.Fprintf(&buf, "/%s %d Tf\n", FontResource, fontSize)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			fmt.Fprintf(&buf, "%s %s Td ", document.FormatNumber(marginLeft), document.FormatNumber(height-marginTop))
		case i == len(lines)-1:
			fmt.Fprintf(&buf, "0 %d Td ", lastLineOffset)
		default:
			fmt.Fprintf(&buf, "0 %d Td ", lineSpacing)
		}
		buf.WriteString("(" + document.EscapeLiteral(line) + ") Tj\n")
	}

	buf.WriteString("ET\nQ")
	return buf.Bytes()
}

// appendContents adds content to a page's /Contents entry.
func appendContents(doc *document.Document, contents document.Object, content document.Reference) document.Object {
	switch c := contents.(type) {
	case document.Array:
		return append(c, content)
	case document.Reference:
		// The reference may point at an array of content streams.
		obj, err := doc.Get(c.ID())
		if arr, ok := obj.(document.Array); err == nil && ok {
			doc.Set(c.ID(), append(arr, content))
			return c
		}
		return document.Array{c, content}
	default:
		return document.Array{content}
	}
}

// addFont registers font as FontResource in the page's resources. Indirect
// resource dictionaries are updated in the document. A page without its own
// /Resources gets a copy of the inherited ones.
func addFont(doc *document.Document, page document.Dict, font document.Reference) {
	res, ok := page["Resources"]
	if !ok {
		inherited, _ := doc.Inherited(page, "Resources")
		dict, ok := doc.ResolveDict(inherited)
		if !ok {
			dict = document.Dict{}
		}
		addFontEntry(doc, dict, font)
		page["Resources"] = dict
		return
	}

	switch r := res.(type) {
	case document.Dict:
		addFontEntry(doc, r, font)
	case document.Reference:
		obj, err := doc.Get(r.ID())
		if dict, ok := obj.(document.Dict); err == nil && ok {
			addFontEntry(doc, dict, font)
			doc.Set(r.ID(), dict)
			return
		}
		page["Resources"] = resourcesWith(font)
	default:
		page["Resources"] = resourcesWith(font)
	}
}

func addFontEntry(doc *document.Document, res document.Dict, font document.Reference) {
	switch f := res["Font"].(type) {
	case document.Dict:
		f[FontResource] = font
	case document.Reference:
		obj, err := doc.Get(f.ID())
		if dict, ok := obj.(document.Dict); err == nil && ok {
			dict[FontResource] = font
			doc.Set(f.ID(), dict)
			return
		}
		res["Font"] = document.Dict{FontResource: font}
	default:
		res["Font"] = document.Dict{FontResource: font}
	}
}

func resourcesWith(font document.Reference) document.Dict {
	return document.Dict{"Font": document.Dict{FontResource: font}}
}
