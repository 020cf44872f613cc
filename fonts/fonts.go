// Package fonts describes the standard PDF fonts that can be referenced by
// a content stream without embedding font data.
package fonts

import (
	"github.com/sigillum/sigillum/document"
)

// StandardType represents standard PDF fonts that are available in all PDF readers
// without embedding.
type StandardType int

const (
	// Helvetica is the standard sans-serif font.
	Helvetica StandardType = iota
	// HelveticaBold is bold Helvetica.
	HelveticaBold
	// HelveticaOblique is italic/oblique Helvetica.
	HelveticaOblique
	// TimesRoman is the standard serif font.
	TimesRoman
	// TimesBold is bold Times Roman.
	TimesBold
	// Courier is the standard monospace font.
	Courier
	// CourierBold is bold Courier.
	CourierBold
)

var standardNames = map[StandardType]string{
	Helvetica:        "Helvetica",
	HelveticaBold:    "Helvetica-Bold",
	HelveticaOblique: "Helvetica-Oblique",
	TimesRoman:       "Times-Roman",
	TimesBold:        "Times-Bold",
	Courier:          "Courier",
	CourierBold:      "Courier-Bold",
}

// Font is a non-embedded Type1 font.
type Font struct {
	Name string // PostScript name of the font
}

// Standard returns the Font for a standard PDF font. Unknown types yield
// Helvetica.
func Standard(ft StandardType) *Font {
	name, ok := standardNames[ft]
	if !ok {
		name = standardNames[Helvetica]
	}
	return &Font{Name: name}
}

// Dict returns the font dictionary for f, registered under resourceName in a
// page's /Resources /Font dictionary.
func (f *Font) Dict(resourceName string) document.Dict {
	return document.Dict{
		"Type":     document.Name("Font"),
		"Subtype":  document.Name("Type1"),
		"BaseFont": document.Name(f.Name),
		"Name":     document.Name(resourceName),
	}
}
