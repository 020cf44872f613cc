// Package watermark renders a signature watermark and writes it onto every
// page of a document.
//
// The watermark is a block of text lines:
//
//	Digitally signed by <name>
//	<timestamp>
//	<extra>             (only when extra is set)
//	Hash:<signature>
//
// The text is drawn as plain string shows in an unfiltered content stream so
// that it can be recovered from the file bytes without parsing the document.
package watermark

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Marker starts the first line of every watermark.
	Marker = "Digitally signed by "

	// HashPrefix starts the last line of every watermark.
	HashPrefix = "Hash:"
)

// ErrInvalidBlock is returned by Validate for blocks whose text could not be
// read back unambiguously.
var ErrInvalidBlock = errors.New("invalid watermark block")

// Block holds the fields of a watermark.
type Block struct {
	Signer    string
	Timestamp string
	Extra     string
	Hash      string
}

// Lines returns the text lines of the watermark in drawing order.
func (b Block) Lines() []string {
	lines := []string{Marker + b.Signer, b.Timestamp}
	if b.Extra != "" {
		lines = append(lines, b.Extra)
	}
	return append(lines, HashPrefix+b.Hash)
}

// Text returns the watermark text, one line per field.
func (b Block) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// Validate checks that the block can be told apart when read back: no field
// may span lines, signer and timestamp must be set and the extra line must
// not look like a hash line.
func (b Block) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"signer", b.Signer},
		{"timestamp", b.Timestamp},
		{"extra", b.Extra},
		{"hash", b.Hash},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, "\r\n") {
			return fmt.Errorf("%w: %s contains a line break", ErrInvalidBlock, f.name)
		}
	}
	if strings.TrimSpace(b.Signer) == "" {
		return fmt.Errorf("%w: signer is empty", ErrInvalidBlock)
	}
	if strings.TrimSpace(b.Timestamp) == "" {
		return fmt.Errorf("%w: timestamp is empty", ErrInvalidBlock)
	}
	extra := strings.TrimSpace(b.Extra)
	if b.Extra != "" && extra == "" {
		return fmt.Errorf("%w: extra is blank", ErrInvalidBlock)
	}
	if strings.HasPrefix(extra, HashPrefix) {
		return fmt.Errorf("%w: extra must not start with %q", ErrInvalidBlock, HashPrefix)
	}
	return nil
}
