// Package extract recovers the fields of a signature watermark from the raw
// bytes of a file.
//
// The file is not parsed as a PDF. Its bytes are decoded as text and searched
// for the watermark marker; the lines following it are recovered with a scan
// of the string show operators first and a scan of physical lines second.
package extract

import (
	"strings"

	"github.com/sigillum/sigillum/watermark"
	"golang.org/x/text/encoding/unicode"
)

const (
	// NoExtra is reported for the extra field when no extra line was found.
	NoExtra = "(none)"

	// NoHash is reported for the hash field when no hash line was found.
	NoHash = "SHA256: (hash not found)"
)

// Field is a recovered value. Found is false when the value could not be
// recovered and the field reports its placeholder instead.
type Field struct {
	Value string
	Found bool
}

// Signature is the content of a watermark.
type Signature struct {
	Signer    string
	Timestamp string
	Extra     Field
	Hash      Field
}

// ExtraString returns the extra line, or NoExtra.
func (s *Signature) ExtraString() string {
	if !s.Extra.Found {
		return NoExtra
	}
	return s.Extra.Value
}

// HashString returns the hash, or NoHash.
func (s *Signature) HashString() string {
	if !s.Hash.Found {
		return NoHash
	}
	return s.Hash.Value
}

// Info is the plain string form of a Signature.
type Info struct {
	SignerName string `json:"signer_name"`
	Timestamp  string `json:"timestamp"`
	Extra      string `json:"extra"`
	Signature  string `json:"signature"`
}

// Info returns s with placeholders filled in.
func (s *Signature) Info() *Info {
	return &Info{
		SignerName: s.Signer,
		Timestamp:  s.Timestamp,
		Extra:      s.ExtraString(),
		Signature:  s.HashString(),
	}
}

// Extract looks for a watermark in raw and returns its fields. It reports
// false when raw holds no watermark marker or nothing usable follows it.
func Extract(raw []byte) (*Signature, bool) {
	text := decode(raw)

	idx := strings.Index(text, watermark.Marker)
	if idx < 0 {
		return nil, false
	}
	after := text[idx+len(watermark.Marker):]

	lines := scanShows(after)
	if len(lines) < 2 {
		lines = scanLines(after)
	}

	lines = Clean(lines)
	if len(lines) == 0 {
		return nil, false
	}
	return describe(lines)
}

// decode converts raw to text, replacing invalid UTF-8 with U+FFFD.
func decode(raw []byte) string {
	text, err := unicode.UTF8.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), "\uFFFD")
	}
	return string(text)
}

// describe maps cleaned lines to signature fields. The hash line is told
// apart from the extra line by its prefix.
func describe(lines []string) (*Signature, bool) {
	if len(lines) < 2 {
		return nil, false
	}

	sig := &Signature{
		Signer:    lines[0],
		Timestamp: lines[1],
	}
	if len(lines) == 2 {
		return sig, true
	}

	if isHashLine(lines[2]) {
		sig.Hash = Field{Value: hashValue(lines[2]), Found: true}
		return sig, true
	}

	sig.Extra = Field{Value: lines[2], Found: true}
	if len(lines) >= 4 {
		sig.Hash = Field{Value: hashValue(lines[3]), Found: true}
	}
	return sig, true
}

func isHashLine(line string) bool {
	return strings.HasPrefix(line, watermark.HashPrefix)
}

func hashValue(line string) string {
	for strings.HasPrefix(line, watermark.HashPrefix) {
		line = strings.TrimPrefix(line, watermark.HashPrefix)
	}
	return strings.TrimSpace(line)
}
