// Package sign writes a signature watermark onto every page of a PDF.
//
// The watermark shows the signer, the signing time, an optional note and a
// SHA-256 hash over the unsigned document and those fields. The output is an
// incremental update of the input.
package sign

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sigillum/sigillum/document"
	"github.com/sigillum/sigillum/extract"
	"github.com/sigillum/sigillum/watermark"
	"golang.org/x/text/unicode/norm"
)

// SignFile signs the PDF at input and writes the result to output. input and
// output may name the same file.
func SignFile(input string, output string, data SignData) (*Result, error) {
	pdf, err := os.ReadFile(input)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	result, err := Sign(bytes.NewReader(pdf), int64(len(pdf)), &buf, data)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return nil, err
	}
	return result, nil
}

// Sign reads a PDF of the given size from input and writes it, watermarked,
// to output.
func Sign(input io.ReaderAt, size int64, output io.Writer, data SignData) (*Result, error) {
	if err := ValidateSigner(data.Signer); err != nil {
		return nil, fmt.Errorf("invalid signing key: %w", err)
	}
	if data.Date.IsZero() {
		data.Date = time.Now()
	}
	data.Name = strings.TrimSpace(norm.NFC.String(data.Name))
	data.Extra = strings.TrimSpace(norm.NFC.String(data.Extra))

	if size < 0 {
		return nil, fmt.Errorf("invalid PDF size %d", size)
	}
	pdf := make([]byte, size)
	if _, err := input.ReadAt(pdf, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	timestamp := FormatTimestamp(data.Date)
	block := watermark.Block{
		Signer:    data.Name,
		Timestamp: timestamp,
		Extra:     data.Extra,
		Hash:      ComputeHash(pdf, data.Name, timestamp, data.Extra),
	}
	if err := block.Validate(); err != nil {
		return nil, err
	}

	doc, err := document.Load(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to load PDF: %w", err)
	}

	pages, err := doc.Pages()
	if err != nil {
		return nil, fmt.Errorf("failed to read pages: %w", err)
	}

	if err := watermark.Apply(doc, block.Text()); err != nil {
		return nil, fmt.Errorf("failed to add watermark: %w", err)
	}

	if doc.Info() != nil {
		if err := doc.SetModDate(data.Date); err != nil {
			return nil, fmt.Errorf("failed to update document info: %w", err)
		}
	}

	if err := doc.Write(output); err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	return &Result{
		Signature: extract.Info{
			SignerName: data.Name,
			Timestamp:  timestamp,
			Extra:      data.Extra,
			Signature:  block.Hash,
		},
		Pages: len(pages),
	}, nil
}
