// Package verify reports whether a file carries a signature watermark.
//
// Verification reads the watermark text only. No key is involved: the
// response tells what the watermark says, not who wrote it.
package verify

import (
	"bytes"
	"fmt"
	"os"

	"github.com/sigillum/sigillum/extract"
	"github.com/sigillum/sigillum/internal/pdf"
	"github.com/sigillum/sigillum/watermark"
)

const (
	MessageSigned   = "PDF has a digital signature"
	MessageUnsigned = "PDF does not contain a digital signature"
)

// Response is the outcome of a verification.
type Response struct {
	IsSigned      bool          `json:"is_signed"`
	SignatureInfo *extract.Info `json:"signature_info"`
	Message       string        `json:"message"`

	// Pages and WatermarkedPages are zero when the file cannot be parsed
	// as a PDF.
	Pages            int `json:"pages"`
	WatermarkedPages int `json:"watermarked_pages"`

	DocumentInfo *DocumentInfo `json:"document_info,omitempty"`
}

// Verify inspects data. It never fails: a file that is not a PDF at all is
// reported as unsigned.
func Verify(data []byte) *Response {
	resp := &Response{Message: MessageUnsigned}

	if sig, ok := extract.Extract(data); ok {
		resp.IsSigned = true
		resp.SignatureInfo = sig.Info()
		resp.Message = MessageSigned
	}

	rdr, err := pdf.Open(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return resp
	}
	if pages, matched, err := pdf.CountFontPages(rdr, watermark.FontResource); err == nil {
		resp.Pages = pages
		resp.WatermarkedPages = matched
	}
	resp.DocumentInfo = parseDocumentInfo(rdr)

	return resp
}

// VerifyFile reads the file at path and verifies it.
func VerifyFile(path string) (*Response, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Verify(data), nil
}
