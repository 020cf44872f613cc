package sign

import (
	"crypto"
	"time"

	"github.com/sigillum/sigillum/extract"
)

// TimestampLayout is the layout of the watermark's timestamp line.
const TimestampLayout = "2006-01-02 15:04:05 UTC"

// SignData holds what is written into the watermark. Name and Extra are
// normalized to Unicode NFC and trimmed before use.
type SignData struct {
	Name  string
	Extra string

	// Date is the signing time; the zero value means now.
	Date time.Time

	// Signer must hold an RSA key. It is checked but no signature is
	// computed with it: the watermark carries a content hash only.
	Signer crypto.Signer
}

// Result describes a signed document.
type Result struct {
	Signature extract.Info `json:"signature_info"`
	Pages     int          `json:"pages"`
}
