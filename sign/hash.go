package sign

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// ComputeHash returns the value shown on the watermark's hash line: the
// SHA-256 digest of the unsigned document followed by name, timestamp and
// extra.
func ComputeHash(pdf []byte, name, timestamp, extra string) string {
	h := sha256.New()
	h.Write(pdf)
	h.Write([]byte(name))
	h.Write([]byte(timestamp))
	h.Write([]byte(extra))
	return "SHA256: " + hex.EncodeToString(h.Sum(nil))
}

// FormatTimestamp formats date for the watermark's timestamp line.
func FormatTimestamp(date time.Time) string {
	return date.UTC().Format(TimestampLayout)
}
