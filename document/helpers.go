package document

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatNumber writes f in the shortest form a content stream accepts:
// integral values without a fraction, others without trailing zeros.
func FormatNumber(f float64) string {
	return formatNumber(f)
}

func formatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// EscapeLiteral escapes text for use inside a PDF literal string.
func EscapeLiteral(text string) string {
	return escapeLiteral(text)
}

func escapeLiteral(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, ")", "\\)")
	text = strings.ReplaceAll(text, "(", "\\(")
	text = strings.ReplaceAll(text, "\r", "\\r")
	return text
}

// pdfDateTime formats date as a PDF date string, e.g. D:20240101000000+00'00'.
func pdfDateTime(date time.Time) string {
	// Calculate timezone offset from GMT.
	_, originalOffset := date.Zone()
	offset := originalOffset
	if offset < 0 {
		offset = -offset
	}

	offsetDuration := time.Duration(offset) * time.Second
	offsetHours := int(math.Floor(offsetDuration.Hours()))
	offsetMinutes := int(math.Floor(offsetDuration.Minutes())) - offsetHours*60

	dateString := "D:" + date.Format("20060102150405")

	// The PDF timezone format isn't supported by Go.
	if originalOffset < 0 {
		dateString += "-"
	} else {
		dateString += "+"
	}

	hours := fmt.Sprintf("%d", offsetHours)
	minutes := fmt.Sprintf("%d", offsetMinutes)
	dateString += leftPad(hours, "0", 2-len(hours)) + "'" + leftPad(minutes, "0", 2-len(minutes)) + "'"

	return dateString
}

func leftPad(s string, padStr string, pLen int) string {
	if pLen <= 0 {
		return s
	}
	return strings.Repeat(padStr, pLen) + s
}
