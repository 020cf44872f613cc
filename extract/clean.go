package extract

import (
	"strings"
)

// noise are content stream fragments that can be left around a recovered line.
var noise = []string{") Tj", "0 -10 Td (", "0 500 Td (", "BT", "ET"}

// Clean strips content stream noise from every line, trims it and drops
// lines that end up empty. Cleaning an already clean slice returns it as is.
func Clean(lines []string) []string {
	var out []string
	for _, line := range lines {
		if line = cleanLine(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func cleanLine(line string) string {
	for {
		cleaned := line
		for _, n := range noise {
			cleaned = strings.ReplaceAll(cleaned, n, "")
		}
		cleaned = strings.TrimSpace(cleaned)
		if cleaned == line {
			return cleaned
		}
		line = cleaned
	}
}
