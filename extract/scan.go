package extract

import (
	"regexp"
	"strings"
)

// maxLines is the number of lines a watermark has at most.
const maxLines = 4

// positioning matches a "tx ty Td" operator between two string shows.
var positioning = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)\s+[+-]?(?:\d+\.?\d*|\.\d+)\s+Td\s*`)

// scanShows reads the string shows that follow the marker. s starts inside
// the first literal string, right after the marker. The scan stops at the
// first token that is not a string show, optionally preceded by a Td
// operator, or after maxLines non-empty lines. Empty bodies are skipped.
func scanShows(s string) []string {
	body, rest, ok := readShow(s)
	if !ok {
		return nil
	}

	var lines []string
	for {
		if line := strings.TrimSpace(unescape(body)); line != "" {
			lines = append(lines, line)
		}
		if len(lines) == maxLines {
			break
		}
		rest = strings.TrimLeft(rest, whitespace)
		if loc := positioning.FindStringIndex(rest); loc != nil {
			rest = rest[loc[1]:]
		}
		if !strings.HasPrefix(rest, "(") {
			break
		}
		if body, rest, ok = readShow(rest[1:]); !ok {
			break
		}
	}
	return lines
}

const whitespace = " \t\r\n\f\x00"

// readShow reads the body of a literal string up to its closing parenthesis
// and the Tj operator after it. s starts after the opening parenthesis.
// Bodies spanning a line break are rejected.
func readShow(s string) (body, rest string, ok bool) {
	depth := 1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '\r', '\n':
			return "", "", false
		case '(':
			depth++
		case ')':
			depth--
			if depth > 0 {
				continue
			}
			after := strings.TrimLeft(s[i+1:], " \t")
			if !strings.HasPrefix(after, "Tj") {
				return "", "", false
			}
			return s[:i], after[len("Tj"):], true
		}
	}
	return "", "", false
}

// unescape resolves the escape sequences of a PDF literal string body.
func unescape(body string) string {
	if !strings.Contains(body, `\`) {
		return body
	}

	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			b.WriteByte(c)
			continue
		}
		i++
		switch c = body[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '\n':
		case '\r':
			if i+1 < len(body) && body[i+1] == '\n' {
				i++
			}
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := 0
			j := i
			for ; j < len(body) && j < i+3 && body[j] >= '0' && body[j] <= '7'; j++ {
				n = n*8 + int(body[j]-'0')
			}
			b.WriteByte(byte(n))
			i = j - 1
		default:
			// \( \) \\ and unknown escapes stand for the character itself.
			b.WriteByte(c)
		}
	}
	return b.String()
}

// scanLines reads the watermark as physical lines: the rest of the marker
// line is the signer, followed by up to maxLines lines.
func scanLines(s string) []string {
	first, rest, found := strings.Cut(s, "\n")
	if !found {
		return nil
	}

	var lines []string
	if name := strings.TrimSpace(first); name != "" && name != ") Tj" {
		lines = append(lines, name)
	}

	physical := strings.Split(rest, "\n")
	if strings.HasSuffix(rest, "\n") {
		physical = physical[:len(physical)-1]
	}
	for i, line := range physical {
		if i == maxLines {
			break
		}
		line = strings.ReplaceAll(line, ") Tj", "")
		line = strings.ReplaceAll(line, "0 -10 Td (", "")
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
