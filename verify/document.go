package verify

import (
	"fmt"
	"strings"
	"time"

	pdflib "github.com/digitorus/pdf"
)

// DocumentInfo holds the entries of the document information dictionary.
type DocumentInfo struct {
	Title    string   `json:"title,omitempty"`
	Author   string   `json:"author,omitempty"`
	Subject  string   `json:"subject,omitempty"`
	Creator  string   `json:"creator,omitempty"`
	Producer string   `json:"producer,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	CreationDate *time.Time `json:"creation_date,omitempty"`
	ModDate      *time.Time `json:"mod_date,omitempty"`
}

// parseDocumentInfo reads the trailer's /Info dictionary. It returns nil
// when there is none.
func parseDocumentInfo(r *pdflib.Reader) (info *DocumentInfo) {
	defer func() {
		if p := recover(); p != nil {
			info = nil
		}
	}()

	v := r.Trailer().Key("Info")
	if v.Kind() != pdflib.Dict {
		return nil
	}

	info = &DocumentInfo{
		Title:    v.Key("Title").Text(),
		Author:   v.Key("Author").Text(),
		Subject:  v.Key("Subject").Text(),
		Creator:  v.Key("Creator").Text(),
		Producer: v.Key("Producer").Text(),
	}
	if kw := v.Key("Keywords").Text(); kw != "" {
		info.Keywords = parseKeywords(kw)
	}
	if t, err := parseDate(v.Key("CreationDate").Text()); err == nil {
		info.CreationDate = &t
	}
	if t, err := parseDate(v.Key("ModDate").Text()); err == nil {
		info.ModDate = &t
	}
	return info
}

// parseDate parses a PDF date, (D:YYYYMMDDHHmmSSOHH'mm'). The trailing
// apostrophe is optional and a missing offset or a Z means UTC.
func parseDate(v string) (time.Time, error) {
	const layout = "D:20060102150405"
	if len(v) < len(layout) {
		return time.Time{}, fmt.Errorf("invalid PDF date %q", v)
	}
	switch strings.TrimSuffix(v[len(layout):], "'") {
	case "", "Z", "Z00'00":
		return time.Parse(layout, v[:len(layout)])
	}
	return time.Parse(layout+"-07'00", strings.TrimSuffix(v, "'"))
}

// parseKeywords splits the keywords entry. Producers separate keywords by
// commas, semicolons or spaces.
func parseKeywords(value string) []string {
	separators := []string{", ", "; ", ",", ";", " "}
	for _, s := range separators {
		if strings.Contains(value, s) {
			var out []string
			for _, kw := range strings.Split(value, s) {
				if kw = strings.TrimSpace(kw); kw != "" {
					out = append(out, kw)
				}
			}
			return out
		}
	}
	return []string{value}
}
