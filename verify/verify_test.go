package verify

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sigillum/sigillum/document"
	"github.com/sigillum/sigillum/extract"
	"github.com/sigillum/sigillum/watermark"
)

var testBlock = watermark.Block{
	Signer:    "Alice",
	Timestamp: "2024-01-01 00:00:00 UTC",
	Hash:      "SHA256: 0a1b2c3d",
}

// buildPDF returns a document with pages pages. When mark is set every page
// carries testBlock.
func buildPDF(t *testing.T, pages int, mark bool) []byte {
	t.Helper()
	doc := document.New()
	for range pages {
		if _, err := doc.AddPage(document.Dict{}); err != nil {
			t.Fatal(err)
		}
	}
	if mark {
		if err := watermark.Apply(doc, testBlock.Text()); err != nil {
			t.Fatal(err)
		}
	}
	data, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want *Response
	}{
		{
			name: "signed",
			data: buildPDF(t, 3, true),
			want: &Response{
				IsSigned: true,
				SignatureInfo: &extract.Info{
					SignerName: "Alice",
					Timestamp:  "2024-01-01 00:00:00 UTC",
					Extra:      extract.NoExtra,
					Signature:  "SHA256: 0a1b2c3d",
				},
				Message:          MessageSigned,
				Pages:            3,
				WatermarkedPages: 3,
			},
		},
		{
			name: "unsigned",
			data: buildPDF(t, 2, false),
			want: &Response{Message: MessageUnsigned, Pages: 2},
		},
		{
			name: "not a pdf",
			data: []byte("hello world"),
			want: &Response{Message: MessageUnsigned},
		},
		{
			name: "watermark text in a non-pdf",
			data: []byte("(" + watermark.Marker + "Bob) Tj\n0 -10 Td (ts) Tj\n"),
			want: &Response{
				IsSigned: true,
				SignatureInfo: &extract.Info{
					SignerName: "Bob",
					Timestamp:  "ts",
					Extra:      extract.NoExtra,
					Signature:  extract.NoHash,
				},
				Message: MessageSigned,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Verify(tt.data)
			got.DocumentInfo = nil
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Verify() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVerifyJSON(t *testing.T) {
	data, err := json.Marshal(Verify(buildPDF(t, 1, false)))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"is_signed":false,"signature_info":null,"message":"PDF does not contain a digital signature","pages":1,"watermarked_pages":0}`
	if string(data) != want {
		t.Errorf("JSON = %s\nwant %s", data, want)
	}
}

func TestVerifyDocumentInfo(t *testing.T) {
	doc := document.New()
	if _, err := doc.AddPage(document.Dict{}); err != nil {
		t.Fatal(err)
	}
	modDate := time.Date(2024, 3, 1, 12, 30, 0, 0, time.FixedZone("", -5*3600))
	if err := doc.SetModDate(modDate); err != nil {
		t.Fatal(err)
	}
	ref := doc.Trailer()["Info"].(document.Reference)
	obj, err := doc.Get(ref.ID())
	if err != nil {
		t.Fatal(err)
	}
	info := obj.(document.Dict)
	info["Title"] = document.String("Quarterly report")
	info["Keywords"] = document.String("finance, q1")
	doc.Set(ref.ID(), info)

	data, err := doc.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	got := Verify(data).DocumentInfo
	if got == nil {
		t.Fatal("DocumentInfo is nil")
	}
	if got.Title != "Quarterly report" {
		t.Errorf("Title = %q", got.Title)
	}
	if diff := cmp.Diff([]string{"finance", "q1"}, got.Keywords); diff != "" {
		t.Errorf("Keywords mismatch (-want +got):\n%s", diff)
	}
	if got.ModDate == nil || !got.ModDate.Equal(modDate) {
		t.Errorf("ModDate = %v, want %v", got.ModDate, modDate)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"D:20240101010000+01'00'", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"D:20240101010000+01'00", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"D:20240101000000Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"D:20240101000000Z00'00'", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"D:20240101000000", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"D:2024", time.Time{}, true},
		{"", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseDate(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseKeywords(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b, c", []string{"a", "b", "c"}},
		{"a;b", []string{"a", "b"}},
		{"a b", []string{"a", "b"}},
		{"single", []string{"single"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, parseKeywords(tt.in)); diff != "" {
			t.Errorf("parseKeywords(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestVerifyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signed.pdf")
	if err := os.WriteFile(path, buildPDF(t, 1, true), 0o644); err != nil {
		t.Fatal(err)
	}
	resp, err := VerifyFile(path)
	if err != nil {
		t.Fatalf("VerifyFile failed: %v", err)
	}
	if !resp.IsSigned || resp.WatermarkedPages != 1 {
		t.Errorf("VerifyFile() = %+v", resp)
	}

	if _, err := VerifyFile(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("VerifyFile succeeded on a missing file")
	}
}
