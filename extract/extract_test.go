package extract

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sigillum/sigillum/document"
	"github.com/sigillum/sigillum/watermark"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  *Signature
	}{
		{
			name:  "two lines",
			lines: []string{"Alice", "ts"},
			want:  &Signature{Signer: "Alice", Timestamp: "ts"},
		},
		{
			name:  "three lines with hash",
			lines: []string{"Alice", "ts", "Hash:SHA256: abcd"},
			want:  &Signature{Signer: "Alice", Timestamp: "ts", Hash: Field{"SHA256: abcd", true}},
		},
		{
			name:  "three lines with extra",
			lines: []string{"Alice", "ts", "note"},
			want:  &Signature{Signer: "Alice", Timestamp: "ts", Extra: Field{"note", true}},
		},
		{
			name:  "four lines",
			lines: []string{"Bob", "ts", "dept:legal", "Hash:SHA256: ef01"},
			want:  &Signature{Signer: "Bob", Timestamp: "ts", Extra: Field{"dept:legal", true}, Hash: Field{"SHA256: ef01", true}},
		},
		{
			name:  "four lines with hash at position two",
			lines: []string{"Bob", "ts", "Hash: h1", "trailing"},
			want:  &Signature{Signer: "Bob", Timestamp: "ts", Hash: Field{"h1", true}},
		},
		{
			name:  "four lines without hash prefix",
			lines: []string{"Bob", "ts", "note", "plain"},
			want:  &Signature{Signer: "Bob", Timestamp: "ts", Extra: Field{"note", true}, Hash: Field{"plain", true}},
		},
		{
			name:  "five lines",
			lines: []string{"Bob", "ts", "note", "Hash:Hash:h", "more"},
			want:  &Signature{Signer: "Bob", Timestamp: "ts", Extra: Field{"note", true}, Hash: Field{"h", true}},
		},
		{
			name:  "one line",
			lines: []string{"Alice"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := describe(tt.lines)
			if ok != (tt.want != nil) {
				t.Fatalf("describe() ok = %v, want %v", ok, tt.want != nil)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("describe() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSignatureInfo(t *testing.T) {
	sig := &Signature{Signer: "Alice", Timestamp: "2024-01-01 00:00:00 UTC"}
	want := &Info{
		SignerName: "Alice",
		Timestamp:  "2024-01-01 00:00:00 UTC",
		Extra:      "(none)",
		Signature:  "SHA256: (hash not found)",
	}
	if diff := cmp.Diff(want, sig.Info()); diff != "" {
		t.Errorf("Info() mismatch (-want +got):\n%s", diff)
	}

	data, err := json.Marshal(sig.Info())
	if err != nil {
		t.Fatal(err)
	}
	const wantJSON = `{"signer_name":"Alice","timestamp":"2024-01-01 00:00:00 UTC","extra":"(none)","signature":"SHA256: (hash not found)"}`
	if string(data) != wantJSON {
		t.Errorf("json = %s, want %s", data, wantJSON)
	}
}

// watermarked returns a document of the given page count carrying block.
func watermarked(t *testing.T, pages int, block watermark.Block) []byte {
	t.Helper()

	doc := document.New()
	for range pages {
		if _, err := doc.AddPage(document.Dict{}); err != nil {
			t.Fatal(err)
		}
	}
	if err := watermark.Apply(doc, block.Text()); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	return data
}

func TestExtractScenarios(t *testing.T) {
	tests := []struct {
		name  string
		pages int
		block watermark.Block
		want  Info
	}{
		{
			name:  "alice",
			pages: 1,
			block: watermark.Block{Signer: "Alice", Timestamp: "2024-01-01 00:00:00 UTC", Hash: "SHA256: abcd"},
			want:  Info{"Alice", "2024-01-01 00:00:00 UTC", "(none)", "SHA256: abcd"},
		},
		{
			name:  "bob",
			pages: 1,
			block: watermark.Block{Signer: "Bob", Timestamp: "2024-01-01 00:00:00 UTC", Extra: "dept:legal", Hash: "SHA256: ef01"},
			want:  Info{"Bob", "2024-01-01 00:00:00 UTC", "dept:legal", "SHA256: ef01"},
		},
		{
			name:  "multi page",
			pages: 4,
			block: watermark.Block{Signer: "Carol", Timestamp: "2025-06-30 23:59:59 UTC", Extra: "ref 17", Hash: "SHA256: 0123"},
			want:  Info{"Carol", "2025-06-30 23:59:59 UTC", "ref 17", "SHA256: 0123"},
		},
		{
			name:  "parentheses in name",
			pages: 1,
			block: watermark.Block{Signer: "Dan (CFO)", Timestamp: "2024-01-01 00:00:00 UTC", Hash: "SHA256: 9f"},
			want:  Info{"Dan (CFO)", "2024-01-01 00:00:00 UTC", "(none)", "SHA256: 9f"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig, ok := Extract(watermarked(t, tt.pages, tt.block))
			if !ok {
				t.Fatal("Extract() found no watermark")
			}
			if diff := cmp.Diff(&tt.want, sig.Info()); diff != "" {
				t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtractIncrementalUpdate(t *testing.T) {
	base := document.New()
	if _, err := base.AddPage(document.Dict{"MediaBox": document.Array{
		document.Integer(0), document.Integer(0), document.Integer(595), document.Integer(842),
	}}); err != nil {
		t.Fatal(err)
	}
	orig, err := base.Bytes()
	if err != nil {
		t.Fatal(err)
	}

	doc, err := document.Load(orig)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	block := watermark.Block{Signer: "Alice", Timestamp: "2024-01-01 00:00:00 UTC", Hash: "SHA256: abcd"}
	if err := watermark.Apply(doc, block.Text()); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	if _, ok := Extract(orig); ok {
		t.Error("watermark found before signing")
	}
	sig, ok := Extract(out)
	if !ok {
		t.Fatal("Extract() found no watermark")
	}
	want := &Signature{
		Signer:    "Alice",
		Timestamp: "2024-01-01 00:00:00 UTC",
		Hash:      Field{"SHA256: abcd", true},
	}
	if diff := cmp.Diff(want, sig); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractAbsent(t *testing.T) {
	tests := map[string][]byte{
		"empty":       nil,
		"no marker":   []byte("%PDF-1.7\n1 0 obj\n<< /Type /Catalog >>\nendobj\n%%EOF\n"),
		"marker only": []byte("(Digitally signed by "),
		"noise only":  []byte("(Digitally signed by ) Tj\nBT\nET\n"),
		"wrong case":  []byte("(digitally signed by Alice) Tj"),
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if sig, ok := Extract(raw); ok {
				t.Errorf("Extract() = %+v, want absence", sig)
			}
		})
	}
}

func TestExtractFallback(t *testing.T) {
	raw := []byte("\xff\xfe garbage Digitally signed by Alice\n2024-01-01 00:00:00 UTC\nHash:SHA256: abcd\n\x00\x01")

	sig, ok := Extract(raw)
	if !ok {
		t.Fatal("Extract() found no watermark")
	}
	want := &Info{
		SignerName: "Alice",
		Timestamp:  "2024-01-01 00:00:00 UTC",
		Extra:      "(none)",
		Signature:  "SHA256: abcd",
	}
	if diff := cmp.Diff(want, sig.Info()); diff != "" {
		t.Errorf("Extract() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractSingleLine(t *testing.T) {
	sig, ok := Extract([]byte("BT (Digitally signed by Alice) Tj (2024) Tj ET"))
	if !ok {
		t.Fatal("Extract() found no watermark")
	}
	if sig.Signer != "Alice" || sig.Timestamp != "2024" {
		t.Errorf("Extract() = %+v", sig)
	}
	if sig.Extra.Found || sig.Hash.Found {
		t.Errorf("placeholders expected, got %+v", sig)
	}
}

func BenchmarkExtract(b *testing.B) {
	doc := document.New()
	for range 50 {
		if _, err := doc.AddPage(document.Dict{}); err != nil {
			b.Fatal(err)
		}
	}
	block := watermark.Block{Signer: "Bench", Timestamp: "2024-01-01 00:00:00 UTC", Hash: "SHA256: abcd"}
	if err := watermark.Apply(doc, block.Text()); err != nil {
		b.Fatal(err)
	}
	data, err := doc.Bytes()
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, ok := Extract(data); !ok {
			b.Fatal("no watermark")
		}
	}
}
