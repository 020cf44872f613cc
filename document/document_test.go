package document

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	pdflib "github.com/digitorus/pdf"
	"github.com/google/go-cmp/cmp"
)

// buildPDF writes a fresh document with one page per media box.
func buildPDF(t *testing.T, boxes ...Array) []byte {
	t.Helper()

	doc := New()
	for _, box := range boxes {
		page := Dict{}
		if box != nil {
			page["MediaBox"] = box
		}
		if _, err := doc.AddPage(page); err != nil {
			t.Fatalf("AddPage failed: %v", err)
		}
	}
	data, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	return data
}

func TestWriteFull(t *testing.T) {
	data := buildPDF(t,
		Array{Integer(0), Integer(0), Integer(612), Integer(792)},
		Array{Integer(0), Integer(0), Real(595.5), Real(842.25)},
	)

	if !bytes.HasPrefix(data, []byte("%PDF-1.7\n")) {
		t.Errorf("missing header: %q", data[:20])
	}
	if !bytes.HasSuffix(data, []byte("%%EOF\n")) {
		t.Errorf("missing %%%%EOF trailer")
	}

	rdr, err := pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("digitorus/pdf cannot read output: %v", err)
	}
	if got := rdr.NumPage(); got != 2 {
		t.Errorf("NumPage() = %d, want 2", got)
	}

	doc, err := Load(data)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	pages, err := doc.Pages()
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}

	page, ok := doc.ResolveDict(Reference(pages[1]))
	if !ok {
		t.Fatalf("page %v is not a dictionary", pages[1])
	}
	want := [4]float64{0, 0, 595.5, 842.25}
	if got := doc.MediaBox(page); got != want {
		t.Errorf("MediaBox() = %v, want %v", got, want)
	}
}

func TestWriteIncremental(t *testing.T) {
	orig := buildPDF(t, Array{Integer(0), Integer(0), Integer(200), Integer(300)})

	doc, err := Load(orig)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	pages, err := doc.Pages()
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}

	obj, err := doc.Get(pages[0])
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	page := obj.(Dict)
	added := doc.Insert(Stream{Dict: Dict{}, Data: []byte("q Q")})
	page["Contents"] = added
	doc.Set(pages[0], page)

	out, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}

	if !bytes.HasPrefix(out, orig) {
		t.Fatal("incremental update does not start with the original bytes")
	}
	if n := strings.Count(string(out), "%%EOF"); n != 2 {
		t.Errorf("found %d %%%%EOF markers, want 2", n)
	}

	reloaded, err := Load(out)
	if err != nil {
		t.Fatalf("Load of updated document failed: %v", err)
	}
	pages, err = reloaded.Pages()
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(pages))
	}
	page, ok := reloaded.ResolveDict(Reference(pages[0]))
	if !ok {
		t.Fatal("page is not a dictionary")
	}
	if got := reloaded.MediaBox(page); got != [4]float64{0, 0, 200, 300} {
		t.Errorf("MediaBox() = %v after update", got)
	}

	contents, err := reloaded.Resolve(page["Contents"])
	if err != nil {
		t.Fatalf("Resolve contents failed: %v", err)
	}
	stream, ok := contents.(Stream)
	if !ok {
		t.Fatalf("contents is %T, want Stream", contents)
	}
	if string(stream.Data) != "q Q" {
		t.Errorf("contents = %q, want %q", stream.Data, "q Q")
	}
}

func TestWriteTwice(t *testing.T) {
	orig := buildPDF(t, nil)
	doc, err := Load(orig)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	doc.Insert(Integer(1))

	first, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	second, err := doc.Bytes()
	if err != nil {
		t.Fatalf("Bytes failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("serializing twice gave different output")
	}
}

func TestGetMissing(t *testing.T) {
	doc := New()
	_, err := doc.Get(ObjectID{Number: 99})
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("Get(99) error = %v, want ErrObjectNotFound", err)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	doc := New()
	ref := doc.Insert(Dict{"A": Integer(1)})

	obj, err := doc.Get(ref.ID())
	if err != nil {
		t.Fatal(err)
	}
	obj.(Dict)["A"] = Integer(2)

	again, err := doc.Get(ref.ID())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Dict{"A": Integer(1)}, again); diff != "" {
		t.Errorf("stored object changed without Set (-want +got):\n%s", diff)
	}
}

func TestOpenInvalid(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte("not a pdf"),
		[]byte("%PDF-1.7\n1 0 obj\n<<\nendobj\n%%EOF\n"),
	} {
		if _, err := Load(data); err == nil {
			t.Errorf("Load(%q) succeeded, want error", data)
		}
	}
}

func TestSetModDate(t *testing.T) {
	doc := New()
	date := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	if err := doc.SetModDate(date); err != nil {
		t.Fatalf("SetModDate failed: %v", err)
	}

	info := doc.Info()
	if info == nil {
		t.Fatal("SetModDate did not create an information dictionary")
	}
	want := String("D:20240501123000+00'00'")
	if diff := cmp.Diff(want, info["ModDate"]); diff != "" {
		t.Errorf("ModDate mismatch (-want +got):\n%s", diff)
	}

	later := date.Add(time.Hour)
	if err := doc.SetModDate(later); err != nil {
		t.Fatalf("SetModDate failed: %v", err)
	}
	if got := doc.Info()["ModDate"]; string(got.(String)) != "D:20240501133000+00'00'" {
		t.Errorf("ModDate = %s after update", got)
	}
}

func TestPdfDateTime(t *testing.T) {
	zone := time.FixedZone("test", -(5*3600 + 30*60))
	date := time.Date(2023, 12, 31, 23, 59, 58, 0, zone)
	if got, want := pdfDateTime(date), "D:20231231235958-05'30'"; got != want {
		t.Errorf("pdfDateTime() = %q, want %q", got, want)
	}
}
