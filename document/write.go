package document

import (
	"fmt"
	"io"

	"github.com/mattetti/filebuffer"
)

const pdfHeader = "%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"

type xrefEntry struct {
	ID     ObjectID
	Offset int64
}

// Write serializes the document to w.
//
// A document loaded with Open is written as an incremental update: the
// original bytes unchanged, followed by every inserted or edited object, a
// cross-reference section of the same kind as the original (table or stream)
// and a new trailer. A document created with New is written in full.
func (d *Document) Write(w io.Writer) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Bytes serializes the document and returns the result.
func (d *Document) Bytes() ([]byte, error) {
	out := filebuffer.New([]byte{})
	var err error
	if d.rdr == nil {
		err = d.writeFull(out)
	} else {
		err = d.writeIncremental(out)
	}
	if err != nil {
		return nil, err
	}
	return out.Buff.Bytes(), nil
}

func (d *Document) writeIncremental(out *filebuffer.Buffer) error {
	// Copy old file into new buffer.
	if _, err := io.Copy(out, io.NewSectionReader(d.base, 0, d.size)); err != nil {
		return fmt.Errorf("failed to copy original document: %w", err)
	}

	// File always needs an empty line after %%EOF.
	if _, err := out.Write([]byte("\n")); err != nil {
		return err
	}

	entries, err := d.writeObjects(out)
	if err != nil {
		return err
	}

	switch d.rdr.XrefInformation.Type {
	case "table":
		xrefStart := int64(out.Buff.Len())
		if err := writeIncrXrefTable(out, entries); err != nil {
			return err
		}
		return d.writeTrailer(out, xrefStart)
	case "stream":
		return d.writeXrefStream(out, entries)
	default:
		return fmt.Errorf("unknown xref type: %q", d.rdr.XrefInformation.Type)
	}
}

func (d *Document) writeFull(out *filebuffer.Buffer) error {
	if _, err := out.Write([]byte(pdfHeader)); err != nil {
		return err
	}

	entries, err := d.writeObjects(out)
	if err != nil {
		return err
	}

	xrefStart := int64(out.Buff.Len())
	if err := writeFullXrefTable(out, entries, d.nextNumber); err != nil {
		return err
	}
	return d.writeTrailer(out, xrefStart)
}

func (d *Document) writeObjects(out *filebuffer.Buffer) ([]xrefEntry, error) {
	ids := d.Modified()
	entries := make([]xrefEntry, 0, len(ids))
	for _, id := range ids {
		entry := xrefEntry{ID: id, Offset: int64(out.Buff.Len())}
		if err := writeObject(out, id, d.objects[id]); err != nil {
			return nil, fmt.Errorf("failed to write object %v: %w", id, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func writeObject(w io.Writer, id ObjectID, obj Object) error {
	if _, err := fmt.Fprintf(w, "%d %d obj\n", id.Number, id.Generation); err != nil {
		return err
	}
	if obj == nil {
		obj = Null{}
	}
	if err := obj.PDF(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\nendobj\n")
	return err
}

// sizeEntry is the value of the new trailer's /Size entry.
func (d *Document) sizeEntry() Integer {
	size := int64(d.nextNumber)
	if s, ok := d.trailer["Size"].(Integer); ok && int64(s) > size {
		size = int64(s)
	}
	return Integer(size)
}
