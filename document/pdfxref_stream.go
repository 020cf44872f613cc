package document

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/mattetti/filebuffer"
)

const (
	xrefStreamColumns = 7 // 1 byte type + 4 bytes offset + 2 bytes generation
	xrefEntryInUse    = 1
)

// writeXrefStream writes the cross-reference stream for an incremental
// update of a document whose last section is itself a stream. The stream
// object takes the next free object number and lists itself.
func (d *Document) writeXrefStream(out *filebuffer.Buffer, entries []xrefEntry) error {
	xrefStart := int64(out.Buff.Len())
	self := xrefEntry{ID: ObjectID{Number: d.nextNumber}, Offset: xrefStart}
	entries = append(append([]xrefEntry(nil), entries...), self)

	data, err := encodeXrefStream(entries)
	if err != nil {
		return err
	}

	dict := d.trailerDict()
	dict["Size"] = Integer(self.ID.Number + 1)
	if size := d.sizeEntry(); int64(size) > int64(self.ID.Number+1) {
		dict["Size"] = size
	}
	dict["Type"] = Name("XRef")
	dict["W"] = Array{Integer(1), Integer(4), Integer(2)}
	dict["Filter"] = Name("FlateDecode")

	var index Array
	for _, section := range subsections(entries) {
		index = append(index, Integer(section[0].ID.Number), Integer(len(section)))
	}
	dict["Index"] = index

	if err := writeObject(out, self.ID, Stream{Dict: dict, Data: data}); err != nil {
		return fmt.Errorf("failed to write xref stream: %w", err)
	}

	_, err = fmt.Fprintf(out, "startxref\n%d\n%%%%EOF\n", xrefStart)
	return err
}

// encodeXrefStream compresses the binary entries of a cross-reference stream.
func encodeXrefStream(entries []xrefEntry) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	for _, entry := range entries {
		if err := writeXrefStreamLine(zw, entry); err != nil {
			return nil, fmt.Errorf("failed to write xref stream line: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close xref stream writer: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXrefStreamLine(w io.Writer, entry xrefEntry) error {
	line := make([]byte, xrefStreamColumns)
	line[0] = xrefEntryInUse
	binary.BigEndian.PutUint32(line[1:5], uint32(entry.Offset))
	binary.BigEndian.PutUint16(line[5:7], entry.ID.Generation)
	_, err := w.Write(line)
	return err
}
