package document

import (
	"fmt"
	"io"
)

// trailerDict builds the trailer for the section being written. Root, Info
// and ID carry over from the current trailer.
func (d *Document) trailerDict() Dict {
	trailer := Dict{"Size": d.sizeEntry()}
	for _, key := range []Name{"Root", "Info", "ID"} {
		if v, ok := d.trailer[key]; ok {
			trailer[key] = v
		}
	}
	if d.rdr != nil {
		trailer["Prev"] = Integer(d.rdr.XrefInformation.StartPos)
	}
	return trailer
}

func (d *Document) writeTrailer(w io.Writer, xrefStart int64) error {
	if _, err := io.WriteString(w, "trailer\n"); err != nil {
		return err
	}
	if err := d.trailerDict().PDF(w); err != nil {
		return fmt.Errorf("failed to write trailer: %w", err)
	}
	return writeStartXref(w, xrefStart)
}

func writeStartXref(w io.Writer, xrefStart int64) error {
	// Write the new xref start position and the PDF ending.
	_, err := fmt.Fprintf(w, "\nstartxref\n%d\n%%%%EOF\n", xrefStart)
	return err
}
