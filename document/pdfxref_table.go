package document

import (
	"fmt"
	"io"
)

// writeIncrXrefTable writes the incremental cross-reference table. Entries
// with consecutive object numbers share a subsection.
func writeIncrXrefTable(w io.Writer, entries []xrefEntry) error {
	// Write xref header
	if _, err := io.WriteString(w, "xref\n"); err != nil {
		return fmt.Errorf("failed to write incremental xref header: %w", err)
	}

	for _, section := range subsections(entries) {
		header := fmt.Sprintf("%d %d\n", section[0].ID.Number, len(section))
		if _, err := io.WriteString(w, header); err != nil {
			return fmt.Errorf("failed to write xref subsection header: %w", err)
		}
		for _, entry := range section {
			if err := writeXrefLine(w, entry); err != nil {
				return fmt.Errorf("failed to write incremental xref entry: %w", err)
			}
		}
	}

	return nil
}

// writeFullXrefTable writes a single-section table covering object numbers
// 0 to size-1. Numbers without an entry are marked free.
func writeFullXrefTable(w io.Writer, entries []xrefEntry, size uint32) error {
	byNumber := make(map[uint32]xrefEntry, len(entries))
	for _, entry := range entries {
		byNumber[entry.ID.Number] = entry
	}

	if _, err := fmt.Fprintf(w, "xref\n0 %d\n", size); err != nil {
		return fmt.Errorf("failed to write xref header: %w", err)
	}
	if _, err := io.WriteString(w, "0000000000 65535 f\r\n"); err != nil {
		return err
	}
	for n := uint32(1); n < size; n++ {
		entry, ok := byNumber[n]
		if !ok {
			if _, err := io.WriteString(w, "0000000000 00000 f\r\n"); err != nil {
				return err
			}
			continue
		}
		if err := writeXrefLine(w, entry); err != nil {
			return fmt.Errorf("failed to write xref entry: %w", err)
		}
	}
	return nil
}

func writeXrefLine(w io.Writer, entry xrefEntry) error {
	_, err := fmt.Fprintf(w, "%010d %05d n\r\n", entry.Offset, entry.ID.Generation)
	return err
}

// subsections splits entries, sorted by object number, into runs of
// consecutive numbers.
func subsections(entries []xrefEntry) [][]xrefEntry {
	var sections [][]xrefEntry
	for i, entry := range entries {
		if i == 0 || entry.ID.Number != entries[i-1].ID.Number+1 {
			sections = append(sections, nil)
		}
		last := len(sections) - 1
		sections[last] = append(sections[last], entry)
	}
	return sections
}
