package document

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
)

// Object is a PDF object held by a Document. The native PDF types Null, Bool,
// Integer, Real, String, Name, Array, Dict, Stream and Reference implement it.
type Object interface {
	// PDF writes the file representation of the object to w.
	PDF(w io.Writer) error
}

// ObjectID identifies an indirect object by number and generation.
type ObjectID struct {
	Number     uint32
	Generation uint16
}

func (id ObjectID) String() string {
	return fmt.Sprintf("%d %d", id.Number, id.Generation)
}

// Reference points at an indirect object.
type Reference ObjectID

// ID returns the referenced object id.
func (r Reference) ID() ObjectID {
	return ObjectID(r)
}

// PDF implements the Object interface.
func (r Reference) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %d R", r.Number, r.Generation)
	return err
}

// Null is the PDF null object.
type Null struct{}

// PDF implements the Object interface.
func (Null) PDF(w io.Writer) error {
	_, err := io.WriteString(w, "null")
	return err
}

// Bool is a PDF boolean.
type Bool bool

// PDF implements the Object interface.
func (b Bool) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatBool(bool(b)))
	return err
}

// Integer is a PDF integer.
type Integer int64

// PDF implements the Object interface.
func (i Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(i), 10))
	return err
}

// Real is a PDF real number.
type Real float64

// PDF implements the Object interface.
func (r Real) PDF(w io.Writer) error {
	_, err := io.WriteString(w, formatNumber(float64(r)))
	return err
}

// String is a raw PDF string. Its character encoding depends on the context.
type String []byte

// PDF implements the Object interface.
func (s String) PDF(w io.Writer) error {
	printable := true
	for _, c := range s {
		if c < 0x20 || c > 0x7e {
			printable = false
			break
		}
	}
	if !printable {
		_, err := fmt.Fprintf(w, "<%X>", []byte(s))
		return err
	}
	_, err := io.WriteString(w, "("+escapeLiteral(string(s))+")")
	return err
}

// Name is a PDF name, stored without the leading solidus.
type Name string

// PDF implements the Object interface.
func (n Name) PDF(w io.Writer) error {
	var buf bytes.Buffer
	buf.WriteByte('/')
	for _, c := range []byte(n) {
		if c < 0x21 || c > 0x7e || c == '#' || isDelimiter(c) {
			fmt.Fprintf(&buf, "#%02x", c)
			continue
		}
		buf.WriteByte(c)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Array is a PDF array.
type Array []Object

// PDF implements the Object interface.
func (a Array) PDF(w io.Writer) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, v := range a {
		if i > 0 {
			if _, err := io.WriteString(w, " "); err != nil {
				return err
			}
		}
		if v == nil {
			v = Null{}
		}
		if err := v.PDF(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

// Dict is a PDF dictionary.
type Dict map[Name]Object

// PDF implements the Object interface. Keys are written in sorted order.
func (d Dict) PDF(w io.Writer) error {
	keys := make([]Name, 0, len(d))
	for k, v := range d {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	if _, err := io.WriteString(w, "<<"); err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := k.PDF(w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, " "); err != nil {
			return err
		}
		if err := d[k].PDF(w); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, " >>")
	return err
}

// Name returns the name stored under key, or "" if there is none.
func (d Dict) Name(key Name) Name {
	n, _ := d[key].(Name)
	return n
}

// Stream is a PDF stream. Data is written unfiltered unless Dict names a
// filter the data was already encoded with; /Length is always recomputed.
type Stream struct {
	Dict Dict
	Data []byte
}

// PDF implements the Object interface.
func (s Stream) PDF(w io.Writer) error {
	dict := make(Dict, len(s.Dict)+1)
	for k, v := range s.Dict {
		dict[k] = v
	}
	dict["Length"] = Integer(len(s.Data))
	if err := dict.PDF(w); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\nstream\n"); err != nil {
		return err
	}
	if _, err := w.Write(s.Data); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\nendstream")
	return err
}

// Clone returns a deep copy of obj. Scalars are returned as is.
func Clone(obj Object) Object {
	switch o := obj.(type) {
	case Dict:
		c := make(Dict, len(o))
		for k, v := range o {
			c[k] = Clone(v)
		}
		return c
	case Array:
		c := make(Array, len(o))
		for i, v := range o {
			c[i] = Clone(v)
		}
		return c
	case String:
		return append(String(nil), o...)
	case Stream:
		return Stream{
			Dict: Clone(o.Dict).(Dict),
			Data: append([]byte(nil), o.Data...),
		}
	default:
		return obj
	}
}

// Number returns the numeric value of an Integer or Real.
func Number(obj Object) (float64, bool) {
	switch n := obj.(type) {
	case Integer:
		return float64(n), true
	case Real:
		return float64(n), true
	}
	return 0, false
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
