// Package document holds a PDF object graph as an arena of objects indexed by
// object id.
//
// A Document is either created empty with New or loaded from an existing file
// with Open. Loaded objects are converted from the file on first access.
// Objects are edited by taking a copy with Get, changing it, and committing it
// with Set; new objects are added with Insert. Write serializes the result,
// as an incremental update when the document was loaded from a file.
//
// A Document is not safe for concurrent use.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	pdflib "github.com/digitorus/pdf"
)

var (
	// ErrObjectNotFound is returned when an object id cannot be dereferenced.
	ErrObjectNotFound = errors.New("object not found")

	// ErrMalformedPageTree is returned when the catalog or page tree is not
	// shaped as a PDF page tree.
	ErrMalformedPageTree = errors.New("malformed page tree")

	// ErrEncrypted is returned by Open for encrypted documents.
	ErrEncrypted = errors.New("encrypted documents are not supported")
)

// Document is a PDF object graph.
type Document struct {
	base io.ReaderAt
	size int64
	rdr  *pdflib.Reader

	// values are objects of the base file discovered while converting,
	// objects are the ones inserted or edited since.
	values  map[ObjectID]pdflib.Value
	objects map[ObjectID]Object

	trailer    Dict
	nextNumber uint32
}

// New returns an empty document with a catalog and an empty page tree.
func New() *Document {
	d := &Document{
		values:     make(map[ObjectID]pdflib.Value),
		objects:    make(map[ObjectID]Object),
		nextNumber: 1,
	}
	pages := d.Insert(Dict{
		"Type":  Name("Pages"),
		"Kids":  Array{},
		"Count": Integer(0),
	})
	catalog := d.Insert(Dict{
		"Type":  Name("Catalog"),
		"Pages": pages,
	})
	d.trailer = Dict{"Root": catalog}
	return d
}

// Open loads a document from an io.ReaderAt (e.g., an open file or memory buffer).
// The size parameter must be the total size of the PDF in bytes.
func Open(r io.ReaderAt, size int64) (doc *Document, err error) {
	// digitorus/pdf panics on some malformed files.
	defer func() {
		if p := recover(); p != nil {
			doc = nil
			err = fmt.Errorf("failed to open PDF: %v", p)
		}
	}()

	rdr, err := pdflib.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	d := &Document{
		base:    r,
		size:    size,
		rdr:     rdr,
		values:  make(map[ObjectID]pdflib.Value),
		objects: make(map[ObjectID]Object),
	}

	tv := rdr.Trailer()
	if tv.Kind() != pdflib.Dict && tv.Kind() != pdflib.Stream {
		return nil, errors.New("failed to open PDF: trailer is not a dictionary")
	}
	// Cross-reference streams carry the trailer entries in their dictionary.
	trailer := d.convertDict(tv, idOf(tv))
	delete(trailer, "Type")
	delete(trailer, "W")
	delete(trailer, "Index")
	delete(trailer, "Filter")
	delete(trailer, "DecodeParms")
	delete(trailer, "Length")
	if _, ok := trailer["Encrypt"]; ok {
		return nil, ErrEncrypted
	}
	d.trailer = trailer

	next := rdr.XrefInformation.ItemCount
	if s, ok := trailer["Size"].(Integer); ok && int64(s) > next {
		next = int64(s)
	}
	if next < 1 {
		next = 1
	}
	d.nextNumber = uint32(next)

	return d, nil
}

// Load is a convenience method to load a document held in memory.
func Load(data []byte) (*Document, error) {
	return Open(bytes.NewReader(data), int64(len(data)))
}

// OpenFile loads a document from a file on disk. The whole file is read into
// memory so the caller may overwrite it afterwards.
func OpenFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Load(data)
}

// Get returns a copy of the object with the given id.
func (d *Document) Get(id ObjectID) (obj Object, err error) {
	if o, ok := d.objects[id]; ok {
		return Clone(o), nil
	}
	v, ok := d.values[id]
	if !ok {
		return nil, fmt.Errorf("object %v: %w", id, ErrObjectNotFound)
	}

	defer func() {
		if p := recover(); p != nil {
			obj = nil
			err = fmt.Errorf("object %v: %v", id, p)
		}
	}()
	obj = d.convert(v, id)
	if _, ok := obj.(Null); ok {
		return nil, fmt.Errorf("object %v: %w", id, ErrObjectNotFound)
	}
	return obj, nil
}

// Resolve follows references until it reaches a direct object.
func (d *Document) Resolve(obj Object) (Object, error) {
	for range 32 {
		ref, ok := obj.(Reference)
		if !ok {
			return obj, nil
		}
		var err error
		obj, err = d.Get(ref.ID())
		if err != nil {
			return nil, err
		}
	}
	return nil, errors.New("reference chain too long")
}

// ResolveDict resolves obj and returns it if it is a dictionary.
func (d *Document) ResolveDict(obj Object) (Dict, bool) {
	obj, err := d.Resolve(obj)
	if err != nil {
		return nil, false
	}
	dict, ok := obj.(Dict)
	return dict, ok
}

// Set stores obj under id, replacing any previous object.
func (d *Document) Set(id ObjectID, obj Object) {
	d.objects[id] = Clone(obj)
	if id.Number >= d.nextNumber {
		d.nextNumber = id.Number + 1
	}
}

// Insert adds obj as a new indirect object and returns a reference to it.
func (d *Document) Insert(obj Object) Reference {
	id := ObjectID{Number: d.nextNumber}
	d.nextNumber++
	d.objects[id] = Clone(obj)
	return Reference(id)
}

// Trailer returns a copy of the trailer dictionary.
func (d *Document) Trailer() Dict {
	return Clone(d.trailer).(Dict)
}

// Modified returns the ids of all inserted or edited objects in ascending order.
func (d *Document) Modified() []ObjectID {
	ids := make([]ObjectID, 0, len(d.objects))
	for id := range d.objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Number != ids[j].Number {
			return ids[i].Number < ids[j].Number
		}
		return ids[i].Generation < ids[j].Generation
	})
	return ids
}

// convert turns a value read by digitorus/pdf into an arena object. Values
// that belong to another indirect object than owner become references and are
// remembered so Get can resolve them later.
func (d *Document) convert(v pdflib.Value, owner ObjectID) Object {
	if id := idOf(v); id.Number != 0 && id != owner {
		if _, ok := d.values[id]; !ok {
			d.values[id] = v
		}
		return Reference(id)
	}

	switch v.Kind() {
	case pdflib.Bool:
		return Bool(v.Bool())
	case pdflib.Integer:
		return Integer(v.Int64())
	case pdflib.Real:
		return Real(v.Float64())
	case pdflib.String:
		return String(v.RawString())
	case pdflib.Name:
		return Name(v.Name())
	case pdflib.Array:
		arr := make(Array, v.Len())
		for i := range arr {
			arr[i] = d.convert(v.Index(i), owner)
		}
		return arr
	case pdflib.Dict:
		return d.convertDict(v, owner)
	case pdflib.Stream:
		dict := d.convertDict(v, owner)
		delete(dict, "Filter")
		delete(dict, "DecodeParms")
		delete(dict, "Length")
		rc := v.Reader()
		defer func() { _ = rc.Close() }()
		data, err := io.ReadAll(rc)
		if err != nil {
			panic(fmt.Sprintf("failed to decode stream: %v", err))
		}
		return Stream{Dict: dict, Data: data}
	}
	return Null{}
}

func (d *Document) convertDict(v pdflib.Value, owner ObjectID) Dict {
	keys := v.Keys()
	dict := make(Dict, len(keys))
	for _, key := range keys {
		val := v.Key(key)
		if val.Kind() == pdflib.Null && idOf(val).Number == 0 {
			continue
		}
		dict[Name(key)] = d.convert(val, owner)
	}
	return dict
}

func idOf(v pdflib.Value) ObjectID {
	ptr := v.GetPtr()
	return ObjectID{Number: ptr.GetID(), Generation: ptr.GetGen()}
}
