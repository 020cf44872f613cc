package document

import (
	"fmt"
)

// Letter is the US Letter media box used when a page has no usable MediaBox.
var Letter = [4]float64{0, 0, 612, 792}

// Pages returns the ids of all pages in document order.
//
// A page tree node or leaf that cannot be dereferenced is an error wrapping
// ErrObjectNotFound; a tree that is not shaped as a page tree is an error
// wrapping ErrMalformedPageTree.
func (d *Document) Pages() ([]ObjectID, error) {
	catalog, ok := d.ResolveDict(d.trailer["Root"])
	if !ok {
		return nil, fmt.Errorf("%w: missing document catalog", ErrMalformedPageTree)
	}
	root, ok := catalog["Pages"].(Reference)
	if !ok {
		return nil, fmt.Errorf("%w: catalog has no /Pages reference", ErrMalformedPageTree)
	}

	var pages []ObjectID
	visited := make(map[ObjectID]bool)

	var walk func(id ObjectID) error
	walk = func(id ObjectID) error {
		if visited[id] {
			return fmt.Errorf("%w: node %v visited twice", ErrMalformedPageTree, id)
		}
		visited[id] = true

		obj, err := d.Get(id)
		if err != nil {
			return fmt.Errorf("page tree node: %w", err)
		}
		node, ok := obj.(Dict)
		if !ok {
			// Leaves are validated by the caller.
			pages = append(pages, id)
			return nil
		}

		kids, hasKids := node["Kids"]
		if node.Name("Type") != "Pages" && (node.Name("Type") != "" || !hasKids) {
			pages = append(pages, id)
			return nil
		}

		resolved, err := d.Resolve(kids)
		if err != nil {
			return fmt.Errorf("kids of page tree node %v: %w", id, err)
		}
		arr, ok := resolved.(Array)
		if !ok {
			return fmt.Errorf("%w: /Kids of node %v is not an array", ErrMalformedPageTree, id)
		}
		for i, kid := range arr {
			ref, ok := kid.(Reference)
			if !ok {
				return fmt.Errorf("%w: kid %d of node %v is not a reference", ErrMalformedPageTree, i, id)
			}
			if err := walk(ref.ID()); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(root.ID()); err != nil {
		return nil, err
	}
	return pages, nil
}

// Inherited looks up an inheritable page attribute such as MediaBox or
// Resources, following /Parent links up the page tree.
func (d *Document) Inherited(page Dict, key Name) (Object, bool) {
	node := page
	for range 64 {
		if v, ok := node[key]; ok {
			return v, true
		}
		parent, ok := d.ResolveDict(node["Parent"])
		if !ok {
			return nil, false
		}
		node = parent
	}
	return nil, false
}

// MediaBox returns the page's media box. A missing box, one with fewer than
// four entries, or one with non-numeric entries yields Letter.
func (d *Document) MediaBox(page Dict) [4]float64 {
	obj, ok := d.Inherited(page, "MediaBox")
	if !ok {
		return Letter
	}
	resolved, err := d.Resolve(obj)
	if err != nil {
		return Letter
	}
	arr, ok := resolved.(Array)
	if !ok || len(arr) < 4 {
		return Letter
	}

	var box [4]float64
	for i := range box {
		entry, err := d.Resolve(arr[i])
		if err != nil {
			return Letter
		}
		n, ok := Number(entry)
		if !ok {
			return Letter
		}
		box[i] = n
	}
	return box
}

// AddPage appends page to the root page tree node and returns its reference.
// /Type and /Parent are set on the page.
func (d *Document) AddPage(page Dict) (Reference, error) {
	catalog, ok := d.ResolveDict(d.trailer["Root"])
	if !ok {
		return Reference{}, fmt.Errorf("%w: missing document catalog", ErrMalformedPageTree)
	}
	rootRef, ok := catalog["Pages"].(Reference)
	if !ok {
		return Reference{}, fmt.Errorf("%w: catalog has no /Pages reference", ErrMalformedPageTree)
	}
	obj, err := d.Get(rootRef.ID())
	if err != nil {
		return Reference{}, err
	}
	root, ok := obj.(Dict)
	if !ok {
		return Reference{}, fmt.Errorf("%w: root node is %T", ErrMalformedPageTree, obj)
	}

	page = Clone(page).(Dict)
	page["Type"] = Name("Page")
	page["Parent"] = rootRef
	ref := d.Insert(page)

	kids, _ := d.Resolve(root["Kids"])
	arr, _ := kids.(Array)
	root["Kids"] = append(arr, ref)
	count, _ := root["Count"].(Integer)
	root["Count"] = count + 1
	d.Set(rootRef.ID(), root)

	return ref, nil
}
