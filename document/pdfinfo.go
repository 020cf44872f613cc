package document

import (
	"time"
)

// SetModDate records date as /ModDate in the document information
// dictionary, creating the dictionary if the trailer has none.
func (d *Document) SetModDate(date time.Time) error {
	modDate := String(pdfDateTime(date))

	switch info := d.trailer["Info"].(type) {
	case Dict:
		info["ModDate"] = modDate
	case Reference:
		obj, err := d.Get(info.ID())
		if err != nil {
			return err
		}
		dict, ok := obj.(Dict)
		if !ok {
			return nil
		}
		dict["ModDate"] = modDate
		d.Set(info.ID(), dict)
	case nil:
		d.trailer["Info"] = d.Insert(Dict{"ModDate": modDate})
	}
	return nil
}

// Info returns the document information dictionary, or nil if there is none.
func (d *Document) Info() Dict {
	info, _ := d.ResolveDict(d.trailer["Info"])
	return info
}
