package stylesheet

import "bytes"

// Bytes renders the stylesheet. The output is the original source with the
// value of every modified declaration spliced in; all other bytes are kept,
// so an unmodified sheet renders identically to its input.
func (r *Root) Bytes() []byte {
	var edits []*Declaration
	r.WalkDecls("", func(d *Declaration) bool {
		if d.Modified() && !d.value.detached() {
			edits = append(edits, d)
		}
		return true
	})
	if len(edits) == 0 {
		return append([]byte(nil), r.src...)
	}

	var buf bytes.Buffer
	buf.Grow(len(r.src) + 16*len(edits))
	last := 0
	for _, d := range edits {
		// Document order matches source order, but guard against overlaps.
		start, end := d.value.start.Offset, d.value.end.Offset
		if start < last {
			continue
		}
		buf.Write(r.src[last:start])
		buf.WriteString(d.Value)
		last = end
	}
	buf.Write(r.src[last:])
	return buf.Bytes()
}

// String renders the stylesheet as a string.
func (r *Root) String() string {
	return string(r.Bytes())
}

// Modified reports whether any declaration value differs from the source.
func (r *Root) Modified() bool {
	return !r.WalkDecls("", func(d *Declaration) bool {
		return !d.Modified()
	})
}
