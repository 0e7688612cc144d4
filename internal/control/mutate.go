package control

// Apply edits col at the document's current row by one step in dir,
// starting from the resolved value and wrapping at the kind's bounds:
// past max wraps to min and below min wraps to max. The write always
// lands in the current row, so editing an inherited cell makes it
// explicit. Returns the new value for feedback encoding.
//
// Apply is a silent no-op when the current row or the addressed column
// does not exist - the cursor may have moved to a shorter track between
// the encoder turn and the commit.
func Apply(doc Document, col Column, dir Direction) (int, bool) {
	row := doc.CurrentRow()
	if row < 0 || row >= doc.Rows() {
		return 0, false
	}
	if _, ok := doc.Value(col, row); !ok {
		return 0, false
	}

	k := col.Kind
	v := Resolve(doc, col, row) + int(dir)
	switch {
	case v > k.Max():
		v = k.Min()
	case v < k.Min():
		v = k.Max()
	}
	if !doc.SetValue(col, row, v) {
		return 0, false
	}

	if k == KindFxAmount && v != k.Sentinel() {
		linkNumber(doc, col, row)
	}
	return v, true
}

// linkNumber keeps "amount without number" cells musically valid: when
// an amount is written over an empty effect number, the nearest prior
// explicit number at the same position is copied forward. When no row
// above carries one the number stays empty.
func linkNumber(doc Document, amount Column, row int) {
	num := Column{Kind: KindFxNumber, Index: amount.Index, Effect: amount.Effect}
	cur, ok := doc.Value(num, row)
	if !ok || cur != num.Kind.Sentinel() {
		return
	}
	if v := Resolve(doc, num, row); v != num.Kind.Sentinel() {
		doc.SetValue(num, row, v)
	}
}
