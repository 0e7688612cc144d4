package control

// Resolve returns the effective value of col at row: the raw value when
// one is written there, otherwise the nearest non-empty value in an
// earlier row, otherwise the kind's fallback. This is the value feedback
// shows and editing starts from, so nudging an inherited cell writes an
// explicit value next to its ancestor instead of next to the sentinel.
func Resolve(doc Document, col Column, row int) int {
	sentinel := col.Kind.Sentinel()
	if v, ok := doc.Value(col, row); ok && v != sentinel {
		return v
	}
	for r := row - 1; r >= 0; r-- {
		if v, ok := doc.Value(col, r); ok && v != sentinel {
			return v
		}
	}
	return col.Kind.Fallback()
}

// Present reports whether col has an explicitly written value at row.
// Inherited values do not count: a cell showing its ancestor's value
// still reads as not present.
func Present(doc Document, col Column, row int) bool {
	v, ok := doc.Value(col, row)
	return ok && v != col.Kind.Sentinel()
}
