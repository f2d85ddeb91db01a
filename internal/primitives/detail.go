package primitives

import "maps"

// Detail is the free-form metadata attached to marks, measures and events.
// Treat a Detail as read-only once it has been handed to a recorder.
type Detail map[string]any

// Clone returns a shallow copy. A nil Detail clones to an empty one.
func (d Detail) Clone() Detail {
	out := make(Detail, len(d))
	maps.Copy(out, d)
	return out
}

// String returns the value for key when it is a string.
func (d Detail) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// Merge copies base and every overlay into a fresh Detail. Later keys win,
// matching object spread order.
func Merge(base Detail, overlays ...Detail) Detail {
	size := len(base)
	for _, o := range overlays {
		size += len(o)
	}
	out := make(Detail, size)
	maps.Copy(out, base)
	for _, o := range overlays {
		maps.Copy(out, o)
	}
	return out
}
