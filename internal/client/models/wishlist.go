package models

import "slices"

// Wishlist is an in-memory set of product ids. It is never persisted or
// sent to the backend. The zero value is ready to use.
type Wishlist struct {
	ids map[int64]struct{}
}

// Toggle flips membership of id and reports whether it is now a member.
func (w *Wishlist) Toggle(id int64) bool {
	if w.ids == nil {
		w.ids = make(map[int64]struct{})
	}
	if _, ok := w.ids[id]; ok {
		delete(w.ids, id)
		return false
	}
	w.ids[id] = struct{}{}
	return true
}

func (w *Wishlist) Has(id int64) bool {
	_, ok := w.ids[id]
	return ok
}

func (w *Wishlist) Len() int {
	return len(w.ids)
}

// IDs returns the members in ascending order.
func (w *Wishlist) IDs() []int64 {
	out := make([]int64, 0, len(w.ids))
	for id := range w.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
