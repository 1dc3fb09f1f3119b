// Package purchaselist implements the reorder cart and its conversion
// into purchase orders. A List accumulates items picked across browsing
// sessions into day-scoped, per-supplier slices; the Materializer turns
// a slice into one or more immutable purchase orders.
package purchaselist

import (
	"sync"

	"github.com/arvella/stockroom/internal/domain"
)

// Entry is one cart line. Identity for aggregation is (Product.ID,
// AddedAt): same product added twice on the same day merges into one
// entry; a different day makes a distinct entry. SupplierID is copied
// from the product at add time and never changes for the entry, even if
// the product's default supplier is reassigned later.
type Entry struct {
	Product    domain.Product `json:"product"`
	Quantity   int            `json:"quantity"`
	SupplierID string         `json:"supplier_id"`
	AddedAt    domain.Day     `json:"added_at"`
}

func (e Entry) withQuantity(q int) Entry {
	e.Quantity = q
	return e
}

// List is the session-scoped purchase cart. It is owned by exactly one
// session; the mutex serializes cart mutation against materialization,
// whose filter-then-clear sequence is not otherwise atomic.
type List struct {
	mu      sync.Mutex
	entries []Entry
}

func New() *List {
	return &List{}
}

// Add puts quantity units of product on the cart under the given day.
// Quantities below 1 are floored to 1. An existing (product, day) entry
// absorbs the add by summing quantities; otherwise a new entry is
// appended, preserving insertion order.
func (l *List) Add(product domain.Product, quantity int, day domain.Day) {
	if quantity < 1 {
		quantity = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.Product.ID == product.ID && e.AddedAt == day {
			merged := e.Quantity + quantity
			if merged < 1 {
				merged = 1
			}
			l.entries[i] = e.withQuantity(merged)
			return
		}
	}

	l.entries = append(l.entries, Entry{
		Product:    product,
		Quantity:   quantity,
		SupplierID: product.SupplierID,
		AddedAt:    day,
	})
}

// Remove deletes the entry with the exact (productID, day) key. Absent
// keys are a no-op, not an error.
func (l *List) Remove(productID string, day domain.Day) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.Product.ID == productID && e.AddedAt == day {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity of the (productID, day) entry,
// floored to 0. Zero is legal: the entry stays visible and editable but
// is excluded from the next materialization. No-op if the key is absent.
func (l *List) UpdateQuantity(productID string, day domain.Day, quantity int) {
	if quantity < 0 {
		quantity = 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, e := range l.entries {
		if e.Product.ID == productID && e.AddedAt == day {
			l.entries[i] = e.withQuantity(quantity)
			return
		}
	}
}

// EntriesForSupplier returns every entry for the supplier, any date, in
// cart insertion order.
func (l *List) EntriesForSupplier(supplierID string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Entry
	for _, e := range l.entries {
		if e.SupplierID == supplierID {
			out = append(out, e)
		}
	}
	return out
}

// Entries returns a snapshot of the whole cart in insertion order.
func (l *List) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len is the count of distinct entries, not the sum of quantities.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

// sliceForSupplierLocked filters to orderable entries of one
// (supplier, day) slice. Caller must hold l.mu.
func (l *List) sliceForSupplierLocked(supplierID string, day domain.Day) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.SupplierID == supplierID && e.AddedAt == day && e.Quantity > 0 {
			out = append(out, e)
		}
	}
	return out
}

// clearSupplierSliceLocked drops every entry of the (supplier, day)
// slice, including zero-quantity ones that were filtered out of the
// order: they belong to the committed slice and must not linger. Caller
// must hold l.mu.
func (l *List) clearSupplierSliceLocked(supplierID string, day domain.Day) {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.SupplierID == supplierID && e.AddedAt == day {
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
}

// clearDayLocked drops every entry added on the given day, regardless
// of supplier. Caller must hold l.mu.
func (l *List) clearDayLocked(day domain.Day) {
	kept := l.entries[:0]
	for _, e := range l.entries {
		if e.AddedAt == day {
			continue
		}
		kept = append(kept, e)
	}
	l.entries = kept
}
