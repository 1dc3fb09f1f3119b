package purchaselist

import (
	"errors"
	"fmt"
)

// ErrEmptyOrder signals that no entry with quantity > 0 matched the
// requested supplier/date selection. Recoverable: the user should add
// items or adjust quantity, date or supplier.
var ErrEmptyOrder = errors.New("no orderable items for this supplier/date selection")

// OrderCreationError reports that the durable order store refused or
// failed the create for one supplier. Recoverable at the caller's
// discretion; for the single-supplier path the cart is guaranteed
// unchanged.
type OrderCreationError struct {
	SupplierID string
	Err        error
}

func (e *OrderCreationError) Error() string {
	return fmt.Sprintf("create purchase order for supplier %s: %v", e.SupplierID, e.Err)
}

func (e *OrderCreationError) Unwrap() error {
	return e.Err
}
