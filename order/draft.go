// Package order implements the order draft editor and the admin listing
// filters. A draft is the in-progress, unsaved order a staff member
// assembles on the order-entry screen: an insertion-ordered list of line
// items, a staging slot for the item currently being filled in, and a
// presentational preview flag.
package order

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/refhub/order-management-backend/interfaces"
)

// TransportationFee is the fixed per-order surcharge, applied exactly once
// regardless of item count.
var TransportationFee = decimal.NewFromInt(10)

// StagingField names an editable attribute of the staging item.
type StagingField string

const (
	FieldName     StagingField = "name"
	FieldPrice    StagingField = "price"
	FieldQuantity StagingField = "quantity"
)

// StagingItem is the single line item being filled in before it is added
// to the draft. Numeric fields keep a validity marker: a failed parse
// stores the zero value and clears the marker, and AddItem refuses to
// promote an invalid field into the draft.
type StagingItem struct {
	Name          string
	Price         decimal.Decimal
	PriceValid    bool
	Quantity      int
	QuantityValid bool
}

func defaultStaging() StagingItem {
	return StagingItem{
		Name:          "",
		Price:         decimal.Zero,
		PriceValid:    true,
		Quantity:      1,
		QuantityValid: true,
	}
}

// Draft is an order being assembled. It is owned exclusively by the active
// order-entry session and is never persisted before explicit submission.
// The mutex exists because HTTP handlers run concurrently; the modeled
// usage is a single writer per session.
type Draft struct {
	mu             sync.Mutex
	items          []interfaces.LineItem
	staging        StagingItem
	previewVisible bool
}

// NewDraft returns an empty draft with a default staging slot.
func NewDraft() *Draft {
	return &Draft{staging: defaultStaging()}
}

// SetStagingField updates one attribute of the staging item. Numeric
// fields must parse; on a parse failure the field holds its zero value and
// is marked invalid. Unknown fields are ignored.
func (d *Draft) SetStagingField(field StagingField, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch field {
	case FieldName:
		d.staging.Name = value
	case FieldPrice:
		price, err := decimal.NewFromString(value)
		if err != nil {
			d.staging.Price = decimal.Zero
			d.staging.PriceValid = false
			return
		}
		d.staging.Price = price
		d.staging.PriceValid = true
	case FieldQuantity:
		qty, err := strconv.Atoi(value)
		if err != nil {
			d.staging.Quantity = 0
			d.staging.QuantityValid = false
			return
		}
		d.staging.Quantity = qty
		d.staging.QuantityValid = true
	}
}

// Staging returns a copy of the current staging item.
func (d *Draft) Staging() StagingItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.staging
}

// AddItem appends the staging item to the draft as a new line item with a
// fresh identifier. The item is accepted only when the name is non-empty,
// the price parsed and is greater than zero, and the quantity parsed and
// is at least one; otherwise the draft is left unchanged and the staging
// slot keeps its values for correction. On success the staging slot resets
// to its default.
func (d *Draft) AddItem() (interfaces.LineItem, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.staging
	if s.Name == "" || !s.PriceValid || !s.Price.IsPositive() {
		return interfaces.LineItem{}, false
	}
	if !s.QuantityValid || s.Quantity < 1 {
		return interfaces.LineItem{}, false
	}

	item := interfaces.LineItem{
		ID:        interfaces.ItemID(uuid.NewString()),
		Name:      s.Name,
		UnitPrice: s.Price,
		Quantity:  s.Quantity,
	}
	d.items = append(d.items, item)
	d.staging = defaultStaging()
	return item, true
}

// RemoveItem deletes the line item with the given identifier, preserving
// the relative order of the remaining items. Removing an absent identifier
// is a no-op.
func (d *Draft) RemoveItem(id interfaces.ItemID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, item := range d.items {
		if item.ID == id {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return
		}
	}
}

// TogglePreview flips the preview flag. Purely presentational; the draft
// contents are unaffected.
func (d *Draft) TogglePreview() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.previewVisible = !d.previewVisible
}

// PreviewVisible reports whether the preview is toggled on.
func (d *Draft) PreviewVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.previewVisible
}

// Items returns a copy of the draft's line items in insertion order.
func (d *Draft) Items() []interfaces.LineItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]interfaces.LineItem, len(d.items))
	copy(out, d.items)
	return out
}

// Len returns the number of line items in the draft.
func (d *Draft) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.items)
}

// Total computes the order total: the sum of unit price times quantity
// over all line items, plus the transportation fee. It is recomputed on
// every call rather than cached.
func (d *Draft) Total() decimal.Decimal {
	d.mu.Lock()
	defer d.mu.Unlock()

	total := decimal.Zero
	for _, item := range d.items {
		total = total.Add(item.Subtotal())
	}
	return total.Add(TransportationFee)
}

// Reset discards all items and restores the default staging slot, e.g.
// after a successful submission.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = nil
	d.staging = defaultStaging()
	d.previewVisible = false
}
