package sales

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/aswin-roy/ladybird-desk/pkg/enums"
	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

// taxRate is the fixed point-of-sale tax, 5% of the subtotal.
var taxRate = decimal.New(5, -2)

// Line is one cart entry: a product snapshot and a quantity of at least 1.
// The product's stock count is the snapshot taken when the line was added;
// it is advisory and only guards quantity increases client-side.
type Line struct {
	Product  models.Product
	Quantity int
}

// Totals are derived from the line list on every read. They are never
// stored, so they cannot drift from their inputs.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Draft is the in-memory sale being assembled at the counter. It is mutated
// only from the front-end goroutine, created empty, and reset on cancel or
// successful submission. It never persists.
type Draft struct {
	lines      []Line
	customer   *models.Customer
	payment    enums.PaymentMethod
	paidAmount *decimal.Decimal
}

// NewDraft returns an empty sale draft paying by cash.
func NewDraft() *Draft {
	return &Draft{payment: enums.PaymentMethodCash}
}

// lineKey is the cart uniqueness key: the backend identity when the product
// has one, else the display id.
func lineKey(p models.Product) string {
	if p.RecordID.Resolved() {
		return p.Backend
	}
	return "display:" + strconv.Itoa(p.Display)
}

func (d *Draft) findLine(key string) int {
	for i := range d.lines {
		if lineKey(d.lines[i].Product) == key {
			return i
		}
	}
	return -1
}

// AddLine puts one unit of the product in the cart. An existing line for
// the same product gains a unit instead of duplicating; the increase is
// rejected when it would exceed the last-known stock.
func (d *Draft) AddLine(product models.Product) error {
	if i := d.findLine(lineKey(product)); i >= 0 {
		line := &d.lines[i]
		if line.Quantity+1 > line.Product.Stock {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("only %d of %q in stock", line.Product.Stock, line.Product.Name))
		}
		line.Quantity++
		return nil
	}

	if product.Stock <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("%q is out of stock", product.Name))
	}
	d.lines = append(d.lines, Line{Product: product, Quantity: 1})
	return nil
}

// ChangeQuantity adjusts a line by delta, clamped at zero; reaching zero
// removes the line. Increases past the known stock are rejected and leave
// the quantity untouched.
func (d *Draft) ChangeQuantity(productID string, delta int) error {
	i := d.findLine(productID)
	if i < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product is not in the cart")
	}

	line := &d.lines[i]
	next := line.Quantity + delta
	if next < 0 {
		next = 0
	}
	if next > line.Product.Stock {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("only %d of %q in stock", line.Product.Stock, line.Product.Name))
	}
	if next == 0 {
		d.lines = append(d.lines[:i], d.lines[i+1:]...)
		return nil
	}
	line.Quantity = next
	return nil
}

// RemoveLine drops the line unconditionally. Removing an absent product is
// a no-op.
func (d *Draft) RemoveLine(productID string) {
	if i := d.findLine(productID); i >= 0 {
		d.lines = append(d.lines[:i], d.lines[i+1:]...)
	}
}

// Lines returns a copy of the current cart in insertion order.
func (d *Draft) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Empty reports whether the cart holds no lines.
func (d *Draft) Empty() bool {
	return len(d.lines) == 0
}

// Totals computes subtotal, tax, and total from the current lines. Tax is
// rounded to two decimal places; total is the exact sum of the other two.
func (d *Draft) Totals() Totals {
	subtotal := decimal.Zero
	for _, line := range d.lines {
		subtotal = subtotal.Add(line.Product.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	tax := subtotal.Mul(taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// SetCustomer records the resolved customer; nil keeps the sale anonymous
// until submission resolves it to the walk-in sentinel.
func (d *Draft) SetCustomer(customer *models.Customer) {
	d.customer = customer
}

// Customer returns the selected customer, nil when none.
func (d *Draft) Customer() *models.Customer {
	return d.customer
}

// SetPaymentMethod records how the sale is settled.
func (d *Draft) SetPaymentMethod(method enums.PaymentMethod) error {
	if !method.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment method %q", method))
	}
	d.payment = method
	return nil
}

// PaymentMethod returns the current settlement method.
func (d *Draft) PaymentMethod() enums.PaymentMethod {
	return d.payment
}

// SetPaidAmount overrides the amount tendered. Overrides above or below the
// total are allowed; negative amounts are not.
func (d *Draft) SetPaidAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "paid amount cannot be negative")
	}
	d.paidAmount = &amount
	return nil
}

// ClearPaidAmount restores the default of paying the computed total.
func (d *Draft) ClearPaidAmount() {
	d.paidAmount = nil
}

// PaidAmount returns the override when set, else the computed total.
func (d *Draft) PaidAmount() decimal.Decimal {
	if d.paidAmount != nil {
		return *d.paidAmount
	}
	return d.Totals().Total
}

// Reset discards the draft back to its empty state.
func (d *Draft) Reset() {
	d.lines = nil
	d.customer = nil
	d.payment = enums.PaymentMethodCash
	d.paidAmount = nil
}
