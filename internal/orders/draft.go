package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aswin-roy/ladybird-desk/pkg/enums"
	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
)

// Assignment is one worker line on the draft, referenced by display name.
// Resolution to a backend worker identity happens at submission time.
type Assignment struct {
	WorkerName string
	Task       enums.WorkerTask
	Commission decimal.Decimal
}

// Draft is the order being assembled or edited in the order form. Like the
// sale draft it lives only in memory and is reset on cancel or success.
type Draft struct {
	existingID      string
	customer        *models.Customer
	itemDescription string
	status          enums.OrderStatus
	deliveryDate    *time.Time
	assignments     []Assignment
}

// NewDraft returns an empty draft in the Pending status.
func NewDraft() *Draft {
	return &Draft{status: enums.OrderStatusPending}
}

// DraftFromOrder seeds a draft from a stored order for the edit flow.
// Submitting it updates the order in place instead of creating a new one.
func DraftFromOrder(order models.Order, customer *models.Customer) *Draft {
	draft := &Draft{
		existingID:      order.Backend,
		customer:        customer,
		itemDescription: order.ItemDescription,
		status:          order.Status,
		deliveryDate:    order.DeliveryDate,
	}
	for _, a := range order.Assignments {
		draft.assignments = append(draft.assignments, Assignment{
			WorkerName: a.WorkerName,
			Task:       a.Task,
			Commission: a.Commission,
		})
	}
	return draft
}

// Editing reports whether the draft targets an existing order.
func (d *Draft) Editing() bool {
	return d.existingID != ""
}

// SetCustomer records the resolved customer.
func (d *Draft) SetCustomer(customer *models.Customer) {
	d.customer = customer
}

// Customer returns the selected customer, nil when unresolved.
func (d *Draft) Customer() *models.Customer {
	return d.customer
}

// SetItemDescription records the free-text item description.
func (d *Draft) SetItemDescription(text string) {
	d.itemDescription = text
}

// ItemDescription returns the current description.
func (d *Draft) ItemDescription() string {
	return d.itemDescription
}

// SetStatus moves the order to any known status. Transitions are
// unconstrained: this is a reporting field, not a workflow gate.
func (d *Draft) SetStatus(status enums.OrderStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}
	d.status = status
	return nil
}

// Status returns the current status.
func (d *Draft) Status() enums.OrderStatus {
	return d.status
}

// SetDeliveryDate records the optional delivery date; nil clears it.
func (d *Draft) SetDeliveryDate(date *time.Time) {
	d.deliveryDate = date
}

// DeliveryDate returns the delivery date, nil when unset.
func (d *Draft) DeliveryDate() *time.Time {
	return d.deliveryDate
}

func validateAssignment(a Assignment) error {
	if strings.TrimSpace(a.WorkerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "worker name is required")
	}
	if !a.Task.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid worker task %q", a.Task))
	}
	if a.Commission.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "commission cannot be negative")
	}
	return nil
}

// AddAssignment appends a worker line. The same worker may appear on
// several lines for different tasks.
func (d *Draft) AddAssignment(a Assignment) error {
	if err := validateAssignment(a); err != nil {
		return err
	}
	d.assignments = append(d.assignments, a)
	return nil
}

// UpdateAssignment edits the line at index in place.
func (d *Draft) UpdateAssignment(index int, a Assignment) error {
	if index < 0 || index >= len(d.assignments) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "assignment index out of range")
	}
	if err := validateAssignment(a); err != nil {
		return err
	}
	d.assignments[index] = a
	return nil
}

// RemoveAssignment drops the line at index.
func (d *Draft) RemoveAssignment(index int) error {
	if index < 0 || index >= len(d.assignments) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "assignment index out of range")
	}
	d.assignments = append(d.assignments[:index], d.assignments[index+1:]...)
	return nil
}

// Assignments returns a copy of the current lines in order.
func (d *Draft) Assignments() []Assignment {
	out := make([]Assignment, len(d.assignments))
	copy(out, d.assignments)
	return out
}

// Reset discards the draft back to a fresh Pending create form.
func (d *Draft) Reset() {
	*d = Draft{status: enums.OrderStatusPending}
}
