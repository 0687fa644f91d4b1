package orders

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aswin-roy/ladybird-desk/pkg/enums"
	"github.com/aswin-roy/ladybird-desk/pkg/models"
	"github.com/aswin-roy/ladybird-desk/pkg/types"
)

func TestDraftDefaultsToPending(t *testing.T) {
	draft := NewDraft()
	if draft.Status() != enums.OrderStatusPending {
		t.Fatalf("expected Pending default, got %s", draft.Status())
	}
	if draft.Editing() {
		t.Fatal("fresh draft must not be in edit mode")
	}
}

func TestStatusTransitionsAreUnconstrained(t *testing.T) {
	draft := NewDraft()

	// Any status may follow any other, including moving backwards.
	sequence := []enums.OrderStatus{
		enums.OrderStatusDelivered,
		enums.OrderStatusCutting,
		enums.OrderStatusReady,
		enums.OrderStatusPending,
	}
	for _, status := range sequence {
		if err := draft.SetStatus(status); err != nil {
			t.Fatalf("set %s: %v", status, err)
		}
	}

	if err := draft.SetStatus(enums.OrderStatus("Lost")); err == nil {
		t.Fatal("expected unknown status to be rejected")
	}
	if draft.Status() != enums.OrderStatusPending {
		t.Fatalf("rejected status mutated the draft: %s", draft.Status())
	}
}

func TestAssignmentLineOperations(t *testing.T) {
	draft := NewDraft()

	if err := draft.AddAssignment(Assignment{WorkerName: "Ravi", Task: enums.WorkerTaskCutting, Commission: decimal.RequireFromString("150")}); err != nil {
		t.Fatalf("add: %v", err)
	}
	// The same worker may hold a second line for a different task.
	if err := draft.AddAssignment(Assignment{WorkerName: "Ravi", Task: enums.WorkerTaskStitching, Commission: decimal.RequireFromString("200")}); err != nil {
		t.Fatalf("add second: %v", err)
	}

	if err := draft.AddAssignment(Assignment{WorkerName: " ", Task: enums.WorkerTaskCutting}); err == nil {
		t.Fatal("expected blank worker name to be rejected")
	}
	if err := draft.AddAssignment(Assignment{WorkerName: "Sita", Task: enums.WorkerTask("Ironing")}); err == nil {
		t.Fatal("expected unknown task to be rejected")
	}
	if err := draft.AddAssignment(Assignment{WorkerName: "Sita", Task: enums.WorkerTaskCutting, Commission: decimal.RequireFromString("-5")}); err == nil {
		t.Fatal("expected negative commission to be rejected")
	}

	if err := draft.UpdateAssignment(1, Assignment{WorkerName: "Ravi", Task: enums.WorkerTaskStitching, Commission: decimal.RequireFromString("250")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := draft.UpdateAssignment(5, Assignment{WorkerName: "Ravi", Task: enums.WorkerTaskCutting}); err == nil {
		t.Fatal("expected out-of-range update to fail")
	}

	if err := draft.RemoveAssignment(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	lines := draft.Assignments()
	if len(lines) != 1 || !lines[0].Commission.Equal(decimal.RequireFromString("250")) {
		t.Fatalf("unexpected lines after edits: %+v", lines)
	}
}

func TestDraftFromOrderSeedsEditMode(t *testing.T) {
	delivery := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	order := models.Order{
		RecordID:        types.RecordID{Display: 4, Backend: "o-4"},
		ItemDescription: "Sherwani with zari work",
		Status:          enums.OrderStatusStitching,
		DeliveryDate:    &delivery,
		Assignments: []models.OrderAssignment{
			{WorkerName: "Ravi", Task: enums.WorkerTaskCutting, Commission: decimal.RequireFromString("100")},
		},
	}
	customer := &models.Customer{RecordID: types.RecordID{Backend: "c-1"}, Name: "Meera"}

	draft := DraftFromOrder(order, customer)
	if !draft.Editing() {
		t.Fatal("expected edit mode")
	}
	if draft.ItemDescription() != order.ItemDescription || draft.Status() != enums.OrderStatusStitching {
		t.Fatalf("seed mismatch: %+v", draft)
	}
	if len(draft.Assignments()) != 1 {
		t.Fatalf("expected seeded assignment, got %+v", draft.Assignments())
	}

	draft.Reset()
	if draft.Editing() || draft.Customer() != nil || len(draft.Assignments()) != 0 {
		t.Fatal("expected reset to drop edit state")
	}
	if draft.Status() != enums.OrderStatusPending {
		t.Fatalf("expected reset status Pending, got %s", draft.Status())
	}
}
