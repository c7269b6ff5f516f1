package ledger

import (
	"context"
	"testing"
	"time"

	"nipco-portal/internal/models"
)

func TestMemoryLedgerAppendAssignsIDs(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()

	s1 := models.Sale{StationID: "abk-001", Amount: 100}
	s2 := models.Sale{StationID: "abk-001", Amount: 200}
	if err := l.Append(ctx, &s1); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := l.Append(ctx, &s2); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if s1.ID == 0 || s2.ID == 0 || s1.ID == s2.ID {
		t.Fatalf("expected distinct non-zero ids, got %d and %d", s1.ID, s2.ID)
	}
}

func TestMemoryLedgerFilters(t *testing.T) {
	l := NewMemoryLedger()
	ctx := context.Background()
	today := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)

	seed := []models.Sale{
		{StationID: "abk-001", Shift: models.ShiftMorning, Amount: 100, SaleTime: today},
		{StationID: "abk-001", Shift: models.ShiftAfternoon, Amount: 200, SaleTime: today},
		{StationID: "ik-004", Shift: models.ShiftMorning, Amount: 300, SaleTime: today},
		{StationID: "abk-001", Shift: models.ShiftMorning, Amount: 400, SaleTime: yesterday},
	}
	for i := range seed {
		if err := l.Append(ctx, &seed[i]); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	got, err := l.List(ctx, Filter{StationID: "abk-001", Date: &today})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sales for abk-001 today, got %d", len(got))
	}

	got, err = l.List(ctx, Filter{StationID: "abk-001", Shift: models.ShiftMorning, Date: &today})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].Amount != 100 {
		t.Fatalf("expected the single morning sale, got %v", got)
	}

	got, err = l.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("unfiltered list should return everything, got %d", len(got))
	}
}
