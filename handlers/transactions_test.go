package handlers

import (
	"testing"
	"time"
)

func TestTransactionRequestValidate(t *testing.T) {
	valid := transactionRequest{
		Type:      "EXPENSE",
		Amount:    25.50,
		AccountID: "68b000000000000000000001",
		Date:      time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
		Category:  "groceries",
	}

	tests := []struct {
		name    string
		mutate  func(*transactionRequest)
		wantMsg string
	}{
		{"valid", func(r *transactionRequest) {}, ""},
		{"valid recurring", func(r *transactionRequest) {
			r.IsRecurring = true
			r.RecurringInterval = "MONTHLY"
		}, ""},
		{"bad type", func(r *transactionRequest) { r.Type = "TRANSFER" }, "Invalid transaction type"},
		{"zero amount", func(r *transactionRequest) { r.Amount = 0 }, "Amount must be positive"},
		{"negative amount", func(r *transactionRequest) { r.Amount = -5 }, "Amount must be positive"},
		{"missing date", func(r *transactionRequest) { r.Date = time.Time{} }, "Date is required"},
		{"missing category", func(r *transactionRequest) { r.Category = "" }, "Category is required"},
		{"recurring without interval", func(r *transactionRequest) { r.IsRecurring = true }, "Invalid recurring interval"},
		{"recurring bad interval", func(r *transactionRequest) {
			r.IsRecurring = true
			r.RecurringInterval = "FORTNIGHTLY"
		}, "Invalid recurring interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			if got := req.validate(); got != tt.wantMsg {
				t.Errorf("validate() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestTransactionRequestRecurrence(t *testing.T) {
	req := transactionRequest{
		Date:              time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		IsRecurring:       true,
		RecurringInterval: "MONTHLY",
	}
	interval, next := req.recurrence()
	if interval != "MONTHLY" {
		t.Errorf("interval = %q, want MONTHLY", interval)
	}
	if next == nil {
		t.Fatal("next date should be set for recurring payloads")
	}
	want := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("next = %v, want %v", next, want)
	}

	req.IsRecurring = false
	if interval, next := req.recurrence(); interval != "" || next != nil {
		t.Errorf("non-recurring payload should clear recurrence, got %q %v", interval, next)
	}
}

func TestRoundCents(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{12.344, 12.34},
		{12.346, 12.35},
		{100, 100},
		{0.005, 0.01},
	}
	for _, tt := range tests {
		if got := roundCents(tt.in); got != tt.want {
			t.Errorf("roundCents(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
