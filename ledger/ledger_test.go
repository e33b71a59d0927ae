package ledger

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"finance-tracker/api/models"
)

func TestBalanceDelta(t *testing.T) {
	tests := []struct {
		name   string
		txType models.TransactionType
		amount float64
		want   float64
	}{
		{"income adds", models.TransactionTypeIncome, 100, 100},
		{"expense subtracts", models.TransactionTypeExpense, 100, -100},
		{"zero income", models.TransactionTypeIncome, 0, 0},
		{"fractional expense", models.TransactionTypeExpense, 12.34, -12.34},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BalanceDelta(tt.txType, tt.amount); got != tt.want {
				t.Errorf("BalanceDelta(%s, %v) = %v, want %v", tt.txType, tt.amount, got, tt.want)
			}
		})
	}
}

func TestNetDelta(t *testing.T) {
	tests := []struct {
		name      string
		oldType   models.TransactionType
		oldAmount float64
		newType   models.TransactionType
		newAmount float64
		want      float64
	}{
		{"expense 100 to income 50", models.TransactionTypeExpense, 100, models.TransactionTypeIncome, 50, 150},
		{"income 50 to expense 100", models.TransactionTypeIncome, 50, models.TransactionTypeExpense, 100, -150},
		{"expense amount grows", models.TransactionTypeExpense, 40, models.TransactionTypeExpense, 60, -20},
		{"income amount shrinks", models.TransactionTypeIncome, 60, models.TransactionTypeIncome, 40, -20},
		{"unchanged", models.TransactionTypeIncome, 25, models.TransactionTypeIncome, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NetDelta(tt.oldType, tt.oldAmount, tt.newType, tt.newAmount)
			if got != tt.want {
				t.Errorf("NetDelta = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReversalsByAccount(t *testing.T) {
	accountA := bson.NewObjectID()
	accountB := bson.NewObjectID()

	txns := []models.Transaction{
		{AccountID: accountA, Type: models.TransactionTypeExpense, Amount: 30},
		{AccountID: accountA, Type: models.TransactionTypeIncome, Amount: 20},
		{AccountID: accountB, Type: models.TransactionTypeExpense, Amount: 10},
	}

	got := ReversalsByAccount(txns)
	if len(got) != 2 {
		t.Fatalf("expected reversals for 2 accounts, got %d", len(got))
	}
	if got[accountA] != 10 {
		t.Errorf("account A reversal = %v, want 10", got[accountA])
	}
	if got[accountB] != 10 {
		t.Errorf("account B reversal = %v, want 10", got[accountB])
	}
}

func TestReversalsByAccountEmpty(t *testing.T) {
	if got := ReversalsByAccount(nil); len(got) != 0 {
		t.Errorf("expected no reversals, got %v", got)
	}
}

func TestNextRecurringDate(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 9, 30, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		start    time.Time
		interval models.RecurringInterval
		want     time.Time
	}{
		{"daily", day(2024, time.March, 15), models.RecurringDaily, day(2024, time.March, 16)},
		{"daily month rollover", day(2024, time.January, 31), models.RecurringDaily, day(2024, time.February, 1)},
		{"weekly", day(2024, time.March, 28), models.RecurringWeekly, day(2024, time.April, 4)},
		{"monthly", day(2024, time.March, 15), models.RecurringMonthly, day(2024, time.April, 15)},
		{"monthly clamps to leap February", day(2024, time.January, 31), models.RecurringMonthly, day(2024, time.February, 29)},
		{"monthly clamps to short February", day(2025, time.January, 31), models.RecurringMonthly, day(2025, time.February, 28)},
		{"monthly 31st to 30-day month", day(2024, time.May, 31), models.RecurringMonthly, day(2024, time.June, 30)},
		{"monthly december wraps year", day(2024, time.December, 10), models.RecurringMonthly, day(2025, time.January, 10)},
		{"yearly", day(2024, time.June, 1), models.RecurringYearly, day(2025, time.June, 1)},
		{"yearly from leap day clamps", day(2024, time.February, 29), models.RecurringYearly, day(2025, time.February, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextRecurringDate(tt.start, tt.interval)
			if !got.Equal(tt.want) {
				t.Errorf("NextRecurringDate(%v, %s) = %v, want %v", tt.start, tt.interval, got, tt.want)
			}
		})
	}
}

func TestNextRecurringDateKeepsClock(t *testing.T) {
	start := time.Date(2024, time.January, 31, 23, 59, 58, 7, time.UTC)
	got := NextRecurringDate(start, models.RecurringMonthly)
	want := time.Date(2024, time.February, 29, 23, 59, 58, 7, time.UTC)
	if !got.Equal(want) {
		t.Errorf("clock not preserved: got %v, want %v", got, want)
	}
}

// The ledger invariant: replaying any sequence of creates, updates and
// deletes through the delta helpers keeps the running balance equal to the
// signed sum of the surviving transactions.
func TestDeltaSequenceMatchesSignedSum(t *testing.T) {
	account := bson.NewObjectID()
	balance := 0.0
	var live []models.Transaction

	create := func(txType models.TransactionType, amount float64) {
		live = append(live, models.Transaction{AccountID: account, Type: txType, Amount: amount})
		balance += BalanceDelta(txType, amount)
	}

	create(models.TransactionTypeIncome, 500)
	create(models.TransactionTypeExpense, 120)
	create(models.TransactionTypeExpense, 80)

	// Update the second transaction from EXPENSE 120 to INCOME 40.
	balance += NetDelta(live[1].Type, live[1].Amount, models.TransactionTypeIncome, 40)
	live[1].Type = models.TransactionTypeIncome
	live[1].Amount = 40

	// Delete the third.
	balance += ReversalsByAccount(live[2:3])[account]
	live = live[:2]

	signedSum := 0.0
	for _, tx := range live {
		signedSum += BalanceDelta(tx.Type, tx.Amount)
	}
	if balance != signedSum {
		t.Errorf("balance %v diverged from signed sum %v", balance, signedSum)
	}
	if balance != 540 {
		t.Errorf("balance = %v, want 540", balance)
	}
}
