// Package ledger holds the balance bookkeeping rules: how a transaction
// moves an account balance, and when a recurring transaction fires next.
package ledger

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"finance-tracker/api/models"
)

// BalanceDelta is the signed change a transaction applies to its account
// balance. Amounts are stored positive; INCOME adds, EXPENSE subtracts.
func BalanceDelta(t models.TransactionType, amount float64) float64 {
	if t == models.TransactionTypeExpense {
		return -amount
	}
	return amount
}

// NetDelta is the balance adjustment needed when a transaction's type or
// amount changes: the new signed delta minus the old one.
func NetDelta(oldType models.TransactionType, oldAmount float64, newType models.TransactionType, newAmount float64) float64 {
	return BalanceDelta(newType, newAmount) - BalanceDelta(oldType, oldAmount)
}

// ReversalsByAccount aggregates, per account, the balance adjustment that
// undoes the given transactions. Deleting an EXPENSE gives the money back;
// deleting an INCOME takes it away.
func ReversalsByAccount(txns []models.Transaction) map[bson.ObjectID]float64 {
	reversals := make(map[bson.ObjectID]float64, len(txns))
	for _, t := range txns {
		reversals[t.AccountID] -= BalanceDelta(t.Type, t.Amount)
	}
	return reversals
}

// NextRecurringDate computes the next occurrence after start for the given
// interval. Month and year steps preserve the day-of-month, clamping to the
// last day of the target month (Jan 31 + MONTHLY lands on Feb 29 in a leap
// year, Feb 28 otherwise).
func NextRecurringDate(start time.Time, interval models.RecurringInterval) time.Time {
	switch interval {
	case models.RecurringDaily:
		return start.AddDate(0, 0, 1)
	case models.RecurringWeekly:
		return start.AddDate(0, 0, 7)
	case models.RecurringMonthly:
		return addMonthsClamped(start, 1)
	case models.RecurringYearly:
		return addMonthsClamped(start, 12)
	}
	return start
}

func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	// First of the target month; time.Date normalizes month overflow.
	target := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, hour, min, sec, t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
