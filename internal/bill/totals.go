package bill

import "github.com/shopspring/decimal"

// Totals holds the amounts summed by status. Since the status set is
// closed, Pending and Paid exactly partition the list: their sum equals
// the sum of every amount.
type Totals struct {
	Pending decimal.Decimal
	Paid    decimal.Decimal
}

// ComputeTotals sums the amounts of the given bills grouped by status.
// Pure function: it never looks at anything but its argument.
func ComputeTotals(bills []*Bill) Totals {
	t := Totals{
		Pending: decimal.Zero,
		Paid:    decimal.Zero,
	}

	for _, b := range bills {
		switch b.Status {
		case StatusPending:
			t.Pending = t.Pending.Add(b.Amount)
		case StatusPaid:
			t.Paid = t.Paid.Add(b.Amount)
		}
	}

	return t
}
