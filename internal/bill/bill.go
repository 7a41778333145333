package bill

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the payment state of a bill.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Bill represents a single billable item.
type Bill struct {
	ID          uuid.UUID
	Description string
	Amount      decimal.Decimal // always two fractional digits
	DueDate     time.Time       // date only, UTC midnight
	Status      Status
	CreatedAt   time.Time // creation token, fixes default list order
	UpdatedAt   *time.Time
}

// Params carries the user-editable fields of a bill. The ID and the
// creation token are never part of it: the store assigns both at create
// time and an update leaves them alone.
type Params struct {
	Description string
	Amount      decimal.Decimal
	DueDate     time.Time
	Status      Status
}

// Validate checks the params and normalizes the amount to two fractional
// digits. All failures wrap ErrValidation.
func (p *Params) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrValidation)
	}

	if p.Amount.IsNegative() {
		return fmt.Errorf("%w: amount cannot be negative", ErrValidation)
	}

	if p.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrValidation)
	}

	switch p.Status {
	case StatusPending, StatusPaid:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, p.Status)
	}

	p.Description = strings.TrimSpace(p.Description)
	p.Amount = p.Amount.Round(2)

	return nil
}

// ParseParams builds Params from raw form field values: a free-text
// description, a decimal amount, a YYYY-MM-DD due date and a status name.
// This is the validation boundary for everything user-typed; nothing that
// fails here ever reaches the store.
func ParseParams(description, amount, dueDate, status string) (Params, error) {
	amt, err := ParseAmount(amount)
	if err != nil {
		return Params{}, err
	}

	due, err := ParseDueDate(dueDate)
	if err != nil {
		return Params{}, err
	}

	st, err := ParseStatus(status)
	if err != nil {
		return Params{}, err
	}

	p := Params{
		Description: description,
		Amount:      amt,
		DueDate:     due,
		Status:      st,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}

	return p, nil
}

// ParseAmount parses a non-negative decimal amount and rounds it to two
// fractional digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: amount %q is not a number", ErrValidation, s)
	}

	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: amount cannot be negative", ErrValidation)
	}

	return d.Round(2), nil
}

// ParseDueDate parses a YYYY-MM-DD calendar date. The result carries no
// time component.
func ParseDueDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: due date %q is not a YYYY-MM-DD date", ErrValidation, s)
	}

	return t, nil
}

// ParseStatus parses a status name. The set is closed: anything other
// than pending or paid is rejected.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusPaid:
		return StatusPaid, nil
	default:
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
	}
}
