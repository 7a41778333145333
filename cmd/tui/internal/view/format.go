package view

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const storeTimeout = 5 * time.Second

// StoreCtx returns a context with a standard timeout for record store
// operations.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// CurrencyFormatter renders amounts as localized currency strings, the
// way the totals are shown to the user.
type CurrencyFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewCurrencyFormatter builds a formatter for the given BCP 47 locale
// and ISO 4217 currency code, falling back to pt-BR / BRL when either
// fails to parse.
func NewCurrencyFormatter(locale, code string) CurrencyFormatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}

	unit, err := currency.ParseISO(code)
	if err != nil {
		unit = currency.BRL
	}

	return CurrencyFormatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}
}

// Format renders the amount with the currency symbol, e.g. "R$ 100,00".
func (f CurrencyFormatter) Format(d decimal.Decimal) string {
	v, _ := d.Float64()
	return f.printer.Sprint(currency.Symbol(f.unit.Amount(v)))
}
