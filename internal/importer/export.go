package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/lucasvgarcia/contas/internal/bill"
)

// Export writes the bills as UTF-8 CSV in the same column layout Parse
// accepts, so an exported file round-trips through the importer.
func Export(w io.Writer, bills []*bill.Bill) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"description", "amount", "due_date", "status"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, b := range bills {
		record := []string{
			b.Description,
			b.Amount.StringFixed(2),
			b.DueDate.Format(time.DateOnly),
			string(b.Status),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}
