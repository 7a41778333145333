package bill

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucasvgarcia/contas/internal/bill"
)

type billResponse struct {
	ID          uuid.UUID   `json:"id"`
	Description string      `json:"description"`
	Amount      string      `json:"amount"`
	DueDate     string      `json:"due_date"`
	Status      bill.Status `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   *time.Time  `json:"updated_at,omitempty"`
}

func toResponse(b *bill.Bill) billResponse {
	return billResponse{
		ID:          b.ID,
		Description: b.Description,
		Amount:      b.Amount.StringFixed(2),
		DueDate:     b.DueDate.Format(time.DateOnly),
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toResponseList(bills []*bill.Bill) []billResponse {
	resp := make([]billResponse, len(bills))
	for i, b := range bills {
		resp[i] = toResponse(b)
	}

	return resp
}

type totalsResponse struct {
	Pending string `json:"pending"`
	Paid    string `json:"paid"`
}

func toTotalsResponse(t bill.Totals) totalsResponse {
	return totalsResponse{
		Pending: t.Pending.StringFixed(2),
		Paid:    t.Paid.StringFixed(2),
	}
}
