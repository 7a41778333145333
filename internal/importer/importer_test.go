package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasvgarcia/contas/internal/bill"
	"github.com/lucasvgarcia/contas/internal/importer"
)

func TestParse_CommaDelimited(t *testing.T) {
	input := strings.Join([]string{
		"description,amount,due_date,status",
		"Electricity,150.00,2024-05-10,pending",
		"Internet,99.90,2024-05-15,paid",
	}, "\n")

	params, rejects, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rejects)
	require.Len(t, params, 2)

	assert.Equal(t, "Electricity", params[0].Description)
	assert.True(t, params[0].Amount.Equal(decimal.RequireFromString("150.00")))
	assert.Equal(t, time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC), params[0].DueDate)
	assert.Equal(t, bill.StatusPending, params[0].Status)

	assert.Equal(t, bill.StatusPaid, params[1].Status)
}

func TestParse_SemicolonWithPortugueseHeaders(t *testing.T) {
	input := strings.Join([]string{
		"Descricao;Valor;Vencimento;Status",
		"Aluguel;1200.00;2024-06-05;pending",
	}, "\n")

	params, rejects, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rejects)
	require.Len(t, params, 1)
	assert.Equal(t, "Aluguel", params[0].Description)
}

func TestParse_Latin1Input(t *testing.T) {
	// "Condomínio" with í encoded as ISO-8859-1 0xED
	input := []byte("descricao,valor,vencimento,status\nCondom\xEDnio,480.00,2024-06-10,pending\n")

	params, rejects, err := importer.Parse(bytes.NewReader(input))
	require.NoError(t, err)
	assert.Empty(t, rejects)
	require.Len(t, params, 1)
	assert.Equal(t, "Condomínio", params[0].Description)
}

func TestParse_CollectsRowErrors(t *testing.T) {
	input := strings.Join([]string{
		"description,amount,due_date,status",
		"Good,10.00,2024-05-10,pending",
		"Bad amount,abc,2024-05-10,pending",
		"Bad status,10.00,2024-05-10,overdue",
		"",
		"Also good,20.00,2024-05-11,paid",
	}, "\n")

	params, rejects, err := importer.Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, params, 2)
	require.Len(t, rejects, 2)

	assert.Equal(t, 3, rejects[0].Row)
	assert.Equal(t, 4, rejects[1].Row)
	assert.ErrorIs(t, rejects[0], bill.ErrValidation)
	assert.ErrorIs(t, rejects[1], bill.ErrValidation)
}

func TestParse_MissingColumn(t *testing.T) {
	input := "description,amount,status\nElectricity,10.00,pending\n"

	_, _, err := importer.Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "due_date")
}

func TestParse_EmptyFile(t *testing.T) {
	_, _, err := importer.Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestExport_RoundTrips(t *testing.T) {
	bills := []*bill.Bill{
		{
			ID:          uuid.New(),
			Description: "Água, esgoto",
			Amount:      decimal.RequireFromString("45.90"),
			DueDate:     time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
			Status:      bill.StatusPending,
		},
		{
			ID:          uuid.New(),
			Description: "Internet",
			Amount:      decimal.RequireFromString("99.90"),
			DueDate:     time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC),
			Status:      bill.StatusPaid,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, importer.Export(&buf, bills))

	params, rejects, err := importer.Parse(&buf)
	require.NoError(t, err)
	assert.Empty(t, rejects)
	require.Len(t, params, len(bills))

	for i, b := range bills {
		assert.Equal(t, b.Description, params[i].Description)
		assert.True(t, params[i].Amount.Equal(b.Amount))
		assert.Equal(t, b.DueDate, params[i].DueDate)
		assert.Equal(t, b.Status, params[i].Status)
	}
}
