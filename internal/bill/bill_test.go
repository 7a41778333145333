package bill_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasvgarcia/contas/internal/bill"
)

func TestParseParams(t *testing.T) {
	type args struct {
		description string
		amount      string
		dueDate     string
		status      string
	}

	type testCase struct {
		name    string
		args    args
		want    bill.Params
		wantErr bool
	}

	tests := []testCase{
		{
			name: "Valid",
			args: args{
				description: "Electricity",
				amount:      "123.4",
				dueDate:     "2024-05-10",
				status:      "pending",
			},
			want: bill.Params{
				Description: "Electricity",
				Amount:      decimal.RequireFromString("123.40").Round(2),
				DueDate:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
				Status:      bill.StatusPending,
			},
		},
		{
			name: "AmountRoundedToTwoDigits",
			args: args{
				description: "Water",
				amount:      "10.999",
				dueDate:     "2024-01-01",
				status:      "paid",
			},
			want: bill.Params{
				Description: "Water",
				Amount:      decimal.RequireFromString("11.00").Round(2),
				DueDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				Status:      bill.StatusPaid,
			},
		},
		{
			name: "StatusCaseInsensitive",
			args: args{
				description: "Rent",
				amount:      "1500",
				dueDate:     "2024-03-05",
				status:      "Paid",
			},
			want: bill.Params{
				Description: "Rent",
				Amount:      decimal.NewFromInt(1500).Round(2),
				DueDate:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				Status:      bill.StatusPaid,
			},
		},
		{
			name:    "NonNumericAmount",
			args:    args{description: "x", amount: "abc", dueDate: "2024-01-01", status: "pending"},
			wantErr: true,
		},
		{
			name:    "NegativeAmount",
			args:    args{description: "x", amount: "-1", dueDate: "2024-01-01", status: "pending"},
			wantErr: true,
		},
		{
			name:    "MalformedDate",
			args:    args{description: "x", amount: "1", dueDate: "10/05/2024", status: "pending"},
			wantErr: true,
		},
		{
			name:    "UnknownStatus",
			args:    args{description: "x", amount: "1", dueDate: "2024-01-01", status: "overdue"},
			wantErr: true,
		},
		{
			name:    "EmptyDescription",
			args:    args{description: "   ", amount: "1", dueDate: "2024-01-01", status: "pending"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bill.ParseParams(tt.args.description, tt.args.amount, tt.args.dueDate, tt.args.status)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, bill.ErrValidation)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.Description, got.Description)
			assert.True(t, tt.want.Amount.Equal(got.Amount), "amount %s != %s", tt.want.Amount, got.Amount)
			assert.Equal(t, tt.want.DueDate, got.DueDate)
			assert.Equal(t, tt.want.Status, got.Status)
		})
	}
}

func TestParseAmount_TwoFractionalDigits(t *testing.T) {
	got, err := bill.ParseAmount("100")
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.StringFixed(2))

	got, err = bill.ParseAmount("0.005")
	require.NoError(t, err)
	assert.Equal(t, "0.01", got.StringFixed(2))
}

func TestParamsValidate_NormalizesInPlace(t *testing.T) {
	p := bill.Params{
		Description: "  Internet  ",
		Amount:      decimal.RequireFromString("59.999"),
		DueDate:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		Status:      bill.StatusPending,
	}

	require.NoError(t, p.Validate())
	assert.Equal(t, "Internet", p.Description)
	assert.Equal(t, "60.00", p.Amount.StringFixed(2))
}
