package bill_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/lucasvgarcia/contas/internal/bill"
)

func validParams() bill.Params {
	return bill.Params{
		Description: "Electricity",
		Amount:      decimal.RequireFromString("100.00"),
		DueDate:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Status:      bill.StatusPending,
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    bill.Params
		setupMock func(m *bill.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: validParams(),
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().
					CreateBill(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *bill.Bill) error {
						b.ID = uuid.New()
						b.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "ValidationFailureSkipsStore",
			params: bill.Params{
				Description: "Electricity",
				Amount:      decimal.RequireFromString("-1"),
				DueDate:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
				Status:      bill.StatusPending,
			},
			setupMock: func(m *bill.MockRepository) {
				// no store call expected
			},
			wantErr: bill.ErrValidation,
		},
		{
			name:   "RepoError",
			params: validParams(),
			setupMock: func(m *bill.MockRepository) {
				m.EXPECT().
					CreateBill(gomock.Any(), gomock.Any()).
					Return(bill.ErrStoreWrite)
			},
			wantErr: bill.ErrStoreWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := bill.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := bill.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEqual(t, uuid.Nil, got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := bill.NewMockRepository(ctrl)
		repo.EXPECT().
			UpdateBill(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *bill.Bill) error {
				assert.Equal(t, id, b.ID)
				assert.True(t, b.CreatedAt.IsZero(), "update must not touch the creation token")
				return nil
			})

		svc := bill.NewService(repo)
		require.NoError(t, svc.Update(context.Background(), id, validParams()))
	})

	t.Run("ValidationFailureSkipsStore", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := bill.NewMockRepository(ctrl)

		svc := bill.NewService(repo)

		params := validParams()
		params.Status = "overdue"

		err := svc.Update(context.Background(), id, params)
		assert.ErrorIs(t, err, bill.ErrValidation)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := bill.NewMockRepository(ctrl)
		repo.EXPECT().
			UpdateBill(gomock.Any(), gomock.Any()).
			Return(bill.ErrNotFound)

		svc := bill.NewService(repo)
		err := svc.Update(context.Background(), id, validParams())
		assert.ErrorIs(t, err, bill.ErrNotFound)
	})
}

func TestService_List_NoCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bills := []*bill.Bill{newBill("1.00", bill.StatusPending)}

	repo := bill.NewMockRepository(ctrl)
	repo.EXPECT().ListBills(gomock.Any()).Return(bills, nil)

	svc := bill.NewService(repo)
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bills, got)
}

func TestService_List_CacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bills := []*bill.Bill{newBill("1.00", bill.StatusPending)}

	repo := bill.NewMockRepository(ctrl)
	cache := bill.NewMockListCache(ctrl)
	cache.EXPECT().GetList(gomock.Any()).Return(bills, nil)

	svc := bill.NewService(repo, bill.WithCache(cache))
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bills, got)
}

func TestService_List_CacheMissPopulates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bills := []*bill.Bill{newBill("1.00", bill.StatusPaid)}

	repo := bill.NewMockRepository(ctrl)
	repo.EXPECT().ListBills(gomock.Any()).Return(bills, nil)

	cache := bill.NewMockListCache(ctrl)
	cache.EXPECT().GetList(gomock.Any()).Return(nil, nil)
	cache.EXPECT().SetList(gomock.Any(), bills).Return(nil)

	svc := bill.NewService(repo, bill.WithCache(cache))
	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bills, got)
}

func TestService_Delete_InvalidatesCacheAndPublishes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := bill.NewMockRepository(ctrl)
	repo.EXPECT().DeleteBill(gomock.Any(), id).Return(nil)

	cache := bill.NewMockListCache(ctrl)
	cache.EXPECT().Invalidate(gomock.Any()).Return(nil)

	events := bill.NewMockEventPublisher(ctrl)
	events.EXPECT().
		Publish("bill_events", gomock.Any()).
		DoAndReturn(func(_ string, event any) error {
			e, ok := event.(bill.Event)
			require.True(t, ok)
			assert.Equal(t, "bill_deleted", e.Type)
			assert.Equal(t, id, e.BillID)
			return nil
		})

	svc := bill.NewService(repo, bill.WithCache(cache), bill.WithEvents(events))
	require.NoError(t, svc.Delete(context.Background(), id))
}

func TestService_Delete_PublishFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := bill.NewMockRepository(ctrl)
	repo.EXPECT().DeleteBill(gomock.Any(), id).Return(nil)

	events := bill.NewMockEventPublisher(ctrl)
	events.EXPECT().
		Publish("bill_events", gomock.Any()).
		Return(errors.New("broker down"))

	svc := bill.NewService(repo, bill.WithEvents(events))
	require.NoError(t, svc.Delete(context.Background(), id))
}
