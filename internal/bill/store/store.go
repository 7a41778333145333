package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lucasvgarcia/contas/internal/bill"
)

// Store is the Postgres record store adapter. Read failures surface as
// bill.ErrStoreUnavailable, write failures as bill.ErrStoreWrite and a
// missing row as bill.ErrNotFound.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanBill reads a bill row from the scanner.
// Expected column order: id, description, amount, due_date, status, created_at, updated_at
func scanBill(s scanner) (*bill.Bill, error) {
	var b bill.Bill

	var statusStr string

	if err := s.Scan(
		&b.ID, &b.Description, &b.Amount, &b.DueDate, &statusStr,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.Status = bill.Status(statusStr)
	b.Amount = b.Amount.Round(2)

	return &b, nil
}

const selectBillColumns = `
	id, description, amount, due_date, status, created_at, updated_at
`

func (s *Store) CreateBill(ctx context.Context, b *bill.Bill) error {
	query := `
		INSERT INTO bills (description, amount, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		b.Description,
		b.Amount,
		b.DueDate,
		b.Status,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating bill: %w: %w", bill.ErrStoreWrite, err)
	}

	return nil
}

func (s *Store) GetBill(ctx context.Context, id uuid.UUID) (*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills WHERE id = $1`

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w: %w", bill.ErrStoreUnavailable, err)
	}

	return b, nil
}

// ListBills returns every bill ordered by its creation token. The id is
// the tiebreaker so equal timestamps still produce a stable order.
func (s *Store) ListBills(ctx context.Context) ([]*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + `
		FROM bills
		ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w: %w", bill.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var bills []*bill.Bill

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w: %w", bill.ErrStoreUnavailable, err)
		}

		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bill rows: %w: %w", bill.ErrStoreUnavailable, err)
	}

	return bills, nil
}

// UpdateBill replaces all user-editable fields. created_at is never
// touched, so the bill keeps its position on the next reload.
func (s *Store) UpdateBill(ctx context.Context, b *bill.Bill) error {
	query := `
		UPDATE bills
		SET description = $1, amount = $2, due_date = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query,
		b.Description,
		b.Amount,
		b.DueDate,
		b.Status,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating bill: %w: %w", bill.ErrStoreWrite, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return bill.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteBill(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM bills WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting bill: %w: %w", bill.ErrStoreWrite, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return bill.ErrNotFound
	}

	return nil
}
