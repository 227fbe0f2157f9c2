package customer

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("customer not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ListCustomers returns a snapshot of every record. The dispatcher re-reads
// this on every message; order is not significant.
func (r *Repository) ListCustomers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	err := r.db.SelectContext(ctx, &customers, listCustomers)
	return customers, err
}

const listCustomers = `SELECT * FROM customers`

func (r *Repository) CreateCustomer(ctx context.Context, name string, balance int64, lastActivity string) (Customer, error) {
	var c Customer
	err := r.db.GetContext(ctx, &c, createCustomer, uuid.New(), name, balance, lastActivity)
	return c, err
}

const createCustomer = `INSERT INTO customers (id, name, balance, last_activity) VALUES ($1, $2, $3, $4) RETURNING *`

// UpdateCustomer writes a new balance and activity marker to the record
// identified by id. The id must come from a prior ListCustomers snapshot.
func (r *Repository) UpdateCustomer(ctx context.Context, id uuid.UUID, balance int64, lastActivity string) error {
	res, err := r.db.ExecContext(ctx, updateCustomer, balance, lastActivity, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const updateCustomer = `UPDATE customers SET balance = $1, last_activity = $2 WHERE id = $3`

func (r *Repository) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, deleteCustomer, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const deleteCustomer = `DELETE FROM customers WHERE id = $1`

// GetCustomerByName fetches a single record case-insensitively. Used by the
// admin surface; the webhook pipeline works from ListCustomers snapshots.
func (r *Repository) GetCustomerByName(ctx context.Context, name string) (Customer, error) {
	var c Customer
	err := r.db.GetContext(ctx, &c, getCustomerByName, name)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	return c, err
}

const getCustomerByName = `SELECT * FROM customers WHERE lower(name) = lower($1)`
