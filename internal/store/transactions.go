package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"

	"github.com/google/uuid"
)

const transactionColumns = `id, date, description, amount, type, category, source, institution, is_pending, notes, created_at`

// TransactionRepository stores transactions.
type TransactionRepository struct {
	store *Store
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// ListFilter narrows List results.
type ListFilter struct {
	PendingOnly bool
}

// Create validates and inserts tx, assigning its ID and creation time.
func (r *TransactionRepository) Create(ctx context.Context, tx models.Transaction) (models.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return models.Transaction{}, err
	}
	tx = r.stamp(tx)
	if err := insertTransaction(ctx, r.store.db, tx); err != nil {
		return models.Transaction{}, err
	}
	r.store.logger.Debug("Transaction created", logging.F(logging.FieldTransactionID, tx.ID))
	return tx, nil
}

// BulkCreate inserts every transaction in one SQL transaction. Either all of
// them are stored or none is.
func (r *TransactionRepository) BulkCreate(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error) {
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}

	sqlTx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	created := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		tx = r.stamp(tx)
		if err := insertTransaction(ctx, sqlTx, tx); err != nil {
			_ = sqlTx.Rollback()
			return nil, err
		}
		created = append(created, tx)
	}

	if err := sqlTx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transactions: %w", err)
	}

	r.store.logger.Info("Transactions stored", logging.F(logging.FieldCount, len(created)))
	return created, nil
}

// Get returns the transaction with the given ID.
func (r *TransactionRepository) Get(ctx context.Context, id string) (models.Transaction, error) {
	row := r.store.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	return tx, err
}

// List returns transactions, newest date first. Transactions sharing a date
// keep their insertion order.
func (r *TransactionRepository) List(ctx context.Context, filter ListFilter) ([]models.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if filter.PendingOnly {
		query += ` WHERE is_pending = 1`
	}
	query += ` ORDER BY date DESC, rowid ASC`

	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	return out, rows.Err()
}

// Update applies patch to the stored transaction. The result must still be a
// valid transaction; nothing is written otherwise.
func (r *TransactionRepository) Update(ctx context.Context, id string, patch models.TransactionPatch) (models.Transaction, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return models.Transaction{}, err
	}

	updated := patch.Apply(current)
	if err := updated.Validate(); err != nil {
		return models.Transaction{}, err
	}

	_, err = r.store.db.ExecContext(ctx,
		`UPDATE transactions SET date = ?, description = ?, amount = ?, type = ?, category = ?,
			institution = ?, is_pending = ?, notes = ? WHERE id = ?`,
		updated.Date, updated.Description, updated.Amount.String(), string(updated.Type), updated.Category,
		updated.Institution, boolToInt(updated.IsPending), updated.Notes, id)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	r.store.logger.Info("Transaction updated", logging.F(logging.FieldTransactionID, id))
	return updated, nil
}

// Delete removes one transaction.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.store.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}
	r.store.logger.Info("Transaction deleted", logging.F(logging.FieldTransactionID, id))
	return nil
}

// DeleteAll removes every transaction and returns how many were removed.
// Rules and categories are kept.
func (r *TransactionRepository) DeleteAll(ctx context.Context) (int, error) {
	res, err := r.store.db.ExecContext(ctx, `DELETE FROM transactions`)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	r.store.logger.Warn("All transactions deleted", logging.F(logging.FieldCount, n))
	return int(n), nil
}

// Confirm assigns category to the transaction and clears its pending flag.
func (r *TransactionRepository) Confirm(ctx context.Context, id, category string) (models.Transaction, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return models.Transaction{}, &parsererror.ValidationError{Entity: "transaction", Reason: "category is required"}
	}

	res, err := r.store.db.ExecContext(ctx,
		`UPDATE transactions SET category = ?, is_pending = 0 WHERE id = ?`, category, id)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("confirm transaction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.Transaction{}, fmt.Errorf("transaction %s: %w", id, ErrNotFound)
	}

	r.store.logger.Info("Transaction confirmed",
		logging.F(logging.FieldTransactionID, id),
		logging.F(logging.FieldCategory, category))
	return r.Get(ctx, id)
}

func (r *TransactionRepository) stamp(tx models.Transaction) models.Transaction {
	tx.ID = uuid.NewString()
	tx.CreatedAt = r.store.timestamp()
	return tx
}

func insertTransaction(ctx context.Context, db execer, tx models.Transaction) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Date, tx.Description, tx.Amount.String(), string(tx.Type), tx.Category,
		string(tx.Source), tx.Institution, boolToInt(tx.IsPending), tx.Notes, formatTime(tx.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		tx        models.Transaction
		amount    string
		txType    string
		source    string
		pending   int
		createdAt string
	)
	err := row.Scan(&tx.ID, &tx.Date, &tx.Description, &amount, &txType, &tx.Category,
		&source, &tx.Institution, &pending, &tx.Notes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Transaction{}, err
		}
		return models.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	if err := tx.Amount.UnmarshalText([]byte(amount)); err != nil {
		return models.Transaction{}, fmt.Errorf("transaction %s has invalid amount %q: %w", tx.ID, amount, err)
	}
	tx.Type = models.TransactionType(txType)
	tx.Source = models.Source(source)
	tx.IsPending = pending == 1
	tx.CreatedAt = parseTime(createdAt)
	return tx, nil
}

// Summary counts stored transactions by review state.
func (r *TransactionRepository) Summary(ctx context.Context) (models.Summary, error) {
	var s models.Summary
	err := r.store.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(is_pending), 0) FROM transactions`).Scan(&s.Total, &s.Pending)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize transactions: %w", err)
	}
	s.Confirmed = s.Total - s.Pending
	return s, nil
}
