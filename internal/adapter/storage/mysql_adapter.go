package storage

import (
	"context"
	"database/sql"

	"github.com/go-faster/errors"
	"github.com/go-sql-driver/mysql"

	"github.com/rl1809/bakery-storefront/internal/core/domain"
)

const mysqlErrDuplicateEntry = 1062

var ErrDuplicateSubmission = errors.New("duplicate submission")

// MySQLAdapter keeps the contact submission log in an append-only table.
// Requires a DSN with parseTime=true.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) AppendSubmission(ctx context.Context, sub domain.Submission) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (id, name, email, phone, order_type, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Email, sub.Phone, string(sub.OrderType), sub.Message,
		sub.Timestamp.UTC(),
	)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry {
			return ErrDuplicateSubmission
		}
		return errors.Wrap(err, "insert submission")
	}
	return nil
}

func (m *MySQLAdapter) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, email, phone, order_type, message, created_at
		FROM contact_submissions ORDER BY seq`)
	if err != nil {
		return nil, errors.Wrap(err, "query submissions")
	}
	defer rows.Close()

	var subs []domain.Submission
	for rows.Next() {
		var (
			sub       domain.Submission
			orderType string
		)
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Email, &sub.Phone, &orderType, &sub.Message, &sub.Timestamp); err != nil {
			return nil, errors.Wrap(err, "scan submission")
		}
		sub.OrderType = domain.OrderType(orderType)
		sub.Timestamp = sub.Timestamp.UTC()
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate submissions")
	}
	return subs, nil
}

func (m *MySQLAdapter) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}
