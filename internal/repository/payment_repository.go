package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trainops/analytics-api/internal/models"
)

// PaymentRepository pages through payment rows.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

var paymentColumns = map[string]string{
	"id":            "id",
	"enrollment_id": "enrollment_id",
	"date":          "date",
	"method":        "method",
	"approval_code": "approval_code",
}

// Page returns one page of payments ordered by date.
func (r *PaymentRepository) Page(ctx context.Context, q PageQuery) ([]models.Payment, error) {
	where, args, err := buildWhere(q.Conditions, paymentColumns)
	if err != nil {
		return nil, err
	}
	order := buildOrder(q.Sort, paymentColumns, "date")
	query := fmt.Sprintf(`SELECT id, enrollment_id, COALESCE(date, '') AS date,
	COALESCE(description, '') AS description, COALESCE(method, '') AS method,
	COALESCE(card_number, '') AS card_number, COALESCE(amount, '') AS amount,
	COALESCE(approval_code, '') AS approval_code
	FROM payments%s%s LIMIT %d OFFSET %d`, where, order, clampLimit(q.Limit), q.Offset)

	var payments []models.Payment
	if err := r.db.SelectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("page payments: %w", err)
	}
	return payments, nil
}
