package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trainops/analytics-api/internal/models"
)

// EnrollmentRepository pages through participant-offering enrollment rows.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

var enrollmentColumns = map[string]string{
	"id":            "id",
	"member_number": "member_number",
	"offering_id":   "offering_id",
	"status":        "status",
	"registered_at": "registered_at",
}

// Page returns one page of enrollments ordered by registration time.
func (r *EnrollmentRepository) Page(ctx context.Context, q PageQuery) ([]models.Enrollment, error) {
	where, args, err := buildWhere(q.Conditions, enrollmentColumns)
	if err != nil {
		return nil, err
	}
	order := buildOrder(q.Sort, enrollmentColumns, "registered_at")
	query := fmt.Sprintf(`SELECT id, member_number, offering_id, COALESCE(status, '') AS status,
	COALESCE(total_due, '') AS total_due, COALESCE(registered_at, '') AS registered_at
	FROM enrollments%s%s LIMIT %d OFFSET %d`, where, order, clampLimit(q.Limit), q.Offset)

	var enrollments []models.Enrollment
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("page enrollments: %w", err)
	}
	return enrollments, nil
}

// CountSince returns the number of enrollments registered on or after the
// given instant.
func (r *EnrollmentRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var total int
	query := "SELECT COUNT(*) FROM enrollments WHERE registered_at >= $1"
	if err := r.db.GetContext(ctx, &total, query, since.Format("2006-01-02")); err != nil {
		return 0, fmt.Errorf("count enrollments since: %w", err)
	}
	return total, nil
}
