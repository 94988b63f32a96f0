package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trainops/analytics-api/internal/models"
)

// ParticipantRepository pages through the participants table.
type ParticipantRepository struct {
	db *sqlx.DB
}

// NewParticipantRepository constructs the repository.
func NewParticipantRepository(db *sqlx.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

var participantColumns = map[string]string{
	"member_number":  "member_number",
	"status_id":      "status_id",
	"city":           "city",
	"state_province": "state_province",
	"country":        "country",
	"classes_taken":  "classes_taken",
}

const participantSelect = `SELECT member_number,
	COALESCE(prefix, '') AS prefix,
	COALESCE(first_name, '') AS first_name,
	COALESCE(middle_name, '') AS middle_name,
	COALESCE(last_name, '') AS last_name,
	COALESCE(suffix, '') AS suffix,
	status_id,
	COALESCE(company, '') AS company,
	COALESCE(email, '') AS email,
	COALESCE(city, '') AS city,
	COALESCE(state_province, '') AS state_province,
	COALESCE(country, '') AS country,
	COALESCE(postal_code, '') AS postal_code,
	COALESCE(classes_taken, 0) AS classes_taken
	FROM participants`

// Page returns one page of participants ordered for stable offset paging.
func (r *ParticipantRepository) Page(ctx context.Context, q PageQuery) ([]models.Participant, error) {
	where, args, err := buildWhere(q.Conditions, participantColumns)
	if err != nil {
		return nil, err
	}
	order := buildOrder(q.Sort, participantColumns, "member_number")
	query := fmt.Sprintf("%s%s%s LIMIT %d OFFSET %d", participantSelect, where, order, clampLimit(q.Limit), q.Offset)

	var participants []models.Participant
	if err := r.db.SelectContext(ctx, &participants, query, args...); err != nil {
		return nil, fmt.Errorf("page participants: %w", err)
	}
	return participants, nil
}

// Count returns the number of participants matching the conditions.
func (r *ParticipantRepository) Count(ctx context.Context, conditions []Condition) (int, error) {
	where, args, err := buildWhere(conditions, participantColumns)
	if err != nil {
		return 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM participants"+where, args...); err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return total, nil
}
