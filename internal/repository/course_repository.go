package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trainops/analytics-api/internal/models"
)

// CourseRepository pages through the course catalogue and its offerings.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

var courseColumns = map[string]string{
	"id":              "id",
	"status":          "status",
	"program_type_id": "program_type_id",
	"abroad":          "abroad",
}

var offeringColumns = map[string]string{
	"id":         "id",
	"course_id":  "course_id",
	"begin_date": "begin_date",
	"end_date":   "end_date",
}

// Page returns one page of courses ordered by id.
func (r *CourseRepository) Page(ctx context.Context, q PageQuery) ([]models.Course, error) {
	where, args, err := buildWhere(q.Conditions, courseColumns)
	if err != nil {
		return nil, err
	}
	order := buildOrder(q.Sort, courseColumns, "id")
	query := fmt.Sprintf(`SELECT id, COALESCE(name, '') AS name, COALESCE(program_type_id, 0) AS program_type_id,
	status, COALESCE(abroad, 0) AS abroad
	FROM courses%s%s LIMIT %d OFFSET %d`, where, order, clampLimit(q.Limit), q.Offset)

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("page courses: %w", err)
	}
	return courses, nil
}

// PageOfferings returns one page of course offerings ordered by id.
func (r *CourseRepository) PageOfferings(ctx context.Context, q PageQuery) ([]models.CourseOffering, error) {
	where, args, err := buildWhere(q.Conditions, offeringColumns)
	if err != nil {
		return nil, err
	}
	order := buildOrder(q.Sort, offeringColumns, "id")
	query := fmt.Sprintf(`SELECT id, course_id, COALESCE(location, '') AS location,
	COALESCE(begin_date, '') AS begin_date, COALESCE(end_date, '') AS end_date,
	COALESCE(instructor, '') AS instructor, COALESCE(home_study, 0) AS home_study
	FROM course_offerings%s%s LIMIT %d OFFSET %d`, where, order, clampLimit(q.Limit), q.Offset)

	var offerings []models.CourseOffering
	if err := r.db.SelectContext(ctx, &offerings, query, args...); err != nil {
		return nil, fmt.Errorf("page course offerings: %w", err)
	}
	return offerings, nil
}

// CountActive returns the number of courses flagged active.
func (r *CourseRepository) CountActive(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM courses WHERE status = $1", models.CourseStatusActive); err != nil {
		return 0, fmt.Errorf("count active courses: %w", err)
	}
	return total, nil
}
