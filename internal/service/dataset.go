package service

import (
	"context"
	"strings"
	"time"

	"github.com/trainops/analytics-api/internal/fetch"
	"github.com/trainops/analytics-api/internal/models"
	"github.com/trainops/analytics-api/internal/repository"
)

type participantSource interface {
	Page(ctx context.Context, q repository.PageQuery) ([]models.Participant, error)
	Count(ctx context.Context, conditions []repository.Condition) (int, error)
}

type courseSource interface {
	Page(ctx context.Context, q repository.PageQuery) ([]models.Course, error)
	PageOfferings(ctx context.Context, q repository.PageQuery) ([]models.CourseOffering, error)
	CountActive(ctx context.Context) (int, error)
}

type enrollmentSource interface {
	Page(ctx context.Context, q repository.PageQuery) ([]models.Enrollment, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type paymentSource interface {
	Page(ctx context.Context, q repository.PageQuery) ([]models.Payment, error)
}

type licenseSource interface {
	Page(ctx context.Context, q repository.PageQuery) ([]models.License, error)
	Count(ctx context.Context) (int, error)
}

// Datasets materializes complete table snapshots through the bulk fetcher.
// Every fetch runs to completion before any indexing or aggregation starts.
type Datasets struct {
	Participants participantSource
	Courses      courseSource
	Enrollments  enrollmentSource
	Payments     paymentSource
	Licenses     licenseSource

	PageSize    int
	Parallelism int
}

func (d *Datasets) pageSize() int {
	if d.PageSize <= 0 {
		return fetch.DefaultPageSize
	}
	return d.PageSize
}

// AllParticipants fetches the complete participant table.
func (d *Datasets) AllParticipants(ctx context.Context) ([]models.Participant, error) {
	return fetch.AllParallel(ctx, "participants", d.pageSize(), d.Parallelism, func(ctx context.Context, offset, limit int) ([]models.Participant, error) {
		return d.Participants.Page(ctx, repository.PageQuery{Offset: offset, Limit: limit})
	})
}

// AllCourses fetches the complete course catalogue.
func (d *Datasets) AllCourses(ctx context.Context) ([]models.Course, error) {
	return fetch.AllParallel(ctx, "courses", d.pageSize(), d.Parallelism, func(ctx context.Context, offset, limit int) ([]models.Course, error) {
		return d.Courses.Page(ctx, repository.PageQuery{Offset: offset, Limit: limit})
	})
}

// AllOfferings fetches the complete course offering table.
func (d *Datasets) AllOfferings(ctx context.Context) ([]models.CourseOffering, error) {
	return fetch.AllParallel(ctx, "course_offerings", d.pageSize(), d.Parallelism, func(ctx context.Context, offset, limit int) ([]models.CourseOffering, error) {
		return d.Courses.PageOfferings(ctx, repository.PageQuery{Offset: offset, Limit: limit})
	})
}

// AllEnrollments fetches enrollments, optionally bounded by a registration
// date range.
func (d *Datasets) AllEnrollments(ctx context.Context, filter models.RangeFilter) ([]models.Enrollment, error) {
	conditions := rangeConditions("registered_at", filter)
	return fetch.AllParallel(ctx, "enrollments", d.pageSize(), d.Parallelism, func(ctx context.Context, offset, limit int) ([]models.Enrollment, error) {
		return d.Enrollments.Page(ctx, repository.PageQuery{Conditions: conditions, Offset: offset, Limit: limit})
	})
}

// AllPayments fetches payments, optionally bounded by a payment date range.
func (d *Datasets) AllPayments(ctx context.Context, filter models.RangeFilter) ([]models.Payment, error) {
	conditions := rangeConditions("date", filter)
	return fetch.AllParallel(ctx, "payments", d.pageSize(), d.Parallelism, func(ctx context.Context, offset, limit int) ([]models.Payment, error) {
		return d.Payments.Page(ctx, repository.PageQuery{Conditions: conditions, Offset: offset, Limit: limit})
	})
}

// AllLicenses fetches the complete license table.
func (d *Datasets) AllLicenses(ctx context.Context) ([]models.License, error) {
	return fetch.AllParallel(ctx, "licenses", d.pageSize(), d.Parallelism, func(ctx context.Context, offset, limit int) ([]models.License, error) {
		return d.Licenses.Page(ctx, repository.PageQuery{Offset: offset, Limit: limit})
	})
}

func rangeConditions(column string, filter models.RangeFilter) []repository.Condition {
	var conditions []repository.Condition
	if filter.From != nil {
		conditions = append(conditions, repository.Condition{Column: column, Op: repository.OpGte, Value: filter.From.Format("2006-01-02")})
	}
	if filter.To != nil {
		conditions = append(conditions, repository.Condition{Column: column, Op: repository.OpLte, Value: filter.To.Format("2006-01-02")})
	}
	return conditions
}

func makeCacheKey(parts ...string) string {
	var builder strings.Builder
	builder.Grow(len(parts) * 16)
	builder.WriteString("analytics")
	for _, part := range parts {
		if part == "" {
			continue
		}
		builder.WriteByte(':')
		builder.WriteString(strings.ReplaceAll(part, ":", "|"))
	}
	return builder.String()
}

// rangeCacheKey qualifies a cache key by the active date range. The bounds
// are written positionally so a from-only filter and a to-only filter on the
// same date never share an entry.
func rangeCacheKey(family string, filter models.RangeFilter) string {
	return makeCacheKey(family, "from="+formatTime(filter.From), "to="+formatTime(filter.To))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02")
}
