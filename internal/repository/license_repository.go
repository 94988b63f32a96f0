package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/trainops/analytics-api/internal/models"
)

// LicenseRepository pages through professional license rows.
type LicenseRepository struct {
	db *sqlx.DB
}

// NewLicenseRepository constructs the repository.
func NewLicenseRepository(db *sqlx.DB) *LicenseRepository {
	return &LicenseRepository{db: db}
}

var licenseColumns = map[string]string{
	"id":             "id",
	"member_number":  "member_number",
	"profession":     "profession",
	"state_province": "state_province",
	"country":        "country",
	"date_updated":   "date_updated",
}

// Page returns one page of licenses ordered by id so offset paging stays
// stable across requests.
func (r *LicenseRepository) Page(ctx context.Context, q PageQuery) ([]models.License, error) {
	where, args, err := buildWhere(q.Conditions, licenseColumns)
	if err != nil {
		return nil, err
	}
	order := buildOrder(q.Sort, licenseColumns, "id")
	query := fmt.Sprintf(`SELECT id, member_number, COALESCE(license_number, '') AS license_number,
	COALESCE(profession, '') AS profession, COALESCE(state_province, '') AS state_province,
	COALESCE(country, '') AS country, COALESCE(date_updated, '') AS date_updated
	FROM licenses%s%s LIMIT %d OFFSET %d`, where, order, clampLimit(q.Limit), q.Offset)

	var licenses []models.License
	if err := r.db.SelectContext(ctx, &licenses, query, args...); err != nil {
		return nil, fmt.Errorf("page licenses: %w", err)
	}
	return licenses, nil
}

// Count returns the total number of license rows.
func (r *LicenseRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM licenses"); err != nil {
		return 0, fmt.Errorf("count licenses: %w", err)
	}
	return total, nil
}
