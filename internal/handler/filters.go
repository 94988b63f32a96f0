package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trainops/analytics-api/internal/models"
	appErrors "github.com/trainops/analytics-api/pkg/errors"
)

const dateParamLayout = "2006-01-02"

// parseRangeFilter reads optional from/to query parameters. Dates use the
// YYYY-MM-DD form; a reversed range is rejected.
func parseRangeFilter(c *gin.Context) (models.RangeFilter, error) {
	var filter models.RangeFilter

	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return filter, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid from date %q", raw))
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return filter, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, fmt.Sprintf("invalid to date %q", raw))
		}
		filter.To = &t
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return filter, appErrors.Clone(appErrors.ErrValidation, "from date is after to date")
	}
	return filter, nil
}
