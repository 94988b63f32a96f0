package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = map[string]string{
	"status": "status",
	"date":   "date",
	"name":   "name",
}

func TestBuildWhereEmpty(t *testing.T) {
	where, args, err := buildWhere(nil, testColumns)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildWhereConjunction(t *testing.T) {
	conditions := []Condition{
		{Column: "date", Op: OpGte, Value: "2024-01-01"},
		{Column: "date", Op: OpLte, Value: "2024-12-31"},
		{Column: "status", Op: OpEq, Value: "Completed"},
	}

	where, args, err := buildWhere(conditions, testColumns)

	require.NoError(t, err)
	assert.Equal(t, " WHERE date >= $1 AND date <= $2 AND status = $3", where)
	assert.Equal(t, []interface{}{"2024-01-01", "2024-12-31", "Completed"}, args)
}

func TestBuildWhereNullAndLike(t *testing.T) {
	conditions := []Condition{
		{Column: "status", Op: OpNotNull},
		{Column: "name", Op: OpLike, Value: "%medicine%"},
	}

	where, args, err := buildWhere(conditions, testColumns)

	require.NoError(t, err)
	assert.Equal(t, " WHERE status IS NOT NULL AND name ILIKE $1", where)
	assert.Equal(t, []interface{}{"%medicine%"}, args)
}

func TestBuildWhereIn(t *testing.T) {
	conditions := []Condition{
		{Column: "status", Op: OpIn, Value: []interface{}{"Completed", "Enrolled"}},
	}

	where, args, err := buildWhere(conditions, testColumns)

	require.NoError(t, err)
	assert.Equal(t, " WHERE status IN ($1, $2)", where)
	assert.Len(t, args, 2)
}

func TestBuildWhereRejectsUnknownColumn(t *testing.T) {
	_, _, err := buildWhere([]Condition{{Column: "password", Op: OpEq, Value: "x"}}, testColumns)
	assert.Error(t, err)
}

func TestBuildWhereRejectsUnknownOperator(t *testing.T) {
	_, _, err := buildWhere([]Condition{{Column: "status", Op: Op("between"), Value: "x"}}, testColumns)
	assert.Error(t, err)
}

func TestBuildWhereRejectsEmptyInList(t *testing.T) {
	_, _, err := buildWhere([]Condition{{Column: "status", Op: OpIn, Value: []interface{}{}}}, testColumns)
	assert.Error(t, err)
}

func TestBuildOrder(t *testing.T) {
	assert.Equal(t, " ORDER BY date ASC", buildOrder(nil, testColumns, "date"))
	assert.Equal(t, " ORDER BY name DESC", buildOrder(&Sort{Column: "name", Desc: true}, testColumns, "date"))
	// unknown sort columns fall back to the default
	assert.Equal(t, " ORDER BY date ASC", buildOrder(&Sort{Column: "secret"}, testColumns, "date"))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 1000, clampLimit(0))
	assert.Equal(t, 1000, clampLimit(-5))
	assert.Equal(t, 1000, clampLimit(5000))
	assert.Equal(t, 250, clampLimit(250))
}
