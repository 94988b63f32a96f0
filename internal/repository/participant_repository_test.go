package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trainops/analytics-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func participantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"member_number", "prefix", "first_name", "middle_name", "last_name", "suffix",
		"status_id", "company", "email", "city", "state_province", "country", "postal_code", "classes_taken",
	})
}

func TestParticipantRepositoryPage(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	mock.ExpectQuery("FROM participants ORDER BY member_number ASC LIMIT 100 OFFSET 0").
		WillReturnRows(participantRows().
			AddRow("M-001", "", "Jane", "", "Doe", "", 1, "", "jane@example.com", "Denver", "CO", "United States", "80202", 12).
			AddRow("M-002", "", "John", "", "Smith", "", 2, "", "", "", "", "", "", 0))

	participants, err := repo.Page(context.Background(), PageQuery{Limit: 100})

	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, models.ParticipantID("M-001"), participants[0].MemberNumber)
	assert.Equal(t, "Jane", participants[0].FirstName)
	assert.Equal(t, 12, participants[0].ClassesTaken)
	assert.True(t, participants[0].Active())
	assert.False(t, participants[1].Active())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryPageOffset(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	mock.ExpectQuery("FROM participants ORDER BY member_number ASC LIMIT 50 OFFSET 150").
		WillReturnRows(participantRows())

	participants, err := repo.Page(context.Background(), PageQuery{Offset: 150, Limit: 50})

	require.NoError(t, err)
	assert.Empty(t, participants)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepositoryPageRejectsUnknownFilter(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	_, err := repo.Page(context.Background(), PageQuery{
		Conditions: []Condition{{Column: "ssn", Op: OpEq, Value: "x"}},
		Limit:      10,
	})

	assert.Error(t, err)
}

func TestParticipantRepositoryCount(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewParticipantRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM participants WHERE status_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.Count(context.Background(), []Condition{{Column: "status_id", Op: OpEq, Value: 1}})

	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
