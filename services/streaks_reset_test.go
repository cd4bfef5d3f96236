package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/heatmapp/heatmapp/models"
)

func maxDateRows(t *time.Time) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"MAX(local_date)"})
	if t == nil {
		rows.AddRow(nil)
	} else {
		rows.AddRow(*t)
	}
	return rows
}

func TestResetStreaksSweep(t *testing.T) {
	db, mock := newMockDB(t)

	yesterday := models.Today().AddDays(-1)
	longAgo := models.Today().AddDays(-10)

	// Two users carry a streak: user 1 went quiet, user 2 posted yesterday.
	activeUsers := userRows(1, 10, 4).AddRow(
		2, "bia", "bia@example.com", "x", "Bia", "Costa", 30, 7, nil, time.Now(), time.Now(),
	)
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE streak <> 0").WillReturnRows(activeUsers)

	// user 1: last activity well before the reference day -> reset. The
	// single-statement UPDATE still runs inside gorm's default transaction.
	mock.ExpectQuery("SELECT MAX\\(local_date\\) FROM `posts`").WillReturnRows(maxDateRows(&longAgo.Time))
	mock.ExpectQuery("SELECT MAX\\(local_date\\) FROM `noise_posts`").WillReturnRows(maxDateRows(nil))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// user 2: posted on the reference day -> untouched
	mock.ExpectQuery("SELECT MAX\\(local_date\\) FROM `posts`").WillReturnRows(maxDateRows(nil))
	mock.ExpectQuery("SELECT MAX\\(local_date\\) FROM `noise_posts`").WillReturnRows(maxDateRows(&yesterday.Time))

	result, err := ResetStreaks(db)
	require.NoError(t, err)
	require.True(t, result.OK)
	require.Equal(t, 1, result.Updated)
	require.True(t, result.Yesterday.Equal(yesterday))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetStreaksNothingToDo(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `users` WHERE streak <> 0").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "coins", "streak"}))

	result, err := ResetStreaks(db)
	require.NoError(t, err)
	require.Zero(t, result.Updated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetStreaksRefusesOverlap(t *testing.T) {
	resetMu.Lock()
	defer resetMu.Unlock()

	_, err := ResetStreaks(nil)
	require.ErrorIs(t, err, ErrResetInProgress)
}
