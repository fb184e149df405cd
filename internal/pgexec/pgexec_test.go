package pgexec

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestExecReportsRowsAffected(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("DELETE FROM t_1").WillReturnResult(sqlmock.NewResult(0, 1))

	db := wrap(conn)
	n, err := db.Exec(context.Background(), "DELETE FROM t_1 WHERE (t_1.f_1 = 1)")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryReturnsRows(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"f_1"}).AddRow(1))

	db := wrap(conn)
	rows, err := db.Query(context.Background(), "SELECT t_1.f_1 FROM t_1")
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var id int
	require.NoError(t, rows.Scan(&id))
	require.Equal(t, 1, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExecWrapsDriverError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectExec("INSERT INTO t_1").WillReturnError(context.DeadlineExceeded)

	db := wrap(conn)
	_, err = db.Exec(context.Background(), "INSERT INTO t_1 DEFAULT VALUES")
	require.Error(t, err)
}
