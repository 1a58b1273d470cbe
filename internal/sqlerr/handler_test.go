package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virilis/backend/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleError(t *testing.T) {
	t.Run("foreign key violation", func(t *testing.T) {
		err := HandleError(fmt.Errorf("insert reminder: %w", &pgconn.PgError{
			Code:       "23503",
			Severity:   "ERROR",
			TableName:  "reminders",
			ColumnName: "user_id",
		}))

		httpErr := asHTTPError(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "REMINDER_NOT_FOUND", httpErr.Code)
		assert.Equal(t, "The referenced User does not exist", httpErr.Message)
	})

	t.Run("unique violation names the column", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{
			Code:           "23505",
			TableName:      "users",
			ConstraintName: "users_email_key",
		})

		httpErr := asHTTPError(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A User with this Email already exists", httpErr.Message)
	})

	t.Run("not null violation carries field error", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{
			Code:       "23502",
			TableName:  "habits",
			ColumnName: "category",
		})

		httpErr := asHTTPError(t, err)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, "category", httpErr.Errors[0].Field)
	})

	t.Run("check violation", func(t *testing.T) {
		err := HandleError(&pgconn.PgError{
			Code:       "23514",
			TableName:  "semen_reports",
			ColumnName: "motility",
		})

		httpErr := asHTTPError(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "The Motility value does not meet required conditions", httpErr.Message)
	})

	t.Run("no rows is not found", func(t *testing.T) {
		httpErr := asHTTPError(t, HandleError(fmt.Errorf("get goal: %w", pgx.ErrNoRows)))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
	})

	t.Run("unknown error hides details", func(t *testing.T) {
		httpErr := asHTTPError(t, HandleError(errors.New("dial tcp 10.0.0.5:5432: connection refused")))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.NotContains(t, httpErr.Message, "10.0.0.5")
	})

	t.Run("http errors pass through", func(t *testing.T) {
		original := errs.NewNotFoundError("Goal not found", false, nil)
		assert.Same(t, original, HandleError(original))
	})
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: "23505"})

	assert.Equal(t, UniqueViolation, ErrCode(fmt.Errorf("wrap: %w", converted)))
	assert.Equal(t, ForeignKeyViolation, ErrCode(fmt.Errorf("create reminder: %w", &pgconn.PgError{Code: "23503"})))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("weird"))
}
