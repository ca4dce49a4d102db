package apperror

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAppError(t *testing.T) {
	t.Run(`kind is derived from code`, func(t *testing.T) {
		require.Equal(t, KindValidation, New(MissingField, "x").Kind)
		require.Equal(t, KindNotFound, New(LogNotFound, "x").Kind)
		require.Equal(t, KindConflict, New(OverlappingInterval, "x").Kind)
		require.Equal(t, KindForbidden, New(ManagerNotAuthorized, "x").Kind)
		require.Equal(t, KindInternal, New(Code("Unknown"), "x").Kind)
		require.Equal(t, KindUnavailable, New(Busy, "x").Kind)
	})

	t.Run(`As and Is through wrapping`, func(t *testing.T) {
		err := errors.Wrap(New(ProjectNotFound, "проект не найден"), "context")
		appErr, ok := As(err)
		require.True(t, ok)
		require.Equal(t, ProjectNotFound, appErr.Code)
		require.True(t, Is(err, ProjectNotFound))
		require.False(t, Is(err, LogNotFound))
		require.False(t, Is(errors.New("plain"), LogNotFound))
	})

	t.Run(`FromStorage translation`, func(t *testing.T) {
		require.Nil(t, FromStorage(nil, "x"))

		appErr, ok := As(FromStorage(gorm.ErrDuplicatedKey, "x"))
		require.True(t, ok)
		require.Equal(t, KindConflict, appErr.Kind)
		require.Equal(t, ConstraintViolation, appErr.Code)

		appErr, ok = As(FromStorage(errors.Wrap(gorm.ErrForeignKeyViolated, "insert"), "x"))
		require.True(t, ok)
		require.Equal(t, KindValidation, appErr.Kind)

		appErr, ok = As(FromStorage(errors.New("connection refused"), "ошибка БД"))
		require.True(t, ok)
		require.Equal(t, StorageError, appErr.Code)
		require.Equal(t, "ошибка БД", appErr.Message)

		deadlock := errors.Wrap(&pgconn.PgError{Code: "40P01", Message: "deadlock detected"}, "ошибка блокировки")
		appErr, ok = As(FromStorage(deadlock, "x"))
		require.True(t, ok)
		require.Equal(t, Busy, appErr.Code)
		require.Equal(t, KindUnavailable, appErr.Kind)

		appErr, ok = As(FromStorage(&pgconn.PgError{Code: "23514"}, "ошибка БД"))
		require.True(t, ok)
		require.Equal(t, StorageError, appErr.Code)

		original := New(OverlappingInterval, "пересечение")
		require.Equal(t, error(original), FromStorage(original, "x"))
	})
}
