package apperror

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// коды SQLSTATE, после которых транзакцию можно повторить
const (
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
)

type Kind string

const (
	KindValidation  Kind = "validation"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindForbidden   Kind = "forbidden"
	KindInternal    Kind = "internal"
	KindUnavailable Kind = "unavailable" // временная ошибка, запрос можно повторить
)

type Code string

const (
	MissingField         Code = "MissingField"
	InvalidTimeFormat    Code = "InvalidTimeFormat"
	InvalidDate          Code = "InvalidDate"
	InvalidStatus        Code = "InvalidStatus"
	InvalidData          Code = "InvalidData"
	NonPositiveDuration  Code = "NonPositiveDuration"
	EmployeeNotFound     Code = "EmployeeNotFound"
	ProjectNotFound      Code = "ProjectNotFound"
	LogNotFound          Code = "LogNotFound"
	NotFound             Code = "NotFound"
	OverlappingInterval  Code = "OverlappingInterval"
	DuplicateAssignment  Code = "DuplicateAssignment"
	ManagerNotAuthorized Code = "ManagerNotAuthorized"
	HierarchyCycle       Code = "HierarchyCycle"
	ConstraintViolation  Code = "ConstraintViolation"
	StorageError         Code = "StorageError"
	Busy                 Code = "Busy"
)

var codeKind = map[Code]Kind{
	MissingField:         KindValidation,
	InvalidTimeFormat:    KindValidation,
	InvalidDate:          KindValidation,
	InvalidStatus:        KindValidation,
	InvalidData:          KindValidation,
	NonPositiveDuration:  KindValidation,
	HierarchyCycle:       KindValidation,
	EmployeeNotFound:     KindNotFound,
	ProjectNotFound:      KindNotFound,
	LogNotFound:          KindNotFound,
	NotFound:             KindNotFound,
	OverlappingInterval:  KindConflict,
	DuplicateAssignment:  KindConflict,
	ConstraintViolation:  KindConflict,
	ManagerNotAuthorized: KindForbidden,
	StorageError:         KindInternal,
	Busy:                 KindUnavailable,
}

// Error - ошибка с кодом, сообщение безопасно отдавать клиенту
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(code Code, message string) *Error {
	return &Error{
		Kind:    kindOf(code),
		Code:    code,
		Message: message,
	}
}

func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(code Code, message string, err error) *Error {
	return &Error{
		Kind:    kindOf(code),
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func kindOf(code Code) Kind {
	if kind, ok := codeKind[code]; ok {
		return kind
	}
	return KindInternal
}

// As достает *Error из цепочки
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func Is(err error, code Code) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}

// FromStorage переводит ошибки БД в ошибки приложения, не раскрывая внутренности хранилища
func FromStorage(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Code: ConstraintViolation, Message: "запись уже существует", Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: KindValidation, Code: ConstraintViolation, Message: "ссылка на несуществующую запись", Err: err}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(NotFound, "запись не найдена", err)
	case isRetryable(err):
		return Wrap(Busy, "данные сейчас изменяются, повторите попытку", err)
	}
	return Wrap(StorageError, message, err)
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgDeadlockDetected || pgErr.Code == pgSerializationFailure
}
