package store

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound 表示查無資料列
var ErrNotFound = errors.New("not found")

// uniqueViolationCode is the SQLSTATE for unique_violation.
const uniqueViolationCode = "23505"

// newUUID 產生主鍵，測試可覆寫此變數
var newUUID = uuid.NewString

// IsUniqueViolation reports whether err is a postgres unique-constraint error.
// The store constraint is the authoritative conflict signal; callers must not
// rely solely on a prior existence check.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
