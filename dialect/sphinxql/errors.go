package sphinxql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Statement configuration errors. They are reported when a statement is
// rendered, never when it is constructed.
var (
	// ErrMissingIndex is returned when a statement has no target index.
	ErrMissingIndex = errors.New("sphinxql: missing target index")

	// ErrEmptyValues is returned when an INSERT, REPLACE or UPDATE has no
	// column values.
	ErrEmptyValues = errors.New("sphinxql: empty value set")

	// ErrMissingWhere is returned when an UPDATE or DELETE has no condition.
	// searchd requires WHERE on both, and full-index writes are not emulated.
	ErrMissingWhere = errors.New("sphinxql: statement requires a WHERE condition")

	// ErrUnsupported is returned when a statement uses a construct that
	// searchd does not accept.
	ErrUnsupported = errors.New("sphinxql: unsupported construct")
)

// mysqlParseError is the error number searchd uses for almost every
// rejected statement.
const mysqlParseError = 1064

// IsSyntaxError reports whether searchd rejected the statement as malformed.
func IsSyntaxError(err error) bool {
	return matchServerError(err, "syntax error", "P01:")
}

// IsUnknownIndex reports whether the statement targeted an index the daemon
// does not serve.
func IsUnknownIndex(err error) bool {
	return matchServerError(err, "unknown local index", "no such index", "unknown index")
}

// IsDuplicateID reports whether an INSERT hit an existing document id.
func IsDuplicateID(err error) bool {
	return matchServerError(err, "duplicate id")
}

func matchServerError(err error, fragments ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		if me.Number != mysqlParseError {
			return false
		}
		msg = me.Message
	}
	msg = strings.ToLower(msg)
	for _, f := range fragments {
		if strings.Contains(msg, strings.ToLower(f)) {
			return true
		}
	}
	return false
}
