package postgres

import (
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	domainerrors "vitrina/internal/domain/errors"
	"vitrina/internal/domain/repository"
)

const (
	sqlStateUniqueViolation = "23505"
	sqlStateCheckViolation  = "23514"
)

// constraintErrors maps the constraint violations of one table to domain errors. A nil
// field leaves that violation as a wrapped driver error.
type constraintErrors struct {
	unique error
	check  error
}

//nolint:gochecknoglobals
var (
	accountConstraints  = constraintErrors{unique: repository.ErrDuplicateEmail}
	businessConstraints = constraintErrors{check: domainerrors.ErrInvalidAdTier}
)

// translate returns nil for a nil err, the mapped domain error for a known violation and
// err wrapped with msg otherwise.
func (c constraintErrors) translate(err error, msg string) error {
	if err == nil {
		return nil
	}

	switch sqlState(err) {
	case sqlStateUniqueViolation:
		if c.unique != nil {
			return c.unique
		}
	case sqlStateCheckViolation:
		if c.check != nil {
			return c.check
		}
	}

	return errors.Wrap(err, msg)
}

// sqlState extracts the PostgreSQL error code from GORM's translated errors, a pgconn
// error, or the driver message when error translation is off.
func sqlState(err error) string {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return sqlStateUniqueViolation
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return sqlStateCheckViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	msg := err.Error()
	for _, code := range []string{sqlStateUniqueViolation, sqlStateCheckViolation} {
		if strings.Contains(msg, "SQLSTATE "+code) {
			return code
		}
	}
	if strings.Contains(strings.ToLower(msg), "duplicate key") {
		return sqlStateUniqueViolation
	}

	return ""
}
