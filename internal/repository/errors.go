package repository

import (
	"errors"

	"github.com/lib/pq"
)

const postgresUniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == postgresUniqueViolationCode
}
