package common

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrForbidden      = errors.New("not authorized to access this resource")
)

// PostgreSQL error classes the models translate into domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqInvalidText         = "22P02"
)

// UniqueViolation reports whether err is a unique constraint error on the named constraint.
func UniqueViolation(err error, constraint string) bool {
	return pqErrorIs(err, pqUniqueViolation, constraint)
}

// ForeignKeyViolation reports whether err is a foreign key constraint error on the named constraint.
func ForeignKeyViolation(err error, constraint string) bool {
	return pqErrorIs(err, pqForeignKeyViolation, constraint)
}

// InvalidTextRepresentation is what PostgreSQL returns for a malformed uuid literal.
func InvalidTextRepresentation(err error) bool {
	return pqErrorIs(err, pqInvalidText, "")
}

func pqErrorIs(err error, code, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}

	if string(pqErr.Code) != code {
		return false
	}

	return constraint == "" || pqErr.Constraint == constraint
}
