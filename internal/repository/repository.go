// Package repository is the durable store behind gigs, bids, users and
// notifications.
//
// Hire serialization lives here: a hire runs inside WithTx, reads the gig
// with LockGig (SELECT ... FOR UPDATE on postgres) and flips it with
// AssignGig, a compare-and-set UPDATE ... WHERE status = 'open'. The CAS row
// count is the serialization point; the partial unique index on
// bids(gig_id) WHERE status = 'hired' backs it at the schema level.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/gigflow/internal/apperrors"
)

type Repository struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// WithTx runs fn in one transaction. fn must only use the Repository it is
// given; returning an error rolls everything back.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{DB: tx})
	})
	if err != nil {
		return classify("transaction", err)
	}
	return nil
}

func (r *Repository) isPostgres() bool {
	return r.DB.Dialector.Name() == "postgres"
}

var domainKinds = []error{
	apperrors.ErrNotFound,
	apperrors.ErrForbidden,
	apperrors.ErrConflict,
	apperrors.ErrInvalid,
	apperrors.ErrUnauthorized,
	apperrors.ErrTransient,
}

// classify leaves domain errors alone and marks everything else transient.
func classify(op string, err error) error {
	for _, kind := range domainKinds {
		if errors.Is(err, kind) {
			return err
		}
	}
	return apperrors.Transient(op, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "SQLSTATE 23505")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
