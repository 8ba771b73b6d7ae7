// Package store owns the persistence boundary for issues and users. The
// engine talks to these interfaces only; any key-value or document engine
// can sit behind them.
package store

import (
	"context"
	"errors"

	"janawaaz-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("store: not found")

// IssueStore is the authoritative collection of issue records.
//
// Update applies fn to the current record as a single atomic
// read-modify-write step: concurrent updates to the same issue serialize,
// so counter increments are never lost. If fn returns an error the record
// is left untouched and the error is passed through.
type IssueStore interface {
	Insert(ctx context.Context, issue *models.Issue) error
	Get(ctx context.Context, id primitive.ObjectID) (models.Issue, error)
	All(ctx context.Context) ([]models.Issue, error)
	ByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Issue, error)
	Update(ctx context.Context, id primitive.ObjectID, fn func(*models.Issue) error) (models.Issue, error)
}

// UserStore holds user accounts. The issue engine only reads them.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id primitive.ObjectID) (models.User, error)
	ByEmail(ctx context.Context, email string) (models.User, error)
}
