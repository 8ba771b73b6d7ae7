package engine

import (
	"errors"
	"fmt"

	"janawaaz-be/models"
)

var (
	// ErrInvalidCategory is returned for a submission whose category is
	// not one of the fixed set.
	ErrInvalidCategory = errors.New("engine: invalid category")

	// ErrInvalidLocation is returned for a submission whose coordinates
	// fall outside lat -90..90 / lng -180..180.
	ErrInvalidLocation = errors.New("engine: location out of range")

	// ErrInvalidStatus is returned for a staff status write outside the
	// known states.
	ErrInvalidStatus = errors.New("engine: invalid status")

	// ErrInvalidRating is returned when a confirmation carries a rating
	// outside 1..5.
	ErrInvalidRating = errors.New("engine: rating must be between 1 and 5")

	// ErrNotAwaitingFeedback is returned when confirm or reopen is called
	// on an issue that is not pending citizen confirmation.
	ErrNotAwaitingFeedback = errors.New("engine: issue is not awaiting citizen confirmation")
)

// DuplicateError rejects a submission that matches an existing recent issue
// of the same category within the duplicate radius. It carries the matched
// issue so the caller can offer the upvote path instead. It is an expected
// control-flow outcome, not a failure.
type DuplicateError struct {
	Existing models.Issue
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("engine: duplicate of issue %s", e.Existing.ID.Hex())
}
