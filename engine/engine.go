// Package engine owns the issue lifecycle: creation with duplicate
// suppression, upvote-driven promotion, staff status changes, and the
// citizen confirm/reopen loop. No other component writes issue status.
package engine

import (
	"context"
	"strings"
	"time"

	"janawaaz-be/geo"
	"janawaaz-be/models"
	"janawaaz-be/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// verifyThreshold is the community upvote count at which a submitted issue
// is auto-promoted to verified.
const verifyThreshold = 5

// Engine drives every issue mutation and query.
type Engine struct {
	issues store.IssueStore
	metric geo.Metric
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithMetric overrides the distance strategy. Dedup and nearby queries
// always share the one configured metric.
func WithMetric(m geo.Metric) Option {
	return func(e *Engine) { e.metric = m }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine over the given issue store. The default distance
// strategy is the planar degree approximation.
func New(issues store.IssueStore, opts ...Option) *Engine {
	e := &Engine{
		issues: issues,
		metric: geo.PlanarDegrees{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateInput carries a citizen submission.
type CreateInput struct {
	Title       string
	Description string
	Category    models.IssueCategory
	Location    models.Location
	PhotoURL    *string
	SubmittedBy primitive.ObjectID
}

// CreateIssue validates the submission, runs the duplicate check against
// the full existing issue set, and persists a new record in the submitted
// state. On a duplicate hit nothing is created and a *DuplicateError is
// returned.
func (e *Engine) CreateIssue(ctx context.Context, in CreateInput) (models.Issue, error) {
	if !in.Category.IsValid() {
		return models.Issue{}, ErrInvalidCategory
	}
	if in.Location.Lat < -90 || in.Location.Lat > 90 ||
		in.Location.Lng < -180 || in.Location.Lng > 180 {
		return models.Issue{}, ErrInvalidLocation
	}

	if err := e.checkDuplicate(ctx, in.Location, in.Category); err != nil {
		return models.Issue{}, err
	}

	issue := models.Issue{
		Title:            in.Title,
		Description:      in.Description,
		Category:         in.Category,
		Location:         in.Location,
		PhotoURL:         in.PhotoURL,
		Status:           models.Submitted,
		CommunityUpvotes: 0,
		SubmittedBy:      in.SubmittedBy,
		SubmittedAt:      e.now(),
		Department:       in.Category.Department(),
	}
	if err := e.issues.Insert(ctx, &issue); err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

// UpvoteIssue adds one community upvote. Reaching the threshold while still
// in submitted promotes the issue to verified; past that the counter keeps
// growing but the status rule never fires again.
func (e *Engine) UpvoteIssue(ctx context.Context, id primitive.ObjectID) (models.Issue, error) {
	return e.issues.Update(ctx, id, func(issue *models.Issue) error {
		issue.CommunityUpvotes++
		if issue.Status == models.Submitted && issue.CommunityUpvotes >= verifyThreshold {
			issue.Status = models.Verified
		}
		return nil
	})
}

// UpdateIssueStatus applies a staff status change. Staff writes are
// coarse-grained: any valid status is accepted from any state. A staff
// "resolved" write is stored as pending-confirmation; only citizen
// confirmation produces a stored resolved.
func (e *Engine) UpdateIssueStatus(ctx context.Context, id primitive.ObjectID, status models.IssueStatus, assignedTo *string) (models.Issue, error) {
	if !status.IsValid() {
		return models.Issue{}, ErrInvalidStatus
	}
	if status == models.Resolved {
		status = models.PendingConfirmation
	}

	return e.issues.Update(ctx, id, func(issue *models.Issue) error {
		issue.Status = status
		if assignedTo != nil && *assignedTo != "" {
			issue.AssignedTo = assignedTo
		}
		if issue.IsTrulyResolved {
			// staff reopened a confirmed issue; drop the stale feedback
			issue.IsTrulyResolved = false
			issue.ResolutionRating = nil
			issue.ResolvedAt = nil
		}
		return nil
	})
}

// ConfirmResolution is the citizen closing the loop on a staff-resolved
// issue: it requires pending-confirmation and a rating in 1..5, and stamps
// the rating, optional comment, and resolution time.
func (e *Engine) ConfirmResolution(ctx context.Context, id primitive.ObjectID, rating int, comment *string) (models.Issue, error) {
	if rating < 1 || rating > 5 {
		return models.Issue{}, ErrInvalidRating
	}

	return e.issues.Update(ctx, id, func(issue *models.Issue) error {
		if issue.Status != models.PendingConfirmation {
			return ErrNotAwaitingFeedback
		}
		now := e.now()
		issue.Status = models.Resolved
		issue.IsTrulyResolved = true
		issue.ResolutionRating = &rating
		issue.FeedbackComment = trimmedOrNil(comment)
		issue.ResolvedAt = &now
		return nil
	})
}

// ReopenIssue is the citizen rejecting a staff resolution: the issue goes
// back to in-progress, the rating and resolution time are cleared, and an
// optional comment is kept.
func (e *Engine) ReopenIssue(ctx context.Context, id primitive.ObjectID, comment *string) (models.Issue, error) {
	return e.issues.Update(ctx, id, func(issue *models.Issue) error {
		if issue.Status != models.PendingConfirmation {
			return ErrNotAwaitingFeedback
		}
		issue.Status = models.InProgress
		issue.IsTrulyResolved = false
		issue.ResolutionRating = nil
		issue.ResolvedAt = nil
		if c := trimmedOrNil(comment); c != nil {
			issue.FeedbackComment = c
		}
		return nil
	})
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
