package engine

import (
	"context"
	"testing"
	"time"

	"janawaaz-be/models"
	"janawaaz-be/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// movableClock lets a test advance engine time between submissions.
type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

func (c *movableClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func dedupEngine(t *testing.T) (*Engine, *movableClock) {
	t.Helper()
	clock := &movableClock{now: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
	return New(store.NewMemory(), WithClock(clock.Now)), clock
}

func create(e *Engine, category models.IssueCategory, lat, lng float64) (models.Issue, error) {
	return e.CreateIssue(context.Background(), CreateInput{
		Title:       "report",
		Description: "details",
		Category:    category,
		Location:    models.Location{Lat: lat, Lng: lng, Address: "New Delhi"},
		SubmittedBy: primitive.NewObjectID(),
	})
}

func TestDuplicateWithinRadiusAndWindow(t *testing.T) {
	e, clock := dedupEngine(t)

	first, err := create(e, models.Pothole, 28.6139, 77.2090)
	require.NoError(t, err)

	clock.Advance(time.Hour)

	_, err = create(e, models.Pothole, 28.6140, 77.2091)
	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, first.ID, dup.Existing.ID)

	// nothing was created on the rejected path
	all, err := e.AllIssues(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestDifferentCategoryIsNotADuplicate(t *testing.T) {
	e, clock := dedupEngine(t)

	_, err := create(e, models.Pothole, 28.6139, 77.2090)
	require.NoError(t, err)

	clock.Advance(time.Hour)

	got, err := create(e, models.GarbageOverflow, 28.6139, 77.2090)
	require.NoError(t, err)
	assert.Equal(t, models.Submitted, got.Status)
}

func TestBeyondRadiusIsNotADuplicate(t *testing.T) {
	e, _ := dedupEngine(t)

	_, err := create(e, models.Pothole, 28.6139, 77.2090)
	require.NoError(t, err)

	// 0.001 degrees north, double the duplicate radius
	_, err = create(e, models.Pothole, 28.6149, 77.2090)
	assert.NoError(t, err)
}

func TestWindowExpiryAllowsResubmission(t *testing.T) {
	e, clock := dedupEngine(t)

	_, err := create(e, models.Pothole, 28.6139, 77.2090)
	require.NoError(t, err)

	clock.Advance(47 * time.Hour)
	_, err = create(e, models.Pothole, 28.6139, 77.2090)
	var dup *DuplicateError
	assert.ErrorAs(t, err, &dup, "47h is still inside the window")

	clock.Advance(time.Hour)
	_, err = create(e, models.Pothole, 28.6139, 77.2090)
	assert.NoError(t, err, "48h on the dot is outside the window")
}

func TestExactRadiusBoundaryIsADuplicate(t *testing.T) {
	e, _ := dedupEngine(t)

	// equator base so the 0.0005 delta is exact in float64
	_, err := create(e, models.Pothole, 0.0, 77.0)
	require.NoError(t, err)

	// exactly 0.0005 degrees away: threshold is inclusive
	_, err = create(e, models.Pothole, 0.0005, 77.0)
	var dup *DuplicateError
	assert.ErrorAs(t, err, &dup)
}

func TestDedupScansWholeSetNotJustRecentTail(t *testing.T) {
	e, clock := dedupEngine(t)

	// an old issue, then a fresh one elsewhere, then a fresh match for the old spot
	_, err := create(e, models.Pothole, 28.6139, 77.2090)
	require.NoError(t, err)

	clock.Advance(10 * time.Hour)
	_, err = create(e, models.Pothole, 28.70, 77.30)
	require.NoError(t, err)

	_, err = create(e, models.Pothole, 28.6139, 77.2090)
	var dup *DuplicateError
	assert.ErrorAs(t, err, &dup)
}
