package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"janawaaz-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newIssue(by primitive.ObjectID, title string) *models.Issue {
	return &models.Issue{
		Title:       title,
		Description: "test",
		Category:    models.Pothole,
		Location:    models.Location{Lat: 28.6139, Lng: 77.2090, Address: "Main Street"},
		Status:      models.Submitted,
		SubmittedBy: by,
		SubmittedAt: time.Now(),
		Department:  models.Pothole.Department(),
	}
}

func TestMemoryInsertAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	issue := newIssue(primitive.NewObjectID(), "pothole")
	require.NoError(t, m.Insert(ctx, issue))
	require.False(t, issue.ID.IsZero())

	got, err := m.Get(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, "pothole", got.Title)

	_, err = m.Get(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryAllPreservesInsertionOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	by := primitive.NewObjectID()

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		require.NoError(t, m.Insert(ctx, newIssue(by, title)))
	}

	all, err := m.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, title := range titles {
		assert.Equal(t, title, all[i].Title)
	}
}

func TestMemoryByUser(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	require.NoError(t, m.Insert(ctx, newIssue(alice, "a1")))
	require.NoError(t, m.Insert(ctx, newIssue(bob, "b1")))
	require.NoError(t, m.Insert(ctx, newIssue(alice, "a2")))

	mine, err := m.ByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a1", mine[0].Title)
	assert.Equal(t, "a2", mine[1].Title)
}

func TestMemoryUpdateIsAtomic(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	issue := newIssue(primitive.NewObjectID(), "pothole")
	require.NoError(t, m.Insert(ctx, issue))

	var wg sync.WaitGroup
	const n = 50
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Update(ctx, issue.ID, func(is *models.Issue) error {
				is.CommunityUpvotes++
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := m.Get(ctx, issue.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.CommunityUpvotes)
}

func TestMemoryUpdateErrorLeavesRecordUntouched(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	issue := newIssue(primitive.NewObjectID(), "pothole")
	require.NoError(t, m.Insert(ctx, issue))

	boom := assert.AnError
	_, err := m.Update(ctx, issue.ID, func(is *models.Issue) error {
		is.CommunityUpvotes = 99
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ := m.Get(ctx, issue.ID)
	assert.Equal(t, 0, got.CommunityUpvotes)
}

func TestMemoryUsersByEmail(t *testing.T) {
	m := NewMemoryUsers()
	ctx := context.Background()

	user := &models.User{Name: "Rajesh Kumar", Email: "rajesh@example.com", Phone: "+91-9876543210"}
	require.NoError(t, m.Insert(ctx, user))

	got, err := m.ByEmail(ctx, "RAJESH@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = m.ByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
