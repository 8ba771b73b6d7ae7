package engine

import (
	"context"
	"testing"

	"janawaaz-be/models"
	"janawaaz-be/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNearbyIssuesRadiusBoundary(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	// center on the equator so the lat deltas below are exact in float64
	// and the inclusive threshold comparison is deterministic
	center := models.Location{Lat: 0, Lng: 77.2090, Address: "center"}

	inside, err := e.CreateIssue(ctx, CreateInput{
		Title: "inside", Description: "d", Category: models.Pothole,
		Location:    models.Location{Lat: center.Lat + 0.04, Lng: center.Lng, Address: "inside"},
		SubmittedBy: primitive.NewObjectID(),
	})
	require.NoError(t, err)

	onEdge, err := e.CreateIssue(ctx, CreateInput{
		Title: "edge", Description: "d", Category: models.GarbageOverflow,
		Location:    models.Location{Lat: center.Lat + 0.05, Lng: center.Lng, Address: "edge"},
		SubmittedBy: primitive.NewObjectID(),
	})
	require.NoError(t, err)

	_, err = e.CreateIssue(ctx, CreateInput{
		Title: "outside", Description: "d", Category: models.RoadDamage,
		Location:    models.Location{Lat: center.Lat + 0.06, Lng: center.Lng, Address: "outside"},
		SubmittedBy: primitive.NewObjectID(),
	})
	require.NoError(t, err)

	nearby, err := e.NearbyIssues(ctx, center.Lat, center.Lng, 5)
	require.NoError(t, err)
	require.Len(t, nearby, 2, "5km covers 0.05 degrees inclusive; 0.06 is out")

	ids := []primitive.ObjectID{nearby[0].ID, nearby[1].ID}
	assert.Contains(t, ids, inside.ID)
	assert.Contains(t, ids, onEdge.ID)
}

func TestNearbyUsesTheSameMetricAsDedup(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	// a point at 0.0004 degrees is both a duplicate candidate and nearby
	_, err := e.CreateIssue(ctx, CreateInput{
		Title: "a", Description: "d", Category: models.Pothole,
		Location:    models.Location{Lat: 28.6139, Lng: 77.2090, Address: "a"},
		SubmittedBy: primitive.NewObjectID(),
	})
	require.NoError(t, err)

	nearby, err := e.NearbyIssues(ctx, 28.6139+0.0004, 77.2090, 5)
	require.NoError(t, err)
	assert.Len(t, nearby, 1)

	_, err = e.CreateIssue(ctx, CreateInput{
		Title: "b", Description: "d", Category: models.Pothole,
		Location:    models.Location{Lat: 28.6139 + 0.0004, Lng: 77.2090, Address: "b"},
		SubmittedBy: primitive.NewObjectID(),
	})
	var dup *DuplicateError
	assert.ErrorAs(t, err, &dup)
}

func TestIssuesByUser(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	mk := func(by primitive.ObjectID, lat float64) {
		_, err := e.CreateIssue(ctx, CreateInput{
			Title: "t", Description: "d", Category: models.Pothole,
			Location:    models.Location{Lat: lat, Lng: 77.0, Address: "x"},
			SubmittedBy: by,
		})
		require.NoError(t, err)
	}
	mk(alice, 10)
	mk(bob, 20)
	mk(alice, 30)

	mine, err := e.IssuesByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, issue := range mine {
		assert.Equal(t, alice, issue.SubmittedBy)
	}
}

func TestAllIssuesSnapshotInInsertionOrder(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	for i, lat := range []float64{10, 20, 30} {
		_, err := e.CreateIssue(ctx, CreateInput{
			Title: string(rune('a' + i)), Description: "d", Category: models.Pothole,
			Location:    models.Location{Lat: lat, Lng: 77.0, Address: "x"},
			SubmittedBy: primitive.NewObjectID(),
		})
		require.NoError(t, err)
	}

	all, err := e.AllIssues(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Title)
	assert.Equal(t, "b", all[1].Title)
	assert.Equal(t, "c", all[2].Title)
}

func TestGetIssueNotFound(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.GetIssue(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
