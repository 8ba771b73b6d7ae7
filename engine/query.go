package engine

import (
	"context"

	"janawaaz-be/geo"
	"janawaaz-be/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetIssue returns a single issue snapshot.
func (e *Engine) GetIssue(ctx context.Context, id primitive.ObjectID) (models.Issue, error) {
	return e.issues.Get(ctx, id)
}

// AllIssues returns every issue in insertion order.
func (e *Engine) AllIssues(ctx context.Context) ([]models.Issue, error) {
	return e.issues.All(ctx)
}

// IssuesByUser returns the issues a given citizen submitted.
func (e *Engine) IssuesByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Issue, error) {
	return e.issues.ByUser(ctx, userID)
}

// NearbyIssues returns the issues within roughly radiusKm of the given
// point. The filter threshold is radiusKm * DegreesPerKm over the same
// metric duplicate detection uses.
func (e *Engine) NearbyIssues(ctx context.Context, lat, lng, radiusKm float64) ([]models.Issue, error) {
	all, err := e.issues.All(ctx)
	if err != nil {
		return nil, err
	}

	center := geo.Point{Lat: lat, Lng: lng}
	maxDist := radiusKm * geo.DegreesPerKm

	nearby := make([]models.Issue, 0)
	for _, issue := range all {
		p := geo.Point{Lat: issue.Location.Lat, Lng: issue.Location.Lng}
		if e.metric.Distance(center, p) <= maxDist {
			nearby = append(nearby, issue)
		}
	}
	return nearby, nil
}
