package engine

import (
	"context"
	"time"

	"janawaaz-be/geo"
	"janawaaz-be/models"
)

// duplicateWindow is how long an existing issue suppresses new submissions
// at the same spot.
const duplicateWindow = 48 * time.Hour

// checkDuplicate scans the full issue set and returns *DuplicateError when
// an existing issue of the same category sits within the duplicate radius
// and was submitted inside the recency window. The scan is exhaustive so
// there are no false negatives inside the threshold.
func (e *Engine) checkDuplicate(ctx context.Context, loc models.Location, category models.IssueCategory) error {
	existing, err := e.issues.All(ctx)
	if err != nil {
		return err
	}

	now := e.now()
	candidate := geo.Point{Lat: loc.Lat, Lng: loc.Lng}
	for _, issue := range existing {
		if issue.Category != category {
			continue
		}
		if now.Sub(issue.SubmittedAt) >= duplicateWindow {
			continue
		}
		p := geo.Point{Lat: issue.Location.Lat, Lng: issue.Location.Lng}
		if e.metric.Distance(candidate, p) <= geo.DuplicateRadiusDeg {
			return &DuplicateError{Existing: issue}
		}
	}
	return nil
}
