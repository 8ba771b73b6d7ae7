package controllers

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"time"

	"janawaaz-be/engine"
	"janawaaz-be/models"
	"janawaaz-be/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueController exposes the issue engine over HTTP.
type IssueController struct {
	Engine *engine.Engine
}

func NewIssueController(e *engine.Engine) *IssueController {
	return &IssueController{Engine: e}
}

// callerID extracts the authenticated user's ObjectID set by the auth middleware.
func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func issueIDParam(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// writeEngineError maps engine errors onto HTTP responses. A duplicate is
// 409 with the existing issue id so the client can offer the upvote path.
func writeEngineError(c *gin.Context, err error) {
	var dup *engine.DuplicateError
	switch {
	case errors.As(err, &dup):
		c.JSON(http.StatusConflict, gin.H{
			"error":       "A similar issue was already reported nearby",
			"duplicateOf": dup.Existing.ID.Hex(),
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
	case errors.Is(err, engine.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
	case errors.Is(err, engine.ErrInvalidLocation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Location out of range"})
	case errors.Is(err, engine.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
	case errors.Is(err, engine.ErrInvalidRating):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
	case errors.Is(err, engine.ErrNotAwaitingFeedback):
		c.JSON(http.StatusConflict, gin.H{"error": "Issue is not awaiting citizen confirmation"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// CreateIssue handles a citizen submission
func (ic *IssueController) CreateIssue(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input struct {
		Title       string          `json:"title" binding:"required,max=200"`
		Description string          `json:"description" binding:"required,max=1000"`
		Category    string          `json:"category" binding:"required"`
		Location    models.Location `json:"location" binding:"required"`
		PhotoURL    *string         `json:"photoUrl,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.Engine.CreateIssue(c.Request.Context(), engine.CreateInput{
		Title:       input.Title,
		Description: input.Description,
		Category:    models.IssueCategory(input.Category),
		Location:    input.Location,
		PhotoURL:    input.PhotoURL,
		SubmittedBy: userID,
	})
	if err != nil {
		writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetAllIssues returns every issue in submission order
func (ic *IssueController) GetAllIssues(c *gin.Context) {
	issues, err := ic.Engine.AllIssues(c.Request.Context())
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GetIssue retrieves an issue by its ID
func (ic *IssueController) GetIssue(c *gin.Context) {
	id, ok := issueIDParam(c)
	if !ok {
		return
	}

	issue, err := ic.Engine.GetIssue(c.Request.Context(), id)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// GetMyIssues returns the authenticated user's submissions
func (ic *IssueController) GetMyIssues(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	issues, err := ic.Engine.IssuesByUser(c.Request.Context(), userID)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GetNearbyIssues returns issues within an approximate km radius of a point
func (ic *IssueController) GetNearbyIssues(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return
	}

	radiusKm, err := strconv.ParseFloat(c.DefaultQuery("radius", "5"), 64)
	if err != nil || radiusKm <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid radius"})
		return
	}

	issues, err := ic.Engine.NearbyIssues(c.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// UpvoteIssue adds one community upvote to an issue
func (ic *IssueController) UpvoteIssue(c *gin.Context) {
	id, ok := issueIDParam(c)
	if !ok {
		return
	}

	issue, err := ic.Engine.UpvoteIssue(c.Request.Context(), id)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// UpdateIssueStatus applies a staff status change
func (ic *IssueController) UpdateIssueStatus(c *gin.Context) {
	id, ok := issueIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Status     string  `json:"status" binding:"required"`
		AssignedTo *string `json:"assignedTo,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := ic.Engine.UpdateIssueStatus(c.Request.Context(), id, models.IssueStatus(input.Status), input.AssignedTo)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// ConfirmResolution lets the submitting citizen confirm a staff resolution
func (ic *IssueController) ConfirmResolution(c *gin.Context) {
	id, ok := issueIDParam(c)
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input struct {
		Rating  int     `json:"rating" binding:"required,min=1,max=5"`
		Comment *string `json:"comment,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !ic.callerIsSubmitter(c, id, userID) {
		return
	}

	issue, err := ic.Engine.ConfirmResolution(c.Request.Context(), id, input.Rating, input.Comment)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// ReopenIssue lets the submitting citizen send an issue back to staff
func (ic *IssueController) ReopenIssue(c *gin.Context) {
	id, ok := issueIDParam(c)
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var input struct {
		Comment *string `json:"comment,omitempty"`
	}
	// body is optional on reopen
	_ = c.ShouldBindJSON(&input)

	if !ic.callerIsSubmitter(c, id, userID) {
		return
	}

	issue, err := ic.Engine.ReopenIssue(c.Request.Context(), id, input.Comment)
	if err != nil {
		writeEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

func (ic *IssueController) callerIsSubmitter(c *gin.Context, id, userID primitive.ObjectID) bool {
	issue, err := ic.Engine.GetIssue(c.Request.Context(), id)
	if err != nil {
		writeEngineError(c, err)
		return false
	}
	if issue.SubmittedBy != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the submitting citizen can verify this resolution"})
		return false
	}
	return true
}

// RecentIssues returns the newest issues as lightweight map pins
func (ic *IssueController) RecentIssues(c *gin.Context) {
	const limit = 19

	issues, err := ic.Engine.AllIssues(c.Request.Context())
	if err != nil {
		writeEngineError(c, err)
		return
	}

	type pin struct {
		ID          string    `json:"id"`
		Title       string    `json:"title"`
		Lat         float64   `json:"lat"`
		Lng         float64   `json:"lng"`
		Address     string    `json:"address"`
		Category    string    `json:"category"`
		Status      string    `json:"status"`
		SubmittedAt time.Time `json:"submittedAt"`
	}

	start := 0
	if len(issues) > limit {
		start = len(issues) - limit
	}

	pins := make([]pin, 0, len(issues)-start)
	for i := len(issues) - 1; i >= start; i-- {
		issue := issues[i]
		pins = append(pins, pin{
			ID:          issue.ID.Hex(),
			Title:       issue.Title,
			Lat:         issue.Location.Lat,
			Lng:         issue.Location.Lng,
			Address:     issue.Location.Address,
			Category:    string(issue.Category),
			Status:      string(issue.Status),
			SubmittedAt: issue.SubmittedAt,
		})
	}

	c.JSON(http.StatusOK, pins)
}

// GetIssueAnalytics returns aggregate numbers for the staff dashboard
func (ic *IssueController) GetIssueAnalytics(c *gin.Context) {
	issues, err := ic.Engine.AllIssues(c.Request.Context())
	if err != nil {
		writeEngineError(c, err)
		return
	}

	byCategory := make(map[string]int)
	byStatus := make(map[string]int)
	totalUpvotes := 0
	openIssues := 0
	confirmedResolved := 0

	for _, issue := range issues {
		byCategory[string(issue.Category)]++
		byStatus[string(issue.Status)]++
		totalUpvotes += issue.CommunityUpvotes
		switch issue.Status {
		case models.Resolved, models.Rejected:
		default:
			openIssues++
		}
		if issue.IsTrulyResolved {
			confirmedResolved++
		}
	}

	// Last 7 days submission counts
	type dayCount struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	last7Days := make([]dayCount, 0, 7)
	now := time.Now()
	for i := 6; i >= 0; i-- {
		date := now.AddDate(0, 0, -i)
		day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		next := day.AddDate(0, 0, 1)

		count := 0
		for _, issue := range issues {
			if !issue.SubmittedAt.Before(day) && issue.SubmittedAt.Before(next) {
				count++
			}
		}
		last7Days = append(last7Days, dayCount{Date: day.Format("2006-01-02"), Count: count})
	}

	// Top upvoted issues
	type topIssue struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
		Upvotes  int    `json:"upvotes"`
	}
	ranked := make([]topIssue, 0, len(issues))
	for _, issue := range issues {
		ranked = append(ranked, topIssue{
			ID:       issue.ID.Hex(),
			Title:    issue.Title,
			Category: string(issue.Category),
			Upvotes:  issue.CommunityUpvotes,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Upvotes > ranked[j].Upvotes
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}

	c.JSON(http.StatusOK, gin.H{
		"issuesByCategory":  byCategory,
		"issuesByStatus":    byStatus,
		"last7Days":         last7Days,
		"topUpvotedIssues":  ranked,
		"totalIssues":       len(issues),
		"totalUpvotes":      totalUpvotes,
		"openIssues":        openIssues,
		"confirmedResolved": confirmedResolved,
	})
}
