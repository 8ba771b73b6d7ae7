package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IssueCategory enum
type IssueCategory string

const (
	Pothole              IssueCategory = "Pothole"
	GarbageOverflow      IssueCategory = "Garbage Overflow"
	BrokenStreetlight    IssueCategory = "Broken Streetlight"
	WaterLeakage         IssueCategory = "Water Leakage"
	DrainageProblem      IssueCategory = "Drainage Problem"
	RoadDamage           IssueCategory = "Road Damage"
	PublicToiletIssue    IssueCategory = "Public Toilet Issue"
	TrafficSignalProblem IssueCategory = "Traffic Signal Problem"
	IllegalConstruction  IssueCategory = "Illegal Construction"
	OtherCategory        IssueCategory = "Other"
)

// Categories lists every valid issue category.
var Categories = []IssueCategory{
	Pothole,
	GarbageOverflow,
	BrokenStreetlight,
	WaterLeakage,
	DrainageProblem,
	RoadDamage,
	PublicToiletIssue,
	TrafficSignalProblem,
	IllegalConstruction,
	OtherCategory,
}

// Departments maps each category to the municipal department responsible
// for it. The department is stamped onto the issue at creation and never
// recomputed afterwards.
var Departments = map[IssueCategory]string{
	Pothole:              "Public Works Department",
	GarbageOverflow:      "Sanitation Department",
	BrokenStreetlight:    "Electrical Department",
	WaterLeakage:         "Water Department",
	DrainageProblem:      "Public Works Department",
	RoadDamage:           "Public Works Department",
	PublicToiletIssue:    "Sanitation Department",
	TrafficSignalProblem: "Traffic Department",
	IllegalConstruction:  "Urban Planning Department",
	OtherCategory:        "General Administration",
}

// IsValid reports whether the category is one of the fixed set.
func (c IssueCategory) IsValid() bool {
	_, ok := Departments[c]
	return ok
}

// Department returns the responsible municipal department for the category.
func (c IssueCategory) Department() string {
	return Departments[c]
}

// IssueStatus enum
type IssueStatus string

const (
	Submitted           IssueStatus = "submitted"
	Verified            IssueStatus = "verified"
	Acknowledged        IssueStatus = "acknowledged"
	InProgress          IssueStatus = "in-progress"
	PendingConfirmation IssueStatus = "pending-confirmation"
	Resolved            IssueStatus = "resolved"
	Rejected            IssueStatus = "rejected"
)

// IsValid reports whether the status is one of the seven known states.
func (s IssueStatus) IsValid() bool {
	switch s {
	case Submitted, Verified, Acknowledged, InProgress, PendingConfirmation, Resolved, Rejected:
		return true
	}
	return false
}

// Location is where an issue was reported. Set once at creation.
type Location struct {
	Lat     float64 `bson:"lat" json:"lat" binding:"gte=-90,lte=90"`
	Lng     float64 `bson:"lng" json:"lng" binding:"gte=-180,lte=180"`
	Address string  `bson:"address" json:"address"`
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	Category         IssueCategory      `bson:"category" json:"category"`
	Location         Location           `bson:"location" json:"location"`
	PhotoURL         *string            `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	Status           IssueStatus        `bson:"status" json:"status"`
	CommunityUpvotes int                `bson:"communityUpvotes" json:"communityUpvotes"`
	SubmittedBy      primitive.ObjectID `bson:"submittedBy" json:"submittedBy"`
	SubmittedAt      time.Time          `bson:"submittedAt" json:"submittedAt"`
	AssignedTo       *string            `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Department       string             `bson:"department" json:"department"`
	ResolutionRating *int               `bson:"resolutionRating,omitempty" json:"resolutionRating,omitempty"`
	FeedbackComment  *string            `bson:"feedbackComment,omitempty" json:"feedbackComment,omitempty"`
	ResolvedAt       *time.Time         `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
	IsTrulyResolved  bool               `bson:"isTrulyResolved" json:"isTrulyResolved"`

	// Rev is the optimistic concurrency token used by the Mongo store.
	Rev int64 `bson:"rev" json:"-"`
}
