package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryCategoryHasADepartment(t *testing.T) {
	assert.Len(t, Categories, 10)
	for _, category := range Categories {
		assert.True(t, category.IsValid())
		assert.NotEmpty(t, category.Department(), "category %q", category)
	}
	assert.False(t, IssueCategory("Alien Invasion").IsValid())
}

func TestStatusValidity(t *testing.T) {
	valid := []IssueStatus{Submitted, Verified, Acknowledged, InProgress, PendingConfirmation, Resolved, Rejected}
	assert.Len(t, valid, 7)
	for _, s := range valid {
		assert.True(t, s.IsValid(), "status %q", s)
	}
	assert.False(t, IssueStatus("closed").IsValid())
	assert.False(t, IssueStatus("").IsValid())
}
