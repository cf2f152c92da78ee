package repository

import (
	"strings"

	"studyBuddy/internal/models/task"
)

type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, bool) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case SortNone:
		return SortNone, true
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	}
	return "", false
}

// ListFilter narrows a task listing. The zero value lists everything in
// insertion order.
type ListFilter struct {
	Status task.Status
	Sort   SortDirection // by createdAt
}
