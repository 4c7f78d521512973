package models

import "time"

// LearningItem represents a unit of knowledge under spaced-repetition tracking
type LearningItem struct {
	ID      string `json:"id" db:"id"`
	Subject string `json:"subject" db:"subject"`
	Title   string `json:"title" db:"title"`
	Content string `json:"content" db:"content"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Review tracking. ReviewCount only counts scheduled reviews; manual
	// reviews are tallied separately and never move the schedule.
	ReviewCount         int  `json:"review_count" db:"review_count"`
	ManualReviewCount   int  `json:"manual_review_count" db:"manual_review_count"`
	CurrentIntervalDays int  `json:"current_interval_days" db:"current_interval_days"`
	NextReviewDate      Date `json:"next_review_date" db:"next_review_date"`

	IsDeleted bool `json:"is_deleted" db:"is_deleted"`
}

// ItemList is the payload of the item listing endpoint.
type ItemList struct {
	Items []LearningItem `json:"items"`
	Total int            `json:"total"`
}

// DueItems is the payload of the due-items endpoint.
type DueItems struct {
	Items     []LearningItem `json:"items"`
	TotalDue  int            `json:"total_due"`
	BySubject map[string]int `json:"by_subject"`
}

// ReviewStats aggregates review state across all non-deleted items.
type ReviewStats struct {
	TotalItems        int         `json:"total_items"`
	TotalReviews      int         `json:"total_reviews"`
	ItemsDueToday     int         `json:"items_due_today"`
	ItemsDueThisWeek  int         `json:"items_due_this_week"`
	ReviewsByInterval map[int]int `json:"reviews_by_interval"`
}
