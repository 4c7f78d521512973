package models

import "time"

// ReviewHistory is one immutable review event for a learning item. Rows are
// append-only; nothing updates or deletes them once written.
//
// For scheduled reviews ReviewNumber, IntervalDays and NextReviewDate record
// the schedule step just applied. Manual reviews leave all three NULL.
type ReviewHistory struct {
	ID             string    `json:"id" db:"id"`
	LearningItemID string    `json:"learning_item_id" db:"learning_item_id"`
	ReviewedAt     time.Time `json:"reviewed_at" db:"reviewed_at"`
	IsManual       bool      `json:"is_manual" db:"is_manual"`

	ReviewNumber   *int  `json:"review_number,omitempty" db:"review_number"`
	IntervalDays   *int  `json:"interval_days,omitempty" db:"interval_days"`
	NextReviewDate *Date `json:"next_review_date,omitempty" db:"next_review_date"`
}
