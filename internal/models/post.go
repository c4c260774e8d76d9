package models

import (
	"time"
)

// Neutral fallback values written when the sentiment classifier is
// unreachable. Post creation never fails because of the classifier.
const (
	SentimentNeutral           = "중성"
	SentimentDefaultConfidence = 0.5
)

// Post represents a board post annotated with a sentiment label and
// confidence score. Sentiment fields are written once at creation and
// never recomputed.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Sentiment  string    `gorm:"size:20;default:중성" json:"sentiment"`
	Confidence float64   `gorm:"default:0.5" json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Pagination describes the page metadata returned alongside a post listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}
