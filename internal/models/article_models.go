package models

import "time"

// ArticleStatus defines the type for article statuses.
type ArticleStatus string

const (
	ArticleStatusDraft     ArticleStatus = "draft"
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusArchived  ArticleStatus = "archived"
)

// IsValidArticleStatus checks if the provided status string is a valid ArticleStatus.
func IsValidArticleStatus(status string) bool {
	switch ArticleStatus(status) {
	case ArticleStatusDraft, ArticleStatusPublished, ArticleStatusArchived:
		return true
	default:
		return false
	}
}

// Article represents a news post on the site. Only published articles are
// visible to non-admin callers.
type Article struct {
	ID            int64     `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Excerpt       string    `json:"excerpt" db:"excerpt"`
	Content       string    `json:"content,omitempty" db:"content"`
	ImageURL      *string   `json:"image_url,omitempty" db:"image_url"`
	Author        string    `json:"author" db:"author"`
	PublishedDate *string   `json:"published_date,omitempty" db:"published_date"` // YYYY-MM-DD
	Status        string    `json:"status" db:"status"`
	ViewsCount    int       `json:"views_count" db:"views_count"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ArticleUpdate is the typed field set for article updates.
type ArticleUpdate struct {
	Title         *string
	Excerpt       *string
	Content       *string
	ImageURL      *string
	Author        *string
	PublishedDate *string
	Status        *string
}

// IsEmpty reports whether no field is set.
func (u *ArticleUpdate) IsEmpty() bool {
	return u.Title == nil && u.Excerpt == nil && u.Content == nil && u.ImageURL == nil &&
		u.Author == nil && u.PublishedDate == nil && u.Status == nil
}
