package main

import (
	"time"

	"gorm.io/gorm"
)

/* ===================== DB models ====================== */

// Category groups posts under a unique slug. Unpublished categories hide
// every post in them from anonymous readers.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:256;not null"`
	Description string `gorm:"type:text"`
	Slug        string `gorm:"uniqueIndex;size:64;not null"`
	IsPublished bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Location is an optional named place attached to a post.
type Location struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:256;not null"`
	IsPublished bool   `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Post struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:256;not null"`
	Text        string    `gorm:"type:text;not null"`
	PubDate     time.Time `gorm:"index;not null"`
	IsPublished bool      `gorm:"not null;default:true"`
	ImagePath   string    `gorm:"size:512"`
	AuthorID    uint      `gorm:"index;not null"`
	Author      User
	CategoryID  *uint
	Category    *Category
	LocationID  *uint
	Location    *Location
	Comments    []Comment `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated by list queries via a subquery select; never stored.
	CommentCount int64 `gorm:"->;-:migration"`
}

type Comment struct {
	ID        uint   `gorm:"primaryKey"`
	Text      string `gorm:"type:text;not null"`
	PostID    uint   `gorm:"index;not null"`
	AuthorID  uint   `gorm:"index;not null"`
	Author    User
	CreatedAt time.Time
}

/* ===================== Query scopes ====================== */

// published narrows a posts query to what an anonymous reader may see:
// the post is published, its category is published, and the publication
// date is not in the future. A post without a category never matches.
// Evaluated against the clock on every call, never cached.
func published(db *gorm.DB) *gorm.DB {
	return db.
		Joins("JOIN categories ON categories.id = posts.category_id").
		Where("posts.is_published = ?", true).
		Where("categories.is_published = ?", true).
		Where("posts.pub_date <= ?", time.Now())
}

// withCommentCounts annotates each post row with its number of comments.
func withCommentCounts(db *gorm.DB) *gorm.DB {
	return db.Select(
		"posts.*, (SELECT count(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count",
	)
}

// postsForFeed is the base query every list page starts from: related rows
// preloaded, comment counts annotated, newest first.
func postsForFeed(db *gorm.DB) *gorm.DB {
	return withCommentCounts(db.Model(&Post{})).
		Preload("Author").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date DESC")
}
