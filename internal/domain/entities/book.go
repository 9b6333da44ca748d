package entities

import (
	"math"
	"time"
)

type Book struct {
	ID            string     `json:"_id"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	ISBN          string     `json:"isbn"`
	Price         float64    `json:"price"`
	Category      string     `json:"category"`
	Stock         int        `json:"stock"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"imageUrl,omitempty"`
	Publisher     string     `json:"publisher,omitempty"`
	PublishedDate *time.Time `json:"publishedDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// BookUpdate carries a partial update; nil fields are left untouched.
type BookUpdate struct {
	Title         *string
	Author        *string
	ISBN          *string
	Price         *float64
	Category      *string
	Stock         *int
	Description   *string
	ImageURL      *string
	Publisher     *string
	PublishedDate *time.Time
}

// Apply copies the set fields of u onto b.
func (u BookUpdate) Apply(b *Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.ISBN != nil {
		b.ISBN = *u.ISBN
	}
	if u.Price != nil {
		b.Price = *u.Price
	}
	if u.Category != nil {
		b.Category = *u.Category
	}
	if u.Stock != nil {
		b.Stock = *u.Stock
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.ImageURL != nil {
		b.ImageURL = *u.ImageURL
	}
	if u.Publisher != nil {
		b.Publisher = *u.Publisher
	}
	if u.PublishedDate != nil {
		b.PublishedDate = u.PublishedDate
	}
}

type BookFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}

// Skip returns the number of records preceding the requested page.
func (f BookFilter) Skip() int {
	if f.Page < 1 {
		return 0
	}
	if f.Limit > 0 && f.Page-1 > math.MaxInt/f.Limit {
		return math.MaxInt
	}
	return (f.Page - 1) * f.Limit
}
