package models

import "time"

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategorySeed is a built-in category created on first initialization.
type CategorySeed struct {
	Name        string
	Description string
}

// DefaultCategories are seeded once into an empty store.
var DefaultCategories = []CategorySeed{
	{Name: "Music", Description: "Songs, albums, gigs and everything that sounds good"},
	{Name: "Lifestyle", Description: "Everyday life, travel and the small things"},
	{Name: "Management", Description: "Teams, leadership and getting things done"},
}
