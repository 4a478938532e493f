package models

import "time"

// Genre is a category label attached to a game.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Game is one promotional item from the storefront. Identity is the ID
// alone; two games with the same ID are the same entity regardless of the
// other fields. Instances are rebuilt on every fetch cycle and only their
// serialized records persist between runs.
type Game struct {
	ID         string
	Slug       string
	Namespace  string
	Title      string
	Thumbnail  string
	EpicURL    string
	FreePeriod FreePeriod
	Genres     []Genre
	Rating     *Rating
}

// IsCurrentlyFree reports whether the game's free period covers now.
func (g Game) IsCurrentlyFree(now time.Time) bool {
	return g.FreePeriod.IsActive(now)
}

// IsUpcoming reports whether the free period has not started yet.
// A game failing both predicates is "past", which is the merge engine's
// classification, not the entity's.
func (g Game) IsUpcoming(now time.Time) bool {
	return now.UTC().Before(g.FreePeriod.Start())
}

// WithRating returns a copy of the game with the rating attached.
func (g Game) WithRating(r *Rating) Game {
	g.Rating = r
	return g
}
