package models

import "time"

// Document is the persisted three-partition snapshot consumed by the
// downstream static site. Field names are part of the external contract.
type Document struct {
	Updated     string       `json:"updated"`
	CurrentFree []GameRecord `json:"currentFree"`
	Upcoming    []GameRecord `json:"upcoming"`
	Past        []GameRecord `json:"past"`
}

// EmptyDocument returns a document with all partitions present but empty.
func EmptyDocument() Document {
	return Document{
		CurrentFree: []GameRecord{},
		Upcoming:    []GameRecord{},
		Past:        []GameRecord{},
	}
}

// GameRecord is the serialized form of a Game inside the document.
type GameRecord struct {
	ID         string        `json:"id"`
	Slug       string        `json:"slug"`
	Namespace  string        `json:"namespace"`
	Title      string        `json:"title"`
	Thumbnail  string        `json:"thumbnail"`
	EpicURL    string        `json:"epicUrl"`
	FreePeriod PeriodRecord  `json:"freePeriod"`
	Genres     []Genre       `json:"genres"`
	Rating     *RatingRecord `json:"rating,omitempty"`
}

type PeriodRecord struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RatingRecord keeps absent sub-scores as explicit nulls so the document
// shape stays stable for the site.
type RatingRecord struct {
	Epic       *float64 `json:"epic"`
	Metacritic *int     `json:"metacritic"`
	Opencritic *int     `json:"opencritic"`
	Steam      *int     `json:"steam"`
	ScoreColor string   `json:"scoreColor"`
}

// NewGameRecord serializes a Game, deriving the score color when a rating
// is attached.
func NewGameRecord(g Game) GameRecord {
	genres := g.Genres
	if genres == nil {
		genres = []Genre{}
	}

	rec := GameRecord{
		ID:        g.ID,
		Slug:      g.Slug,
		Namespace: g.Namespace,
		Title:     g.Title,
		Thumbnail: g.Thumbnail,
		EpicURL:   g.EpicURL,
		FreePeriod: PeriodRecord{
			Start: g.FreePeriod.Start().Format(time.RFC3339),
			End:   g.FreePeriod.End().Format(time.RFC3339),
		},
		Genres: genres,
	}

	if g.Rating != nil {
		rec.Rating = NewRatingRecord(*g.Rating)
	}

	return rec
}

func NewRatingRecord(r Rating) *RatingRecord {
	return &RatingRecord{
		Epic:       r.Epic(),
		Metacritic: r.Metacritic(),
		Opencritic: r.Opencritic(),
		Steam:      r.Steam(),
		ScoreColor: r.ScoreColor(),
	}
}

// ToGame rebuilds the entity from its serialized record. The rating is not
// restored; callers re-enrich instead. Fails when the period timestamps do
// not parse or describe an inverted window.
func (rec GameRecord) ToGame() (Game, error) {
	start, err := time.Parse(time.RFC3339, rec.FreePeriod.Start)
	if err != nil {
		return Game{}, err
	}
	end, err := time.Parse(time.RFC3339, rec.FreePeriod.End)
	if err != nil {
		return Game{}, err
	}
	period, err := NewFreePeriod(start, end)
	if err != nil {
		return Game{}, err
	}

	genres := make([]Genre, len(rec.Genres))
	copy(genres, rec.Genres)

	return Game{
		ID:         rec.ID,
		Slug:       rec.Slug,
		Namespace:  rec.Namespace,
		Title:      rec.Title,
		Thumbnail:  rec.Thumbnail,
		EpicURL:    rec.EpicURL,
		FreePeriod: period,
		Genres:     genres,
	}, nil
}
