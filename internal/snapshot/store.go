package snapshot

import (
	"os"
	"time"

	"fgd/internal/models"
	"fgd/internal/providers"
	"fgd/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

type StoreInterface interface {
	Load() models.Document
	Save(games []models.Game) error
	LoadPastWithoutRating() []models.Game
	PatchPastRatings(enriched []models.Game) (int, error)
}

// Store persists the snapshot document as a plain JSON file, replacing it
// atomically on every write so the site never sees a half-written file.
type Store struct {
	path    string
	fs      FS
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewStore(conf *structures.Config, fs FS, logger providers.Logger, metrics providers.MetricsProviderInterface) StoreInterface {
	return &Store{
		path:    conf.Persistence.FilePath,
		fs:      fs,
		logger:  logger,
		metrics: metrics,
	}
}

// Load reads the persisted document best-effort. Any shape problem
// degrades to an empty value of the affected part rather than an error:
// unreadable or non-object file → empty document, mis-shaped partition →
// empty list, corrupt individual record → skipped.
func (s *Store) Load() models.Document {
	doc := models.EmptyDocument()

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Errorf(providers.TypeApp, "Failed to read %s: %s", s.path, err)
		}
		return doc
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Errorf(providers.TypeApp, "Corrupt snapshot at %s, starting empty: %s", s.path, err)
		return doc
	}

	if rawUpdated, ok := raw["updated"]; ok {
		var updated any
		if err := json.Unmarshal(rawUpdated, &updated); err == nil {
			doc.Updated = cast.ToString(updated)
		}
	}

	doc.CurrentFree = s.parseRecords(raw["currentFree"], "currentFree")
	doc.Upcoming = s.parseRecords(raw["upcoming"], "upcoming")
	doc.Past = s.parseRecords(raw["past"], "past")

	return doc
}

func (s *Store) parseRecords(raw json.RawMessage, key string) []models.GameRecord {
	if raw == nil {
		return []models.GameRecord{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logger.Warnf(providers.TypeApp, "Snapshot key %q is not a list, resetting: %s", key, err)
		return []models.GameRecord{}
	}

	records := make([]models.GameRecord, 0, len(items))
	for _, item := range items {
		var rec models.GameRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			s.logger.Warnf(providers.TypeApp, "Skipping corrupt record in %q: %s", key, err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Save merges the fresh game list with the persisted document and writes
// the result atomically.
func (s *Store) Save(games []models.Game) error {
	s.logger.Infof(providers.TypeApp, "Saving %d games", len(games))
	doc := Merge(games, s.Load(), time.Now().UTC())
	return s.write(doc)
}

func (s *Store) write(doc models.Document) error {
	start := time.Now()

	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.path + ".tmp"
	if err := s.fs.WriteFile(tmpPath, jsonData, 0644); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to write %s: %s", tmpPath, err)
		_ = s.fs.Remove(tmpPath)
		return err
	}

	if err := s.fs.Rename(tmpPath, s.path); err != nil {
		s.logger.Errorf(providers.TypeApp, "Failed to replace %s: %s", s.path, err)
		_ = s.fs.Remove(tmpPath)
		return err
	}

	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.logger.Infof(providers.TypeApp, "Persisted snapshot to %s", s.path)
	return nil
}

// LoadPastWithoutRating returns the past-partition games that still lack
// rating data, for the backfill pass. Records that no longer deserialize
// are skipped.
func (s *Store) LoadPastWithoutRating() []models.Game {
	doc := s.Load()

	games := make([]models.Game, 0)
	for _, rec := range doc.Past {
		if rec.Rating != nil {
			continue
		}
		game, err := rec.ToGame()
		if err != nil {
			s.logger.Debugf(providers.TypeApp, "Skipping past record %q: %s", rec.ID, err)
			continue
		}
		games = append(games, game)
	}
	return games
}

// PatchPastRatings overwrites the rating sub-object of past records whose
// id matches an enriched game carrying a rating. Writes only when at least
// one record changed; returns the number of patched records.
func (s *Store) PatchPastRatings(enriched []models.Game) (int, error) {
	if len(enriched) == 0 {
		return 0, nil
	}

	doc := s.Load()

	byID := make(map[string]*models.Rating)
	for _, game := range enriched {
		if game.Rating != nil {
			byID[game.ID] = game.Rating
		}
	}

	patched := 0
	for i := range doc.Past {
		rating, ok := byID[doc.Past[i].ID]
		if !ok {
			continue
		}
		doc.Past[i].Rating = models.NewRatingRecord(*rating)
		patched++
	}

	if patched == 0 {
		return 0, nil
	}

	doc.Updated = time.Now().UTC().Format(time.RFC3339)
	if err := s.write(doc); err != nil {
		return 0, err
	}
	return patched, nil
}
