package snapshot

import (
	"sort"
	"time"

	"fgd/internal/models"
)

// Merge computes the next snapshot document from a freshly fetched game
// list and the previously persisted document. Pure and total: it never
// fails, malformed persisted records are the loader's problem.
//
// Rules, in order:
//  1. upcoming is recomputed from the fresh list alone and never carried
//     forward; carried state is past + currentFree keyed by id.
//  2. Fresh games classify as current or upcoming; games matching neither
//     predicate are dropped. Duplicate ids: last occurrence wins.
//  3. Ids that are live again (current or upcoming) leave the carried past.
//  4. Previously-current ids that are no longer live move into past.
//  5. past is sorted by freePeriod.end descending; a missing end sorts as
//     the empty string, i.e. last.
//
// Steps 3 and 4 must run in that order; swapping them can double-count or
// lose a game that is expiring and was already past.
func Merge(fresh []models.Game, prev models.Document, now time.Time) models.Document {
	past := newRecordMap(prev.Past)
	prevCurrent := newRecordMap(prev.CurrentFree)

	current := newRecordMap(nil)
	upcoming := newRecordMap(nil)
	for _, game := range fresh {
		if game.IsCurrentlyFree(now) {
			current.put(models.NewGameRecord(game))
		} else if game.IsUpcoming(now) {
			upcoming.put(models.NewGameRecord(game))
		}
	}

	for _, id := range current.ids() {
		past.remove(id)
	}
	for _, id := range upcoming.ids() {
		past.remove(id)
	}

	for _, rec := range prevCurrent.values() {
		if current.has(rec.ID) || upcoming.has(rec.ID) {
			continue
		}
		past.put(rec)
	}

	pastList := past.values()
	sort.SliceStable(pastList, func(i, j int) bool {
		return pastList[i].FreePeriod.End > pastList[j].FreePeriod.End
	})

	return models.Document{
		Updated:     now.UTC().Format(time.RFC3339),
		CurrentFree: current.values(),
		Upcoming:    upcoming.values(),
		Past:        pastList,
	}
}

// recordMap is an insertion-ordered map of records keyed by game id.
// Re-putting an existing id replaces the value but keeps the original
// position, so duplicate fresh entries collapse to one slot with the last
// value winning.
type recordMap struct {
	order []string
	byID  map[string]models.GameRecord
}

func newRecordMap(records []models.GameRecord) *recordMap {
	m := &recordMap{byID: make(map[string]models.GameRecord)}
	for _, rec := range records {
		m.put(rec)
	}
	return m
}

func (m *recordMap) put(rec models.GameRecord) {
	if _, ok := m.byID[rec.ID]; !ok {
		m.order = append(m.order, rec.ID)
	}
	m.byID[rec.ID] = rec
}

func (m *recordMap) has(id string) bool {
	_, ok := m.byID[id]
	return ok
}

func (m *recordMap) remove(id string) {
	if _, ok := m.byID[id]; !ok {
		return
	}
	delete(m.byID, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *recordMap) ids() []string {
	ids := make([]string, len(m.order))
	copy(ids, m.order)
	return ids
}

func (m *recordMap) values() []models.GameRecord {
	values := make([]models.GameRecord, 0, len(m.order))
	for _, id := range m.order {
		values = append(values, m.byID[id])
	}
	return values
}
