package testutil

import (
	"context"
	"os"
	"sync"
	"time"

	"fgd/internal/models"
	"fgd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// HasLevel reports whether any entry was recorded at the given level.
func (m *MockLogger) HasLevel(level string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, entry := range m.Logs {
		if entry.Level == level {
			return true
		}
	}
	return false
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockFS implements snapshot.FS in memory with injectable failures.
type MockFS struct {
	mu    sync.Mutex
	Files map[string][]byte

	ReadFileFn  func(path string) ([]byte, error)
	WriteFileFn func(path string, data []byte, mode os.FileMode) error
	RenameFn    func(oldPath, newPath string) error
	RemoveFn    func(path string) error
}

func NewMockFS() *MockFS {
	return &MockFS{Files: make(map[string][]byte)}
}

func (m *MockFS) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFn != nil {
		return m.ReadFileFn(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MockFS) WriteFile(path string, data []byte, mode os.FileMode) error {
	if m.WriteFileFn != nil {
		return m.WriteFileFn(path, data, mode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(data))
	copy(out, data)
	m.Files[path] = out
	return nil
}

func (m *MockFS) Rename(oldPath, newPath string) error {
	if m.RenameFn != nil {
		return m.RenameFn(oldPath, newPath)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Files[oldPath]
	if !ok {
		return os.ErrNotExist
	}
	m.Files[newPath] = data
	delete(m.Files, oldPath)
	return nil
}

func (m *MockFS) Remove(path string) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Files, path)
	return nil
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu                sync.Mutex
	RequestsTotal     int
	CacheHits         int
	CacheMisses       int
	FetchedGames      int
	RatingFailures    map[string]int
	RefreshRuns       int
	PersistenceWrites int
	PartitionSizes    map[string]int
	Backfilled        int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		RatingFailures: make(map[string]int),
		PartitionSizes: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestsTotal++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncFetchedGames(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchedGames += count
}

func (m *MockMetrics) IncRatingFailures(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RatingFailures[source]++
}

func (m *MockMetrics) ObserveRefreshDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefreshRuns++
}

func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PersistenceWrites++
}

func (m *MockMetrics) SetPartitionSize(partition string, count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PartitionSizes[partition] = count
}

func (m *MockMetrics) AddBackfilledRatings(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Backfilled += count
}

// MockGameFetcher implements fetchers.GameFetcher.
type MockGameFetcher struct {
	Games []models.Game
	Err   error
	Calls int
}

func (m *MockGameFetcher) FetchFreeGames(_ context.Context) ([]models.Game, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Games, nil
}

// MockRatingFetcher implements fetchers.RatingFetcher. Ratings maps game
// id to the rating the source returns; missing ids return (nil, nil).
type MockRatingFetcher struct {
	SourceName string
	Ratings    map[string]*models.Rating
	Err        error
	Calls      int
}

func (m *MockRatingFetcher) Name() string {
	return m.SourceName
}

func (m *MockRatingFetcher) FetchRating(_ context.Context, game models.Game) (*models.Rating, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Ratings[game.ID], nil
}

// MockStore implements snapshot.StoreInterface.
type MockStore struct {
	mu            sync.Mutex
	Doc           models.Document
	SaveCalls     [][]models.Game
	SaveErr       error
	PastWithout   []models.Game
	PatchCalls    [][]models.Game
	PatchedCount  int
	PatchErr      error
	LoadPastCalls int
}

func (m *MockStore) Load() models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Doc
}

func (m *MockStore) Save(games []models.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls = append(m.SaveCalls, games)
	return m.SaveErr
}

func (m *MockStore) LoadPastWithoutRating() []models.Game {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoadPastCalls++
	return m.PastWithout
}

func (m *MockStore) PatchPastRatings(enriched []models.Game) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PatchCalls = append(m.PatchCalls, enriched)
	if m.PatchErr != nil {
		return 0, m.PatchErr
	}
	return m.PatchedCount, nil
}

// MockEnrichService implements services.EnrichServiceInterface. When
// RatingFor is set, each game gets the rating mapped by its id; otherwise
// games pass through unchanged.
type MockEnrichService struct {
	RatingFor   map[string]*models.Rating
	EnrichCalls int
}

func (m *MockEnrichService) EnrichGames(ctx context.Context, games []models.Game) []models.Game {
	m.EnrichCalls++
	out := make([]models.Game, 0, len(games))
	for _, game := range games {
		out = append(out, game.WithRating(m.FetchRating(ctx, game)))
	}
	return out
}

func (m *MockEnrichService) FetchRating(_ context.Context, game models.Game) *models.Rating {
	if m.RatingFor == nil {
		return game.Rating
	}
	return m.RatingFor[game.ID]
}
