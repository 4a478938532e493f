package models

import "fmt"

// Score colors for the downstream site.
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorRed    = "red"
)

// SourceConfig describes one registered score source: its accepted raw
// range and how a raw value maps onto the common 0-100 scale.
type SourceConfig struct {
	Min       float64
	Max       float64
	Normalize func(float64) float64
}

// ScoreRegistry owns the per-source validation/normalization rules and the
// color thresholds. Ratings are constructed against a registry so tests can
// vary sources and thresholds without touching package state.
type ScoreRegistry struct {
	sources     map[string]SourceConfig
	greenFloor  float64
	yellowFloor float64
}

func identity(v float64) float64 { return v }

func NewScoreRegistry() *ScoreRegistry {
	return &ScoreRegistry{
		sources: map[string]SourceConfig{
			SourceEpic:       {Min: 0, Max: 5, Normalize: func(v float64) float64 { return v / 5 * 100 }},
			SourceMetacritic: {Min: 0, Max: 100, Normalize: identity},
			SourceOpencritic: {Min: 0, Max: 100, Normalize: identity},
			SourceSteam:      {Min: 0, Max: 100, Normalize: identity},
		},
		greenFloor:  75,
		yellowFloor: 50,
	}
}

// SetThresholds overrides the color boundaries. Intended for tests.
func (reg *ScoreRegistry) SetThresholds(green, yellow float64) {
	reg.greenFloor = green
	reg.yellowFloor = yellow
}

// Registered score sources.
const (
	SourceEpic       = "epic"
	SourceMetacritic = "metacritic"
	SourceOpencritic = "opencritic"
	SourceSteam      = "steam"
)

// Score is one named score. AllScores returns these in a stable order
// (registered sources first, then extension sources as supplied), which a
// plain map cannot guarantee.
type Score struct {
	Source string
	Value  float64
}

// ScoreRangeError reports a score outside its registered range.
type ScoreRangeError struct {
	Source string
	Min    float64
	Max    float64
	Value  float64
}

func (e *ScoreRangeError) Error() string {
	return fmt.Sprintf("%s must be %g-%g: %g", e.Source, e.Min, e.Max, e.Value)
}

// RatingParams carries the raw inputs for a Rating. Absent sub-scores are
// nil. Additional holds extension sources in their intended order; names
// matching a registered source are range-checked, unregistered names pass
// through unvalidated.
type RatingParams struct {
	Epic       *float64
	Metacritic *int
	Opencritic *int
	Steam      *int
	Additional []Score
}

// Rating is an immutable quality signal merged from heterogeneous sources.
type Rating struct {
	epic       *float64
	metacritic *int
	opencritic *int
	steam      *int
	additional []Score
	registry   *ScoreRegistry
}

var defaultRegistry = NewScoreRegistry()

// NewRating builds a Rating against the default registry.
func NewRating(p RatingParams) (Rating, error) {
	return defaultRegistry.NewRating(p)
}

func (reg *ScoreRegistry) NewRating(p RatingParams) (Rating, error) {
	named := []Score{}
	if p.Epic != nil {
		named = append(named, Score{SourceEpic, *p.Epic})
	}
	if p.Metacritic != nil {
		named = append(named, Score{SourceMetacritic, float64(*p.Metacritic)})
	}
	if p.Opencritic != nil {
		named = append(named, Score{SourceOpencritic, float64(*p.Opencritic)})
	}
	if p.Steam != nil {
		named = append(named, Score{SourceSteam, float64(*p.Steam)})
	}

	for _, s := range named {
		if err := reg.check(s.Source, s.Value); err != nil {
			return Rating{}, err
		}
	}
	for _, s := range p.Additional {
		if err := reg.check(s.Source, s.Value); err != nil {
			return Rating{}, err
		}
	}

	additional := make([]Score, len(p.Additional))
	copy(additional, p.Additional)

	return Rating{
		epic:       copyFloat(p.Epic),
		metacritic: copyInt(p.Metacritic),
		opencritic: copyInt(p.Opencritic),
		steam:      copyInt(p.Steam),
		additional: additional,
		registry:   reg,
	}, nil
}

func (reg *ScoreRegistry) check(source string, value float64) error {
	conf, ok := reg.sources[source]
	if !ok {
		return nil
	}
	if value < conf.Min || value > conf.Max {
		return &ScoreRangeError{Source: source, Min: conf.Min, Max: conf.Max, Value: value}
	}
	return nil
}

func (reg *ScoreRegistry) normalize(source string, value float64) float64 {
	conf, ok := reg.sources[source]
	if !ok {
		return value
	}
	return conf.Normalize(value)
}

func (r Rating) Epic() *float64   { return copyFloat(r.epic) }
func (r Rating) Metacritic() *int { return copyInt(r.metacritic) }
func (r Rating) Opencritic() *int { return copyInt(r.opencritic) }
func (r Rating) Steam() *int      { return copyInt(r.steam) }

// AllScores returns every present score on its raw scale: registered
// sources in fixed order, then extension sources in insertion order.
func (r Rating) AllScores() []Score {
	scores := make([]Score, 0, 4+len(r.additional))
	if r.epic != nil {
		scores = append(scores, Score{SourceEpic, *r.epic})
	}
	if r.metacritic != nil {
		scores = append(scores, Score{SourceMetacritic, float64(*r.metacritic)})
	}
	if r.opencritic != nil {
		scores = append(scores, Score{SourceOpencritic, float64(*r.opencritic)})
	}
	if r.steam != nil {
		scores = append(scores, Score{SourceSteam, float64(*r.steam)})
	}
	scores = append(scores, r.additional...)
	return scores
}

// AllScoresNormalized returns the same scores mapped onto the 0-100 scale.
// Unregistered extension sources pass through unchanged.
func (r Rating) AllScoresNormalized() []Score {
	reg := r.reg()
	scores := r.AllScores()
	for i, s := range scores {
		scores[i].Value = reg.normalize(s.Source, s.Value)
	}
	return scores
}

// AggregateScore computes the weighted mean of the normalized scores.
// A nil weights map weighs every present source at 1.0; with an explicit
// map, sources missing from it contribute nothing. Returns 0 when no
// scores are present or the total weight is zero.
func (r Rating) AggregateScore(weights map[string]float64) float64 {
	normalized := r.AllScoresNormalized()
	if len(normalized) == 0 {
		return 0
	}

	var totalWeight, weightedSum float64
	for _, s := range normalized {
		weight := 1.0
		if weights != nil {
			weight = weights[s.Source]
		}
		totalWeight += weight
		weightedSum += s.Value * weight
	}
	if totalWeight == 0 {
		return 0
	}
	return weightedSum / totalWeight
}

// ScoreColor classifies the representative score. Priority: opencritic,
// then metacritic, then steam, then the aggregate over everything present.
func (r Rating) ScoreColor() string {
	reg := r.reg()

	var score float64
	switch {
	case r.opencritic != nil:
		score = float64(*r.opencritic)
	case r.metacritic != nil:
		score = float64(*r.metacritic)
	case r.steam != nil:
		score = float64(*r.steam)
	default:
		score = r.AggregateScore(nil)
	}

	switch {
	case score >= reg.greenFloor:
		return ColorGreen
	case score >= reg.yellowFloor:
		return ColorYellow
	default:
		return ColorRed
	}
}

// HasRating reports whether any score is present at all.
func (r Rating) HasRating() bool {
	return r.epic != nil || r.metacritic != nil || r.opencritic != nil ||
		r.steam != nil || len(r.additional) > 0
}

func (r Rating) reg() *ScoreRegistry {
	if r.registry == nil {
		return defaultRegistry
	}
	return r.registry
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
