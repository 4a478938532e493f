package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestNewRating_AllSources(t *testing.T) {
	r, err := NewRating(RatingParams{
		Epic:       floatPtr(4.5),
		Metacritic: intPtr(88),
		Opencritic: intPtr(85),
		Steam:      intPtr(92),
	})
	require.NoError(t, err)

	assert.Equal(t, 4.5, *r.Epic())
	assert.Equal(t, 88, *r.Metacritic())
	assert.Equal(t, 85, *r.Opencritic())
	assert.Equal(t, 92, *r.Steam())
	assert.True(t, r.HasRating())
}

func TestNewRating_Empty(t *testing.T) {
	r, err := NewRating(RatingParams{})
	require.NoError(t, err)

	assert.Nil(t, r.Epic())
	assert.False(t, r.HasRating())
	assert.Empty(t, r.AllScores())
}

func TestNewRating_EpicOutOfRange(t *testing.T) {
	_, err := NewRating(RatingParams{Epic: floatPtr(5.1)})
	require.Error(t, err)
	var rerr *ScoreRangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, SourceEpic, rerr.Source)

	_, err = NewRating(RatingParams{Epic: floatPtr(-0.5)})
	assert.Error(t, err)
}

func TestNewRating_PercentOutOfRange(t *testing.T) {
	_, err := NewRating(RatingParams{Metacritic: intPtr(101)})
	assert.Error(t, err)

	_, err = NewRating(RatingParams{Steam: intPtr(-1)})
	assert.Error(t, err)
}

func TestNewRating_Boundaries(t *testing.T) {
	_, err := NewRating(RatingParams{Epic: floatPtr(0)})
	assert.NoError(t, err)

	_, err = NewRating(RatingParams{Epic: floatPtr(5)})
	assert.NoError(t, err)

	_, err = NewRating(RatingParams{Metacritic: intPtr(0)})
	assert.NoError(t, err)

	_, err = NewRating(RatingParams{Metacritic: intPtr(100)})
	assert.NoError(t, err)
}

func TestNewRating_AdditionalRegisteredNameValidated(t *testing.T) {
	// An extension score reusing a registered name is held to its range.
	_, err := NewRating(RatingParams{
		Additional: []Score{{SourceMetacritic, 150}},
	})
	assert.Error(t, err)
}

func TestNewRating_AdditionalUnregisteredPassesThrough(t *testing.T) {
	r, err := NewRating(RatingParams{
		Additional: []Score{{"ign", 9.5}},
	})
	require.NoError(t, err)
	assert.True(t, r.HasRating())
}

func TestAccessors_ReturnCopies(t *testing.T) {
	r, err := NewRating(RatingParams{Epic: floatPtr(4.0), Steam: intPtr(80)})
	require.NoError(t, err)

	*r.Epic() = 1.0
	*r.Steam() = 10
	assert.Equal(t, 4.0, *r.Epic())
	assert.Equal(t, 80, *r.Steam())
}

func TestAllScores_StableOrder(t *testing.T) {
	r, err := NewRating(RatingParams{
		Steam:      intPtr(92),
		Epic:       floatPtr(4.0),
		Opencritic: intPtr(85),
		Metacritic: intPtr(88),
		Additional: []Score{{"ign", 95}, {"gamespot", 90}},
	})
	require.NoError(t, err)

	scores := r.AllScores()
	require.Len(t, scores, 6)
	assert.Equal(t, SourceEpic, scores[0].Source)
	assert.Equal(t, SourceMetacritic, scores[1].Source)
	assert.Equal(t, SourceOpencritic, scores[2].Source)
	assert.Equal(t, SourceSteam, scores[3].Source)
	assert.Equal(t, "ign", scores[4].Source)
	assert.Equal(t, "gamespot", scores[5].Source)
}

func TestAllScores_SkipsAbsent(t *testing.T) {
	r, err := NewRating(RatingParams{Metacritic: intPtr(88)})
	require.NoError(t, err)

	scores := r.AllScores()
	require.Len(t, scores, 1)
	assert.Equal(t, SourceMetacritic, scores[0].Source)
	assert.Equal(t, 88.0, scores[0].Value)
}

func TestAllScoresNormalized_EpicScaled(t *testing.T) {
	r, err := NewRating(RatingParams{Epic: floatPtr(4.0), Metacritic: intPtr(88)})
	require.NoError(t, err)

	scores := r.AllScoresNormalized()
	require.Len(t, scores, 2)
	assert.InDelta(t, 80.0, scores[0].Value, 1e-9)
	assert.Equal(t, 88.0, scores[1].Value)
}

func TestAggregateScore_NilWeightsIsPlainMean(t *testing.T) {
	r, err := NewRating(RatingParams{Epic: floatPtr(4.0), Metacritic: intPtr(90)})
	require.NoError(t, err)

	// (80 + 90) / 2
	assert.InDelta(t, 85.0, r.AggregateScore(nil), 1e-9)
}

func TestAggregateScore_ExplicitWeights(t *testing.T) {
	r, err := NewRating(RatingParams{Metacritic: intPtr(90), Steam: intPtr(60)})
	require.NoError(t, err)

	got := r.AggregateScore(map[string]float64{
		SourceMetacritic: 3,
		SourceSteam:      1,
	})
	// (90*3 + 60*1) / 4
	assert.InDelta(t, 82.5, got, 1e-9)
}

func TestAggregateScore_MissingFromExplicitMapContributesNothing(t *testing.T) {
	r, err := NewRating(RatingParams{Metacritic: intPtr(90), Steam: intPtr(10)})
	require.NoError(t, err)

	got := r.AggregateScore(map[string]float64{SourceMetacritic: 1})
	assert.InDelta(t, 90.0, got, 1e-9)
}

func TestAggregateScore_NoScores(t *testing.T) {
	r, err := NewRating(RatingParams{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.AggregateScore(nil))
}

func TestAggregateScore_ZeroTotalWeight(t *testing.T) {
	r, err := NewRating(RatingParams{Metacritic: intPtr(90)})
	require.NoError(t, err)
	assert.Equal(t, 0.0, r.AggregateScore(map[string]float64{}))
}

func TestScoreColor_Thresholds(t *testing.T) {
	cases := []struct {
		metacritic int
		color      string
	}{
		{90, ColorGreen},
		{75, ColorGreen},
		{74, ColorYellow},
		{50, ColorYellow},
		{49, ColorRed},
		{0, ColorRed},
	}
	for _, tc := range cases {
		r, err := NewRating(RatingParams{Metacritic: intPtr(tc.metacritic)})
		require.NoError(t, err)
		assert.Equal(t, tc.color, r.ScoreColor(), "metacritic=%d", tc.metacritic)
	}
}

func TestScoreColor_SourcePriority(t *testing.T) {
	// Opencritic beats everything else.
	r, err := NewRating(RatingParams{Opencritic: intPtr(80), Metacritic: intPtr(10), Steam: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, ColorGreen, r.ScoreColor())

	// Metacritic beats steam.
	r, err = NewRating(RatingParams{Metacritic: intPtr(60), Steam: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, ColorYellow, r.ScoreColor())

	// Steam alone.
	r, err = NewRating(RatingParams{Steam: intPtr(40)})
	require.NoError(t, err)
	assert.Equal(t, ColorRed, r.ScoreColor())
}

func TestScoreColor_FallsBackToAggregate(t *testing.T) {
	// Only epic present: 4.5/5 -> 90 aggregate.
	r, err := NewRating(RatingParams{Epic: floatPtr(4.5)})
	require.NoError(t, err)
	assert.Equal(t, ColorGreen, r.ScoreColor())
}

func TestScoreRegistry_CustomThresholds(t *testing.T) {
	reg := NewScoreRegistry()
	reg.SetThresholds(95, 90)

	r, err := reg.NewRating(RatingParams{Metacritic: intPtr(92)})
	require.NoError(t, err)
	assert.Equal(t, ColorYellow, r.ScoreColor())
}

func TestScoreRangeError_Message(t *testing.T) {
	_, err := NewRating(RatingParams{Epic: floatPtr(6)})
	require.Error(t, err)
	assert.Equal(t, "epic must be 0-5: 6", err.Error())
}
