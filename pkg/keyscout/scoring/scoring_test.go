package scoring

import (
	"math"
	"reflect"
	"testing"

	"github.com/inklight/keyscout/pkg/keyscout/signal"
)

func TestDifficultyBuckets(t *testing.T) {
	s := NewScorer(DefaultCalibration())

	tests := []struct {
		name  string
		count int64
		want  float64
	}{
		{"no results", 0, 0},
		{"just below low bucket", 999, 10},
		{"low bucket boundary", 1_000, 30},
		{"mid bucket", 9_999, 30},
		{"mid boundary", 10_000, 60},
		{"high bucket", 49_999, 60},
		{"high boundary", 50_000, 80},
		{"very high", 99_999, 80},
		{"saturated", 100_000, 100},
		{"far past saturation", 5_000_000, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Difficulty(tt.count, nil); got != tt.want {
				t.Errorf("Difficulty(%d, nil) = %v, want %v", tt.count, got, tt.want)
			}
		})
	}
}

func TestDifficultyInterestAdjustment(t *testing.T) {
	s := NewScorer(DefaultCalibration())

	// Mean interest of 60 adds 12 points on top of the bucket score.
	got := s.Difficulty(500, []float64{60, 60, 60})
	if got != 22.0 {
		t.Errorf("Difficulty(500, mean 60) = %v, want 22.0", got)
	}

	// The adjustment caps at 20 even for saturated interest.
	got = s.Difficulty(500, []float64{100, 100})
	if got != 30.0 {
		t.Errorf("Difficulty(500, mean 100) = %v, want 30.0", got)
	}

	// The combined score never exceeds 100.
	got = s.Difficulty(200_000, []float64{5})
	if got != 100.0 {
		t.Errorf("Difficulty(200000, mean 5) = %v, want 100.0", got)
	}
}

func TestDifficultyFailClosed(t *testing.T) {
	s := NewScorer(DefaultCalibration())

	if got := s.Difficulty(-1, nil); got != NeutralScore {
		t.Errorf("negative count: got %v, want %v", got, NeutralScore)
	}
	if got := s.Difficulty(500, []float64{10, math.NaN()}); got != NeutralScore {
		t.Errorf("NaN interest: got %v, want %v", got, NeutralScore)
	}
	if got := s.Difficulty(500, []float64{10, -3}); got != NeutralScore {
		t.Errorf("negative interest: got %v, want %v", got, NeutralScore)
	}
}

func TestDifficultyMonotonicInCompetition(t *testing.T) {
	s := NewScorer(DefaultCalibration())

	counts := []int64{0, 500, 5_000, 25_000, 75_000, 150_000}
	prev := -1.0
	for _, c := range counts {
		got := s.Difficulty(c, nil)
		if got < prev {
			t.Errorf("Difficulty(%d) = %v dropped below %v for a smaller count", c, got, prev)
		}
		prev = got
	}
}

func TestProfitabilityReferenceScenarios(t *testing.T) {
	s := NewScorer(DefaultCalibration())

	// Moderately competitive keyword with healthy demand and a price
	// in the sweet spot.
	d := s.Difficulty(500, []float64{60})
	if d != 22.0 {
		t.Fatalf("difficulty = %v, want 22.0", d)
	}
	p := s.Profitability(d, 60, 15)
	if p != 75.2 {
		t.Errorf("Profitability(22, 60, 15) = %v, want 75.2", p)
	}
	if band := s.Band(p); band != signal.BandMedium {
		t.Errorf("Band(%v) = %v, want %v", p, band, signal.BandMedium)
	}

	// Saturated keyword with weak demand and a throwaway price.
	d = s.Difficulty(200_000, []float64{5})
	if d != 100.0 {
		t.Fatalf("difficulty = %v, want 100.0", d)
	}
	p = s.Profitability(d, 5, 2)
	if p != 10.0 {
		t.Errorf("Profitability(100, 5, 2) = %v, want 10.0", p)
	}
	if band := s.Band(p); band != signal.BandLow {
		t.Errorf("Band(%v) = %v, want %v", p, band, signal.BandLow)
	}
}

func TestProfitabilityFailClosed(t *testing.T) {
	s := NewScorer(DefaultCalibration())

	tests := []struct {
		name                        string
		difficulty, interest, price float64
	}{
		{"difficulty above range", 101, 50, 15},
		{"negative difficulty", -1, 50, 15},
		{"NaN interest", 50, math.NaN(), 15},
		{"negative price", 50, 50, -2},
		{"infinite price", 50, 50, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Profitability(tt.difficulty, tt.interest, tt.price); got != NeutralScore {
				t.Errorf("got %v, want %v", got, NeutralScore)
			}
		})
	}
}

func TestPriceFactorBands(t *testing.T) {
	s := NewScorer(DefaultCalibration())

	tests := []struct {
		price float64
		want  float64
	}{
		{0, 50}, // unknown
		{2, 40}, // below every band
		{5, 80},
		{9.99, 80},
		{10, 100}, // sweet-spot band claims the shared boundary
		{30, 100},
		{30.01, 70},
		{50, 70},
		{50.01, 30},
		{120, 30},
	}
	for _, tt := range tests {
		if got := s.priceFactor(tt.price); got != tt.want {
			t.Errorf("priceFactor(%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
}

func TestBandBoundaries(t *testing.T) {
	s := NewScorer(DefaultCalibration())

	tests := []struct {
		score float64
		want  signal.Band
	}{
		{100, signal.BandHigh},
		{80, signal.BandHigh},
		{79.99, signal.BandMedium},
		{60, signal.BandMedium},
		{59.99, signal.BandInfo},
		{40, signal.BandInfo},
		{39.99, signal.BandLow},
		{0, signal.BandLow},
	}
	for _, tt := range tests {
		if got := s.Band(tt.score); got != tt.want {
			t.Errorf("Band(%v) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestScoreDeterministic(t *testing.T) {
	s := NewScorer(DefaultCalibration())
	rec := signal.Record{
		Keyword:            "cozy mystery novels",
		SearchResultsCount: 4_200,
		AveragePrice:       12.99,
		AverageReviews:     310,
		InterestOverTime:   []float64{40, 55, 62},
		AverageInterest:    52.3,
	}

	first := s.Score(rec)
	for i := 0; i < 10; i++ {
		if got := s.Score(rec); !reflect.DeepEqual(got, first) {
			t.Fatalf("Score diverged on run %d: %+v != %+v", i, got, first)
		}
	}
	if first.Difficulty < 0 || first.Difficulty > 100 {
		t.Errorf("difficulty %v out of [0,100]", first.Difficulty)
	}
	if first.Profitability < 0 || first.Profitability > 100 {
		t.Errorf("profitability %v out of [0,100]", first.Profitability)
	}
}

func TestScoreTrimsKeyword(t *testing.T) {
	s := NewScorer(DefaultCalibration())
	got := s.Score(signal.Record{Keyword: "  sourdough baking  "})
	if got.Keyword != "sourdough baking" {
		t.Errorf("keyword = %q, want trimmed", got.Keyword)
	}
}
