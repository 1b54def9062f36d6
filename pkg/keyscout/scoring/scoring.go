package scoring

import (
	"math"

	"github.com/inklight/keyscout/pkg/keyscout/signal"
)

// NeutralScore is the fail-closed default assigned when a signal bundle
// is malformed. A keyword must always receive a comparable score, so
// bad input degrades to "medium" rather than propagating an error.
const NeutralScore = 50.0

// CompetitionBucket maps a search-result-count ceiling to a competition
// score. Buckets are evaluated in order; the first bucket whose Below
// exceeds the count wins.
type CompetitionBucket struct {
	Below int64   `yaml:"below"`
	Score float64 `yaml:"score"`
}

// PriceBand maps an average-price range to a price factor.
type PriceBand struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Factor float64 `yaml:"factor"`
}

// Calibration holds the empirical tuning constants behind both scores.
// The values carry no stated derivation; they are preserved as loadable
// configuration rather than re-derived.
type Calibration struct {
	CompetitionBuckets []CompetitionBucket `yaml:"competition_buckets"`
	MaxCompetition     float64             `yaml:"max_competition"`
	InterestAdjustCap  float64             `yaml:"interest_adjust_cap"`

	UnknownPriceFactor float64     `yaml:"unknown_price_factor"`
	PriceBands         []PriceBand `yaml:"price_bands"`
	LowPriceFactor     float64     `yaml:"low_price_factor"`
	HighPriceFactor    float64     `yaml:"high_price_factor"`

	DifficultyWeight float64 `yaml:"difficulty_weight"`
	InterestWeight   float64 `yaml:"interest_weight"`
	PriceWeight      float64 `yaml:"price_weight"`

	BandHigh   float64 `yaml:"band_high"`
	BandMedium float64 `yaml:"band_medium"`
	BandInfo   float64 `yaml:"band_info"`
}

// DefaultCalibration returns the stock tuning constants.
func DefaultCalibration() Calibration {
	return Calibration{
		CompetitionBuckets: []CompetitionBucket{
			{Below: 1, Score: 0},
			{Below: 1_000, Score: 10},
			{Below: 10_000, Score: 30},
			{Below: 50_000, Score: 60},
			{Below: 100_000, Score: 80},
		},
		MaxCompetition:    100,
		InterestAdjustCap: 20,

		UnknownPriceFactor: 50,
		PriceBands: []PriceBand{
			{Min: 10, Max: 30, Factor: 100},
			{Min: 5, Max: 10, Factor: 80},
			{Min: 30, Max: 50, Factor: 70},
		},
		LowPriceFactor:  40,
		HighPriceFactor: 30,

		DifficultyWeight: 0.4,
		InterestWeight:   0.4,
		PriceWeight:      0.2,

		BandHigh:   80,
		BandMedium: 60,
		BandInfo:   40,
	}
}

// Scorer turns signal records into difficulty/profitability scores.
// It is pure and safe for concurrent use.
type Scorer struct {
	cal Calibration
}

// NewScorer creates a scorer from the given calibration. A zero-valued
// calibration is replaced by DefaultCalibration.
func NewScorer(cal Calibration) *Scorer {
	if len(cal.CompetitionBuckets) == 0 {
		cal = DefaultCalibration()
	}
	return &Scorer{cal: cal}
}

// Difficulty maps a competition count and an interest series to a
// score in [0,100]. Higher interest raises difficulty slightly.
func (s *Scorer) Difficulty(searchResultsCount int64, interestOverTime []float64) float64 {
	if searchResultsCount < 0 {
		return NeutralScore
	}

	competition := s.cal.MaxCompetition
	for _, bucket := range s.cal.CompetitionBuckets {
		if searchResultsCount < bucket.Below {
			competition = bucket.Score
			break
		}
	}

	adjust := 0.0
	if len(interestOverTime) > 0 {
		sum := 0.0
		for _, v := range interestOverTime {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return NeutralScore
			}
			sum += v
		}
		mean := sum / float64(len(interestOverTime))
		adjust = math.Min(mean/100*s.cal.InterestAdjustCap, s.cal.InterestAdjustCap)
	}

	return round2(math.Min(competition+adjust, 100))
}

// Profitability combines difficulty, demand and price into a score in
// [0,100] using the calibration weights.
func (s *Scorer) Profitability(difficulty, avgInterest, avgPrice float64) float64 {
	if difficulty < 0 || difficulty > 100 ||
		math.IsNaN(difficulty) || math.IsNaN(avgInterest) || math.IsNaN(avgPrice) ||
		math.IsInf(avgInterest, 0) || math.IsInf(avgPrice, 0) ||
		avgInterest < 0 || avgPrice < 0 {
		return NeutralScore
	}

	difficultyFactor := 100 - difficulty
	interestFactor := math.Min(avgInterest, 100)
	priceFactor := s.priceFactor(avgPrice)

	p := s.cal.DifficultyWeight*difficultyFactor +
		s.cal.InterestWeight*interestFactor +
		s.cal.PriceWeight*priceFactor

	return round2(p)
}

// priceFactor is a banded function of average price. The sweet spot
// sits at $10-30; zero means the price is unknown and scores neutral.
// Bands are inclusive on both ends and evaluated in order, so earlier
// bands claim shared boundaries ($10 scores 100, not 80).
func (s *Scorer) priceFactor(avgPrice float64) float64 {
	if avgPrice == 0 {
		return s.cal.UnknownPriceFactor
	}
	var minBand float64
	for _, band := range s.cal.PriceBands {
		if avgPrice >= band.Min && avgPrice <= band.Max {
			return band.Factor
		}
		if band.Min < minBand || minBand == 0 {
			minBand = band.Min
		}
	}
	if avgPrice < minBand {
		return s.cal.LowPriceFactor
	}
	return s.cal.HighPriceFactor
}

// Band maps a profitability score to its display tier. Boundaries are
// inclusive on the lower bound of each band.
func (s *Scorer) Band(profitability float64) signal.Band {
	switch {
	case profitability >= s.cal.BandHigh:
		return signal.BandHigh
	case profitability >= s.cal.BandMedium:
		return signal.BandMedium
	case profitability >= s.cal.BandInfo:
		return signal.BandInfo
	default:
		return signal.BandLow
	}
}

// Score derives the full scored keyword from a signal record.
func (s *Scorer) Score(rec signal.Record) signal.Scored {
	rec = rec.Normalize()

	difficulty := s.Difficulty(rec.SearchResultsCount, rec.InterestOverTime)
	profitability := s.Profitability(difficulty, rec.AverageInterest, rec.AveragePrice)

	return signal.Scored{
		Keyword:       rec.Keyword,
		Signal:        rec,
		Difficulty:    difficulty,
		Profitability: profitability,
		Band:          s.Band(profitability),
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
