// internal/compatibility/weights.go

package compatibility

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidWeights = errors.New("invalid scoring weights")

// ReasonLimit is the most reasons a result ever carries.
const ReasonLimit = 3

// Directional holds a per-direction value: A is profile A judging profile B,
// B is profile B judging profile A.
type Directional struct {
	A float64 `toml:"a" json:"a"`
	B float64 `toml:"b" json:"b"`
}

// ListWeights scores "how many of the other side's items are in my
// preferred list": PerMatch per hit capped at Cap, or Fallback when the
// preferred list is empty.
type ListWeights struct {
	PerMatch float64     `toml:"per_match" json:"per_match"`
	Cap      Directional `toml:"cap" json:"cap"`
	Fallback Directional `toml:"fallback" json:"fallback"`
}

type PhysicalWeights struct {
	HeightBudget float64     `toml:"height_budget" json:"height_budget"`
	HeightMatch  Directional `toml:"height_match" json:"height_match"`

	BodyBudget   float64     `toml:"body_budget" json:"body_budget"`
	BodyMatch    Directional `toml:"body_match" json:"body_match"`
	BodyFallback Directional `toml:"body_fallback" json:"body_fallback"`

	AgeBudget float64     `toml:"age_budget" json:"age_budget"`
	AgeMatch  Directional `toml:"age_match" json:"age_match"`
}

type MentalWeights struct {
	InterestPerMatch float64 `toml:"interest_per_match" json:"interest_per_match"`
	InterestCap      float64 `toml:"interest_cap" json:"interest_cap"`

	Traits ListWeights `toml:"traits" json:"traits"`
	Values ListWeights `toml:"values" json:"values"`

	SharedGoal float64     `toml:"shared_goal" json:"shared_goal"`
	Goals      ListWeights `toml:"goals" json:"goals"`

	// Budget is the fixed denominator of the mental score.
	Budget float64 `toml:"budget" json:"budget"`
}

type Defaults struct {
	HeightMin float64 `toml:"height_min" json:"height_min"`
	HeightMax float64 `toml:"height_max" json:"height_max"`
	AgeMin    float64 `toml:"age_min" json:"age_min"`
	AgeMax    float64 `toml:"age_max" json:"age_max"`
}

// Weights is the whole scoring table. Variants of the rules are expressed
// as different tables, not different code.
type Weights struct {
	Physical PhysicalWeights `toml:"physical" json:"physical"`
	Mental   MentalWeights   `toml:"mental" json:"mental"`
	Defaults Defaults        `toml:"defaults" json:"defaults"`

	MentalShare   float64 `toml:"mental_share" json:"mental_share"`
	PhysicalShare float64 `toml:"physical_share" json:"physical_share"`

	MaxReasons int `toml:"max_reasons" json:"max_reasons"`
}

// DefaultWeights returns the production table, asymmetric splits included
// (7/8 body and age fallbacks, 12/13 trait caps, 8/9 and 3/2 fallbacks).
func DefaultWeights() Weights {
	return Weights{
		Physical: PhysicalWeights{
			HeightBudget: 20,
			HeightMatch:  Directional{A: 10, B: 10},
			BodyBudget:   15,
			BodyMatch:    Directional{A: 15, B: 15},
			BodyFallback: Directional{A: 7, B: 8},
			AgeBudget:    15,
			AgeMatch:     Directional{A: 7, B: 8},
		},
		Mental: MentalWeights{
			InterestPerMatch: 10,
			InterestCap:      30,
			Traits: ListWeights{
				PerMatch: 8,
				Cap:      Directional{A: 12, B: 13},
				Fallback: Directional{A: 8, B: 9},
			},
			Values: ListWeights{
				PerMatch: 6,
				Cap:      Directional{A: 10, B: 10},
				Fallback: Directional{A: 6, B: 6},
			},
			SharedGoal: 15,
			Goals: ListWeights{
				PerMatch: 5,
				Cap:      Directional{A: 5, B: 5},
				Fallback: Directional{A: 3, B: 2},
			},
			Budget: 100,
		},
		Defaults: Defaults{
			HeightMin: 150,
			HeightMax: 200,
			AgeMin:    18,
			AgeMax:    30,
		},
		MentalShare:   0.6,
		PhysicalShare: 0.4,
		MaxReasons:    3,
	}
}

// PhysicalBudget is the physical denominator; it always includes every
// criterion whether or not the data was there to earn it.
func (w Weights) PhysicalBudget() float64 {
	return w.Physical.HeightBudget + w.Physical.BodyBudget + w.Physical.AgeBudget
}

// Validate rejects tables that could produce scores outside 0..100.
func (w Weights) Validate() error {
	values := map[string]float64{
		"physical.height_budget":      w.Physical.HeightBudget,
		"physical.height_match.a":     w.Physical.HeightMatch.A,
		"physical.height_match.b":     w.Physical.HeightMatch.B,
		"physical.body_budget":        w.Physical.BodyBudget,
		"physical.body_match.a":       w.Physical.BodyMatch.A,
		"physical.body_match.b":       w.Physical.BodyMatch.B,
		"physical.body_fallback.a":    w.Physical.BodyFallback.A,
		"physical.body_fallback.b":    w.Physical.BodyFallback.B,
		"physical.age_budget":         w.Physical.AgeBudget,
		"physical.age_match.a":        w.Physical.AgeMatch.A,
		"physical.age_match.b":        w.Physical.AgeMatch.B,
		"mental.interest_per_match":   w.Mental.InterestPerMatch,
		"mental.interest_cap":         w.Mental.InterestCap,
		"mental.traits.per_match":     w.Mental.Traits.PerMatch,
		"mental.values.per_match":     w.Mental.Values.PerMatch,
		"mental.goals.per_match":      w.Mental.Goals.PerMatch,
		"mental.shared_goal":          w.Mental.SharedGoal,
		"mental.budget":               w.Mental.Budget,
		"mental_share":                w.MentalShare,
		"physical_share":              w.PhysicalShare,
		"defaults.height_min":         w.Defaults.HeightMin,
		"defaults.age_min":            w.Defaults.AgeMin,
	}
	for _, lw := range []struct {
		name string
		w    ListWeights
	}{{"traits", w.Mental.Traits}, {"values", w.Mental.Values}, {"goals", w.Mental.Goals}} {
		values["mental."+lw.name+".cap.a"] = lw.w.Cap.A
		values["mental."+lw.name+".cap.b"] = lw.w.Cap.B
		values["mental."+lw.name+".fallback.a"] = lw.w.Fallback.A
		values["mental."+lw.name+".fallback.b"] = lw.w.Fallback.B
	}
	for name, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a finite non-negative number", ErrInvalidWeights, name)
		}
	}

	if w.PhysicalBudget() == 0 {
		return fmt.Errorf("%w: physical budgets sum to zero", ErrInvalidWeights)
	}
	if w.Mental.Budget == 0 {
		return fmt.Errorf("%w: mental budget is zero", ErrInvalidWeights)
	}
	if math.Abs(w.MentalShare+w.PhysicalShare-1) > 1e-9 {
		return fmt.Errorf("%w: mental_share + physical_share must equal 1", ErrInvalidWeights)
	}
	if w.Defaults.HeightMin > w.Defaults.HeightMax || w.Defaults.AgeMin > w.Defaults.AgeMax {
		return fmt.Errorf("%w: default ranges are inverted", ErrInvalidWeights)
	}
	if w.MaxReasons < 0 || w.MaxReasons > ReasonLimit {
		return fmt.Errorf("%w: max_reasons must be between 0 and %d", ErrInvalidWeights, ReasonLimit)
	}
	return nil
}
