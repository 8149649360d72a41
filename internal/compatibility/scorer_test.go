package compatibility

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func newTestScorer() *Scorer {
	return NewScorer(DefaultWeights(), WithClock(func() time.Time { return fixedNow }))
}

// sampleProfiles mirrors the seed data used by the product's sample script.
func sampleProfiles() (Profile, Profile) {
	p1 := Profile{
		Height:      f(175),
		DateOfBirth: date(1995, time.May, 15),
		Qualities: Qualities{
			BodyType:          "athletic",
			Interests:         []string{"hiking", "reading", "music"},
			PersonalityTraits: []string{"adventurous", "kind"},
			Values:            []string{"honesty", "family"},
			RelationshipGoals: []string{"long-term"},
		},
		Requirements: Requirements{
			HeightRange:                Range{Min: f(160), Max: f(185)},
			PreferredBodyTypes:         []string{"athletic", "slim"},
			AgeRange:                   Range{Min: f(25), Max: f(35)},
			PreferredPersonalityTraits: []string{"adventurous"},
			PreferredValues:            []string{"honesty"},
			PreferredRelationshipGoals: []string{"long-term"},
		},
	}
	p2 := Profile{
		Height:      f(168),
		DateOfBirth: date(1996, time.August, 20),
		Qualities: Qualities{
			BodyType:          "athletic",
			Interests:         []string{"hiking", "music"},
			PersonalityTraits: []string{"adventurous", "creative"},
			Values:            []string{"honesty", "adventure"},
			RelationshipGoals: []string{"long-term"},
		},
		Requirements: Requirements{
			HeightRange:                Range{Min: f(170), Max: f(190)},
			PreferredBodyTypes:         []string{"athletic"},
			AgeRange:                   Range{Min: f(24), Max: f(32)},
			PreferredPersonalityTraits: []string{"kind"},
			PreferredValues:            []string{"family"},
			PreferredRelationshipGoals: []string{"long-term"},
		},
	}
	return p1, p2
}

func overallLaw(r Result) int {
	return int(math.Round(float64(r.MentalScore)*0.6 + float64(r.PhysicalScore)*0.4))
}

func TestScore_SampleScenario(t *testing.T) {
	p1, p2 := sampleProfiles()
	r := newTestScorer().Score(p1, p2)

	assert.Equal(t, []string{"hiking", "music"}, r.SharedInterests)

	// height 10+10, body 15+15, age 7+8 over a budget of 50, clamped
	assert.Equal(t, 65.0, r.Breakdown.PhysicalEarned)
	assert.Equal(t, 50.0, r.Breakdown.PhysicalBudget)
	assert.Equal(t, 100, r.PhysicalScore)

	// interests 20, traits 8+8, values 6+6, goals 15+5+5
	assert.Equal(t, 20.0, r.Breakdown.Interests)
	assert.Equal(t, 16.0, r.Breakdown.Traits)
	assert.Equal(t, 12.0, r.Breakdown.Values)
	assert.Equal(t, 25.0, r.Breakdown.Goals)
	assert.Equal(t, 73, r.MentalScore)

	assert.Equal(t, 84, r.OverallScore)
	assert.Equal(t, overallLaw(r), r.OverallScore)
	assert.Equal(t, QualityExcellent, r.Quality())

	assert.Equal(t, []string{
		"You share 2 common interests including hiking, music",
		"You both value honesty",
		"You're both looking for long-term",
	}, r.CompatibilityReasons)
}

func TestScore_EmptyProfiles(t *testing.T) {
	r := newTestScorer().Score(Profile{}, Profile{})

	assert.Equal(t, 0, r.PhysicalScore)
	assert.Equal(t, 34, r.MentalScore)
	assert.Equal(t, 20, r.OverallScore)
	assert.Empty(t, r.SharedInterests)
	assert.NotNil(t, r.SharedInterests)
	assert.Empty(t, r.CompatibilityReasons)
	assert.Equal(t, 50.0, r.Breakdown.PhysicalBudget)
	assert.Equal(t, 100.0, r.Breakdown.MentalBudget)
}

func TestScore_Deterministic(t *testing.T) {
	p1, p2 := sampleProfiles()
	s := newTestScorer()
	assert.Equal(t, s.Score(p1, p2), s.Score(p1, p2))
}

func TestScore_SharedInterestOrderFollowsFirstProfile(t *testing.T) {
	a := Profile{Qualities: Qualities{Interests: []string{"music", "art", "hiking"}}}
	b := Profile{Qualities: Qualities{Interests: []string{"hiking", "cooking", "music"}}}
	s := newTestScorer()

	ab := s.Score(a, b)
	ba := s.Score(b, a)

	assert.Equal(t, []string{"music", "hiking"}, ab.SharedInterests)
	assert.Equal(t, []string{"hiking", "music"}, ba.SharedInterests)
	assert.ElementsMatch(t, ab.SharedInterests, ba.SharedInterests)
}

func TestScore_InterestMatchingIsCaseSensitive(t *testing.T) {
	a := Profile{Qualities: Qualities{Interests: []string{"Hiking"}}}
	b := Profile{Qualities: Qualities{Interests: []string{"hiking"}}}

	r := newTestScorer().Score(a, b)
	assert.Empty(t, r.SharedInterests)
	assert.Equal(t, 0.0, r.Breakdown.Interests)
}

func TestScore_InterestPointsCapped(t *testing.T) {
	interests := []string{"a", "b", "c", "d", "e"}
	a := Profile{Qualities: Qualities{Interests: interests}}
	b := Profile{Qualities: Qualities{Interests: interests}}

	r := newTestScorer().Score(a, b)
	assert.Len(t, r.SharedInterests, 5)
	assert.Equal(t, 30.0, r.Breakdown.Interests)
	assert.Equal(t, "You share 5 common interests including a, b", r.CompatibilityReasons[0])
}

func TestPhysical_HeightSkippedWhenEitherMissing(t *testing.T) {
	a := Profile{Height: f(175)}
	b := Profile{}

	r := newTestScorer().Score(a, b)
	assert.Equal(t, 0.0, r.Breakdown.Height)
	assert.Equal(t, 50.0, r.Breakdown.PhysicalBudget)
}

func TestPhysical_HeightDefaultsAndInclusiveBounds(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Profile
		expect float64
	}{
		{
			name:   "both inside default 150-200",
			a:      Profile{Height: f(150)},
			b:      Profile{Height: f(200)},
			expect: 20,
		},
		{
			name:   "one side below default min",
			a:      Profile{Height: f(149)},
			b:      Profile{Height: f(180)},
			expect: 10,
		},
		{
			name: "only min stated keeps default max",
			a: Profile{
				Height:       f(180),
				Requirements: Requirements{HeightRange: Range{Min: f(190)}},
			},
			b:      Profile{Height: f(195)},
			expect: 20,
		},
		{
			name: "inverted range matches nothing",
			a: Profile{
				Height:       f(180),
				Requirements: Requirements{HeightRange: Range{Min: f(190), Max: f(170)}},
			},
			b:      Profile{Height: f(180)},
			expect: 10,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestScorer().Score(tt.a, tt.b)
			assert.Equal(t, tt.expect, r.Breakdown.Height)
		})
	}
}

func TestPhysical_BodyTypeAsymmetricFallback(t *testing.T) {
	a := Profile{Qualities: Qualities{BodyType: "slim"}}
	b := Profile{Qualities: Qualities{BodyType: "curvy"}}

	r := newTestScorer().Score(a, b)
	assert.Equal(t, 15.0, r.Breakdown.BodyType) // 7 + 8

	a.Requirements.PreferredBodyTypes = []string{"athletic"}
	r = newTestScorer().Score(a, b)
	assert.Equal(t, 8.0, r.Breakdown.BodyType) // miss + 8

	b.Requirements.PreferredBodyTypes = []string{"athletic"}
	a.Requirements.PreferredBodyTypes = []string{"curvy"}
	r = newTestScorer().Score(a, b)
	assert.Equal(t, 15.0, r.Breakdown.BodyType) // 15 + miss
}

func TestPhysical_BodyTypeSkippedWhenOneSideBlank(t *testing.T) {
	a := Profile{Qualities: Qualities{BodyType: "slim"}}
	r := newTestScorer().Score(a, Profile{})
	assert.Equal(t, 0.0, r.Breakdown.BodyType)
}

func TestPhysical_AgeSplit(t *testing.T) {
	// On fixedNow: a is 28, b is 40.
	a := Profile{DateOfBirth: date(1998, time.January, 1)}
	b := Profile{DateOfBirth: date(1986, time.January, 1)}

	r := newTestScorer().Score(a, b)
	// a's default 18-30 rejects 40; b's default accepts 28
	assert.Equal(t, 8.0, r.Breakdown.Age)

	r = newTestScorer().Score(b, a)
	assert.Equal(t, 7.0, r.Breakdown.Age)
}

func TestMental_FlatFallbacks(t *testing.T) {
	r := newTestScorer().Score(Profile{}, Profile{})
	assert.Equal(t, 17.0, r.Breakdown.Traits) // 8 + 9
	assert.Equal(t, 12.0, r.Breakdown.Values) // 6 + 6
	assert.Equal(t, 5.0, r.Breakdown.Goals)   // 3 + 2
}

func TestMental_PreferenceCaps(t *testing.T) {
	traits := []string{"kind", "funny", "smart"}
	a := Profile{
		Qualities:    Qualities{PersonalityTraits: traits, Values: []string{"x", "y"}},
		Requirements: Requirements{PreferredPersonalityTraits: traits, PreferredValues: []string{"x", "y"}},
	}
	b := a

	r := newTestScorer().Score(a, b)
	assert.Equal(t, 25.0, r.Breakdown.Traits) // 12 + 13
	assert.Equal(t, 20.0, r.Breakdown.Values) // 10 + 10
}

func TestMental_PreferenceMiss(t *testing.T) {
	a := Profile{
		Qualities:    Qualities{PersonalityTraits: []string{"shy"}},
		Requirements: Requirements{PreferredPersonalityTraits: []string{"bold"}},
	}
	b := Profile{
		Qualities:    Qualities{PersonalityTraits: []string{"quiet"}},
		Requirements: Requirements{PreferredPersonalityTraits: []string{"loud"}},
	}

	r := newTestScorer().Score(a, b)
	assert.Equal(t, 0.0, r.Breakdown.Traits)
}

func TestMental_GoalsWithoutSharedGoal(t *testing.T) {
	a := Profile{
		Qualities:    Qualities{RelationshipGoals: []string{"casual"}},
		Requirements: Requirements{PreferredRelationshipGoals: []string{"marriage"}},
	}
	b := Profile{Qualities: Qualities{RelationshipGoals: []string{"marriage"}}}

	r := newTestScorer().Score(a, b)
	assert.Equal(t, 7.0, r.Breakdown.Goals) // 0 shared + 5 + 2 fallback
}

func TestReasons_PriorityAndCap(t *testing.T) {
	q := Qualities{
		Interests:          []string{"chess"},
		Values:             []string{"Loyalty"},
		RelationshipGoals:  []string{"Marriage"},
		EducationLevel:     "masters",
		CommunicationStyle: "direct",
	}
	a := Profile{Qualities: q}
	b := Profile{Qualities: q}

	r := newTestScorer().Score(a, b)
	assert.Equal(t, []string{
		"You both love chess",
		"You both value loyalty",
		"You're both looking for marriage",
	}, r.CompatibilityReasons)

	a.Qualities.Interests = nil
	a.Qualities.Values = nil
	r = newTestScorer().Score(a, b)
	assert.Equal(t, []string{
		"You're both looking for marriage",
		"You're at similar education levels",
		"You both have direct communication styles",
	}, r.CompatibilityReasons)
}

func TestReasons_EducationNeedsBothSides(t *testing.T) {
	a := Profile{Qualities: Qualities{EducationLevel: ""}}
	b := Profile{Qualities: Qualities{EducationLevel: ""}}
	r := newTestScorer().Score(a, b)
	assert.Empty(t, r.CompatibilityReasons)
}

func TestScore_BoundsAndLaw(t *testing.T) {
	p1, p2 := sampleProfiles()
	profiles := []Profile{{}, p1, p2, {Height: f(120)}, {Qualities: Qualities{BodyType: "x"}}}

	s := newTestScorer()
	for _, a := range profiles {
		for _, b := range profiles {
			r := s.Score(a, b)
			for _, v := range []int{r.PhysicalScore, r.MentalScore, r.OverallScore} {
				assert.GreaterOrEqual(t, v, 0)
				assert.LessOrEqual(t, v, 100)
			}
			assert.Equal(t, overallLaw(r), r.OverallScore)
			assert.LessOrEqual(t, len(r.CompatibilityReasons), 3)
		}
	}
}

func TestScore_ConcurrentUse(t *testing.T) {
	p1, p2 := sampleProfiles()
	s := newTestScorer()
	want := s.Score(p1, p2)

	var wg sync.WaitGroup
	results := make([]Result, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = s.Score(p1, p2)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestScoreRaw_AcceptsSerializedAndMalformed(t *testing.T) {
	a := RawProfile{
		Qualities:    `{"interests":["hiking","music"],"values":["Honesty"]}`,
		Requirements: `{"age_range_min": 20`,
	}
	b := RawProfile{
		Qualities: map[string]any{"interests": []any{"music"}, "values": []any{"Honesty"}},
	}

	r, issues := newTestScorer().ScoreRaw(a, b)
	require.Len(t, issues, 1)
	assert.Equal(t, "requirements", issues[0].Field)
	assert.Equal(t, []string{"music"}, r.SharedInterests)
	assert.Equal(t, []string{"You both love music", "You both value honesty"}, r.CompatibilityReasons)
}

func TestScoreAt_IgnoresClock(t *testing.T) {
	p1, p2 := sampleProfiles()
	s := NewScorer(DefaultWeights(), WithClock(func() time.Time { return time.Time{} }))
	assert.Equal(t, newTestScorer().Score(p1, p2), s.ScoreAt(p1, p2, fixedNow))
}

func TestQualityOf(t *testing.T) {
	assert.Equal(t, QualityExcellent, QualityOf(80))
	assert.Equal(t, QualityGood, QualityOf(79))
	assert.Equal(t, QualityFair, QualityOf(40))
	assert.Equal(t, QualityPoor, QualityOf(20))
	assert.Equal(t, QualityNone, QualityOf(19))
}
