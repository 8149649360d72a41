package compatibility

import (
	"fmt"
	"strings"
)

// reasons builds the explanation list in fixed priority order: interests,
// values, goals, education, communication style. Only the first limit are kept.
func reasons(a, b Qualities, shared []string, limit int) []string {
	out := make([]string, 0, 5)

	switch {
	case len(shared) == 1:
		out = append(out, fmt.Sprintf("You both love %s", shared[0]))
	case len(shared) > 1:
		out = append(out, fmt.Sprintf("You share %d common interests including %s",
			len(shared), strings.Join(shared[:2], ", ")))
	}

	if common := intersect(a.Values, b.Values); len(common) > 0 {
		out = append(out, fmt.Sprintf("You both value %s", strings.ToLower(common[0])))
	}

	if common := intersect(a.RelationshipGoals, b.RelationshipGoals); len(common) > 0 {
		out = append(out, fmt.Sprintf("You're both looking for %s", strings.ToLower(common[0])))
	}

	if a.EducationLevel != "" && a.EducationLevel == b.EducationLevel {
		out = append(out, "You're at similar education levels")
	}

	if a.CommunicationStyle != "" && a.CommunicationStyle == b.CommunicationStyle {
		out = append(out, fmt.Sprintf("You both have %s communication styles", a.CommunicationStyle))
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
