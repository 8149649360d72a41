package compatibility

// intersect keeps the items of a that also appear in b, in a's order.
// Matching is exact and case-sensitive.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return []string{}
	}
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	out := make([]string, 0, len(a))
	for _, s := range a {
		if _, ok := set[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// preferenceScore applies one direction of a ListWeights rule: items are
// the other side's attributes, preferred is the judging side's list.
func preferenceScore(items, preferred []string, perMatch, limit, fallback float64) float64 {
	if len(preferred) == 0 {
		return fallback
	}
	return min(float64(len(intersect(items, preferred)))*perMatch, limit)
}
