// Package fuzzy suggests the nearest known option spelling or sub-command
// name for a mistyped one.
package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Matcher ranks candidates by edit distance to an input.
type Matcher struct {
	maxDistance int
	minLength   int
}

// NewMatcher creates a matcher accepting candidates within maxDistance edits.
func NewMatcher(maxDistance int) *Matcher {
	return &Matcher{
		maxDistance: maxDistance,
		minLength:   2, // shorter inputs produce noise
	}
}

// Match is one ranked candidate.
type Match struct {
	Value    string
	Distance int
	Score    float64 // 0.0 to 1.0, higher is better
}

// FindBest returns the best candidate or "".
func (m *Matcher) FindBest(input string, candidates []string) string {
	matches := m.FindMatches(input, candidates)
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Value
}

// FindMatches returns every candidate within range, best first. Exact
// matches are skipped. Comparison folds case.
func (m *Matcher) FindMatches(input string, candidates []string) []Match {
	in := []rune(strings.ToLower(input))
	if len(in) < m.minLength {
		return nil
	}

	var matches []Match
	for _, candidate := range candidates {
		c := []rune(strings.ToLower(candidate))
		if string(c) == string(in) {
			continue
		}
		d := distance(in, c, m.maxDistance)
		if d > m.maxDistance {
			continue
		}
		matches = append(matches, Match{Value: candidate, Distance: d, Score: score(in, c, d)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			if matches[i].Distance == matches[j].Distance {
				return matches[i].Value < matches[j].Value
			}
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// Distance is the optimal string alignment distance between a and b counted
// in runes: insertions, deletions, substitutions and adjacent swaps cost one.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	return distance(ra, rb, max(len(ra), len(rb)))
}

// distance returns limit+1 as soon as the result is known to exceed limit.
func distance(a, b []rune, limit int) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	if abs(len(a)-len(b)) > limit {
		return limit + 1
	}
	if len(a) > len(b) {
		a, b = b, a
	}

	// three rows: a swap looks two rows back
	back := make([]int, len(a)+1)
	prev := make([]int, len(a)+1)
	cur := make([]int, len(a)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(b); i++ {
		cur[0] = i
		rowMin := i
		for j := 1; j <= len(a); j++ {
			cost := 1
			if a[j-1] == b[i-1] {
				cost = 0
			}
			cur[j] = min(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[j-1] == b[i-2] && a[j-2] == b[i-1] {
				cur[j] = min(cur[j], back[j-2]+1)
			}
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > limit {
			return limit + 1
		}
		back, prev, cur = prev, cur, back
	}
	return prev[len(a)]
}

// score weighs edit distance first, then shared prefix and similar length.
func score(in, c []rune, d int) float64 {
	longest := max(len(in), len(c))
	if longest == 0 {
		return 1
	}
	s := 1 - float64(d)/float64(longest)

	prefix := 0
	for prefix < min(len(in), len(c)) && in[prefix] == c[prefix] {
		prefix++
	}
	s += float64(prefix) / float64(min(len(in), len(c))) * 0.3
	s += (1 - float64(abs(len(in)-len(c)))/float64(longest)) * 0.2
	return min(s, 1)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Spelling suggests the registered option spelling closest to an unknown one.
// Long spellings are only compared with long ones, and the leading dashes do
// not count toward the distance.
func Spelling(input string, spellings []string) string {
	long := strings.HasPrefix(input, "--")
	name := strings.TrimLeft(input, "-")

	var names []string
	byName := make(map[string]string)
	for _, s := range spellings {
		if strings.HasPrefix(s, "--") != long {
			continue
		}
		n := strings.TrimLeft(s, "-")
		names = append(names, n)
		byName[strings.ToLower(n)] = s
	}

	m := NewMatcher(maxDistanceFor(name))
	best := m.FindBest(name, names)
	if best == "" {
		return ""
	}
	return byName[strings.ToLower(best)]
}

// Commands returns up to limit sub-command names close to input.
func Commands(input string, names []string, limit int) []string {
	matches := NewMatcher(maxDistanceFor(input)).FindMatches(input, names)
	out := make([]string, 0, min(limit, len(matches)))
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Value)
	}
	return out
}

// maxDistanceFor allows one edit per three letters, at least one and at most three.
func maxDistanceFor(name string) int {
	n := 0
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return min(max(n/3, 1), 3)
}
