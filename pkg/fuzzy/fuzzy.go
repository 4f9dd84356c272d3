package fuzzy

import (
	"strings"
)

// LevenshteinDistance calculates the edit distance between two strings
// This measures how many single-character edits (insertions, deletions, or substitutions)
// are required to change one string into another
func LevenshteinDistance(s1, s2 string) int {
	s1 = normalizeString(s1)
	s2 = normalizeString(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}

	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[m][n]
}

// FuzzyMatch checks if query fuzzy-matches text within a given threshold
// threshold is the maximum allowed edit distance
func FuzzyMatch(query, text string, threshold int) bool {
	query = normalizeString(query)
	text = normalizeString(text)

	// If query is contained in text, it's a match
	if strings.Contains(text, query) {
		return true
	}

	// Check if any word in text fuzzy-matches the query
	words := strings.Fields(text)
	for _, word := range words {
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
		// Check if word starts with query (partial match)
		if strings.HasPrefix(word, query) {
			return true
		}
	}

	// Check overall distance for short texts
	if len(text) < 50 {
		distance := LevenshteinDistance(query, text)
		// Allow more tolerance for longer queries
		maxDistance := threshold + len(query)/5
		if distance <= maxDistance {
			return true
		}
	}

	return false
}

// CalculateRelevanceScore scores how relevant a task is to a query.
// Higher score = more relevant. Title matches outweigh description matches.
func CalculateRelevanceScore(query, title, description string) float64 {
	query = normalizeString(query)
	score := 0.0

	// Exact match in title (highest weight)
	titleNorm := normalizeString(title)
	if strings.Contains(titleNorm, query) {
		score += 100.0
		// Bonus for exact word match
		if containsWord(titleNorm, query) {
			score += 50.0
		}
	} else {
		// Fuzzy match in title
		titleWords := strings.Fields(titleNorm)
		for _, word := range titleWords {
			dist := LevenshteinDistance(query, word)
			if dist <= 2 {
				score += 50.0 - float64(dist)*15
			}
			if strings.HasPrefix(word, query) {
				score += 40.0
			}
		}
	}

	// Match in description (lower weight)
	descNorm := normalizeString(description)
	if strings.Contains(descNorm, query) {
		score += 60.0
		if containsWord(descNorm, query) {
			score += 20.0
		}
	} else {
		descWords := strings.Fields(descNorm)
		for _, word := range descWords {
			dist := LevenshteinDistance(query, word)
			if dist <= 2 {
				score += 30.0 - float64(dist)*10
			}
			if strings.HasPrefix(word, query) {
				score += 25.0
			}
		}
	}

	return score
}

// FuzzyMatchTask checks if a task matches the query
func FuzzyMatchTask(query, title, description string) bool {
	// Typo tolerance threshold based on query length
	threshold := 2
	if len(query) <= 3 {
		threshold = 1
	} else if len(query) >= 8 {
		threshold = 3
	}

	if FuzzyMatch(query, title, threshold) {
		return true
	}

	// Only check the head of the description for performance
	if len(description) > 0 {
		snippet := description
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		if FuzzyMatch(query, snippet, threshold) {
			return true
		}
	}

	return false
}

// Helper functions

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// normalizeString converts to lowercase and collapses whitespace
func normalizeString(s string) string {
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// containsWord checks if text contains query as a whole word
func containsWord(text, query string) bool {
	words := strings.Fields(text)
	for _, word := range words {
		if word == query {
			return true
		}
	}
	return false
}
