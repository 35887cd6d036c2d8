package dispatchers

import (
	"cmp"
	"slices"
	"strings"
)

// maxSuggestDistance bounds how far a mistyped command word may be from
// a child name and still be offered as "did you mean".
const maxSuggestDistance = 3

// levenshtein is the case-insensitive edit distance between a and b,
// counted in runes.
func levenshtein(a, b string) int {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			sub := prev[j-1]
			if ra[i-1] != rb[j-1] {
				sub++
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, sub)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

// FindSimilarCommands returns up to maxResults children of node that
// the router could have meant for word: nearest first, then by name. An
// exact match is never suggested.
func FindSimilarCommands(word string, node *DispatchNode, maxResults int) []string {
	if node == nil || node.Children == nil {
		return nil
	}

	type candidate struct {
		name string
		dist int
	}
	var found []candidate
	for name := range node.Children {
		if d := levenshtein(word, name); d > 0 && d <= maxSuggestDistance {
			found = append(found, candidate{name, d})
		}
	}
	slices.SortFunc(found, func(a, b candidate) int {
		return cmp.Or(cmp.Compare(a.dist, b.dist), strings.Compare(a.name, b.name))
	})

	names := make([]string, 0, min(len(found), maxResults))
	for _, c := range found[:min(len(found), maxResults)] {
		names = append(names, c.name)
	}
	return names
}
