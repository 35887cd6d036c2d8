package dispatchers

import "slices"

// CommandCategory groups leaves on the root help page. The zero value
// is uncategorized.
type CommandCategory string

const (
	CategoryUncategorized CommandCategory = ""
	CategoryBuiltin       CommandCategory = "built-in commands"
)

func (c CommandCategory) String() string {
	if c == CategoryUncategorized {
		return "commands"
	}
	return string(c)
}

// CategoryOrder returns categories in display order: named categories
// alphabetically, then uncategorized, then built-ins.
func CategoryOrder(present []CommandCategory) []CommandCategory {
	var named []CommandCategory
	hasPlain, hasBuiltin := false, false
	for _, c := range present {
		switch c {
		case CategoryUncategorized:
			hasPlain = true
		case CategoryBuiltin:
			hasBuiltin = true
		default:
			if !slices.Contains(named, c) {
				named = append(named, c)
			}
		}
	}
	slices.Sort(named)
	if hasPlain {
		named = append(named, CategoryUncategorized)
	}
	if hasBuiltin {
		named = append(named, CategoryBuiltin)
	}
	return named
}
