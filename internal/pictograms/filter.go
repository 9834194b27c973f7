package pictograms

import "strings"

// FilterByCategory keeps pictograms whose stored category equals categoryID
// after trimming. Records without a category never match. This runs on every
// listing regardless of which query path fetched the data, as a safety net
// against an incompletely filtered server-side result.
func FilterByCategory(items []Pictogram, categoryID string) []Pictogram {
	if categoryID == "" {
		return items
	}

	out := make([]Pictogram, 0, len(items))
	for _, p := range items {
		if strings.TrimSpace(p.Category) == "" {
			continue
		}
		if strings.TrimSpace(p.Category) == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// FilterByKeyword keeps pictograms whose keyword contains the search term,
// case-insensitively. Empty search keeps everything.
func FilterByKeyword(items []Pictogram, search string) []Pictogram {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return items
	}

	out := make([]Pictogram, 0, len(items))
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Keyword), needle) {
			out = append(out, p)
		}
	}
	return out
}
