package categories

import "strings"

// FilterBySearch keeps categories whose name, nameEn or nameNl contains the
// search term, case-insensitively. Empty search keeps everything.
func FilterBySearch(items []Category, search string) []Category {
	if search == "" {
		return items
	}
	needle := strings.ToLower(search)

	out := make([]Category, 0, len(items))
	for _, cat := range items {
		if strings.Contains(strings.ToLower(cat.Name), needle) ||
			strings.Contains(strings.ToLower(cat.NameEn), needle) ||
			strings.Contains(strings.ToLower(cat.NameNl), needle) {
			out = append(out, cat)
		}
	}
	return out
}
