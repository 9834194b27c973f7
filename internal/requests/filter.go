package requests

import "strings"

// FilterByKeyword keeps requests whose keyword contains the search term,
// case-insensitively. Empty search keeps everything.
func FilterByKeyword(items []Request, search string) []Request {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return items
	}

	out := make([]Request, 0, len(items))
	for _, req := range items {
		if strings.Contains(strings.ToLower(req.Keyword), needle) {
			out = append(out, req)
		}
	}
	return out
}
