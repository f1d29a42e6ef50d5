package domain

import "strings"

// DefaultCategories are offered to every user and never persisted per user.
var DefaultCategories = []string{
	"Food", "Transport", "Utilities", "Entertainment", "Shopping",
	"Health", "Travel", "Education", "Salary", "Freelance", "Investment", "Other",
}

// MergeCategories returns the defaults followed by custom labels, dropping
// blanks and anything already present.
func MergeCategories(custom []string) []string {
	out := make([]string, 0, len(DefaultCategories)+len(custom))
	seen := make(map[string]struct{}, cap(out))
	add := func(label string) {
		label = strings.TrimSpace(label)
		if label == "" {
			return
		}
		if _, ok := seen[label]; ok {
			return
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	for _, c := range DefaultCategories {
		add(c)
	}
	for _, c := range custom {
		add(c)
	}
	return out
}
