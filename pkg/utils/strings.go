package utils

import "strings"

// SplitList splits a comma separated value, trimming items and dropping empty ones.
func SplitList(s string) []string {
	var result []string

	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	return result
}
