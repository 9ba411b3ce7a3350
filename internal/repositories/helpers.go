package repositories

import "strings"

func joinSets(sets []string) string {
	return strings.Join(sets, ", ")
}
