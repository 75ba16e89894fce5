// Package crossref finds task identifiers mentioned in free text, so a
// task can list the other cards its description and comments point at.
package crossref

import "regexp"

// taskIDPattern matches board task identifiers (e.g., KB-298, OPS-7).
var taskIDPattern = regexp.MustCompile(`\b([A-Z][A-Z0-9]+-\d+)\b`)

// ExtractTaskIDs extracts all task identifier matches from text.
// Returns a deduplicated list preserving the order of first occurrence.
func ExtractTaskIDs(text string) []string {
	matches := taskIDPattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var result []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		result = append(result, m)
	}
	return result
}

// References collects the identifiers mentioned across texts, skipping
// self. When exists is non-nil only identifiers it accepts are returned.
func References(self string, texts []string, exists func(id string) bool) []string {
	seen := map[string]bool{self: true}
	var refs []string
	for _, text := range texts {
		for _, id := range ExtractTaskIDs(text) {
			if seen[id] {
				continue
			}
			seen[id] = true
			if exists != nil && !exists(id) {
				continue
			}
			refs = append(refs, id)
		}
	}
	return refs
}
