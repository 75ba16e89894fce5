package model

// LabelPreset is an entry of the label catalog offered by the label picker.
type LabelPreset struct {
	Name  string `json:"name" db:"name"`
	Color string `json:"color" db:"color"`
}

// PresetsFromNames builds an uncolored catalog from plain label names,
// dropping blanks and case-insensitive duplicates.
func PresetsFromNames(names []string) []LabelPreset {
	out := make([]LabelPreset, 0, len(names))
	for _, n := range names {
		n = NormalizeLabel(n)
		if n == "" || hasPreset(out, n) {
			continue
		}
		out = append(out, LabelPreset{Name: n})
	}
	return out
}

func hasPreset(presets []LabelPreset, name string) bool {
	for _, p := range presets {
		if SameLabel(p.Name, name) {
			return true
		}
	}
	return false
}
