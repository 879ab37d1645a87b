package models

// Finding is one recognized protection construct kind found in a worksheet part.
type Finding struct {
	// Kind is the human-readable pattern name.
	Kind string `json:"kind"`
	// Count is the number of matches of this kind.
	Count int `json:"count"`
	// Previews holds the leading matches, each truncated for display.
	Previews []string `json:"previews,omitempty"`
}

// Inspection is the non-mutating diagnostic result for one worksheet part.
type Inspection struct {
	File        string    `json:"file"`
	DisplayName string    `json:"display_name"`
	Findings    []Finding `json:"findings,omitempty"`
	Err         string    `json:"error,omitempty"`
}

// Protected reports whether any construct was recognized.
func (i Inspection) Protected() bool {
	return len(i.Findings) > 0
}
