package protection

import (
	"github.com/ukaji3/xlunlock-go/pkg/unprotect/models"
)

const (
	// PreviewCount is the number of matches previewed per kind by Inspect.
	PreviewCount = 3
	// PreviewLength bounds each Inspect preview.
	PreviewLength = 150
	// RemovalPreviewLength bounds previews of removed elements.
	RemovalPreviewLength = 100
)

// Stripper removes and reports protection markup in worksheet XML text.
type Stripper interface {
	// Strip deletes every protection element and returns the new text and
	// the number of deletions. The text is returned unchanged when nothing
	// matched.
	Strip(xmlText string) (string, int)
	// StripMatches is Strip returning the removed element texts instead of
	// their count.
	StripMatches(xmlText string) (string, []string)
	// Inspect reports recognized constructs without modifying anything.
	Inspect(xmlText string) []models.Finding
}

// RegexStripper is the textual Stripper.
type RegexStripper struct{}

var _ Stripper = RegexStripper{}

func (RegexStripper) Strip(xmlText string) (string, int) {
	return Strip(xmlText)
}

func (RegexStripper) StripMatches(xmlText string) (string, []string) {
	return StripMatches(xmlText)
}

func (RegexStripper) Inspect(xmlText string) []models.Finding {
	return Inspect(xmlText)
}

// Strip removes all self-closing and paired sheetProtection elements.
func Strip(xmlText string) (string, int) {
	text, matches := StripMatches(xmlText)
	return text, len(matches)
}

// StripMatches is Strip that also returns the removed element texts in the
// order they were removed.
func StripMatches(xmlText string) (string, []string) {
	text := xmlText
	var removed []string
	for _, p := range removable {
		found := p.re.FindAllString(text, -1)
		if len(found) == 0 {
			continue
		}
		removed = append(removed, found...)
		text = p.re.ReplaceAllLiteralString(text, "")
	}
	if len(removed) == 0 {
		return xmlText, nil
	}
	return text, removed
}

// Inspect runs every recognized pattern over xmlText independently and
// returns one Finding per kind that matched.
func Inspect(xmlText string) []models.Finding {
	var findings []models.Finding
	for _, p := range inspected {
		found := p.re.FindAllString(xmlText, -1)
		if len(found) == 0 {
			continue
		}
		n := min(len(found), PreviewCount)
		previews := make([]string, 0, n)
		for _, m := range found[:n] {
			previews = append(previews, Preview(m, PreviewLength))
		}
		findings = append(findings, models.Finding{
			Kind:     string(p.kind),
			Count:    len(found),
			Previews: previews,
		})
	}
	return findings
}

// Preview truncates s to at most limit runes, marking truncation with "...".
func Preview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
