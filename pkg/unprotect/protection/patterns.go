// Package protection detects and removes worksheet protection markup from
// raw worksheet XML text.
//
// Matching is textual. Elements are assumed never to nest and never to
// carry a literal closing tag inside an attribute value; under that
// assumption each paired match ends at the nearest closing tag.
package protection

import "regexp"

// Kind names a recognized protection construct.
type Kind string

// Kinds reported by Inspect. Only the two sheetProtection kinds are removed
// by Strip; protected ranges are reported but kept.
const (
	KindSelfClosing     Kind = "sheetProtection (self-closing)"
	KindPaired          Kind = "sheetProtection (with content)"
	KindProtectedRanges Kind = "protectedRanges"
	KindProtectedRange  Kind = "protectedRange"
)

type pattern struct {
	kind Kind
	re   *regexp.Regexp
}

// selfClosing builds the pattern for <name .../>. The name must be followed
// by whitespace or the closing "/>" so longer element names are not matched.
func selfClosing(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)<` + name + `(?:\s[^>]*)?/>`)
}

// paired builds the pattern for <name ...>...</name>, ending at the nearest
// closing tag. The opening tag must not end in "/".
func paired(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?is)<` + name + `(?:\s[^>]*[^/>])?\s*>.*?</` + name + `\s*>`)
}

// removable are applied in order by Strip, each over the previous output.
var removable = []pattern{
	{KindSelfClosing, selfClosing("sheetProtection")},
	{KindPaired, paired("sheetProtection")},
}

// inspected are run independently over the original text by Inspect.
var inspected = []pattern{
	removable[0],
	removable[1],
	{KindProtectedRanges, paired("protectedRanges")},
	{KindProtectedRange, selfClosing("protectedRange")},
}
