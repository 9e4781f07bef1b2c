package catalog

import "strings"

// Tag is a canonical capability tag. Free-form capability strings are
// resolved to tags once at catalog load time so scoring never has to
// substring-match locale-mixed vendor text.
type Tag string

// Canonical capability tags.
const (
	TagEmbroidery   Tag = "embroidery"
	TagEmbroidery3D Tag = "embroidery_3d"
	TagHeatTransfer Tag = "heat_transfer"
	TagPrint        Tag = "print"
	TagCustomLogo   Tag = "custom_logo"
)

// tagKeywords maps each canonical tag to the union of English and Japanese
// keyword variants found in supplier capability text. A capability string
// matches a tag when it contains any of the tag's keywords.
var tagKeywords = map[Tag][]string{
	TagEmbroidery:   {"embroidery", "刺繍"},
	TagEmbroidery3D: {"3d", "立体"},
	TagHeatTransfer: {"heat-transfer", "熱転写"},
	TagPrint:        {"print", "印刷", "プリント"},
	TagCustomLogo:   {"custom", "logo", "ロゴ"},
}

// classifiedKeywords is the keyword set that marks a capability as
// classified for the purpose of the unclassified-extras count. The 3D
// keywords are deliberately absent: a capability that only says "3d" still
// counts as an extra option.
var classifiedKeywords = []string{
	"embroidery", "刺繍",
	"heat-transfer", "熱転写",
	"print", "印刷", "プリント",
	"custom", "logo", "ロゴ",
}

// CapabilityProfile is the resolved view of a supplier's free-form
// capability list: which canonical tags it covers, and how many entries
// matched no known keyword (extra, unclassified options).
type CapabilityProfile struct {
	Tags         map[Tag]bool
	Unclassified int
}

// Has reports whether the profile covers the given tag.
func (p CapabilityProfile) Has(tag Tag) bool {
	return p.Tags[tag]
}

// ResolveCapabilities builds a CapabilityProfile from raw capability
// strings. Matching is case-insensitive substring containment over the
// keyword union for each tag; one capability may contribute to several tags.
func ResolveCapabilities(capabilities []string) CapabilityProfile {
	profile := CapabilityProfile{Tags: make(map[Tag]bool)}

	for _, capability := range capabilities {
		lowered := strings.ToLower(capability)

		for tag, keywords := range tagKeywords {
			for _, kw := range keywords {
				if strings.Contains(lowered, kw) {
					profile.Tags[tag] = true
					break
				}
			}
		}

		classified := false
		for _, kw := range classifiedKeywords {
			if strings.Contains(lowered, kw) {
				classified = true
				break
			}
		}
		if !classified {
			profile.Unclassified++
		}
	}

	return profile
}
