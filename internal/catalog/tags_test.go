package catalog

import "testing"

// TestResolveCapabilities tests keyword-to-tag resolution, including the
// Japanese keyword variants carried over from legacy supplier data.
func TestResolveCapabilities(t *testing.T) {
	tests := []struct {
		name             string
		capabilities     []string
		wantTags         []Tag
		wantUnclassified int
	}{
		{
			name:             "empty list",
			capabilities:     nil,
			wantTags:         nil,
			wantUnclassified: 0,
		},
		{
			name:             "english keywords",
			capabilities:     []string{"embroidery", "heat-transfer", "screen print"},
			wantTags:         []Tag{TagEmbroidery, TagHeatTransfer, TagPrint},
			wantUnclassified: 0,
		},
		{
			name:             "japanese keywords",
			capabilities:     []string{"刺繍", "熱転写", "シルク印刷", "ロゴ入れ"},
			wantTags:         []Tag{TagEmbroidery, TagHeatTransfer, TagPrint, TagCustomLogo},
			wantUnclassified: 0,
		},
		{
			name:             "3d embroidery contributes to both tags",
			capabilities:     []string{"3D embroidery"},
			wantTags:         []Tag{TagEmbroidery, TagEmbroidery3D},
			wantUnclassified: 0,
		},
		{
			name:             "case insensitive",
			capabilities:     []string{"EMBROIDERY", "Custom Logo"},
			wantTags:         []Tag{TagEmbroidery, TagCustomLogo},
			wantUnclassified: 0,
		},
		{
			name:             "unclassified extras counted",
			capabilities:     []string{"woven labels", "hang tags", "embroidery"},
			wantTags:         []Tag{TagEmbroidery},
			wantUnclassified: 2,
		},
		{
			// A bare "3d" capability resolves the 3D tag but still counts
			// as an extra option for the unclassified bonus.
			name:             "bare 3d counts as unclassified",
			capabilities:     []string{"3d"},
			wantTags:         []Tag{TagEmbroidery3D},
			wantUnclassified: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := ResolveCapabilities(tt.capabilities)

			for _, tag := range tt.wantTags {
				if !profile.Has(tag) {
					t.Errorf("expected tag %s to be resolved", tag)
				}
			}

			if got := len(profile.Tags); got != len(tt.wantTags) {
				t.Errorf("expected %d tags, got %d (%v)", len(tt.wantTags), got, profile.Tags)
			}

			if profile.Unclassified != tt.wantUnclassified {
				t.Errorf("expected %d unclassified, got %d", tt.wantUnclassified, profile.Unclassified)
			}
		})
	}
}
