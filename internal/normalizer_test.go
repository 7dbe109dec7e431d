package internal

import (
	"testing"
)

func TestNormalizer_Normalize(t *testing.T) {
	normalizer := NewNormalizer(
		map[string]string{"Mami": "Marta", " Pablito ": "Pablo", "Bot": "Meta AI"},
		DefaultExcludedSenders,
	)

	tests := []struct {
		name     string
		raw      string
		want     string
		wantKeep bool
	}{
		{"plain", "Lucia", "Lucia", true},
		{"alias", "Mami", "Marta", true},
		{"alias key is trimmed", "Pablito", "Pablo", true},
		{"surrounding space", "  Lucia ", "Lucia", true},
		{"bidi marks", "\u202aMami\u202c", "Marta", true},
		{"left-to-right mark", "\u200eLucia", "Lucia", true},
		{"no-break space", "T\u00eda\u00a0Ana", "T\u00eda Ana", true},
		{"decomposed accent", "Luci\u0301a", "Luc\u00eda", true},
		{"excluded", "Meta AI", "", false},
		{"alias onto an excluded name", "Bot", "Meta AI", true},
		{"empty", "   ", "", false},
		{"system notice", "Messages and calls are end-to-end encrypted. No one outside of this chat can read them.", "", false},
		{"group created", "Marta created group \"Familia\"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := normalizer.Normalize(tt.raw)
			if got != tt.want || keep != tt.wantKeep {
				t.Errorf("Normalize(%q) = %q, %v; want %q, %v", tt.raw, got, keep, tt.want, tt.wantKeep)
			}
		})
	}
}

func TestNormalizer_ExcludesBeforeAliasing(t *testing.T) {
	normalizer := NewNormalizer(map[string]string{"Meta AI": "Bot"}, []string{"Meta AI"})
	if got, keep := normalizer.Normalize("Meta AI"); keep {
		t.Errorf("Normalize() = %q, kept; an excluded sender must be dropped even when aliased", got)
	}
}

func TestNormalizer_Nil(t *testing.T) {
	normalizer := NewNormalizer(nil, nil)
	if got, keep := normalizer.Normalize("Meta AI"); !keep || got != "Meta AI" {
		t.Errorf("Normalize() = %q, %v; without exclusions every sender is kept", got, keep)
	}
}

func TestStripMarks(t *testing.T) {
	in := "\ufeff\u200e9:00\u202fAM\u200f"
	if got := stripMarks(in); got != "9:00 AM" {
		t.Errorf("stripMarks(%q) = %q, want %q", in, got, "9:00 AM")
	}
}
