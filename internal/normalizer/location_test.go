package normalizer

import "testing"

func TestLocationSplitter_Split(t *testing.T) {
	splitter := NewLocationSplitter()

	tests := []struct {
		name       string
		input      string
		city       string
		department string
	}{
		{"dash form", "Lyon - 69", "Lyon", "69"},
		{"dash form with district", "Paris 15e - 75", "Paris", "75"},
		{"dash form with premier", "Lyon 1er - 69", "Lyon", "69"},
		{"overseas code", "Saint-Denis - 974", "Saint-Denis", "974"},
		{"paren form", "Lyon (69)", "Lyon", "69"},
		{"paren corsican code", "Bastia (2B)", "Bastia", "2B"},
		{"city only", "Paris", "Paris", ""},
		{"country fallback", "France", "France", ""},
		{"bare district number", "Marseille 13", "Marseille", ""},
		{"bare district ordinal", "Toulouse 2ème", "Toulouse", ""},
		{"padded", "  Nantes - 44  ", "Nantes", "44"},
		{"hyphenated city no department", "La Roche-sur-Yon", "La Roche-sur-Yon", ""},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, department := splitter.Split(tt.input)

			if city != tt.city {
				t.Errorf("Expected city %q, got %q", tt.city, city)
			}

			if department != tt.department {
				t.Errorf("Expected department %q, got %q", tt.department, department)
			}
		})
	}
}
