package normalizer

import "testing"

func TestTitleCleaner_Clean(t *testing.T) {
	cleaner := NewTitleCleaner()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"gender tag in parens", "Développeur Web (H/F)", "Développeur web"},
		{"contract words", "Développeur Full-Stack H/F CDI", "Développeur full stack"},
		{"dash separator and schedule", " Data   Analyst - Temps plein ", "Data analyst"},
		{"working hours", "Vendeur 35h CDD", "Vendeur"},
		{"pipe separator", "Chef de projet | Alternance", "Chef de projet"},
		{"nested noise", "Boulanger (Stage) 24H", "Boulanger"},
		{"underscores", "agent_de_securite", "Agent de securite"},
		{"interim word", "Cariste Intérim temps partiel", "Cariste"},
		{"plain title", "Comptable", "Comptable"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleaner.Clean(tt.input)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTitleCleaner_Idempotent(t *testing.T) {
	cleaner := NewTitleCleaner()

	inputs := []string{
		"Développeur Web (H/F)",
		"Vendeur 35h CDD",
		" Data   Analyst - Temps plein ",
		"Infirmier de nuit H/F",
		"Technicien de maintenance (CDI) 39H",
	}

	for _, input := range inputs {
		once := cleaner.Clean(input)
		twice := cleaner.Clean(once)

		if once != twice {
			t.Errorf("Clean is not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}
