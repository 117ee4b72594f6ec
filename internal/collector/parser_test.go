package collector

import (
	"strings"
	"testing"

	"emploiscan/internal/models"
)

const helloworkBaseURL = "https://www.hellowork.com/fr-fr/emploi/recherche.html"

const searchPageHTML = `<!DOCTYPE html>
<html lang="fr">
<body>
<ul id="job-list">
  <li data-cy="serpCard">
    <header>
      <h3>
        <p>Développeur Python H/F</p>
        <p>DataCorp</p>
      </h3>
    </header>
    <div data-cy="localisationCard">Paris - 75</div>
    <div data-cy="contractCard">CDI</div>
    <div class="tag">2 000 € / mois</div>
    <a href="/fr-fr/emplois/1234567.html">Voir l'offre</a>
  </li>
  <li data-cy="serpCard">
    <h3>Data Analyst
Nexa Conseil</h3>
  </li>
  <li data-cy="serpCard">
    <h3><p></p><p>Entreprise Fantôme</p></h3>
  </li>
</ul>
</body>
</html>`

func newTestParser(t *testing.T) *Parser {
	t.Helper()

	p, err := NewParser(helloworkBaseURL)
	if err != nil {
		t.Fatalf("NewParser failed: %v", err)
	}

	return p
}

func TestParseSearchPage(t *testing.T) {
	p := newTestParser(t)

	listings, err := p.ParseSearchPage(searchPageHTML)
	if err != nil {
		t.Fatalf("ParseSearchPage failed: %v", err)
	}

	// The third card has no title and must be dropped
	if len(listings) != 2 {
		t.Fatalf("Expected 2 listings, got %d", len(listings))
	}

	first := listings[0]

	if first.Title != "Développeur Python H/F" {
		t.Errorf("Expected title %q, got %q", "Développeur Python H/F", first.Title)
	}

	if first.Company != "DataCorp" {
		t.Errorf("Expected company %q, got %q", "DataCorp", first.Company)
	}

	if first.Location != "Paris - 75" {
		t.Errorf("Expected location %q, got %q", "Paris - 75", first.Location)
	}

	if first.Contract != "CDI" {
		t.Errorf("Expected contract %q, got %q", "CDI", first.Contract)
	}

	if first.Salary != "2 000 € / mois" {
		t.Errorf("Expected salary %q, got %q", "2 000 € / mois", first.Salary)
	}

	want := "https://www.hellowork.com/fr-fr/emplois/1234567.html"
	if first.Link != want {
		t.Errorf("Expected link %q, got %q", want, first.Link)
	}
}

func TestParseSearchPage_HeadingFallback(t *testing.T) {
	p := newTestParser(t)

	listings, err := p.ParseSearchPage(searchPageHTML)
	if err != nil {
		t.Fatalf("ParseSearchPage failed: %v", err)
	}

	if len(listings) != 2 {
		t.Fatalf("Expected 2 listings, got %d", len(listings))
	}

	second := listings[1]

	if second.Title != "Data Analyst" {
		t.Errorf("Expected title %q, got %q", "Data Analyst", second.Title)
	}

	if second.Company != "Nexa Conseil" {
		t.Errorf("Expected company %q, got %q", "Nexa Conseil", second.Company)
	}

	if second.Location != models.DefaultLocation {
		t.Errorf("Expected default location, got %q", second.Location)
	}

	if second.Contract != models.UnknownContract {
		t.Errorf("Expected default contract, got %q", second.Contract)
	}

	if second.Salary != models.UnlistedSalary {
		t.Errorf("Expected default salary, got %q", second.Salary)
	}

	if second.Link != models.UnavailableLink {
		t.Errorf("Expected default link, got %q", second.Link)
	}
}

func TestParseSearchPage_NoCards(t *testing.T) {
	p := newTestParser(t)

	listings, err := p.ParseSearchPage("<html><body><p>Aucune offre</p></body></html>")
	if err != nil {
		t.Fatalf("ParseSearchPage failed: %v", err)
	}

	if len(listings) != 0 {
		t.Errorf("Expected 0 listings, got %d", len(listings))
	}
}

func TestParseSearchPage_SalaryExtraction(t *testing.T) {
	tests := []struct {
		name     string
		cardBody string
		want     string
	}{
		{
			name:     "simple amount",
			cardBody: "<div>35 000 € / an</div>",
			want:     "35 000 € / an",
		},
		{
			name:     "range with euro on both bounds",
			cardBody: "<div>35 000 € - 45 000 € / an</div>",
			want:     "35 000 € - 45 000 € / an",
		},
		{
			name:     "narrow no-break thousands separator",
			cardBody: "<div>2 500 € / mois</div>",
			want:     "2 500 € / mois",
		},
		{
			name:     "line fallback when no digits precede the euro sign",
			cardBody: "<div>Prime:€ selon résultats</div>",
			want:     "Prime:€ selon résultats",
		},
		{
			name:     "no euro amount at all",
			cardBody: "<div>Avantages divers</div>",
			want:     models.UnlistedSalary,
		},
	}

	p := newTestParser(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<html><body><div data-cy="serpCard">
<h3><p>Titre</p><p>Boite</p></h3>
` + tt.cardBody + `
</div></body></html>`

			listings, err := p.ParseSearchPage(html)
			if err != nil {
				t.Fatalf("ParseSearchPage failed: %v", err)
			}

			if len(listings) != 1 {
				t.Fatalf("Expected 1 listing, got %d", len(listings))
			}

			if listings[0].Salary != tt.want {
				t.Errorf("Expected salary %q, got %q", tt.want, listings[0].Salary)
			}
		})
	}
}

func TestParseSearchPage_AbsoluteLinkKept(t *testing.T) {
	p := newTestParser(t)

	html := `<html><body><div data-cy="serpCard">
<h3><p>Titre</p><p>Boite</p></h3>
<a href="https://example.org/offre/42">Voir</a>
</div></body></html>`

	listings, err := p.ParseSearchPage(html)
	if err != nil {
		t.Fatalf("ParseSearchPage failed: %v", err)
	}

	if len(listings) != 1 {
		t.Fatalf("Expected 1 listing, got %d", len(listings))
	}

	if listings[0].Link != "https://example.org/offre/42" {
		t.Errorf("Expected absolute link kept as is, got %q", listings[0].Link)
	}
}

func TestParseSearchPage_CompanyDefault(t *testing.T) {
	p := newTestParser(t)

	html := `<html><body><div data-cy="serpCard"><h3>Juriste Droit Social</h3></div></body></html>`

	listings, err := p.ParseSearchPage(html)
	if err != nil {
		t.Fatalf("ParseSearchPage failed: %v", err)
	}

	if len(listings) != 1 {
		t.Fatalf("Expected 1 listing, got %d", len(listings))
	}

	if listings[0].Company != models.UnknownCompany {
		t.Errorf("Expected company %q, got %q", models.UnknownCompany, listings[0].Company)
	}
}

func TestNewParser_InvalidBaseURL(t *testing.T) {
	_, err := NewParser("://missing-scheme")
	if err == nil {
		t.Fatal("Expected error for invalid base URL")
	}

	if !strings.Contains(err.Error(), "invalid base URL") {
		t.Errorf("Expected base URL error, got %v", err)
	}
}
