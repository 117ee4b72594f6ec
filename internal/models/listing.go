// Package models defines data structures for the collector and normalizer.
package models

import "github.com/shopspring/decimal"

// Default values written by the collector when a card lacks a field.
const (
	UnknownCompany  = "Inconnu"
	DefaultLocation = "France"
	UnknownContract = "Non spécifié"
	UnlistedSalary  = "Non affiché"
	UnavailableLink = "Non disponible"
)

// RawListing is one job offer as scraped from a search-result card.
// It maps to the raw CSV columns Titre, Entreprise, Localisation,
// Contrat, Salaire and Lien.
type RawListing struct {
	Title    string
	Company  string
	Location string
	Contract string
	Salary   string
	Link     string
}

// CleanListing is a normalized offer ready for the clean CSV. It maps to
// the columns Titre_Simplifie, Entreprise, Ville, Departement, Contrat
// and Salaire_Annuel.
type CleanListing struct {
	Title      string
	Company    string
	City       string
	Department string
	Contract   string
	// AnnualSalary is the annual gross figure. Invalid means the source
	// text could not be read as a salary.
	AnnualSalary decimal.NullDecimal
}
