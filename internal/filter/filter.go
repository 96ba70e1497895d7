// Package filter decides which catalog listings a user's current filter
// selection includes. It is the single matching authority for the feed and
// search screens: handlers read rows and run them through Apply, so search
// behaves identically everywhere.
package filter

import (
	"strings"

	"helwati-backend/internal/domain"
)

// State is the transient, client-held filter selection. Zero value means
// "no filtering". Category and Wilaya also accept "all" as unset.
type State struct {
	Category string
	Query    string
	Wilaya   string
}

// Listing is the view of a product the predicates match against.
type Listing struct {
	Title        string
	Description  string
	Category     string
	SellerName   string
	SellerWilaya string
}

// FromProduct builds the matchable view of a product row. Seller fields are
// empty when the association was not loaded; those clauses then only pass
// for unset filters.
func FromProduct(p domain.Product) Listing {
	l := Listing{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
	}
	if p.Seller != nil {
		l.SellerName = p.Seller.Fullname
		l.SellerWilaya = p.Seller.Wilaya
	}
	return l
}

// Matches reports whether the listing passes every active clause. Clauses
// are independent: an unset clause always passes, a set clause must match.
func (s State) Matches(l Listing) bool {
	return s.matchesCategory(l) && s.matchesQuery(l) && s.matchesWilaya(l)
}

func (s State) matchesCategory(l Listing) bool {
	if s.Category == "" || s.Category == "all" {
		return true
	}
	// Unknown category keys match nothing; a stale chip selection degrades
	// to an empty result set instead of an error.
	if !domain.IsValidCategory(s.Category) {
		return false
	}
	return l.Category == s.Category
}

func (s State) matchesQuery(l Listing) bool {
	q := strings.ToLower(strings.TrimSpace(s.Query))
	if q == "" {
		return true
	}
	for _, field := range []string{
		l.Title,
		domain.CategoryName(l.Category),
		l.SellerName,
		l.Description,
	} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (s State) matchesWilaya(l Listing) bool {
	if s.Wilaya == "" || s.Wilaya == "all" {
		return true
	}
	return l.SellerWilaya == s.Wilaya
}

// Apply filters products in place of order: the result preserves the
// relative order of the source slice. An empty source yields an empty
// (non-nil) result.
func Apply(products []domain.Product, s State) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if s.Matches(FromProduct(p)) {
			out = append(out, p)
		}
	}
	return out
}

// IsActive reports whether any clause is set. Callers use this to tell
// "empty because of filters" apart from "empty catalog"; the engine itself
// carries no such distinction.
func (s State) IsActive() bool {
	return (s.Category != "" && s.Category != "all") ||
		strings.TrimSpace(s.Query) != "" ||
		(s.Wilaya != "" && s.Wilaya != "all")
}
