package domain

// Category is one of the fixed product categories shown as filter chips.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Categories is the fixed category set. IDs are stored on products; names
// are the Arabic display strings the frontend renders and searches.
var Categories = []Category{
	{ID: "traditional", Name: "تقليدي", Icon: "🍪"},
	{ID: "prestige", Name: "برستيج", Icon: "🎂"},
	{ID: "tarts", Name: "تارت", Icon: "🥧"},
	{ID: "savory", Name: "مالح", Icon: "🥐"},
}

// Wilayas is the fixed region list sellers pick from.
var Wilayas = []string{
	"الجزائر", "وهران", "قسنطينة", "عنابة", "البليدة", "سطيف", "باتنة",
	"تلمسان", "بجاية", "سكيكدة", "تيزي وزو", "جيجل", "المسيلة", "ورقلة",
	"بسكرة", "الجلفة", "الشلف", "المدية", "تيارت", "بومرداس",
}

// CategoryName resolves a category ID to its display name. Unknown IDs
// return empty string so a stale filter selection matches nothing instead
// of failing.
func CategoryName(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return ""
}

// IsValidCategory reports whether id names one of the fixed categories.
func IsValidCategory(id string) bool {
	return CategoryName(id) != ""
}

// IsValidWilaya reports whether w is in the fixed region list.
func IsValidWilaya(w string) bool {
	for _, x := range Wilayas {
		if x == w {
			return true
		}
	}
	return false
}
