package filter

import (
	"testing"

	"helwati-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProducts() []domain.Product {
	return []domain.Product{
		{
			Title:       "قلب اللوز",
			Description: "حلوى تقليدية جزائرية بنكهة اللوز الطبيعي",
			Category:    "traditional",
			Seller:      &domain.User{Fullname: "أم سارة", Wilaya: "الجزائر"},
		},
		{
			Title:       "تارت الفراولة",
			Description: "تارت طازجة بالفراولة الموسمية والكريمة",
			Category:    "tarts",
			Seller:      &domain.User{Fullname: "فاطمة زهرة", Wilaya: "قسنطينة"},
		},
	}
}

func TestApply_CategoryOnly(t *testing.T) {
	got := Apply(sampleProducts(), State{Category: "traditional"})
	require.Len(t, got, 1)
	assert.Equal(t, "قلب اللوز", got[0].Title)
}

func TestApply_QueryMatchesTitle(t *testing.T) {
	got := Apply(sampleProducts(), State{Query: "تارت"})
	require.Len(t, got, 1)
	assert.Equal(t, "تارت الفراولة", got[0].Title)
}

func TestApply_QueryMatchesSellerName(t *testing.T) {
	got := Apply(sampleProducts(), State{Query: "أم سارة"})
	require.Len(t, got, 1)
	assert.Equal(t, "قلب اللوز", got[0].Title)
}

func TestApply_QueryMatchesCategoryDisplayName(t *testing.T) {
	// "تقليدي" is the display name of category id "traditional".
	got := Apply(sampleProducts(), State{Query: "تقليدي"})
	require.Len(t, got, 1)
	assert.Equal(t, "قلب اللوز", got[0].Title)
}

func TestApply_QueryMatchesDescription(t *testing.T) {
	got := Apply(sampleProducts(), State{Query: "الموسمية"})
	require.Len(t, got, 1)
	assert.Equal(t, "تارت الفراولة", got[0].Title)
}

func TestMatches_CategoryMismatchOverridesEverything(t *testing.T) {
	products := sampleProducts()
	// Query and wilaya both match product 0, but category does not.
	s := State{Category: "tarts", Query: "قلب اللوز", Wilaya: "الجزائر"}
	assert.False(t, s.Matches(FromProduct(products[0])))
}

func TestApply_UnknownCategoryMatchesNothing(t *testing.T) {
	got := Apply(sampleProducts(), State{Category: "cupcakes"})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestApply_WilayaFilter(t *testing.T) {
	got := Apply(sampleProducts(), State{Wilaya: "قسنطينة"})
	require.Len(t, got, 1)
	assert.Equal(t, "تارت الفراولة", got[0].Title)
}

func TestApply_AllSentinelsMeanUnset(t *testing.T) {
	got := Apply(sampleProducts(), State{Category: "all", Wilaya: "all"})
	assert.Len(t, got, 2)
}

func TestApply_WhitespaceQueryMatchesAll(t *testing.T) {
	got := Apply(sampleProducts(), State{Query: "   "})
	assert.Len(t, got, 2)
}

func TestApply_EmptySource(t *testing.T) {
	got := Apply(nil, State{Category: "tarts"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_PreservesOrderAndIsIdempotent(t *testing.T) {
	products := []domain.Product{
		{Title: "a", Category: "tarts"},
		{Title: "b", Category: "traditional"},
		{Title: "c", Category: "tarts"},
		{Title: "d", Category: "tarts"},
	}
	s := State{Category: "tarts"}
	once := Apply(products, s)
	require.Len(t, once, 3)
	assert.Equal(t, "a", once[0].Title)
	assert.Equal(t, "c", once[1].Title)
	assert.Equal(t, "d", once[2].Title)

	twice := Apply(once, s)
	assert.Equal(t, once, twice)
}

func TestApply_NoSellerLoaded(t *testing.T) {
	products := []domain.Product{{Title: "x", Category: "tarts"}}
	// Wilaya clause set but seller missing: matches nothing.
	assert.Empty(t, Apply(products, State{Wilaya: "وهران"}))
	// Unset wilaya clause still passes.
	assert.Len(t, Apply(products, State{}), 1)
}

func TestIsActive(t *testing.T) {
	assert.False(t, State{}.IsActive())
	assert.False(t, State{Category: "all", Wilaya: "all", Query: " "}.IsActive())
	assert.True(t, State{Category: "tarts"}.IsActive())
	assert.True(t, State{Query: "تارت"}.IsActive())
	assert.True(t, State{Wilaya: "وهران"}.IsActive())
}
