package memory

import "github.com/danacastroman/app-vestidos/services/api/internal/domain"

// DefaultCatalog returns the same seed items the Postgres migrations insert,
// so the memory-backed dev mode serves a usable shop out of the box.
func DefaultCatalog() []domain.Item {
	return []domain.Item{
		{ID: 1, Name: "Vestido Aurora", Category: "dresses", Sizes: []string{"S", "M", "L"}, Colors: []string{"red", "black"}, Style: "evening", PricePerDay: 45},
		{ID: 2, Name: "Vestido Brisa", Category: "dresses", Sizes: []string{"XS", "S", "M"}, Colors: []string{"white", "ivory"}, Style: "boho", PricePerDay: 38},
		{ID: 3, Name: "Traje Marengo", Category: "suits", Sizes: []string{"M", "L", "XL"}, Colors: []string{"grey"}, Style: "formal", PricePerDay: 55},
		{ID: 4, Name: "Vestido Celeste", Category: "dresses", Sizes: []string{"S", "M"}, Colors: []string{"blue"}, Style: "cocktail", PricePerDay: 42},
		{ID: 5, Name: "Capa Noche", Category: "outerwear", Sizes: []string{"M", "L"}, Colors: []string{"black"}, Style: "evening", PricePerDay: 25},
		{ID: 6, Name: "Vestido Flor", Category: "dresses", Sizes: []string{"M", "L", "XL"}, Colors: []string{"green", "yellow"}, Style: "casual", PricePerDay: 30},
		{ID: 7, Name: "Traje Lino", Category: "suits", Sizes: []string{"S", "M", "L"}, Colors: []string{"beige"}, Style: "summer", PricePerDay: 48},
		{ID: 8, Name: "Vestido Perla", Category: "dresses", Sizes: []string{"S", "M", "L", "XL"}, Colors: []string{"white"}, Style: "bridal", PricePerDay: 80},
	}
}
