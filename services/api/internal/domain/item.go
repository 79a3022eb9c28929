package domain

// Item is a rentable catalog entry. The catalog is managed elsewhere;
// rentals only reference items by id and never mutate them.
type Item struct {
	ID          int64
	Name        string
	Category    string
	Sizes       []string
	Colors      []string
	Style       string
	PricePerDay float64
}
