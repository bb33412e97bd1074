package models

// Category classifies both expenses and budgets.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealthcare    Category = "Healthcare"
	CategoryEducation     Category = "Education"
	CategoryOther         Category = "Other"
)

// DefaultCategory is applied when a record is created without a category.
const DefaultCategory = CategoryOther

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryBills,
	CategoryEntertainment,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
