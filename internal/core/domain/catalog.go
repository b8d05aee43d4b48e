package domain

import "github.com/shopspring/decimal"

// BakeryCatalog returns a fresh copy of the compiled-in product list.
func BakeryCatalog() []Product {
	return []Product{
		{
			ID:          1,
			Name:        "Classic Sourdough",
			Category:    CategoryBreads,
			Price:       decimal.RequireFromString("6.99"),
			Description: "Traditional sourdough with a crispy crust and soft interior",
			Image:       "https://images.unsplash.com/photo-1549931319-a545dcf3bc73?w=400&q=80",
			InStock:     true,
		},
		{
			ID:          2,
			Name:        "Butter Croissant",
			Category:    CategoryPastries,
			Price:       decimal.RequireFromString("3.50"),
			Description: "Flaky, buttery croissant baked to golden perfection",
			Image:       "https://images.unsplash.com/photo-1555507036-ab1f4038808a?w=400&q=80",
			InStock:     true,
		},
		{
			ID:          3,
			Name:        "Chocolate Cake",
			Category:    CategoryCakes,
			Price:       decimal.RequireFromString("28.99"),
			Description: "Rich chocolate cake with creamy frosting",
			Image:       "https://images.unsplash.com/photo-1578985545062-69928b1d9587?w=400&q=80",
			InStock:     true,
		},
		{
			ID:          4,
			Name:        "Whole Wheat Bread",
			Category:    CategoryBreads,
			Price:       decimal.RequireFromString("5.99"),
			Description: "Healthy whole wheat bread packed with nutrients",
			Image:       "https://images.unsplash.com/photo-1509440159596-0249088772ff?w=400&q=80",
			InStock:     true,
		},
		{
			ID:          5,
			Name:        "Almond Croissant",
			Category:    CategoryPastries,
			Price:       decimal.RequireFromString("4.25"),
			Description: "Croissant filled with almond cream and topped with sliced almonds",
			Image:       "https://images.unsplash.com/photo-1623334044303-241021148842?w=400&q=80",
			InStock:     true,
		},
		{
			ID:          6,
			Name:        "Blueberry Muffin",
			Category:    CategoryPastries,
			Price:       decimal.RequireFromString("3.00"),
			Description: "Fresh blueberries baked into a moist, fluffy muffin",
			Image:       "https://images.unsplash.com/photo-1607958996333-41aef7caefaa?w=400&q=80",
			InStock:     true,
		},
		{
			ID:          7,
			Name:        "Baguette",
			Category:    CategoryBreads,
			Price:       decimal.RequireFromString("4.50"),
			Description: "Classic French baguette with crispy crust",
			Image:       "https://images.unsplash.com/photo-1608198399988-3c1c3b96e0eb?w=400&q=80",
			InStock:     true,
		},
		{
			ID:          8,
			Name:        "Red Velvet Cake",
			Category:    CategoryCakes,
			Price:       decimal.RequireFromString("32.99"),
			Description: "Classic red velvet cake with cream cheese frosting",
			Image:       "https://images.unsplash.com/photo-1586985289688-ca3cf47d3e6e?w=400&q=80",
			InStock:     true,
		},
		{
			ID:          9,
			Name:        "Cinnamon Roll",
			Category:    CategoryPastries,
			Price:       decimal.RequireFromString("3.75"),
			Description: "Soft cinnamon roll with sweet icing",
			Image:       "https://images.unsplash.com/photo-1631206661375-462a5d1ffe1c?w=400&q=80",
			InStock:     false,
		},
	}
}
