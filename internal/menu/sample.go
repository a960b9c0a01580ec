package menu

import (
	"fmt"

	"github.com/google/uuid"
)

var (
	sampleCategories = []string{
		"Starters", "Soups", "Salads", "Pasta", "Pizza",
		"Grill", "Seafood", "Vegetarian", "Desserts", "Drinks",
	}
	sampleStyles = []string{
		"Roasted", "Grilled", "Smoked", "Crispy", "Braised",
		"Fresh", "Spicy", "Glazed", "Stuffed", "Classic",
	}
	sampleBases = []string{
		"Chicken", "Salmon", "Aubergine", "Gnocchi", "Lamb",
		"Tofu", "Risotto", "Prawns", "Mushrooms", "Beef",
	}
	sampleSupplements = []Supplement{
		{Name: "Extra cheese", Price: 1.5},
		{Name: "Truffle oil", Price: 3},
		{Name: "Side salad", Price: 2.5},
	}
)

// sampleNamespace seeds the deterministic IDs of sample menus.
var sampleNamespace = uuid.MustParse("6f1c7e64-2a4e-4c61-9d3b-5a8e0f7b2c19")

// Sample builds a deterministic menu of the given size. Two calls with the
// same arguments return identical menus, IDs included.
func Sample(categories, dishesPerCategory int) *Menu {
	m := &Menu{
		Name:       "Sample Bistro",
		Currency:   "EUR",
		Categories: make([]Category, 0, max(categories, 0)),
	}
	for ci := range max(categories, 0) {
		name := sampleCategories[ci%len(sampleCategories)]
		if round := ci / len(sampleCategories); round > 0 {
			name = fmt.Sprintf("%s %d", name, round+1)
		}
		c := Category{
			ID:     uuid.NewSHA1(sampleNamespace, fmt.Appendf(nil, "category/%d", ci)).String(),
			Name:   name,
			Dishes: make([]Dish, 0, max(dishesPerCategory, 0)),
		}
		for di := range max(dishesPerCategory, 0) {
			style := sampleStyles[(ci+di)%len(sampleStyles)]
			base := sampleBases[(di*3+ci)%len(sampleBases)]
			d := Dish{
				ID:          uuid.NewSHA1(sampleNamespace, fmt.Appendf(nil, "dish/%d/%d", ci, di)).String(),
				Name:        fmt.Sprintf("%s %s #%d", style, base, di+1),
				Description: fmt.Sprintf("%s %s, house style", style, base),
				Price:       4.5 + float64((ci*7+di*3)%40)/2,
				SoldOut:     (ci+di)%17 == 0,
			}
			if di%4 == 0 {
				for si, s := range sampleSupplements {
					s.ID = uuid.NewSHA1(sampleNamespace, fmt.Appendf(nil, "supplement/%d/%d/%d", ci, di, si)).String()
					d.Supplements = append(d.Supplements, s)
				}
			}
			c.Dishes = append(c.Dishes, d)
		}
		m.Categories = append(m.Categories, c)
	}
	return m
}
