// Package menu holds the restaurant menu model: categories, dishes and their
// supplements, the files they are stored in and the flat rows a list renders.
package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrInvalidMenu is returned by Validate.
var ErrInvalidMenu = errors.New("invalid menu")

type Menu struct {
	Name       string     `json:"name" yaml:"name"`
	Currency   string     `json:"currency,omitempty" yaml:"currency,omitempty"`
	Categories []Category `json:"categories" yaml:"categories"`
}

type Category struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Dishes      []Dish `json:"dishes" yaml:"dishes"`
}

type Dish struct {
	ID          string       `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Price       float64      `json:"price" yaml:"price"`
	SoldOut     bool         `json:"sold_out,omitempty" yaml:"sold_out,omitempty"`
	Supplements []Supplement `json:"supplements,omitempty" yaml:"supplements,omitempty"`
}

// Supplement is an optional extra that can be added to a dish.
type Supplement struct {
	ID    string  `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// DishCount returns the number of dishes across all categories.
func (m *Menu) DishCount() int {
	var n int
	for _, c := range m.Categories {
		n += len(c.Dishes)
	}
	return n
}

// Normalize trims names, title-cases lowercase category names and fills in
// missing IDs.
func (m *Menu) Normalize() {
	title := cases.Title(language.English)
	m.Name = strings.TrimSpace(m.Name)
	m.Currency = strings.ToUpper(strings.TrimSpace(m.Currency))
	for ci := range m.Categories {
		c := &m.Categories[ci]
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == strings.ToLower(c.Name) {
			c.Name = title.String(c.Name)
		}
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		for di := range c.Dishes {
			d := &c.Dishes[di]
			d.Name = strings.TrimSpace(d.Name)
			if d.ID == "" {
				d.ID = uuid.NewString()
			}
			for si := range d.Supplements {
				s := &d.Supplements[si]
				s.Name = strings.TrimSpace(s.Name)
				if s.ID == "" {
					s.ID = uuid.NewString()
				}
			}
		}
	}
}

// Validate reports every problem found in the menu at once. Category and
// dish IDs must be unique across the menu.
func (m *Menu) Validate() error {
	var errs []error
	if m.Name == "" {
		errs = append(errs, fmt.Errorf("%w: menu name is required", ErrInvalidMenu))
	}
	categoryIDs := make(map[string]bool, len(m.Categories))
	dishIDs := make(map[string]bool, m.DishCount())
	for ci, c := range m.Categories {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("%w: category %d has no name", ErrInvalidMenu, ci))
		}
		if c.ID != "" && categoryIDs[c.ID] {
			errs = append(errs, fmt.Errorf("%w: duplicate category id %q", ErrInvalidMenu, c.ID))
		}
		categoryIDs[c.ID] = true
		for di, d := range c.Dishes {
			if d.ID != "" && dishIDs[d.ID] {
				errs = append(errs, fmt.Errorf("%w: duplicate dish id %q (%q in %q)", ErrInvalidMenu, d.ID, d.Name, c.Name))
			}
			dishIDs[d.ID] = true
			if d.Name == "" {
				errs = append(errs, fmt.Errorf("%w: dish %d in category %q has no name", ErrInvalidMenu, di, c.Name))
			}
			if d.Price < 0 {
				errs = append(errs, fmt.Errorf("%w: dish %q has a negative price", ErrInvalidMenu, d.Name))
			}
			for _, s := range d.Supplements {
				if s.Price < 0 {
					errs = append(errs, fmt.Errorf("%w: supplement %q of dish %q has a negative price", ErrInvalidMenu, s.Name, d.Name))
				}
			}
		}
	}
	return errors.Join(errs...)
}

var currencySymbols = map[string]string{
	"EUR": "€",
	"USD": "$",
	"GBP": "£",
	"JPY": "¥",
}

// FormatPrice renders a price with the currency symbol when one is known.
func FormatPrice(price float64, currency string) string {
	amount := fmt.Sprintf("%.2f", price)
	if sym, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		return sym + amount
	}
	if currency == "" {
		return amount
	}
	return amount + " " + strings.ToUpper(currency)
}
