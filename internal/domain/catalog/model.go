package catalog

import (
	"strings"
)

// Category constants
const (
	CategoryGym          = "Gym"
	CategorySportsCenter = "Sports Center"
)

// Tab selects which catalog list the marketplace shows.
type Tab string

// Tab constants
const (
	TabGyms          Tab = "Gyms"
	TabTrainers      Tab = "Trainers"
	TabBrands        Tab = "Brands"
	TabSportsCenters Tab = "Sports Centers"
)

// Tabs lists the marketplace tabs in display order.
var Tabs = []Tab{TabGyms, TabTrainers, TabBrands, TabSportsCenters}

// ParseTab maps a query value onto a Tab, defaulting to TabGyms.
func ParseTab(s string) Tab {
	for _, t := range Tabs {
		if strings.EqualFold(s, string(t)) {
			return t
		}
	}
	return TabGyms
}

// Gym is a subscribable venue.
type Gym struct {
	ID          string
	Name        string
	Location    string
	Rating      float64
	Price       int // per month
	Category    string
	Description string // markdown
}

// Trainer is a bookable coach.
type Trainer struct {
	ID          string
	Name        string
	Expertise   string
	Rating      float64
	Price       int // per session
	Description string // markdown
}

// Product is a brand item sold through an external storefront.
type Product struct {
	ID      string
	Brand   string
	Product string
	Price   int
	URL     string
}

// Catalog holds the read-only marketplace lists.
type Catalog struct {
	gyms     []Gym
	trainers []Trainer
	products []Product
}

// New builds a catalog over the given lists. The lists are copied.
func New(gyms []Gym, trainers []Trainer, products []Product) *Catalog {
	return &Catalog{
		gyms:     append([]Gym(nil), gyms...),
		trainers: append([]Trainer(nil), trainers...),
		products: append([]Product(nil), products...),
	}
}

// Result is the outcome of a marketplace search.
type Result struct {
	Gyms     []Gym
	Trainers []Trainer
	Products []Product
}

// Search filters each list independently with case-insensitive substring
// matching. text is matched against names (brand name for products);
// location additionally narrows gyms. Empty queries match everything.
// PRE: none
// POST: result lists preserve catalog order
func (c *Catalog) Search(text, location string) Result {
	q := strings.ToLower(text)
	loc := strings.ToLower(location)

	res := Result{Gyms: []Gym{}, Trainers: []Trainer{}, Products: []Product{}}
	for _, g := range c.gyms {
		if contains(g.Name, q) && contains(g.Location, loc) {
			res.Gyms = append(res.Gyms, g)
		}
	}
	for _, t := range c.trainers {
		if contains(t.Name, q) {
			res.Trainers = append(res.Trainers, t)
		}
	}
	for _, p := range c.products {
		if contains(p.Brand, q) {
			res.Products = append(res.Products, p)
		}
	}
	return res
}

// GymsForTab narrows gyms to the tab: the Gyms tab hides sports centers,
// the Sports Centers tab shows only them, and other tabs show no gyms.
func (r Result) GymsForTab(tab Tab) []Gym {
	out := []Gym{}
	for _, g := range r.Gyms {
		switch {
		case tab == TabGyms && g.Category != CategorySportsCenter:
			out = append(out, g)
		case tab == TabSportsCenters && g.Category == CategorySportsCenter:
			out = append(out, g)
		}
	}
	return out
}

// GymByName looks up a gym by exact name.
func (c *Catalog) GymByName(name string) (Gym, bool) {
	for _, g := range c.gyms {
		if g.Name == name {
			return g, true
		}
	}
	return Gym{}, false
}

// TrainerByName looks up a trainer by exact name.
func (c *Catalog) TrainerByName(name string) (Trainer, bool) {
	for _, t := range c.trainers {
		if t.Name == name {
			return t, true
		}
	}
	return Trainer{}, false
}

func contains(field, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(field), lowerQuery)
}
