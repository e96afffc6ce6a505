package projections

import (
	"indvend/internal/application/workspace"
	"indvend/internal/domain/catalog"
	"indvend/internal/domain/profile"
)

// MarketplaceQuery carries query parameters.
type MarketplaceQuery struct {
	Catalog *catalog.Catalog
	Filters workspace.Filters
	Session *profile.Profile
}

// TabLink is one marketplace tab.
type TabLink struct {
	Tab    catalog.Tab
	Active bool
}

// GymCard is a gym with the session's relationship to it.
type GymCard struct {
	catalog.Gym
	Subscribed   bool
	CanSubscribe bool
}

// TrainerCard is a trainer with whether the session can book.
type TrainerCard struct {
	catalog.Trainer
	CanBook bool
}

// Marketplace is the marketplace page.
type Marketplace struct {
	Filters  workspace.Filters
	Tabs     []TabLink
	Gyms     []GymCard
	Trainers []TrainerCard
	Products []catalog.Product
	Empty    bool
}

// QueryMarketplace searches the catalog and keeps only the active tab's list.
// POST: at most one of Gyms, Trainers, Products is non-empty
func QueryMarketplace(q MarketplaceQuery) Marketplace {
	res := q.Catalog.Search(q.Filters.Query, q.Filters.Location)
	tab := q.Filters.Tab
	if tab == "" {
		tab = catalog.TabGyms
	}

	m := Marketplace{
		Filters:  q.Filters,
		Gyms:     []GymCard{},
		Trainers: []TrainerCard{},
		Products: []catalog.Product{},
	}
	m.Filters.Tab = tab
	for _, t := range catalog.Tabs {
		m.Tabs = append(m.Tabs, TabLink{Tab: t, Active: t == tab})
	}

	member := q.Session != nil && q.Session.Is(profile.RoleMember)
	switch tab {
	case catalog.TabTrainers:
		for _, t := range res.Trainers {
			m.Trainers = append(m.Trainers, TrainerCard{Trainer: t, CanBook: q.Session != nil})
		}
	case catalog.TabBrands:
		m.Products = res.Products
	default:
		var subs profile.GymSet
		if member {
			subs = profile.NewGymSet(q.Session.Subscriptions()...)
		}
		for _, g := range res.GymsForTab(tab) {
			m.Gyms = append(m.Gyms, GymCard{Gym: g, Subscribed: subs.Has(g.Name), CanSubscribe: member})
		}
	}
	m.Empty = len(m.Gyms) == 0 && len(m.Trainers) == 0 && len(m.Products) == 0
	return m
}
