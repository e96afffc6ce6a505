package catalog

// Default returns the marketplace catalog defined at load time.
func Default() *Catalog {
	return New(seedGyms, seedTrainers, seedProducts)
}

var seedGyms = []Gym{
	{
		ID: "g1", Name: "Pulse Arena Gym", Location: "Downtown", Rating: 4.7, Price: 29, Category: CategoryGym,
		Description: "Free weights, **24/7 access** and a full conditioning floor.",
	},
	{
		ID: "g2", Name: "Iron Forge Fitness", Location: "Uptown", Rating: 4.5, Price: 25, Category: CategoryGym,
		Description: "Powerlifting platforms and *strongman* kit.",
	},
	{
		ID: "g3", Name: "ZenFit Studio", Location: "Midtown", Rating: 4.8, Price: 35, Category: CategorySportsCenter,
		Description: "Yoga, pilates and mobility classes.",
	},
}

var seedTrainers = []Trainer{
	{
		ID: "t1", Name: "Alex Strong", Expertise: "Strength & Conditioning", Rating: 4.9, Price: 40,
		Description: "Barbell programming for **all levels**.",
	},
	{
		ID: "t2", Name: "Mia Flex", Expertise: "Mobility & Yoga", Rating: 4.6, Price: 30,
		Description: "Mobility flows and recovery sessions.",
	},
}

var seedProducts = []Product{
	{ID: "b1", Brand: "ProteinX", Product: "Whey Isolate 1kg", Price: 49, URL: "https://example.com/proteinx"},
	{ID: "b2", Brand: "FitWear", Product: "Breathable Tee", Price: 19, URL: "https://example.com/fitwear"},
}
