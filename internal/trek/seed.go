package trek

import "time"

// Seed returns the curated treks every fresh catalog starts with.
// Their IDs are stable so links to them survive restarts.
func Seed() []*Trek {
	now := time.Now().UTC()
	treks := []*Trek{
		{
			ID:              "1",
			Name:            "Everest Base Camp",
			Location:        "Nepal • Himalayas",
			Country:         "Nepal",
			Difficulty:      DifficultyChallenging,
			Duration:        14,
			Distance:        intPtr(130),
			MaxElevation:    intPtr(5364),
			BestMonths:      []string{"March", "April", "May", "September", "October", "November"},
			Climate:         "Alpine",
			Description:     "Experience the legendary trek to the base of the world's highest peak.",
			LongDescription: strPtr("The Everest Base Camp Trek is one of the most iconic adventures on Earth. This challenging journey takes you through the heart of the Khumbu region, home to the legendary Sherpa people, spectacular Himalayan peaks, and ancient Buddhist monasteries."),
			Rating:          48,
			ReviewCount:     234,
			ImageURL:        strPtr("https://images.unsplash.com/photo-1506197603052-3cc9c3a201bd?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
			Highlights:      []string{"Everest Base Camp", "Sherpa Culture", "Mountain Views", "Buddhist Monasteries"},
			Requirements:    &Requirements{FitnessLevel: "Advanced", Experience: "Intermediate"},
		},
		{
			ID:              "2",
			Name:            "Tour du Mont Blanc",
			Location:        "France, Italy, Switzerland • Alps",
			Country:         "Multi-country",
			Difficulty:      DifficultyModerate,
			Duration:        11,
			Distance:        intPtr(170),
			MaxElevation:    intPtr(2665),
			BestMonths:      []string{"June", "July", "August", "September"},
			Climate:         "Alpine",
			Description:     "Classic alpine circuit through three countries with stunning mountain vistas.",
			LongDescription: strPtr("The Tour du Mont Blanc is a classic long-distance hiking trail that circumnavigates the Mont Blanc massif, passing through France, Italy, and Switzerland."),
			Rating:          49,
			ReviewCount:     456,
			ImageURL:        strPtr("https://images.unsplash.com/photo-1551632436-cbf8dd35adfa?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
			Highlights:      []string{"Three Countries", "Alpine Views", "Charming Villages", "Diverse Landscapes"},
			Requirements:    &Requirements{FitnessLevel: "Intermediate", Experience: "Beginner"},
		},
		{
			ID:              "3",
			Name:            "Inca Trail",
			Location:        "Peru • Andes Mountains",
			Country:         "Peru",
			Difficulty:      DifficultyChallenging,
			Duration:        4,
			Distance:        intPtr(45),
			MaxElevation:    intPtr(4215),
			BestMonths:      []string{"May", "June", "July", "August", "September"},
			Climate:         "Highland",
			Description:     "Historic trail following ancient Inca paths to Machu Picchu.",
			LongDescription: strPtr("The Inca Trail to Machu Picchu is a hiking trail in Peru that terminates at Machu Picchu. It consists of three overlapping trails: Mollepata, Classic, and One Day."),
			Rating:          47,
			ReviewCount:     892,
			ImageURL:        strPtr("https://images.unsplash.com/photo-1587595431973-160d0d94add1?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
			Highlights:      []string{"Machu Picchu", "Inca History", "Cloud Forest", "Ancient Ruins"},
			Requirements:    &Requirements{FitnessLevel: "Intermediate", Experience: "Beginner"},
		},
		{
			ID:              "4",
			Name:            "Torres del Paine W Trek",
			Location:        "Chile • Patagonia",
			Country:         "Chile",
			Difficulty:      DifficultyModerate,
			Duration:        5,
			Distance:        intPtr(75),
			MaxElevation:    intPtr(1200),
			BestMonths:      []string{"November", "December", "January", "February", "March"},
			Climate:         "Temperate",
			Description:     "Spectacular Patagonian wilderness with dramatic granite towers.",
			LongDescription: strPtr("The W Trek is the most popular multi-day trek in Torres del Paine National Park, offering spectacular views of the famous granite towers."),
			Rating:          46,
			ReviewCount:     321,
			ImageURL:        strPtr("https://images.unsplash.com/photo-1518548419970-58e3b4079ab2?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
			Highlights:      []string{"Granite Towers", "Pristine Lakes", "Patagonian Wildlife", "Glacial Views"},
			Requirements:    &Requirements{FitnessLevel: "Intermediate", Experience: "Beginner"},
		},
		{
			ID:              "5",
			Name:            "Pacific Crest Trail",
			Location:        "USA • California Section",
			Country:         "USA",
			Difficulty:      DifficultyEasy,
			Duration:        7,
			Distance:        intPtr(160),
			MaxElevation:    intPtr(2100),
			BestMonths:      []string{"June", "July", "August", "September", "October"},
			Climate:         "Mediterranean",
			Description:     "Diverse landscapes from desert to alpine in California.",
			LongDescription: strPtr("The Pacific Crest Trail is a long-distance hiking and equestrian trail closely aligned with the highest portion of the Cascade and Sierra Nevada mountain ranges."),
			Rating:          45,
			ReviewCount:     567,
			ImageURL:        strPtr("https://images.unsplash.com/photo-1441974231531-c6227db76b6e?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
			Highlights:      []string{"Diverse Ecosystems", "Desert to Alpine", "Wildlife", "Scenic Views"},
			Requirements:    &Requirements{FitnessLevel: "Beginner", Experience: "Beginner"},
		},
		{
			ID:              "6",
			Name:            "Annapurna Circuit",
			Location:        "Nepal • Himalayas",
			Country:         "Nepal",
			Difficulty:      DifficultyChallenging,
			Duration:        16,
			Distance:        intPtr(230),
			MaxElevation:    intPtr(5416),
			BestMonths:      []string{"March", "April", "May", "October", "November"},
			Climate:         "Alpine",
			Description:     "Complete circuit around the Annapurna massif with diverse cultures.",
			LongDescription: strPtr("The Annapurna Circuit is a trek within the mountain ranges of central Nepal. The total length of the route varies between 160–230 km, depending on where motor transportation is used."),
			Rating:          48,
			ReviewCount:     412,
			ImageURL:        strPtr("https://images.unsplash.com/photo-1584464491033-06628f3a6b7b?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"),
			Highlights:      []string{"360° Mountain Views", "Cultural Diversity", "Thorong La Pass", "Varied Landscapes"},
			Requirements:    &Requirements{FitnessLevel: "Advanced", Experience: "Intermediate"},
		},
	}
	for _, t := range treks {
		t.Provider = ProviderCustom
		t.CreatedAt = now
		t.LastUpdated = now
	}
	return treks
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
