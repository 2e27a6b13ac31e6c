package ingest

import "github.com/trekscout/trekscout/internal/trek"

const mountainImage = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600"

// fixture describes one partner listing.
type fixture struct {
	id, name, location        string
	difficulty                trek.Difficulty
	days, km, elevation       int
	months                    []string
	climate, summary, details string
	rating, reviews           int
	image                     string
	highlights                []string
	fitness, experience       string
	price                     int
	url                       string
}

func (f fixture) newTrek() trek.NewTrek {
	return trek.NewTrek{
		Name:            f.name,
		Location:        f.location,
		Country:         "India",
		Difficulty:      f.difficulty,
		Duration:        f.days,
		Distance:        &f.km,
		MaxElevation:    &f.elevation,
		BestMonths:      f.months,
		Climate:         f.climate,
		Description:     f.summary,
		LongDescription: &f.details,
		Rating:          f.rating,
		ReviewCount:     f.reviews,
		ImageURL:        &f.image,
		Highlights:      f.highlights,
		Requirements:    &trek.Requirements{FitnessLevel: f.fitness, Experience: f.experience},
		Price:           &f.price,
		ProviderURL:     &f.url,
		ProviderTrekID:  &f.id,
	}
}

func build(fixtures ...fixture) []trek.NewTrek {
	out := make([]trek.NewTrek, len(fixtures))
	for i, f := range fixtures {
		out[i] = f.newTrek()
	}
	return out
}

func bikatTreks() []trek.NewTrek {
	return build(
		fixture{
			id: "bikat-goecha-la", name: "Goecha La Trek", location: "Sikkim • Himalayas",
			difficulty: trek.DifficultyChallenging, days: 9, km: 56, elevation: 4950,
			months:  []string{"March", "April", "May", "October", "November"},
			climate: "Alpine",
			summary: "One of the most scenic treks in Sikkim with stunning views of Kanchenjunga.",
			details: "The Goecha La trek is considered one of the most beautiful treks in Sikkim. This trek offers magnificent views of the Kanchenjunga massif and takes you through rhododendron forests, alpine meadows, and glacial valleys.",
			rating:  48, reviews: 156, image: mountainImage,
			highlights: []string{"Kanchenjunga Views", "Alpine Lakes", "Rhododendron Forests", "Glacial Valley"},
			fitness:    "Advanced", experience: "Intermediate", price: 21500,
			url: "https://www.bikatadventures.com/trek/goecha-la",
		},
		fixture{
			id: "bikat-kgl", name: "Kashmir Great Lakes", location: "Kashmir • Himalayas",
			difficulty: trek.DifficultyModerate, days: 8, km: 72, elevation: 4191,
			months:  []string{"July", "August", "September"},
			climate: "Alpine",
			summary: "Experience the breathtaking beauty of Kashmir's alpine lakes.",
			details: "The Kashmir Great Lakes trek is a moderate high-altitude trek in the Kashmir Valley. This trek takes you through seven pristine alpine lakes, each more beautiful than the last.",
			rating:  49, reviews: 203,
			image:      "https://images.unsplash.com/photo-1544735716-392fe2489ffa?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			highlights: []string{"Seven Alpine Lakes", "Flower Meadows", "Mountain Passes", "Kashmir Valley"},
			fitness:    "Intermediate", experience: "Beginner", price: 18500,
			url: "https://www.bikatadventures.com/trek/kashmir-great-lakes",
		},
		fixture{
			id: "bikat-rupin-pass", name: "Rupin Pass Trek", location: "Himachal Pradesh • Himalayas",
			difficulty: trek.DifficultyChallenging, days: 8, km: 52, elevation: 4650,
			months:  []string{"May", "June", "September", "October"},
			climate: "Alpine",
			summary: "A thrilling trek through hanging villages and snow bridges.",
			details: "The Rupin Pass trek is known for its diverse terrain, from lush green forests to snow-capped mountains. You'll cross hanging villages, waterfalls, and snow bridges.",
			rating:  47, reviews: 134, image: mountainImage,
			highlights: []string{"Hanging Villages", "Snow Bridges", "Waterfalls", "Diverse Terrain"},
			fitness:    "Advanced", experience: "Intermediate", price: 19500,
			url: "https://www.bikatadventures.com/trek/rupin-pass",
		},
	)
}

func yhaiTreks() []trek.NewTrek {
	return build(
		fixture{
			id: "yhai-brahmatal", name: "Brahmatal Trek", location: "Uttarakhand • Garhwal Himalayas",
			difficulty: trek.DifficultyModerate, days: 6, km: 24, elevation: 3398,
			months:  []string{"December", "January", "February", "March"},
			climate: "Alpine",
			summary: "Winter trek through snow-laden forests with stunning mountain views.",
			details: "Brahmatal is a perfect winter trek for beginners, offering spectacular views of Mt. Trisul and Nanda Ghunti. The trail passes through beautiful oak and rhododendron forests.",
			rating:  44, reviews: 89,
			image:      "https://images.unsplash.com/photo-1551632436-cbf8dd35adfa?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&h=600",
			highlights: []string{"Winter Trek", "Snow Forests", "Mountain Views", "Brahmatal Lake"},
			fitness:    "Beginner", experience: "Beginner", price: 8500,
			url: "https://www.yhaindia.org/program/brahmatal-trek",
		},
		fixture{
			id: "yhai-valley-of-flowers", name: "Valley of Flowers Trek", location: "Uttarakhand • Garhwal Himalayas",
			difficulty: trek.DifficultyEasy, days: 6, km: 38, elevation: 3658,
			months:  []string{"July", "August", "September"},
			climate: "Temperate",
			summary: "UNESCO World Heritage site famous for endemic alpine flowers.",
			details: "The Valley of Flowers is a UNESCO World Heritage site known for its meadows of endemic alpine flowers and outstanding natural beauty. This trek is perfect for nature lovers and photographers.",
			rating:  46, reviews: 167, image: mountainImage,
			highlights: []string{"UNESCO Site", "Alpine Flowers", "Hemkund Sahib", "Natural Beauty"},
			fitness:    "Beginner", experience: "Beginner", price: 7500,
			url: "https://www.yhaindia.org/program/valley-of-flowers",
		},
		fixture{
			id: "yhai-kedarkantha", name: "Kedarkantha Trek", location: "Uttarakhand • Garhwal Himalayas",
			difficulty: trek.DifficultyEasy, days: 6, km: 20, elevation: 3810,
			months:  []string{"December", "January", "February", "March", "April"},
			climate: "Alpine",
			summary: "Perfect winter trek for beginners with 360-degree mountain views.",
			details: "Kedarkantha is one of the most popular winter treks in India. The summit offers panoramic views of major Himalayan peaks including Swargarohini, Bandarpoonch, and Kalanag.",
			rating:  45, reviews: 234, image: mountainImage,
			highlights: []string{"360° Summit Views", "Winter Trek", "Snow Camping", "Juda ka Talab"},
			fitness:    "Beginner", experience: "Beginner", price: 6500,
			url: "https://www.yhaindia.org/program/kedarkantha-trek",
		},
	)
}

func indiahikesTreks() []trek.NewTrek {
	return build(
		fixture{
			id: "indiahikes-hampta-pass", name: "Hampta Pass Trek", location: "Himachal Pradesh • Himalayas",
			difficulty: trek.DifficultyModerate, days: 5, km: 35, elevation: 4270,
			months:  []string{"June", "July", "August", "September"},
			climate: "Alpine",
			summary: "A spectacular crossover trek from lush Kullu valley to arid Lahaul valley.",
			details: "The Hampta Pass trek is a beautiful crossover trek that takes you from the lush green Kullu valley to the arid Lahaul valley. This trek offers stunning views of Deo Tibba and Indrasan peaks.",
			rating:  46, reviews: 298, image: mountainImage,
			highlights: []string{"Valley Crossover", "Chandratal Lake", "Deo Tibba Views", "Diverse Landscapes"},
			fitness:    "Intermediate", experience: "Beginner", price: 12500,
			url: "https://indiahikes.com/treks/hampta-pass",
		},
		fixture{
			id: "indiahikes-sandakphu", name: "Sandakphu Trek", location: "West Bengal • Himalayas",
			difficulty: trek.DifficultyEasy, days: 6, km: 32, elevation: 3636,
			months:  []string{"October", "November", "December", "March", "April", "May"},
			climate: "Temperate",
			summary: "Witness the majestic Sleeping Buddha and four of the world's five highest peaks.",
			details: "The Sandakphu trek offers the best sunrise views over the Kanchenjunga range. From the highest peak in West Bengal, you can see four of the world's five highest peaks on a clear day.",
			rating:  47, reviews: 421, image: mountainImage,
			highlights: []string{"Sleeping Buddha", "Everest Views", "Kanchenjunga Range", "Rhododendron Forests"},
			fitness:    "Beginner", experience: "Beginner", price: 9500,
			url: "https://indiahikes.com/treks/sandakphu",
		},
		fixture{
			id: "indiahikes-stok-kangri", name: "Stok Kangri Trek", location: "Ladakh • Himalayas",
			difficulty: trek.DifficultyChallenging, days: 9, km: 45, elevation: 6153,
			months:  []string{"July", "August", "September"},
			climate: "Alpine",
			summary: "India's highest trekkable peak offering 360-degree views of Ladakh ranges.",
			details: "Stok Kangri is the highest trekkable peak in India at 6,153m. This challenging trek requires good physical fitness and acclimatization, but rewards with spectacular views of the Karakoram and Zanskar ranges.",
			rating:  49, reviews: 87, image: mountainImage,
			highlights: []string{"Highest Trekkable Peak", "360° Mountain Views", "High Altitude Challenge", "Ladakh Culture"},
			fitness:    "Advanced", experience: "Advanced", price: 28500,
			url: "https://indiahikes.com/treks/stok-kangri",
		},
		fixture{
			id: "indiahikes-har-ki-dun", name: "Har Ki Dun Trek", location: "Uttarakhand • Garhwal Himalayas",
			difficulty: trek.DifficultyEasy, days: 7, km: 47, elevation: 3566,
			months:  []string{"March", "April", "May", "June", "September", "October", "November"},
			climate: "Temperate",
			summary: "Valley of Gods with ancient villages and pristine alpine meadows.",
			details: "Har Ki Dun, known as the 'Valley of Gods', is a beautiful trek that takes you through ancient villages, dense forests, and pristine alpine meadows. The trek offers stunning views of Swargarohini and Bandarpoonch peaks.",
			rating:  45, reviews: 356, image: mountainImage,
			highlights: []string{"Valley of Gods", "Ancient Villages", "Alpine Meadows", "Swargarohini Views"},
			fitness:    "Beginner", experience: "Beginner", price: 11500,
			url: "https://indiahikes.com/treks/har-ki-dun",
		},
	)
}
