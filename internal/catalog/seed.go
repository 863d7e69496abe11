package catalog

import "github.com/gamevault/backend/internal/models"

// Seed is the fixed demo catalog. The process always starts from this state;
// inventory mutations live only as long as the process does.
func Seed() []models.Game {
	return []models.Game{
		{
			ID:             "1",
			Title:          "Grand Theft Auto V",
			Description:    "Experience the critically acclaimed open-world game set in Los Santos. This premium account includes the full game and all online features.",
			ImageURL:       "/static/games/gta5/cover.jpg",
			DetailImageURL: "/static/games/gta5/detail.jpg",
			HeroImageURL:   "/static/games/gta5/hero.jpg",
			Price:          499,
			OriginalPrice:  999,
			Discount:       50,
			Genre:          "Action",
			Platform:       "Steam",
			Publisher:      "Rockstar Games",
			Developer:      "Rockstar North",
			ReleaseYear:    2013,
			Players:        "Single-player, Multiplayer",
			Badge:          "Most Popular",
			Screenshots: []string{
				"/static/games/gta5/shot1.jpg",
				"/static/games/gta5/shot2.jpg",
				"/static/games/gta5/shot3.jpg",
				"/static/games/gta5/shot4.jpg",
			},
			LoginCodes: []models.LoginCode{
				{ID: "1a", Username: "gta5_premium_1", Password: "gtav2023!"},
				{ID: "1b", Username: "gta5_premium_2", Password: "losantos123"},
			},
		},
		{
			ID:             "2",
			Title:          "Red Dead Redemption 2",
			Description:    "Step into the American frontier with this epic tale of honor and loyalty. Premium account includes the complete game and online access.",
			ImageURL:       "/static/games/rdr2/cover.jpg",
			DetailImageURL: "/static/games/rdr2/detail.jpg",
			HeroImageURL:   "/static/games/rdr2/hero.jpg",
			Price:          799,
			OriginalPrice:  1299,
			Discount:       40,
			Genre:          "Action",
			Platform:       "Steam",
			Publisher:      "Rockstar Games",
			Developer:      "Rockstar Studios",
			ReleaseYear:    2019,
			Players:        "Single-player, Multiplayer",
			Badge:          "Best Seller",
			Screenshots: []string{
				"/static/games/rdr2/shot1.jpg",
				"/static/games/rdr2/shot2.jpg",
				"/static/games/rdr2/shot3.jpg",
				"/static/games/rdr2/shot4.jpg",
			},
			LoginCodes: []models.LoginCode{
				{ID: "2a", Username: "rdr2_premium_1", Password: "arthur2023!"},
			},
		},
		{
			ID:             "3",
			Title:          "Black Myth: Wukong",
			Description:    "Embark on an epic journey in a war-ravaged world. This premium account includes the base game and all expansions.",
			ImageURL:       "/static/games/bmyw/cover.jpg",
			DetailImageURL: "/static/games/bmyw/detail.jpg",
			HeroImageURL:   "/static/games/bmyw/hero.jpg",
			Price:          299,
			OriginalPrice:  599,
			Discount:       50,
			Genre:          "Adventure",
			Platform:       "Steam",
			Publisher:      "CD Projekt",
			Developer:      "CD Projekt Red",
			ReleaseYear:    2015,
			Players:        "Single-player",
			Badge:          "Editor's Choice",
			Screenshots: []string{
				"/static/games/bmyw/shot1.jpg",
				"/static/games/bmyw/shot2.jpg",
				"/static/games/bmyw/shot3.jpg",
				"/static/games/bmyw/shot4.jpg",
			},
			LoginCodes: []models.LoginCode{
				{ID: "3a", Username: "witcher3_premium_1", Password: "geralt2023!"},
			},
		},
		{
			ID:             "4",
			Title:          "EA SPORTS FC™ 25",
			Description:    "Experience the beautiful game with the latest FIFA installment. Premium account with all features unlocked.",
			ImageURL:       "/static/games/fc25/cover.jpg",
			DetailImageURL: "/static/games/fc25/detail.jpg",
			HeroImageURL:   "/static/games/fc25/hero.jpg",
			Price:          999,
			OriginalPrice:  1499,
			Discount:       33,
			Genre:          "Sports",
			Platform:       "Steam",
			Publisher:      "Electronic Arts",
			Developer:      "EA Sports",
			ReleaseYear:    2025,
			Players:        "Single-player, Multiplayer",
			IsNew:          true,
			Screenshots: []string{
				"/static/games/fc25/shot1.jpg",
				"/static/games/fc25/shot2.jpg",
				"/static/games/fc25/shot3.jpg",
				"/static/games/fc25/shot4.jpg",
			},
			LoginCodes: []models.LoginCode{
				{ID: "4a", Username: "fifa24_premium_1", Password: "fifa2024!"},
			},
		},
		{
			ID:             "5",
			Title:          "God of War Ragnarök",
			Description:    "Join Kratos and Atreus on a mythic journey through the realms. This premium account includes the full game and all expansions.",
			ImageURL:       "/static/games/gowr/cover.jpg",
			DetailImageURL: "/static/games/gowr/detail.jpg",
			HeroImageURL:   "/static/games/gowr/hero.jpg",
			Price:          1299,
			OriginalPrice:  1999,
			Discount:       35,
			Genre:          "Adventure",
			Platform:       "Steam",
			Publisher:      "Sony Interactive Entertainment",
			Screenshots: []string{
				"/static/games/gowr/shot1.jpg",
				"/static/games/gowr/shot2.jpg",
				"/static/games/gowr/shot3.jpg",
				"/static/games/gowr/shot4.jpg",
			},
			LoginCodes: []models.LoginCode{
				{ID: "5a", Username: "minecraft_premium_1", Password: "craft2023!"},
			},
		},
		{
			ID:             "6",
			Title:          "Hogwarts Legacy",
			Description:    "Step into the wizarding world and explore Hogwarts like never before. This premium account includes the full game and all expansions.",
			ImageURL:       "/static/games/hogwarts/cover.jpg",
			DetailImageURL: "/static/games/hogwarts/detail.jpg",
			HeroImageURL:   "/static/games/hogwarts/hero.jpg",
			Price:          899,
			OriginalPrice:  1399,
			Discount:       36,
			Genre:          "Adventure",
			Platform:       "Steam",
			Publisher:      "Warner Bros. Interactive Entertainment",
			Developer:      "Avalanche Software",
			ReleaseYear:    2023,
			Players:        "Single-player",
			Screenshots: []string{
				"/static/games/hogwarts/shot1.jpg",
				"/static/games/hogwarts/shot2.jpg",
				"/static/games/hogwarts/shot3.jpg",
				"/static/games/hogwarts/shot4.jpg",
			},
			LoginCodes: []models.LoginCode{
				{ID: "6a", Username: "hogwarts_premium_1", Password: "hogwarts2023!"},
			},
		},
	}
}
