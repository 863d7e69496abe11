package catalog

import (
	"testing"

	"github.com/gamevault/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func testSeed() []models.Game {
	return []models.Game{
		{
			ID: "x", Title: "Game X", Price: 100, Genre: "Action", Platform: "Steam",
			ReleaseYear: 2020, Badge: "Most Popular",
			LoginCodes: []models.LoginCode{
				{ID: "x1", Username: "x_user_1", Password: "pw1"},
				{ID: "x2", Username: "x_user_2", Password: "pw2", IsSold: true},
			},
		},
		{
			ID: "y", Title: "Game Y", Price: 300, Genre: "Sports", Platform: "Epic",
			ReleaseYear: 2024,
			LoginCodes: []models.LoginCode{
				{ID: "y1", Username: "y_user_1", Password: "pw1", IsSold: true},
			},
		},
		{
			ID: "z", Title: "Game Z", Price: 200, Genre: "Action", Platform: "Steam",
			ReleaseYear: 2022,
		},
	}
}

func TestStore_Game(t *testing.T) {
	store := NewStore(testSeed())

	t.Run("existing game", func(t *testing.T) {
		g, err := store.Game("x")
		assert.NoError(t, err)
		assert.Equal(t, "Game X", g.Title)
		assert.Len(t, g.LoginCodes, 2)
	})

	t.Run("unknown game", func(t *testing.T) {
		_, err := store.Game("nope")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("returned copy does not alias store inventory", func(t *testing.T) {
		g, _ := store.Game("x")
		g.LoginCodes[0].IsSold = true

		count, err := store.AvailableCount("x")
		assert.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestStore_Games(t *testing.T) {
	store := NewStore(testSeed())

	t.Run("no filter keeps seed order", func(t *testing.T) {
		listings := store.Games(Filter{})
		assert.Len(t, listings, 3)
		assert.Equal(t, "x", listings[0].ID)
		assert.Equal(t, "z", listings[2].ID)
	})

	t.Run("price range", func(t *testing.T) {
		listings := store.Games(Filter{MinPrice: 150, MaxPrice: 250})
		assert.Len(t, listings, 1)
		assert.Equal(t, "z", listings[0].ID)
	})

	t.Run("genre and platform", func(t *testing.T) {
		listings := store.Games(Filter{Genres: []string{"Action"}, Platforms: []string{"Steam"}})
		assert.Len(t, listings, 2)
	})

	t.Run("search matches title case-insensitively", func(t *testing.T) {
		listings := store.Games(Filter{Search: "game y"})
		assert.Len(t, listings, 1)
		assert.Equal(t, "y", listings[0].ID)
	})

	t.Run("sort price-low", func(t *testing.T) {
		listings := store.Games(Filter{SortBy: "price-low"})
		assert.Equal(t, []int{100, 200, 300}, []int{listings[0].Price, listings[1].Price, listings[2].Price})
	})

	t.Run("sort newest", func(t *testing.T) {
		listings := store.Games(Filter{SortBy: "newest"})
		assert.Equal(t, "y", listings[0].ID)
	})

	t.Run("listings expose counts not codes", func(t *testing.T) {
		listings := store.Games(Filter{})
		assert.Equal(t, 1, listings[0].AvailableCount)
		assert.Equal(t, 0, listings[1].AvailableCount)
	})
}

func TestStore_Featured(t *testing.T) {
	store := NewStore(testSeed())

	featured := store.Featured()
	assert.Len(t, featured, 1)
	assert.Equal(t, "Most Popular", featured[0].Badge)
}

func TestStore_FilterMetadata(t *testing.T) {
	store := NewStore(testSeed())

	assert.Equal(t, []string{"Action", "Sports"}, store.Genres())
	assert.Equal(t, []string{"Steam", "Epic"}, store.Platforms())

	min, max := store.PriceBounds()
	assert.Equal(t, 100, min)
	assert.Equal(t, 300, max)
}

func TestStore_PickAvailableCode(t *testing.T) {
	t.Run("only unsold codes are picked", func(t *testing.T) {
		store := NewStore(testSeed())

		// x2 is sold; every pick must return x1.
		for i := 0; i < 20; i++ {
			code, err := store.PickAvailableCode("x")
			assert.NoError(t, err)
			assert.Equal(t, "x1", code.ID)
		}
	})

	t.Run("uniform over the unsold subset", func(t *testing.T) {
		store := NewStore([]models.Game{{
			ID: "g", Title: "G", Price: 1,
			LoginCodes: []models.LoginCode{
				{ID: "a", Username: "a"},
				{ID: "b", Username: "b"},
				{ID: "c", Username: "c", IsSold: true},
			},
		}})

		seen := map[string]bool{}
		for i := 0; i < 200; i++ {
			code, err := store.PickAvailableCode("g")
			assert.NoError(t, err)
			assert.NotEqual(t, "c", code.ID)
			seen[code.ID] = true
		}
		assert.True(t, seen["a"])
		assert.True(t, seen["b"])
	})

	t.Run("no codes available", func(t *testing.T) {
		store := NewStore(testSeed())

		_, err := store.PickAvailableCode("y")
		assert.ErrorIs(t, err, ErrNoCodesAvailable)

		_, err = store.PickAvailableCode("z")
		assert.ErrorIs(t, err, ErrNoCodesAvailable)
	})

	t.Run("unknown game", func(t *testing.T) {
		store := NewStore(testSeed())
		_, err := store.PickAvailableCode("nope")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestStore_MarkCodeSold(t *testing.T) {
	store := NewStore(testSeed())

	t.Run("marks and exhausts inventory", func(t *testing.T) {
		assert.NoError(t, store.MarkCodeSold("x", "x1"))

		count, _ := store.AvailableCount("x")
		assert.Equal(t, 0, count)

		_, err := store.PickAvailableCode("x")
		assert.ErrorIs(t, err, ErrNoCodesAvailable)
	})

	t.Run("marking an already sold code is a no-op", func(t *testing.T) {
		assert.NoError(t, store.MarkCodeSold("x", "x2"))
	})

	t.Run("explicit errors instead of silence", func(t *testing.T) {
		assert.ErrorIs(t, store.MarkCodeSold("nope", "x1"), ErrGameNotFound)
		assert.ErrorIs(t, store.MarkCodeSold("x", "nope"), ErrCodeNotFound)
	})
}

func TestStore_AdminInventory(t *testing.T) {
	store := NewStore(testSeed())

	t.Run("add code", func(t *testing.T) {
		code, err := store.AddLoginCode("z", "z_user_1", "pw")
		assert.NoError(t, err)
		assert.NotEmpty(t, code.ID)
		assert.False(t, code.IsSold)

		count, _ := store.AvailableCount("z")
		assert.Equal(t, 1, count)
	})

	t.Run("toggle reverses sold both ways", func(t *testing.T) {
		code, err := store.ToggleCodeSold("y", "y1")
		assert.NoError(t, err)
		assert.False(t, code.IsSold)

		code, err = store.ToggleCodeSold("y", "y1")
		assert.NoError(t, err)
		assert.True(t, code.IsSold)
	})

	t.Run("delete removes sold or not", func(t *testing.T) {
		assert.NoError(t, store.DeleteLoginCode("x", "x2"))

		codes, err := store.Inventory("x")
		assert.NoError(t, err)
		assert.Len(t, codes, 1)

		assert.ErrorIs(t, store.DeleteLoginCode("x", "x2"), ErrCodeNotFound)
	})

	t.Run("inventory for unknown game", func(t *testing.T) {
		_, err := store.Inventory("nope")
		assert.ErrorIs(t, err, ErrGameNotFound)
	})
}

func TestSeed(t *testing.T) {
	games := Seed()
	assert.Len(t, games, 6)

	for _, g := range games {
		assert.NotEmpty(t, g.ID)
		assert.NotEmpty(t, g.Title)
		assert.Greater(t, g.Price, 0)
		if g.OriginalPrice != 0 {
			assert.GreaterOrEqual(t, g.OriginalPrice, g.Price)
		}
		assert.GreaterOrEqual(t, g.Discount, 0)
		assert.LessOrEqual(t, g.Discount, 100)
		for _, code := range g.LoginCodes {
			assert.False(t, code.IsSold)
		}
	}
}
