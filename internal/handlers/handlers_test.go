package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gamevault/backend/internal/cart"
	"github.com/gamevault/backend/internal/catalog"
	"github.com/gamevault/backend/internal/database"
	"github.com/gamevault/backend/internal/middleware"
	"github.com/gamevault/backend/internal/models"
	"github.com/gamevault/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func handlerSeed() []models.Game {
	return []models.Game{
		{
			ID: "1", Title: "Game One", Genre: "Action", Platform: "Steam", Price: 100,
			ReleaseYear: 2020, Badge: "Most Popular",
			LoginCodes: []models.LoginCode{
				{ID: "1a", Username: "one_premium_1", Password: "pw"},
			},
		},
		{
			ID: "2", Title: "Game Two", Genre: "Sports", Platform: "Epic", Price: 300,
			ReleaseYear: 2024,
		},
	}
}

// newTestRouter wires the handlers the way cmd/server does, with a stub auth
// middleware standing in for JWT validation.
func newTestRouter(t *testing.T, userID, role string) (*chi.Mux, *catalog.Store, *cart.Service) {
	t.Helper()
	t.Setenv("CHECKOUT_PROCESSING_DELAY", "1ms")

	store := catalog.NewStore(handlerSeed())
	kv := database.NewMemoryKV()
	carts := cart.NewService(kv, time.Hour)
	checkout := services.NewCheckoutService(store, carts, kv)

	catalogHandler := NewCatalogHandler(store)
	cartHandler := NewCartHandler(carts, store)
	checkoutHandler := NewCheckoutHandler(checkout)
	adminHandler := NewAdminHandler(store)

	identity := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if userID != "" {
				ctx = context.WithValue(ctx, "userID", userID)
				ctx = context.WithValue(ctx, "role", role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	r := chi.NewRouter()
	r.Get("/games", catalogHandler.ListGames)
	r.Get("/games/featured", catalogHandler.Featured)
	r.Get("/games/filters", catalogHandler.FilterOptions)
	r.Get("/games/{gameID}", catalogHandler.GetGame)

	r.Group(func(r chi.Router) {
		r.Use(middleware.CartSession)
		r.Get("/cart", cartHandler.GetCart)
		r.Delete("/cart", cartHandler.ClearCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Delete("/cart/items/{gameID}", cartHandler.RemoveItem)
		r.Put("/cart/items/{gameID}/increment", cartHandler.IncrementItem)
		r.Put("/cart/items/{gameID}/decrement", cartHandler.DecrementItem)
	})

	r.Group(func(r chi.Router) {
		r.Use(identity)
		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession)
			r.Post("/checkout", checkoutHandler.Checkout)
		})
		r.Get("/purchases", checkoutHandler.Purchases)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole("admin"))
			r.Get("/admin/games", adminHandler.ListGames)
			r.Get("/admin/games/{gameID}/codes", adminHandler.ListCodes)
			r.Post("/admin/games/{gameID}/codes", adminHandler.AddCode)
			r.Put("/admin/games/{gameID}/codes/{codeID}/toggle", adminHandler.ToggleCode)
			r.Delete("/admin/games/{gameID}/codes/{codeID}", adminHandler.DeleteCode)
		})
	})

	return r, store, carts
}

func doJSON(t *testing.T, router http.Handler, method, path, session string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if session != "" {
		r.Header.Set(middleware.SessionHeader, session)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestCatalogHandler(t *testing.T) {
	router, _, _ := newTestRouter(t, "", "")

	t.Run("list", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/games", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var listings []models.GameListing
		json.Unmarshal(w.Body.Bytes(), &listings)
		assert.Len(t, listings, 2)
		assert.Equal(t, 1, listings[0].AvailableCount)
	})

	t.Run("list with filters", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/games?genre=Sports&sortBy=price-low", "", nil)
		var listings []models.GameListing
		json.Unmarshal(w.Body.Bytes(), &listings)
		assert.Len(t, listings, 1)
		assert.Equal(t, "2", listings[0].ID)
	})

	t.Run("detail hides codes", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/games/1", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "one_premium_1")
	})

	t.Run("unknown game 404", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/games/99", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("featured", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/games/featured", "", nil)
		var listings []models.GameListing
		json.Unmarshal(w.Body.Bytes(), &listings)
		assert.Len(t, listings, 1)
	})

	t.Run("filter metadata", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/games/filters", "", nil)
		var meta map[string]any
		json.Unmarshal(w.Body.Bytes(), &meta)
		assert.Contains(t, meta, "genres")
		assert.Contains(t, meta, "platforms")
	})
}

func TestCartHandler(t *testing.T) {
	router, _, _ := newTestRouter(t, "", "")
	session := "cart-test-session"

	t.Run("add and totals", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/cart/items", session, map[string]string{"gameId": "1"})
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, "POST", "/cart/items", session, map[string]string{"gameId": "1"})
		var resp struct {
			Lines      []models.CartLine `json:"lines"`
			TotalItems int               `json:"totalItems"`
			TotalPrice int               `json:"totalPrice"`
		}
		json.Unmarshal(w.Body.Bytes(), &resp)
		assert.Len(t, resp.Lines, 1)
		assert.Equal(t, 2, resp.TotalItems)
		assert.Equal(t, 200, resp.TotalPrice)
	})

	t.Run("adding an unknown game 404s", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/cart/items", session, map[string]string{"gameId": "99"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("decrement and remove", func(t *testing.T) {
		doJSON(t, router, "PUT", "/cart/items/1/decrement", session, nil)
		w := doJSON(t, router, "GET", "/cart", session, nil)
		assert.Contains(t, w.Body.String(), `"totalItems":1`)

		doJSON(t, router, "DELETE", "/cart/items/1", session, nil)
		w = doJSON(t, router, "GET", "/cart", session, nil)
		assert.Contains(t, w.Body.String(), `"totalItems":0`)
	})

	t.Run("missing session header gets one minted", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/cart", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.SessionHeader))
	})
}

func TestCheckoutHandler(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		router, _, _ := newTestRouter(t, "", "")
		w := doJSON(t, router, "POST", "/checkout", "s1", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success clears cart and records purchase", func(t *testing.T) {
		router, store, _ := newTestRouter(t, "u1", "user")

		doJSON(t, router, "POST", "/cart/items", "s1", map[string]string{"gameId": "1"})

		w := doJSON(t, router, "POST", "/checkout", "s1", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var records []models.PurchaseRecord
		json.Unmarshal(w.Body.Bytes(), &records)
		assert.Len(t, records, 1)
		assert.Equal(t, "one_premium_1", records[0].Code.Username)

		count, _ := store.AvailableCount("1")
		assert.Equal(t, 0, count)

		w = doJSON(t, router, "GET", "/purchases", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "one_premium_1")
	})

	t.Run("out of stock names the title", func(t *testing.T) {
		router, _, _ := newTestRouter(t, "u1", "user")

		doJSON(t, router, "POST", "/cart/items", "s1", map[string]string{"gameId": "2"})

		w := doJSON(t, router, "POST", "/checkout", "s1", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "Game Two")

		// Cart untouched by the abort.
		w = doJSON(t, router, "GET", "/cart", "s1", nil)
		assert.Contains(t, w.Body.String(), `"totalItems":1`)
	})

	t.Run("empty cart", func(t *testing.T) {
		router, _, _ := newTestRouter(t, "u1", "user")
		w := doJSON(t, router, "POST", "/checkout", "s1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminHandler(t *testing.T) {
	t.Run("non-admin is forbidden", func(t *testing.T) {
		router, _, _ := newTestRouter(t, "u1", "user")
		w := doJSON(t, router, "GET", "/admin/games", "", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("list includes sold and unsold codes", func(t *testing.T) {
		router, store, _ := newTestRouter(t, "a1", "admin")
		store.MarkCodeSold("1", "1a")

		w := doJSON(t, router, "GET", "/admin/games/1/codes", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var codes []models.LoginCode
		json.Unmarshal(w.Body.Bytes(), &codes)
		assert.Len(t, codes, 1)
		assert.True(t, codes[0].IsSold)
	})

	t.Run("add code requires both fields", func(t *testing.T) {
		router, _, _ := newTestRouter(t, "a1", "admin")

		w := doJSON(t, router, "POST", "/admin/games/1/codes", "", map[string]string{"username": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "username and password")
	})

	t.Run("add toggle delete lifecycle", func(t *testing.T) {
		router, _, _ := newTestRouter(t, "a1", "admin")

		w := doJSON(t, router, "POST", "/admin/games/2/codes", "",
			map[string]string{"username": "two_premium_1", "password": "pw"})
		assert.Equal(t, http.StatusOK, w.Code)

		var code models.LoginCode
		json.Unmarshal(w.Body.Bytes(), &code)
		assert.NotEmpty(t, code.ID)

		w = doJSON(t, router, "PUT", "/admin/games/2/codes/"+code.ID+"/toggle", "", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		json.Unmarshal(w.Body.Bytes(), &code)
		assert.True(t, code.IsSold)

		w = doJSON(t, router, "DELETE", "/admin/games/2/codes/"+code.ID, "", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, "DELETE", "/admin/games/2/codes/"+code.ID, "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown game 404s", func(t *testing.T) {
		router, _, _ := newTestRouter(t, "a1", "admin")
		w := doJSON(t, router, "GET", "/admin/games/99/codes", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
