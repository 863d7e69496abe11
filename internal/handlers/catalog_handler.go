package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gamevault/backend/internal/catalog"
	"github.com/gamevault/backend/internal/models"
	"github.com/gamevault/backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type CatalogHandler struct {
	store *catalog.Store
}

func NewCatalogHandler(store *catalog.Store) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// ListGames returns the filtered catalog
// @Summary List games
// @Description Browse the catalog with optional filters and sorting
// @Tags games
// @Produce json
// @Param minPrice query int false "Minimum price"
// @Param maxPrice query int false "Maximum price"
// @Param genre query string false "Comma-separated genres"
// @Param platform query string false "Comma-separated platforms"
// @Param search query string false "Title/genre search"
// @Param sortBy query string false "newest | price-low | price-high | popular"
// @Success 200 {array} models.GameListing
// @Router /games [get]
func (h *CatalogHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := catalog.Filter{
		MinPrice:  atoiOrZero(q.Get("minPrice")),
		MaxPrice:  atoiOrZero(q.Get("maxPrice")),
		Genres:    splitCSV(q.Get("genre")),
		Platforms: splitCSV(q.Get("platform")),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
	}

	services.SendJSON(w, http.StatusOK, h.store.Games(filter))
}

// GetGame returns one catalog entry
// @Summary Get game detail
// @Tags games
// @Produce json
// @Param gameID path string true "Game id"
// @Success 200 {object} models.GameListing
// @Failure 404 {object} services.ErrorResponse "Game not found"
// @Router /games/{gameID} [get]
func (h *CatalogHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	game, err := h.store.Game(gameID)
	if err != nil {
		services.SendErrorResponse(w, "Game not found", http.StatusNotFound, nil)
		return
	}

	services.SendJSON(w, http.StatusOK, models.NewGameListing(game))
}

// Featured returns the badged hero listings
// @Summary Featured games
// @Tags games
// @Produce json
// @Success 200 {array} models.GameListing
// @Router /games/featured [get]
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	services.SendJSON(w, http.StatusOK, h.store.Featured())
}

// FilterOptions returns the values the filter panel offers
// @Summary Filter metadata
// @Tags games
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /games/filters [get]
func (h *CatalogHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	minPrice, maxPrice := h.store.PriceBounds()
	services.SendJSON(w, http.StatusOK, map[string]interface{}{
		"genres":    h.store.Genres(),
		"platforms": h.store.Platforms(),
		"minPrice":  minPrice,
		"maxPrice":  maxPrice,
	})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
