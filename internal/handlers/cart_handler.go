package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gamevault/backend/internal/cart"
	"github.com/gamevault/backend/internal/catalog"
	"github.com/gamevault/backend/internal/models"
	"github.com/gamevault/backend/internal/services"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	carts     *cart.Service
	store     *catalog.Store
	validator *services.ValidationHelper
}

func NewCartHandler(carts *cart.Service, store *catalog.Store) *CartHandler {
	return &CartHandler{
		carts:     carts,
		store:     store,
		validator: services.NewValidationHelper(),
	}
}

// cartResponse carries the ledger plus the derived totals the cart view shows.
type cartResponse struct {
	Lines      []models.CartLine `json:"lines"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int               `json:"totalPrice"`
}

func newCartResponse(c models.Cart) cartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}
	return cartResponse{Lines: lines, TotalItems: c.TotalItems(), TotalPrice: c.TotalPrice()}
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value("sessionID").(string)
	return id
}

// GetCart returns the session's ledger with totals
// @Summary Get cart
// @Tags cart
// @Produce json
// @Param X-Cart-Session header string false "Cart session id"
// @Success 200 {object} cartResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), sessionID(r))
	if err != nil {
		log.Printf("[CART] Load failed for session %s: %v", sessionID(r), err)
		services.SendErrorResponse(w, "Failed to load cart", http.StatusInternalServerError, nil)
		return
	}
	services.SendJSON(w, http.StatusOK, newCartResponse(c))
}

// AddItem merges a game into the cart
// @Summary Add game to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body object{gameId=string} true "Game to add"
// @Success 200 {object} cartResponse
// @Failure 404 {object} services.ErrorResponse "Game not found"
// @Router /cart/items [post]
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameID string `json:"gameId" validate:"required"`
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	game, err := h.store.Game(req.GameID)
	if err != nil {
		services.SendErrorResponse(w, "Game not found", http.StatusNotFound, nil)
		return
	}

	c, err := h.carts.Add(r.Context(), sessionID(r), game)
	if err != nil {
		log.Printf("[CART] Add failed for session %s: %v", sessionID(r), err)
		services.SendErrorResponse(w, "Failed to update cart", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[CART] Session %s added game %s", sessionID(r), req.GameID)
	services.SendJSON(w, http.StatusOK, newCartResponse(c))
}

// RemoveItem drops a line from the cart
// @Summary Remove game from cart
// @Tags cart
// @Produce json
// @Param gameID path string true "Game id"
// @Success 200 {object} cartResponse
// @Router /cart/items/{gameID} [delete]
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Remove(r.Context(), sessionID(r), chi.URLParam(r, "gameID"))
	if err != nil {
		services.SendErrorResponse(w, "Failed to update cart", http.StatusInternalServerError, nil)
		return
	}
	services.SendJSON(w, http.StatusOK, newCartResponse(c))
}

// IncrementItem raises a line's quantity by one
// @Summary Increment quantity
// @Tags cart
// @Produce json
// @Param gameID path string true "Game id"
// @Success 200 {object} cartResponse
// @Router /cart/items/{gameID}/increment [put]
func (h *CartHandler) IncrementItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Increment(r.Context(), sessionID(r), chi.URLParam(r, "gameID"))
	if err != nil {
		services.SendErrorResponse(w, "Failed to update cart", http.StatusInternalServerError, nil)
		return
	}
	services.SendJSON(w, http.StatusOK, newCartResponse(c))
}

// DecrementItem lowers a line's quantity by one, never below one
// @Summary Decrement quantity
// @Tags cart
// @Produce json
// @Param gameID path string true "Game id"
// @Success 200 {object} cartResponse
// @Router /cart/items/{gameID}/decrement [put]
func (h *CartHandler) DecrementItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Decrement(r.Context(), sessionID(r), chi.URLParam(r, "gameID"))
	if err != nil {
		services.SendErrorResponse(w, "Failed to update cart", http.StatusInternalServerError, nil)
		return
	}
	services.SendJSON(w, http.StatusOK, newCartResponse(c))
}

// ClearCart empties the ledger
// @Summary Clear cart
// @Tags cart
// @Produce json
// @Success 200 {object} cartResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), sessionID(r)); err != nil {
		services.SendErrorResponse(w, "Failed to clear cart", http.StatusInternalServerError, nil)
		return
	}
	services.SendJSON(w, http.StatusOK, newCartResponse(models.Cart{}))
}
