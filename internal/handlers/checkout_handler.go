package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gamevault/backend/internal/services"
)

type CheckoutHandler struct {
	checkout *services.CheckoutService
}

func NewCheckoutHandler(checkout *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Checkout converts the cart into purchased login codes
// @Summary Checkout
// @Description Allocates one unsold login code per cart line and clears the cart
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Param X-Cart-Session header string false "Cart session id"
// @Success 200 {array} models.PurchaseRecord
// @Failure 400 {object} services.ErrorResponse "Empty cart"
// @Failure 401 {object} services.ErrorResponse "Unauthorized"
// @Failure 409 {object} services.ErrorResponse "Out of stock"
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	records, err := h.checkout.Checkout(r.Context(), sessionID(r), userID)
	if err != nil {
		var oos *services.OutOfStockError
		switch {
		case errors.As(err, &oos):
			services.SendJSON(w, http.StatusConflict, services.ErrorResponse{
				Error:      "Some games are out of stock",
				OutOfStock: oos.Titles,
			})
		case errors.Is(err, services.ErrEmptyCart):
			services.SendErrorResponse(w, "Cart is empty", http.StatusBadRequest, nil)
		default:
			log.Printf("[CHECKOUT] Failed for user %s: %v", userID, err)
			services.SendErrorResponse(w, "Checkout failed", http.StatusInternalServerError, nil)
		}
		return
	}

	services.SendJSON(w, http.StatusOK, records)
}

// Purchases lists the user's purchase history
// @Summary Purchase history
// @Description The dashboard view: purchased games with their login codes
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.PurchaseRecord
// @Failure 401 {object} services.ErrorResponse "Unauthorized"
// @Router /purchases [get]
func (h *CheckoutHandler) Purchases(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok || userID == "" {
		services.SendErrorResponse(w, "Unauthorized", http.StatusUnauthorized, nil)
		return
	}

	records, err := h.checkout.Purchases(r.Context(), userID)
	if err != nil {
		services.SendErrorResponse(w, "Failed to load purchases", http.StatusInternalServerError, nil)
		return
	}

	services.SendJSON(w, http.StatusOK, records)
}
