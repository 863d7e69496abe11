package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gamevault/backend/internal/catalog"
	"github.com/gamevault/backend/internal/models"
	"github.com/gamevault/backend/internal/services"
	"github.com/go-chi/chi/v5"
)

// AdminHandler is the inventory management surface. Routes mounting it sit
// behind the admin role gate; handlers assume an operator is calling.
type AdminHandler struct {
	store     *catalog.Store
	validator *services.ValidationHelper
}

func NewAdminHandler(store *catalog.Store) *AdminHandler {
	return &AdminHandler{
		store:     store,
		validator: services.NewValidationHelper(),
	}
}

// adminGame exposes the full inventory, sold codes included.
type adminGame struct {
	models.Game
	LoginCodes []models.LoginCode `json:"loginCodes"`
}

// ListGames returns every game with its full code inventory
// @Summary List games with inventory
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} adminGame
// @Failure 403 {string} string "Forbidden"
// @Router /admin/games [get]
func (h *AdminHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	listings := h.store.Games(catalog.Filter{})

	games := make([]adminGame, 0, len(listings))
	for _, listing := range listings {
		codes, err := h.store.Inventory(listing.ID)
		if err != nil {
			continue
		}
		games = append(games, adminGame{Game: listing.Game, LoginCodes: codes})
	}

	services.SendJSON(w, http.StatusOK, games)
}

// ListCodes returns one game's full inventory
// @Summary List login codes
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "Game id"
// @Success 200 {array} models.LoginCode
// @Failure 404 {object} services.ErrorResponse "Game not found"
// @Router /admin/games/{gameID}/codes [get]
func (h *AdminHandler) ListCodes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.store.Inventory(chi.URLParam(r, "gameID"))
	if err != nil {
		services.SendErrorResponse(w, "Game not found", http.StatusNotFound, nil)
		return
	}
	services.SendJSON(w, http.StatusOK, codes)
}

// AddCode appends a new unsold login code
// @Summary Add login code
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "Game id"
// @Param request body object{username=string,password=string} true "New credential"
// @Success 200 {object} models.LoginCode
// @Failure 400 {object} services.ErrorResponse "Missing username or password"
// @Failure 404 {object} services.ErrorResponse "Game not found"
// @Router /admin/games/{gameID}/codes [post]
func (h *AdminHandler) AddCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
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
		services.SendErrorResponse(w, "Please enter both username and password", http.StatusBadRequest, err)
		return
	}

	gameID := chi.URLParam(r, "gameID")
	code, err := h.store.AddLoginCode(gameID, req.Username, req.Password)
	if err != nil {
		services.SendErrorResponse(w, "Game not found", http.StatusNotFound, nil)
		return
	}

	log.Printf("[ADMIN] Added code %s to game %s", code.ID, gameID)
	services.SendJSON(w, http.StatusOK, code)
}

// ToggleCode flips a code's sold flag in either direction
// @Summary Toggle sold status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "Game id"
// @Param codeID path string true "Code id"
// @Success 200 {object} models.LoginCode
// @Failure 404 {object} services.ErrorResponse "Game or code not found"
// @Router /admin/games/{gameID}/codes/{codeID}/toggle [put]
func (h *AdminHandler) ToggleCode(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	codeID := chi.URLParam(r, "codeID")

	code, err := h.store.ToggleCodeSold(gameID, codeID)
	if err != nil {
		h.notFound(w, err)
		return
	}

	log.Printf("[ADMIN] Toggled code %s on game %s, sold=%t", codeID, gameID, code.IsSold)
	services.SendJSON(w, http.StatusOK, code)
}

// DeleteCode removes a code unconditionally
// @Summary Delete login code
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "Game id"
// @Param codeID path string true "Code id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} services.ErrorResponse "Game or code not found"
// @Router /admin/games/{gameID}/codes/{codeID} [delete]
func (h *AdminHandler) DeleteCode(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	codeID := chi.URLParam(r, "codeID")

	if err := h.store.DeleteLoginCode(gameID, codeID); err != nil {
		h.notFound(w, err)
		return
	}

	log.Printf("[ADMIN] Deleted code %s from game %s", codeID, gameID)
	services.SendJSON(w, http.StatusOK, map[string]string{"message": "Login code deleted"})
}

func (h *AdminHandler) notFound(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrCodeNotFound) {
		services.SendErrorResponse(w, "Login code not found", http.StatusNotFound, nil)
		return
	}
	services.SendErrorResponse(w, "Game not found", http.StatusNotFound, nil)
}
