package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gamevault/backend/internal/cart"
	"github.com/gamevault/backend/internal/catalog"
	"github.com/gamevault/backend/internal/config"
	"github.com/gamevault/backend/internal/database"
	"github.com/gamevault/backend/internal/models"
	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// OutOfStockError names the cart lines that have no unsold login code left.
type OutOfStockError struct {
	Titles []string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("out of stock: %s", strings.Join(e.Titles, ", "))
}

// CheckoutService turns a cart snapshot into consumed inventory. It owns no
// state of its own; it orchestrates the catalog store, the cart ledger and
// the purchase record storage.
type CheckoutService struct {
	catalog *catalog.Store
	carts   *cart.Service
	kv      database.KV
	config  *config.CheckoutConfig
}

func NewCheckoutService(catalogStore *catalog.Store, carts *cart.Service, kv database.KV) *CheckoutService {
	return &CheckoutService{
		catalog: catalogStore,
		carts:   carts,
		kv:      kv,
		config:  config.LoadCheckoutConfig(),
	}
}

// Checkout runs the full allocation sequence:
//
//  1. dry-run availability check over every line; any shortfall aborts the
//     whole checkout before anything mutates,
//  2. a simulated payment delay (cancelable through ctx),
//  3. the allocation pass: one fresh pick per line, marked sold. One code per
//     line regardless of line quantity — this mirrors how sales worked before
//     and is pinned by tests; do not change it without a product decision.
//
// On success the cart is cleared and the purchase records returned.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID, userID string) ([]models.PurchaseRecord, error) {
	c, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(c.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	log.Printf("[CHECKOUT] User %s checking out %d lines (%d items, total %d)",
		userID, len(c.Lines), c.TotalItems(), c.TotalPrice())

	if titles := s.unavailableTitles(c.Lines); len(titles) > 0 {
		log.Printf("[CHECKOUT] Aborted for user %s, out of stock: %v", userID, titles)
		return nil, &OutOfStockError{Titles: titles}
	}

	// Simulated payment latency. Nothing mutates until the wait completes, so
	// an abandoned request leaves no partial state behind.
	select {
	case <-time.After(s.config.ProcessingDelay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	records := make([]models.PurchaseRecord, 0, len(c.Lines))
	now := time.Now().UTC()
	for _, line := range c.Lines {
		code, err := s.catalog.PickAvailableCode(line.GameID)
		if err != nil {
			// Inventory drained between dry-run and allocation. Codes already
			// marked in this loop stay sold; the buyer sees the shortfall.
			log.Printf("[CHECKOUT] Allocation failed for game %s: %v", line.GameID, err)
			return nil, &OutOfStockError{Titles: []string{line.Title}}
		}
		if err := s.catalog.MarkCodeSold(line.GameID, code.ID); err != nil {
			return nil, err
		}

		records = append(records, models.PurchaseRecord{
			ID:          uuid.NewString(),
			GameID:      line.GameID,
			Title:       line.Title,
			Platform:    line.Platform,
			ImageURL:    line.ImageURL,
			Price:       line.Price,
			Code:        code,
			PurchasedAt: now,
		})
	}

	if err := s.appendPurchases(ctx, userID, records); err != nil {
		log.Printf("[CHECKOUT] Failed to record purchases for user %s: %v", userID, err)
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("[CHECKOUT] Failed to clear cart for session %s: %v", sessionID, err)
	}

	log.Printf("[CHECKOUT] Success for user %s: %d codes allocated", userID, len(records))
	return records, nil
}

// unavailableTitles is the dry run: a pick per distinct line, discarding the
// result. Picks mutate nothing, so a clean pass here leaves state untouched.
func (s *CheckoutService) unavailableTitles(lines []models.CartLine) []string {
	var titles []string
	for _, line := range lines {
		if _, err := s.catalog.PickAvailableCode(line.GameID); err != nil {
			titles = append(titles, line.Title)
		}
	}
	return titles
}

// Purchases returns the user's records, newest first.
func (s *CheckoutService) Purchases(ctx context.Context, userID string) ([]models.PurchaseRecord, error) {
	raw, ok, err := s.kv.Get(ctx, purchasesKey(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []models.PurchaseRecord{}, nil
	}

	var records []models.PurchaseRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Printf("[CHECKOUT] Discarding corrupt purchase history for user %s: %v", userID, err)
		s.kv.Del(ctx, purchasesKey(userID))
		return []models.PurchaseRecord{}, nil
	}
	return records, nil
}

func (s *CheckoutService) appendPurchases(ctx context.Context, userID string, records []models.PurchaseRecord) error {
	existing, err := s.Purchases(ctx, userID)
	if err != nil {
		return err
	}

	merged := append(append([]models.PurchaseRecord{}, records...), existing...)
	if len(merged) > s.config.PurchaseHistory {
		merged = merged[:s.config.PurchaseHistory]
	}

	raw, err := json.Marshal(merged)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, purchasesKey(userID), string(raw), 0)
}

func purchasesKey(userID string) string {
	return fmt.Sprintf("purchases:%s", userID)
}
