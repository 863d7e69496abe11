package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/gamevault/backend/internal/database"
	"github.com/gamevault/backend/internal/models"
)

// Service is the cart ledger: one serialized Cart per session key, rewritten
// after every mutation so a reload starts from the persisted state.
type Service struct {
	kv  database.KV
	ttl time.Duration
}

func NewService(kv database.KV, ttl time.Duration) *Service {
	return &Service{kv: kv, ttl: ttl}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

// Get loads the session's cart. A corrupt stored value is discarded and an
// empty cart returned, so bad data self-heals instead of wedging the session.
func (s *Service) Get(ctx context.Context, sessionID string) (models.Cart, error) {
	raw, ok, err := s.kv.Get(ctx, cartKey(sessionID))
	if err != nil {
		return models.Cart{}, err
	}
	if !ok {
		return models.Cart{}, nil
	}

	var c models.Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		log.Printf("[CART] Discarding corrupt cart for session %s: %v", sessionID, err)
		s.kv.Del(ctx, cartKey(sessionID))
		return models.Cart{}, nil
	}
	return c, nil
}

// Add merges the game into the ledger: an existing line is incremented in
// place, otherwise a new quantity-1 line is appended.
func (s *Service) Add(ctx context.Context, sessionID string, game models.Game) (models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return models.Cart{}, err
	}

	if line := c.Line(game.ID); line != nil {
		line.Quantity++
	} else {
		c.Lines = append(c.Lines, models.CartLine{
			GameID:   game.ID,
			Title:    game.Title,
			Platform: game.Platform,
			ImageURL: game.ImageURL,
			Price:    game.Price,
			Quantity: 1,
		})
	}

	return c, s.save(ctx, sessionID, c)
}

// Remove drops the whole line regardless of quantity.
func (s *Service) Remove(ctx context.Context, sessionID, gameID string) (models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return models.Cart{}, err
	}

	for i := range c.Lines {
		if c.Lines[i].GameID == gameID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			break
		}
	}

	return c, s.save(ctx, sessionID, c)
}

// Increment raises the line's quantity by one. Unknown lines are left alone.
func (s *Service) Increment(ctx context.Context, sessionID, gameID string) (models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return models.Cart{}, err
	}

	if line := c.Line(gameID); line != nil {
		line.Quantity++
	}

	return c, s.save(ctx, sessionID, c)
}

// Decrement lowers the line's quantity by one but never below one; dropping
// a line takes an explicit Remove.
func (s *Service) Decrement(ctx context.Context, sessionID, gameID string) (models.Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return models.Cart{}, err
	}

	if line := c.Line(gameID); line != nil && line.Quantity > 1 {
		line.Quantity--
	}

	return c, s.save(ctx, sessionID, c)
}

// Clear empties the ledger.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.save(ctx, sessionID, models.Cart{})
}

func (s *Service) save(ctx context.Context, sessionID string, c models.Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, cartKey(sessionID), string(raw), s.ttl)
}
