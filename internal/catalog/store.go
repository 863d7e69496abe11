package catalog

import (
	"errors"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"

	"github.com/gamevault/backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrCodeNotFound     = errors.New("login code not found")
	ErrNoCodesAvailable = errors.New("no login codes available")
)

// Store holds the catalog and its login code inventory for the process
// lifetime. All access goes through the mutex so the store stays consistent
// if it is ever shared across concurrent requests.
type Store struct {
	mu    sync.RWMutex
	games []models.Game
}

// NewStore copies the seed so callers cannot mutate inventory behind the lock.
func NewStore(seed []models.Game) *Store {
	games := make([]models.Game, len(seed))
	for i, g := range seed {
		games[i] = g
		games[i].LoginCodes = append([]models.LoginCode(nil), g.LoginCodes...)
		games[i].Screenshots = append([]string(nil), g.Screenshots...)
	}
	return &Store{games: games}
}

// Game returns a copy of the catalog entry for id.
func (s *Store) Game(id string) (models.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.find(id)
	if g == nil {
		return models.Game{}, ErrGameNotFound
	}
	return copyGame(*g), nil
}

// Filter narrows and orders a catalog listing. Zero values leave the
// corresponding dimension unconstrained.
type Filter struct {
	MinPrice  int
	MaxPrice  int
	Genres    []string
	Platforms []string
	Search    string
	SortBy    string // newest, price-low, price-high, popular
}

// Games returns the filtered catalog in listing form (availability counts,
// no credentials).
func (s *Store) Games(f Filter) []models.GameListing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := strings.ToLower(strings.TrimSpace(f.Search))

	listings := []models.GameListing{}
	for _, g := range s.games {
		if f.MinPrice > 0 && g.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && g.Price > f.MaxPrice {
			continue
		}
		if len(f.Genres) > 0 && !containsFold(f.Genres, g.Genre) {
			continue
		}
		if len(f.Platforms) > 0 && !containsFold(f.Platforms, g.Platform) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(g.Title), query) &&
			!strings.Contains(strings.ToLower(g.Genre), query) {
			continue
		}
		listings = append(listings, models.NewGameListing(copyGame(g)))
	}

	switch f.SortBy {
	case "newest":
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].ReleaseYear > listings[j].ReleaseYear
		})
	case "price-low":
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Price < listings[j].Price
		})
	case "price-high":
		sort.SliceStable(listings, func(i, j int) bool {
			return listings[i].Price > listings[j].Price
		})
	default:
		// "popular" keeps seed order
	}

	return listings
}

// Featured returns the badged hero listings in seed order.
func (s *Store) Featured() []models.GameListing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	featured := []models.GameListing{}
	for _, g := range s.games {
		if g.Badge != "" {
			featured = append(featured, models.NewGameListing(copyGame(g)))
		}
	}
	return featured
}

// Genres returns the distinct genres in seed order.
func (s *Store) Genres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.distinct(func(g models.Game) string { return g.Genre })
}

// Platforms returns the distinct platforms in seed order.
func (s *Store) Platforms() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.distinct(func(g models.Game) string { return g.Platform })
}

// PriceBounds returns the lowest and highest catalog price.
func (s *Store) PriceBounds() (min, max int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, g := range s.games {
		if i == 0 || g.Price < min {
			min = g.Price
		}
		if g.Price > max {
			max = g.Price
		}
	}
	return min, max
}

// PickAvailableCode selects uniformly at random among the game's unsold
// codes. The unsold subset is recomputed at call time since prior picks may
// have consumed it.
func (s *Store) PickAvailableCode(gameID string) (models.LoginCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.find(gameID)
	if g == nil {
		return models.LoginCode{}, ErrGameNotFound
	}

	available := g.AvailableCodes()
	if len(available) == 0 {
		return models.LoginCode{}, ErrNoCodesAvailable
	}
	return available[rand.Intn(len(available))], nil
}

// MarkCodeSold flips the code to sold. Marking an already sold code again is
// a no-op; an unknown game or code is an explicit error so callers can decide
// whether to surface it.
func (s *Store) MarkCodeSold(gameID, codeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(gameID)
	if g == nil {
		return ErrGameNotFound
	}
	for i := range g.LoginCodes {
		if g.LoginCodes[i].ID == codeID {
			g.LoginCodes[i].IsSold = true
			return nil
		}
	}
	return ErrCodeNotFound
}

// AvailableCount reports how many unsold codes the game has.
func (s *Store) AvailableCount(gameID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.find(gameID)
	if g == nil {
		return 0, ErrGameNotFound
	}
	return len(g.AvailableCodes()), nil
}

// Inventory returns the game's full code list, sold included. Admin use only.
func (s *Store) Inventory(gameID string) ([]models.LoginCode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.find(gameID)
	if g == nil {
		return nil, ErrGameNotFound
	}
	return append([]models.LoginCode(nil), g.LoginCodes...), nil
}

// AddLoginCode appends a fresh unsold code. Field presence is validated at
// the handler; the store only guarantees the id.
func (s *Store) AddLoginCode(gameID, username, password string) (models.LoginCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(gameID)
	if g == nil {
		return models.LoginCode{}, ErrGameNotFound
	}

	code := models.LoginCode{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
		IsSold:   false,
	}
	g.LoginCodes = append(g.LoginCodes, code)
	log.Printf("[CATALOG] Added login code %s to game %s", code.ID, gameID)
	return code, nil
}

// ToggleCodeSold flips IsSold in either direction. This is the only path
// that may reverse sold back to available.
func (s *Store) ToggleCodeSold(gameID, codeID string) (models.LoginCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(gameID)
	if g == nil {
		return models.LoginCode{}, ErrGameNotFound
	}
	for i := range g.LoginCodes {
		if g.LoginCodes[i].ID == codeID {
			g.LoginCodes[i].IsSold = !g.LoginCodes[i].IsSold
			return g.LoginCodes[i], nil
		}
	}
	return models.LoginCode{}, ErrCodeNotFound
}

// DeleteLoginCode removes the code unconditionally, sold or not.
func (s *Store) DeleteLoginCode(gameID, codeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.find(gameID)
	if g == nil {
		return ErrGameNotFound
	}
	for i := range g.LoginCodes {
		if g.LoginCodes[i].ID == codeID {
			g.LoginCodes = append(g.LoginCodes[:i], g.LoginCodes[i+1:]...)
			log.Printf("[CATALOG] Deleted login code %s from game %s", codeID, gameID)
			return nil
		}
	}
	return ErrCodeNotFound
}

// find must be called with the lock held.
func (s *Store) find(id string) *models.Game {
	for i := range s.games {
		if s.games[i].ID == id {
			return &s.games[i]
		}
	}
	return nil
}

func (s *Store) distinct(key func(models.Game) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, g := range s.games {
		k := key(g)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

func copyGame(g models.Game) models.Game {
	g.LoginCodes = append([]models.LoginCode(nil), g.LoginCodes...)
	g.Screenshots = append([]string(nil), g.Screenshots...)
	return g
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}
