package models

// Game is a purchasable premium account listing in the catalog.
type Game struct {
	ID             string      `json:"id" example:"1"`
	Title          string      `json:"title" example:"Grand Theft Auto V"`
	Description    string      `json:"description,omitempty"`
	ImageURL       string      `json:"imageUrl"`
	DetailImageURL string      `json:"detailImageUrl,omitempty"`
	HeroImageURL   string      `json:"heroImageUrl,omitempty"`
	Price          int         `json:"price" example:"499"`         // whole currency units
	OriginalPrice  int         `json:"originalPrice,omitempty"`     // pre-discount price, >= Price when set
	Discount       int         `json:"discount" example:"50"`       // display-only percentage, not derived
	Genre          string      `json:"genre" example:"Action"`
	Platform       string      `json:"platform" example:"Steam"`
	Publisher      string      `json:"publisher,omitempty"`
	Developer      string      `json:"developer,omitempty"`
	ReleaseYear    int         `json:"releaseYear,omitempty"`
	Players        string      `json:"players,omitempty"`
	IsNew          bool        `json:"isNew"`
	Badge          string      `json:"badge,omitempty"` // featured listings only
	Screenshots    []string    `json:"screenshots,omitempty"`
	LoginCodes     []LoginCode `json:"-"` // never serialized on public surfaces
}

// LoginCode is a username/password pair sold to exactly one buyer.
type LoginCode struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	IsSold   bool   `json:"isSold"`
}

// AvailableCodes returns the unsold subset in inventory order.
func (g *Game) AvailableCodes() []LoginCode {
	var available []LoginCode
	for _, code := range g.LoginCodes {
		if !code.IsSold {
			available = append(available, code)
		}
	}
	return available
}

// GameListing is the public projection of a Game: inventory is reduced
// to an availability count so codes never leak through catalog reads.
type GameListing struct {
	Game
	AvailableCount int `json:"availableCount"`
}

func NewGameListing(g Game) GameListing {
	return GameListing{Game: g, AvailableCount: len(g.AvailableCodes())}
}
