package models

// CartLine aggregates one game's quantity within the session cart.
// The display fields are a snapshot taken when the line is created so the
// cart renders without a catalog round trip.
type CartLine struct {
	GameID   string `json:"gameId"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
	ImageURL string `json:"imageUrl"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// Cart is the full ledger for one session. Line order is insertion order;
// at most one line exists per game id.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// TotalItems is the sum of line quantities, recomputed on every call.
func (c Cart) TotalItems() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of price*quantity across lines, recomputed on every call.
func (c Cart) TotalPrice() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Price * line.Quantity
	}
	return total
}

// Line returns a pointer into the ledger for in-place quantity updates.
func (c *Cart) Line(gameID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].GameID == gameID {
			return &c.Lines[i]
		}
	}
	return nil
}
