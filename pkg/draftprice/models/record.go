package models

// NormalizedRow is a single (price, record) pair taken from a source row.
type NormalizedRow struct {
	// Price is the draft cost, truncated to an integer.
	Price int `json:"price"`
	// Record is the trimmed "<wins> - <losses>" tally.
	Record string `json:"record"`
}

// PriceStats accumulates wins and games played for one price.
// Total is wins plus losses and is never smaller than Wins for valid input.
type PriceStats struct {
	Wins  int `json:"wins"`
	Total int `json:"total"`
}

// Percentage returns the win rate in percent and false when no games were played.
func (s PriceStats) Percentage() (float64, bool) {
	if s.Total == 0 {
		return 0, false
	}
	return float64(s.Wins) / float64(s.Total) * 100, true
}
