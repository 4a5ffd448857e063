package draftprice

import (
	"sort"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
)

// PriceStatsMap maps a price to its accumulated wins and games.
// It is only ever added to; callers must not pass negative tallies.
type PriceStatsMap map[int]models.PriceStats

// Add accumulates wins and total games for price.
func (m PriceStatsMap) Add(price, wins, total int) {
	s := m[price]
	s.Wins += wins
	s.Total += total
	m[price] = s
}

// Merge folds other into m.
func (m PriceStatsMap) Merge(other PriceStatsMap) {
	for price, s := range other {
		m.Add(price, s.Wins, s.Total)
	}
}

// Percentages returns the win percentage for every price with at least one game.
func (m PriceStatsMap) Percentages() map[int]float64 {
	out := make(map[int]float64, len(m))
	for price, s := range m {
		if pct, ok := s.Percentage(); ok {
			out[price] = pct
		}
	}
	return out
}

// Prices returns the prices in ascending order.
func (m PriceStatsMap) Prices() []int {
	prices := make([]int, 0, len(m))
	for price := range m {
		prices = append(prices, price)
	}
	sort.Ints(prices)
	return prices
}
