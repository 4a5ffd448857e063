package models

// Bucket is the mean win percentage of all prices inside one fixed price range.
type Bucket struct {
	// Label is the range name, e.g. "3001-5000".
	Label string `json:"label"`
	// Mean is the unweighted mean percentage, 0 when Count is 0.
	Mean float64 `json:"mean"`
	// Count is the number of prices that fell into the range.
	Count int `json:"count"`
}

// PricePoint is one per-source (price, percentage) observation.
type PricePoint struct {
	// Source is the identifier the observation came from.
	Source string `json:"source"`
	// Price is the draft cost.
	Price int `json:"price"`
	// Percentage is the win rate for this price within Source.
	Percentage float64 `json:"percentage"`
}
