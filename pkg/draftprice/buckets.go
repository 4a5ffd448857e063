package draftprice

import (
	"sort"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"gonum.org/v1/gonum/stat"
)

// BucketLabels are the fixed price ranges in output order.
var BucketLabels = []string{
	"3000",
	"3001-5000",
	"5001-10000",
	"10001-15000",
	"15001-20000",
	"20001+",
}

// bucketIndex returns the BucketLabels index for price.
// Prices below 3000 land in "5001-10000"; the checks run in order and only
// the exact value 3000 is caught before the <= 10000 branch.
func bucketIndex(price int) int {
	switch {
	case price == 3000:
		return 0
	case price > 3000 && price <= 5000:
		return 1
	case price <= 10000:
		return 2
	case price <= 15000:
		return 3
	case price <= 20000:
		return 4
	default:
		return 5
	}
}

// BucketPercentages groups per-price percentages into the fixed ranges and
// returns the unweighted mean of each, 0 for an empty range.
func BucketPercentages(percentages map[int]float64) []models.Bucket {
	prices := make([]int, 0, len(percentages))
	for price := range percentages {
		prices = append(prices, price)
	}
	sort.Ints(prices)

	values := make([][]float64, len(BucketLabels))
	for _, price := range prices {
		idx := bucketIndex(price)
		values[idx] = append(values[idx], percentages[price])
	}

	buckets := make([]models.Bucket, len(BucketLabels))
	for i, label := range BucketLabels {
		buckets[i] = models.Bucket{Label: label, Count: len(values[i])}
		if len(values[i]) > 0 {
			buckets[i].Mean = stat.Mean(values[i], nil)
		}
	}
	return buckets
}
