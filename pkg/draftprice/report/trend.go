// Package report renders aggregated draft price results as text and xlsx charts.
package report

import (
	"errors"
	"math"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"gonum.org/v1/gonum/stat"
)

// ErrTooFewPoints indicates a trend needs at least two distinct prices.
var ErrTooFewPoints = errors.New("trend needs at least two distinct prices")

// Trend is a least-squares line percentage = Intercept + Slope*price.
type Trend struct {
	Intercept float64
	Slope     float64
	// RSquared is the coefficient of determination of the fit.
	RSquared float64
	N        int
}

// At evaluates the trend line at price.
func (t Trend) At(price float64) float64 {
	return t.Intercept + t.Slope*price
}

// FitTrend fits a linear trend of percentage over price.
func FitTrend(points []models.PricePoint) (Trend, error) {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	distinct := false
	for i, p := range points {
		xs[i] = float64(p.Price)
		ys[i] = p.Percentage
		if i > 0 && p.Price != points[0].Price {
			distinct = true
		}
	}
	if !distinct {
		return Trend{}, ErrTooFewPoints
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	// Constant percentages are fitted exactly but have no variance to explain.
	if math.IsNaN(r2) {
		r2 = 1
	}
	return Trend{Intercept: alpha, Slope: beta, RSquared: r2, N: len(points)}, nil
}
