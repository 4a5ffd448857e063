package report

import (
	"fmt"
	"io"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
)

// PrintBuckets writes one "<label>: <mean>%" line per bucket under a title.
func PrintBuckets(w io.Writer, title string, buckets []models.Bucket) error {
	if _, err := fmt.Fprintf(w, "\n%s:\n", title); err != nil {
		return err
	}
	for _, b := range buckets {
		if _, err := fmt.Fprintf(w, "%s: %.1f%%\n", b.Label, b.Mean); err != nil {
			return err
		}
	}
	return nil
}

// PrintTrend writes the trend equation and its R² score.
func PrintTrend(w io.Writer, t Trend) error {
	_, err := fmt.Fprintf(w, "Trend: y = %.6fx + %.2f (R² = %.3f, n = %d)\n", t.Slope, t.Intercept, t.RSquared, t.N)
	return err
}
