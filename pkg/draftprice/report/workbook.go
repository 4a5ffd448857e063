package report

import (
	"errors"
	"fmt"
	"math"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
	"github.com/xuri/excelize/v2"
)

const (
	// BucketSheet holds the per-range means and the bar chart.
	BucketSheet = "Buckets"
	// PointSheet holds the per-source observations and the scatter chart.
	PointSheet = "Points"

	priceAxisTitle   = "Price Range (Credits)"
	percentAxisTitle = "Win Percentage (%)"
)

// Build creates a workbook with a bar chart of bucket means and, when points
// are given, a scatter chart of the raw observations with a linear trend line.
func Build(title string, buckets []models.Bucket, points []models.PricePoint) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), BucketSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := writeBuckets(f, title, buckets); err != nil {
		f.Close()
		return nil, fmt.Errorf("bucket sheet: %w", err)
	}
	if len(points) > 0 {
		if _, err := f.NewSheet(PointSheet); err != nil {
			f.Close()
			return nil, err
		}
		if err := writePoints(f, title, points); err != nil {
			f.Close()
			return nil, fmt.Errorf("point sheet: %w", err)
		}
	}
	return f, nil
}

// WriteWorkbook builds the report and saves it to path.
func WriteWorkbook(path, title string, buckets []models.Bucket, points []models.PricePoint) error {
	f, err := Build(title, buckets, points)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func writeBuckets(f *excelize.File, title string, buckets []models.Bucket) error {
	if err := f.SetSheetRow(BucketSheet, "A1", &[]interface{}{priceAxisTitle, percentAxisTitle, "Prices"}); err != nil {
		return err
	}
	for i, b := range buckets {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(BucketSheet, cell, &[]interface{}{b.Label, b.Mean, b.Count}); err != nil {
			return err
		}
	}
	if len(buckets) == 0 {
		return nil
	}

	last := len(buckets) + 1
	if err := setPercentFormat(f, BucketSheet, "B2", fmt.Sprintf("B%d", last)); err != nil {
		return err
	}

	return f.AddChart(BucketSheet, "E2", &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$B$1", BucketSheet),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", BucketSheet, last),
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", BucketSheet, last),
		}},
		Title:     []excelize.RichTextRun{{Text: title}},
		Legend:    excelize.ChartLegend{Position: "none"},
		PlotArea:  excelize.ChartPlotArea{ShowVal: true},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: priceAxisTitle}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: percentAxisTitle}}},
		Dimension: excelize.ChartDimension{Width: 640, Height: 400},
	})
}

func writePoints(f *excelize.File, title string, points []models.PricePoint) error {
	if err := f.SetSheetRow(PointSheet, "A1", &[]interface{}{"Source", "Price", percentAxisTitle}); err != nil {
		return err
	}
	minPrice, maxPrice := math.MaxInt, math.MinInt
	for i, p := range points {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(PointSheet, cell, &[]interface{}{p.Source, p.Price, p.Percentage}); err != nil {
			return err
		}
		minPrice = min(minPrice, p.Price)
		maxPrice = max(maxPrice, p.Price)
	}

	last := len(points) + 1
	if err := setPercentFormat(f, PointSheet, "C2", fmt.Sprintf("C%d", last)); err != nil {
		return err
	}

	series := []excelize.ChartSeries{{
		Name:       fmt.Sprintf("%s!$C$1", PointSheet),
		Categories: fmt.Sprintf("%s!$B$2:$B$%d", PointSheet, last),
		Values:     fmt.Sprintf("%s!$C$2:$C$%d", PointSheet, last),
		Marker:     excelize.ChartMarker{Symbol: "circle", Size: 5},
		Line:       excelize.ChartLine{Type: excelize.ChartLineNone},
	}}

	chartTitle := title
	trend, err := FitTrend(points)
	switch {
	case errors.Is(err, ErrTooFewPoints):
	case err != nil:
		return err
	default:
		rows := [][]interface{}{
			{"Trend Price", "Trend (%)"},
			{minPrice, trend.At(float64(minPrice))},
			{maxPrice, trend.At(float64(maxPrice))},
			{},
			{"Slope", trend.Slope},
			{"Intercept", trend.Intercept},
			{"R²", trend.RSquared},
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(5, i+1)
			if err := f.SetSheetRow(PointSheet, cell, &row); err != nil {
				return err
			}
		}
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$F$1", PointSheet),
			Categories: fmt.Sprintf("%s!$E$2:$E$3", PointSheet),
			Values:     fmt.Sprintf("%s!$F$2:$F$3", PointSheet),
			Marker:     excelize.ChartMarker{Symbol: "none"},
			Line:       excelize.ChartLine{Type: excelize.ChartLineSolid, Width: 1.5},
		})
		chartTitle = fmt.Sprintf("%s (R² = %.3f)", title, trend.RSquared)
	}

	return f.AddChart(PointSheet, "H2", &excelize.Chart{
		Type:      excelize.Scatter,
		Series:    series,
		Title:     []excelize.RichTextRun{{Text: chartTitle}},
		Legend:    excelize.ChartLegend{Position: "bottom"},
		XAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: "Price (Credits)"}}},
		YAxis:     excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: percentAxisTitle}}},
		Dimension: excelize.ChartDimension{Width: 640, Height: 400},
	})
}

func setPercentFormat(f *excelize.File, sheet, from, to string) error {
	numFmt := "0.0"
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, from, to, style)
}
