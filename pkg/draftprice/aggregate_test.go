package draftprice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/draftprice-go/pkg/draftprice/models"
)

// fakeFetcher serves tables keyed by source id and sub-table name.
type fakeFetcher struct {
	tables map[string]map[string]*models.Table
	errs   map[string]error
	calls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, sourceID, subTable string) (*models.Table, error) {
	f.calls = append(f.calls, sourceID+"/"+subTable)
	if err, ok := f.errs[sourceID]; ok {
		return nil, err
	}
	t, ok := f.tables[sourceID][subTable]
	if !ok {
		return nil, fmt.Errorf("sheet %q not found", subTable)
	}
	return t, nil
}

func priceTable(name string, rows ...[]string) *models.Table {
	return &models.Table{Name: name, Columns: []string{"Player", "Price ", "Record "}, Rows: rows}
}

func TestAggregateMergesSources(t *testing.T) {
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"A": {"Overall MVP": priceTable("Overall MVP", []string{"x", "5000", "2 - 0"})},
		"B": {"Overall MVP": priceTable("Overall MVP", []string{"y", "5000", "0 - 2"})},
	}}

	res := Aggregate(context.Background(), f, []string{"A", "B"}, DefaultOptions())

	assert.Equal(t, PriceStatsMap{5000: {Wins: 2, Total: 4}}, res.Combined)
	assert.Equal(t, map[int]float64{5000: 50}, res.Percentages)
	assert.Equal(t, []models.PricePoint{
		{Source: "A", Price: 5000, Percentage: 100},
		{Source: "B", Price: 5000, Percentage: 0},
	}, res.Points)
	assert.Equal(t, "3001-5000", res.Buckets[1].Label)
	assert.Equal(t, 50.0, res.Buckets[1].Mean)
	assert.False(t, res.Empty())
	assert.Empty(t, res.Failed())
	assert.Empty(t, res.Diagnostics)
}

func TestAggregateScenarioBuckets(t *testing.T) {
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"sheet": {"Overall MVP": priceTable("Overall MVP",
			[]string{"a", "3000", "5 - 5"},
			[]string{"b", "4000", "3 - 1"},
			[]string{"c", "12000", "1 - 0"},
		)},
	}}

	res := Aggregate(context.Background(), f, []string{"sheet"}, DefaultOptions())

	means := map[string]float64{}
	for _, b := range res.Buckets {
		means[b.Label] = b.Mean
	}
	assert.Equal(t, map[string]float64{
		"3000":        50,
		"3001-5000":   75,
		"5001-10000":  0,
		"10001-15000": 100,
		"15001-20000": 0,
		"20001+":      0,
	}, means)
}

func TestAggregateSkipsFailingSource(t *testing.T) {
	f := &fakeFetcher{
		tables: map[string]map[string]*models.Table{
			"good": {"Overall MVP": priceTable("Overall MVP", []string{"x", "7000", "3 - 1"})},
		},
		errs: map[string]error{"bad": errors.New("connection refused")},
	}

	res := Aggregate(context.Background(), f, []string{"bad", "good"}, DefaultOptions())

	require.Len(t, res.Sources, 2)
	failed := res.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "bad", failed[0].ID)

	var fe *FetchError
	require.True(t, errors.As(failed[0].Err, &fe))
	assert.Equal(t, "bad", fe.Source)
	assert.ErrorIs(t, failed[0].Err, ErrNoSchema)

	assert.Equal(t, map[int]float64{7000: 75}, res.Percentages)
	assert.False(t, res.Empty())

	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, models.KindFetch, res.Diagnostics[0].Kind)
	assert.Equal(t, "bad", res.Diagnostics[0].Source)
}

func TestAggregateProbesSubTablesInOrder(t *testing.T) {
	wrong := &models.Table{Name: "Overall MVP", Columns: []string{"Player", "MVP votes"}, Rows: [][]string{{"x", "3"}}}
	right := &models.Table{Name: "Overall", Columns: []string{"Cost:", "Record:"}, Rows: [][]string{{"3000", "1 - 1"}}}
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"s1": {"Overall MVP": wrong, "Overall": right},
	}}

	a := New(f, DefaultOptions())
	data, err := a.LoadSource(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, "Overall", data.SubTable)
	assert.Equal(t, PriceStatsMap{3000: {Wins: 1, Total: 2}}, data.Stats)
	assert.Equal(t, []string{"s1/Overall MVP", "s1/Overall"}, f.calls)

	require.Len(t, data.Diagnostics, 1)
	assert.Equal(t, models.KindSchema, data.Diagnostics[0].Kind)
	assert.Equal(t, "Overall MVP", data.Diagnostics[0].SubTable)
	assert.ErrorIs(t, data.Diagnostics[0].Err, ErrMissingColumns)
}

func TestAggregateStopsAtFirstMatchingSubTable(t *testing.T) {
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"s1": {
			"Overall MVP": priceTable("Overall MVP", []string{"x", "3000", "1 - 0"}),
			"Overall":     priceTable("Overall", []string{"x", "3000", "0 - 9"}),
		},
	}}

	res := Aggregate(context.Background(), f, []string{"s1"}, DefaultOptions())

	assert.Equal(t, []string{"s1/Overall MVP"}, f.calls)
	assert.Equal(t, map[int]float64{3000: 100}, res.Percentages)
}

func TestLoadSourceNoSchema(t *testing.T) {
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"s1": {"Overall": {Name: "Overall", Columns: []string{"Player"}}},
	}}

	_, err := New(f, DefaultOptions()).LoadSource(context.Background(), "s1")
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.ErrorIs(t, err, ErrNoSchema)
	assert.ErrorIs(t, err, ErrMissingColumns)

	var se *SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "Overall", se.SubTable)
}

func TestAggregateKeepsSchemaDiagnosticsOfFailedSource(t *testing.T) {
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"s1": {
			"Overall MVP": {Name: "Overall MVP", Columns: []string{"Player", "Votes"}},
			"Overall":     {Name: "Overall", Columns: []string{"Player", "Team"}},
		},
	}}

	res := Aggregate(context.Background(), f, []string{"s1"}, DefaultOptions())

	require.Len(t, res.Diagnostics, 3)
	assert.Equal(t, models.KindSchema, res.Diagnostics[0].Kind)
	assert.Equal(t, "Overall MVP", res.Diagnostics[0].SubTable)
	assert.Equal(t, models.KindSchema, res.Diagnostics[1].Kind)
	assert.Equal(t, "Overall", res.Diagnostics[1].SubTable)
	assert.Equal(t, models.KindFetch, res.Diagnostics[2].Kind)
	assert.ErrorIs(t, res.Diagnostics[2].Err, ErrNoSchema)
}

func TestLoadSourceSkipsBadRows(t *testing.T) {
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"s1": {"Overall MVP": priceTable("Overall MVP",
			[]string{"a", "3000", "2 - 1"},
			[]string{"b", "3000", "abc - 3"},
			[]string{"c", "3000", "1 - 0"},
			[]string{"d", "", "4 - 0"},
			[]string{"e", "free", "4 - 0"},
		)},
	}}

	data, err := New(f, DefaultOptions()).LoadSource(context.Background(), "s1")
	require.NoError(t, err)

	assert.Equal(t, PriceStatsMap{3000: {Wins: 3, Total: 4}}, data.Stats)
	assert.Equal(t, 2, data.Rows)
	assert.Equal(t, 1, data.Blank)
	require.Len(t, data.Diagnostics, 2)

	assert.Equal(t, 2, data.Diagnostics[0].Row)
	assert.Equal(t, models.KindFormat, data.Diagnostics[0].Kind)
	var fe *FormatError
	require.True(t, errors.As(data.Diagnostics[0].Err, &fe))
	assert.Equal(t, "record", fe.Field)

	assert.Equal(t, 5, data.Diagnostics[1].Row)
	require.True(t, errors.As(data.Diagnostics[1].Err, &fe))
	assert.Equal(t, "price", fe.Field)
}

func TestAggregateZeroGamePricesExcluded(t *testing.T) {
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"s1": {"Overall MVP": priceTable("Overall MVP",
			[]string{"a", "8000", "0 - 0"},
			[]string{"b", "9000", "1 - 1"},
		)},
	}}

	res := Aggregate(context.Background(), f, []string{"s1"}, DefaultOptions())

	assert.Contains(t, res.Combined, 8000)
	assert.NotContains(t, res.Percentages, 8000)
	assert.Equal(t, []models.PricePoint{{Source: "s1", Price: 9000, Percentage: 50}}, res.Points)
}

func TestAggregateEmpty(t *testing.T) {
	f := &fakeFetcher{errs: map[string]error{
		"a": errors.New("timeout"),
		"b": errors.New("not found"),
	}}

	res := Aggregate(context.Background(), f, []string{"a", "b"}, DefaultOptions())

	assert.True(t, res.Empty())
	assert.Len(t, res.Failed(), 2)
	require.Len(t, res.Buckets, len(BucketLabels))
	for i, b := range res.Buckets {
		assert.Equal(t, BucketLabels[i], b.Label)
		assert.Zero(t, b.Mean)
	}

	res = Aggregate(context.Background(), f, nil, DefaultOptions())
	assert.True(t, res.Empty())
	assert.Len(t, res.Buckets, len(BucketLabels))
}

func TestAggregateLogsDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	f := &fakeFetcher{
		tables: map[string]map[string]*models.Table{
			"s1": {"Overall MVP": priceTable("Overall MVP", []string{"a", "3000", "x - 1"})},
		},
		errs: map[string]error{"s2": errors.New("boom")},
	}
	opts := DefaultOptions()
	opts.Logger = logger

	Aggregate(context.Background(), f, []string{"s1", "s2"}, opts)

	out := buf.String()
	assert.Contains(t, out, "Skipping row")
	assert.Contains(t, out, "source=s1")
	assert.Contains(t, out, "row=1")
	assert.Contains(t, out, "Skipping source")
	assert.Contains(t, out, "source=s2")
}

func TestAggregateWithoutSubTables(t *testing.T) {
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"book": {"": {Columns: []string{"Price ", "Record "}, Rows: [][]string{{"21000", "3 - 0"}}}},
	}}
	opts := DefaultOptions()
	opts.Schema.SubTables = nil

	res := Aggregate(context.Background(), f, []string{"book"}, opts)

	assert.Equal(t, []string{"book/"}, f.calls)
	assert.Equal(t, 100.0, res.Buckets[5].Mean)
}

func TestAggregatePlaceholderPriceColumn(t *testing.T) {
	f := &fakeFetcher{tables: map[string]map[string]*models.Table{
		"s1": {"Overall MVP": {
			Name:    "Overall MVP",
			Columns: []string{"Player", "Cost ", "Unnamed: 2", "Record "},
			Rows:    [][]string{{"a", "999", "4000", "3 - 1"}},
		}},
	}}

	res := Aggregate(context.Background(), f, []string{"s1"}, DefaultOptions())

	assert.Equal(t, map[int]float64{4000: 75}, res.Percentages)
}
