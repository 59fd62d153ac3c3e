// AngelaMos | 2026
// reports.go

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
	"github.com/carterperez-dev/insight-dashboard/internal/record"
)

// Report computes one dashboard payload. Failures are turned into a 500
// result by the report itself.
type Report interface {
	Run(ctx context.Context, params url.Values) core.Result
}

func fetchFailed(what string, err error) core.Result {
	return core.Result{
		Status: http.StatusInternalServerError,
		Body: map[string]string{
			"message": fmt.Sprintf("Error fetching %s: %s", what, err),
		},
	}
}

func distinctValues(
	ctx context.Context,
	repo record.Repository,
	field record.Field,
) ([]string, error) {
	groups, err := repo.Aggregate(ctx, record.AggregateSpec{
		Filter:  record.NewFilter().NotBlank(field),
		GroupBy: []record.Field{field},
		OrderBy: []record.Order{{Key: string(field)}},
	})
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(groups))
	for _, g := range groups {
		if v := g.Key(field); v != nil {
			values = append(values, *v)
		}
	}
	return values, nil
}

type intRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

type textRange struct {
	Min *string `json:"min"`
	Max *string `json:"max"`
}

type filterOptions struct {
	StartYears      []string  `json:"start_years"`
	EndYears        []string  `json:"end_years"`
	IntensityRange  intRange  `json:"intensity_range"`
	LikelihoodRange intRange  `json:"likelihood_range"`
	RelevanceRange  intRange  `json:"relevance_range"`
	ImpactRange     textRange `json:"impact_range"`
	EndYear         []string  `json:"end_year"`
	Topic           []string  `json:"topic"`
	Region          []string  `json:"region"`
	Country         []string  `json:"country"`
	Sector          []string  `json:"sector"`
	Pestle          []string  `json:"pestle"`
	Source          []string  `json:"source"`
	SWOT            []string  `json:"swot"`
}

type filterReport struct {
	repo record.Repository
}

func (r filterReport) Run(ctx context.Context, _ url.Values) core.Result {
	opts, err := r.options(ctx)
	if err != nil {
		return fetchFailed("filters", err)
	}
	return core.Result{Status: http.StatusOK, Body: opts}
}

func (r filterReport) options(ctx context.Context) (*filterOptions, error) {
	opts := &filterOptions{SWOT: record.SWOTCategories}

	lists := []struct {
		field record.Field
		dest  *[]string
	}{
		{record.FieldStartYear, &opts.StartYears},
		{record.FieldEndYear, &opts.EndYears},
		{record.FieldTopic, &opts.Topic},
		{record.FieldRegion, &opts.Region},
		{record.FieldCountry, &opts.Country},
		{record.FieldSector, &opts.Sector},
		{record.FieldPestle, &opts.Pestle},
		{record.FieldSource, &opts.Source},
	}
	for _, l := range lists {
		values, err := distinctValues(ctx, r.repo, l.field)
		if err != nil {
			return nil, err
		}
		*l.dest = values
	}
	opts.EndYear = opts.EndYears

	groups, err := r.repo.Aggregate(ctx, record.AggregateSpec{
		Measures: []record.Measure{
			{Name: "min_intensity", Func: record.Min, Field: record.FieldIntensity},
			{Name: "max_intensity", Func: record.Max, Field: record.FieldIntensity},
			{Name: "min_likelihood", Func: record.Min, Field: record.FieldLikelihood},
			{Name: "max_likelihood", Func: record.Max, Field: record.FieldLikelihood},
			{Name: "min_relevance", Func: record.Min, Field: record.FieldRelevance},
			{Name: "max_relevance", Func: record.Max, Field: record.FieldRelevance},
			{Name: "min_impact", Func: record.Min, Field: record.FieldImpact},
			{Name: "max_impact", Func: record.Max, Field: record.FieldImpact},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(groups) != 1 {
		return nil, fmt.Errorf("expected one summary row, got %d", len(groups))
	}

	g := groups[0]
	opts.IntensityRange = intRange{g.IntOrNil("min_intensity"), g.IntOrNil("max_intensity")}
	opts.LikelihoodRange = intRange{g.IntOrNil("min_likelihood"), g.IntOrNil("max_likelihood")}
	opts.RelevanceRange = intRange{g.IntOrNil("min_relevance"), g.IntOrNil("max_relevance")}
	opts.ImpactRange = textRange{g.Text("min_impact"), g.Text("max_impact")}

	return opts, nil
}

type overview struct {
	AvgIntensity        *float64         `json:"avg_intensity"`
	AvgLikelihood       *float64         `json:"avg_likelihood"`
	AvgRelevance        *float64         `json:"avg_relevance"`
	EndYearDistribution []map[string]any `json:"end_year_distribution"`
	CountryDistribution []map[string]any `json:"country_distribution"`
	TopicDistribution   []map[string]any `json:"topic_distribution"`
	RegionDistribution  []map[string]any `json:"region_distribution"`
	TotalTopic          int              `json:"total_topic"`
	TotalCountry        int              `json:"total_country"`
	TotalRegion         int              `json:"total_region"`
}

type overviewReport struct {
	repo record.Repository
}

func (r overviewReport) Run(ctx context.Context, _ url.Values) core.Result {
	out, err := r.overview(ctx)
	if err != nil {
		return fetchFailed("overview", err)
	}
	return core.Result{Status: http.StatusOK, Body: out}
}

func (r overviewReport) overview(ctx context.Context) (*overview, error) {
	groups, err := r.repo.Aggregate(ctx, record.AggregateSpec{
		Measures: []record.Measure{
			{Name: "avg_intensity", Func: record.Avg, Field: record.FieldIntensity},
			{Name: "avg_likelihood", Func: record.Avg, Field: record.FieldLikelihood},
			{Name: "avg_relevance", Func: record.Avg, Field: record.FieldRelevance},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(groups) != 1 {
		return nil, fmt.Errorf("expected one summary row, got %d", len(groups))
	}

	out := &overview{
		AvgIntensity:  groups[0].Float("avg_intensity"),
		AvgLikelihood: groups[0].Float("avg_likelihood"),
		AvgRelevance:  groups[0].Float("avg_relevance"),
	}

	distributions := []struct {
		field record.Field
		dest  *[]map[string]any
	}{
		{record.FieldEndYear, &out.EndYearDistribution},
		{record.FieldCountry, &out.CountryDistribution},
		{record.FieldTopic, &out.TopicDistribution},
		{record.FieldRegion, &out.RegionDistribution},
	}
	for _, d := range distributions {
		rows, err := r.distribution(ctx, d.field)
		if err != nil {
			return nil, err
		}
		*d.dest = rows
	}

	totals := []struct {
		field record.Field
		dest  *int
	}{
		{record.FieldTopic, &out.TotalTopic},
		{record.FieldCountry, &out.TotalCountry},
		{record.FieldRegion, &out.TotalRegion},
	}
	for _, t := range totals {
		n, err := r.distinctCount(ctx, t.field)
		if err != nil {
			return nil, err
		}
		*t.dest = n
	}

	return out, nil
}

func (r overviewReport) distribution(
	ctx context.Context,
	field record.Field,
) ([]map[string]any, error) {
	groups, err := r.repo.Aggregate(ctx, record.AggregateSpec{
		GroupBy:  []record.Field{field},
		Measures: []record.Measure{{Name: "count", Func: record.Count, Field: field}},
		OrderBy:  []record.Order{{Key: string(field)}},
	})
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]any, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, map[string]any{
			string(field): g.Key(field),
			"count":       g.Int("count"),
		})
	}
	return rows, nil
}

func (r overviewReport) distinctCount(ctx context.Context, field record.Field) (int, error) {
	groups, err := r.repo.Aggregate(ctx, record.AggregateSpec{
		Filter: record.NewFilter().NotBlank(field),
		Measures: []record.Measure{
			{Name: "total", Func: record.CountDistinct, Field: field},
		},
	})
	if err != nil {
		return 0, err
	}
	if len(groups) != 1 {
		return 0, fmt.Errorf("expected one summary row, got %d", len(groups))
	}
	return groups[0].Int("total"), nil
}

type intensityRow struct {
	Country      *string  `json:"country"`
	AvgIntensity *float64 `json:"avg_intensity"`
}

type intensityReport struct {
	repo          record.Repository
	recordsNumber int
}

func (r intensityReport) Run(ctx context.Context, params url.Values) core.Result {
	rows, total, err := r.page(ctx, params)
	if err != nil {
		return fetchFailed("intensity data", err)
	}
	return core.MessageWithTotal(
		http.StatusOK,
		"Successfully fetched intensity data!",
		rows,
		total,
	)
}

func (r intensityReport) page(
	ctx context.Context,
	params url.Values,
) ([]intensityRow, int, error) {
	filter := record.NewFilter().
		Exact(record.FieldEndYear, params.Get("end_year")).
		Contains(record.FieldCountry, params.Get("country")).
		Contains(record.FieldTopic, params.Get("topic")).
		Contains(record.FieldRegion, params.Get("region"))

	groups, err := r.repo.Aggregate(ctx, record.AggregateSpec{
		Filter:  filter,
		GroupBy: []record.Field{record.FieldCountry},
		Measures: []record.Measure{
			{Name: "avg_intensity", Func: record.Avg, Field: record.FieldIntensity},
		},
		OrderBy: []record.Order{
			{Key: "avg_intensity", Desc: true},
			{Key: string(record.FieldCountry)},
		},
	})
	if err != nil {
		return nil, 0, err
	}

	rows := make([]intensityRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, intensityRow{
			Country:      g.Key(record.FieldCountry),
			AvgIntensity: g.Float("avg_intensity"),
		})
	}

	pagination, err := core.ParsePagination(params, r.recordsNumber)
	if err != nil {
		return nil, 0, err
	}
	page, err := core.Paginate(rows, pagination)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return page, total, nil
}

type topicRow struct {
	Topic *string `json:"topic"`
	Count int     `json:"count"`
}

type topicDistribution struct {
	Message     string     `json:"message"`
	Data        []topicRow `json:"data"`
	TotalTopics int        `json:"total_topics"`
}

type topicReport struct {
	repo record.Repository
}

func (r topicReport) Run(ctx context.Context, params url.Values) core.Result {
	rows, err := r.rows(ctx, params)
	if err != nil {
		return fetchFailed("topic distribution data", err)
	}
	return core.Result{
		Status: http.StatusOK,
		Body: topicDistribution{
			Message:     "Successfully fetched topic distribution data!",
			Data:        rows,
			TotalTopics: len(rows),
		},
	}
}

func (r topicReport) rows(ctx context.Context, params url.Values) ([]topicRow, error) {
	filter := record.NewFilter().
		Contains(record.FieldSector, params.Get("sector")).
		Contains(record.FieldRegion, params.Get("region")).
		Contains(record.FieldCountry, params.Get("country")).
		Contains(record.FieldPestle, params.Get("pestle")).
		SWOT(params.Get("swot"))

	groups, err := r.repo.Aggregate(ctx, record.AggregateSpec{
		Filter:  filter,
		GroupBy: []record.Field{record.FieldTopic},
		Measures: []record.Measure{
			{Name: "count", Func: record.Count, Field: record.FieldTopic},
		},
		OrderBy: []record.Order{
			{Key: "count", Desc: true},
			{Key: string(record.FieldTopic)},
		},
	})
	if err != nil {
		return nil, err
	}

	rows := make([]topicRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, topicRow{Topic: g.Key(record.FieldTopic), Count: g.Int("count")})
	}
	return rows, nil
}

type trendRow struct {
	Year          int      `json:"year"`
	AvgIntensity  *float64 `json:"avg_intensity"`
	AvgLikelihood *float64 `json:"avg_likelihood"`
	AvgRelevance  *float64 `json:"avg_relevance"`
}

var errEmptyYear = errors.New("end_year is null")

type trendsReport struct {
	repo record.Repository
}

func (r trendsReport) Run(ctx context.Context, params url.Values) core.Result {
	rows, err := r.rows(ctx, params)
	if err != nil {
		return fetchFailed("trends data", err)
	}
	return core.Message(http.StatusOK, "Successfully fetched trends over years!", rows)
}

// rows fails on the first end_year that is not an integer rather than
// dropping it.
func (r trendsReport) rows(ctx context.Context, params url.Values) ([]trendRow, error) {
	filter := record.NewFilter().
		NotBlank(record.FieldEndYear).
		Contains(record.FieldCountry, params.Get("country")).
		Contains(record.FieldRegion, params.Get("region")).
		Contains(record.FieldSector, params.Get("sector")).
		Contains(record.FieldTopic, params.Get("topic"))

	groups, err := r.repo.Aggregate(ctx, record.AggregateSpec{
		Filter:  filter,
		GroupBy: []record.Field{record.FieldEndYear},
		Measures: []record.Measure{
			{Name: "avg_intensity", Func: record.Avg, Field: record.FieldIntensity},
			{Name: "avg_likelihood", Func: record.Avg, Field: record.FieldLikelihood},
			{Name: "avg_relevance", Func: record.Avg, Field: record.FieldRelevance},
		},
		OrderBy: []record.Order{{Key: string(record.FieldEndYear)}},
	})
	if err != nil {
		return nil, err
	}

	rows := make([]trendRow, 0, len(groups))
	for _, g := range groups {
		raw := g.Key(record.FieldEndYear)
		if raw == nil {
			return nil, errEmptyYear
		}

		year, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			return nil, fmt.Errorf("invalid literal for end_year: %q", *raw)
		}

		rows = append(rows, trendRow{
			Year:          year,
			AvgIntensity:  g.Float("avg_intensity"),
			AvgLikelihood: g.Float("avg_likelihood"),
			AvgRelevance:  g.Float("avg_relevance"),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return rows, nil
}

type worldMapRow struct {
	Country            *string  `json:"country"`
	TotalEvents        int      `json:"total_events"`
	AvgIntensity       *float64 `json:"avg_intensity"`
	AvgLikelihood      *float64 `json:"avg_likelihood"`
	MostCommonSector   int      `json:"most_common_sector"`
	MostCommonTopic    int      `json:"most_common_topic"`
	PestleDistribution int      `json:"pestle_distribution"`
}

type worldMapReport struct {
	repo          record.Repository
	recordsNumber int
}

func (r worldMapReport) Run(ctx context.Context, params url.Values) core.Result {
	rows, total, err := r.page(ctx, params)
	if err != nil {
		return fetchFailed("world map data", err)
	}
	return core.MessageWithTotal(
		http.StatusOK,
		"Successfully fetched world map data!",
		rows,
		total,
	)
}

// page reports most_common_sector, most_common_topic and pestle_distribution
// as the number of non-null values per country, not as modes.
func (r worldMapReport) page(
	ctx context.Context,
	params url.Values,
) ([]worldMapRow, int, error) {
	filter := record.NewFilter().
		NotBlank(record.FieldCountry).
		Contains(record.FieldRegion, params.Get("region")).
		Contains(record.FieldCountry, params.Get("country")).
		Contains(record.FieldSector, params.Get("sector")).
		Contains(record.FieldTopic, params.Get("topic")).
		Contains(record.FieldPestle, params.Get("pestle")).
		SWOT(params.Get("swot")).
		IntRange(record.FieldIntensity, params.Get("intensity_min"), params.Get("intensity_max")).
		IntRange(record.FieldLikelihood, params.Get("likelihood_min"), params.Get("likelihood_max"))

	groups, err := r.repo.Aggregate(ctx, record.AggregateSpec{
		Filter:  filter,
		GroupBy: []record.Field{record.FieldCountry},
		Measures: []record.Measure{
			{Name: "total_events", Func: record.Count, Field: record.FieldCountry},
			{Name: "avg_intensity", Func: record.Avg, Field: record.FieldIntensity},
			{Name: "avg_likelihood", Func: record.Avg, Field: record.FieldLikelihood},
			{Name: "most_common_sector", Func: record.Count, Field: record.FieldSector},
			{Name: "most_common_topic", Func: record.Count, Field: record.FieldTopic},
			{Name: "pestle_distribution", Func: record.Count, Field: record.FieldPestle},
		},
		OrderBy: []record.Order{
			{Key: "total_events", Desc: true},
			{Key: string(record.FieldCountry)},
		},
	})
	if err != nil {
		return nil, 0, err
	}

	rows := make([]worldMapRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, worldMapRow{
			Country:            g.Key(record.FieldCountry),
			TotalEvents:        g.Int("total_events"),
			AvgIntensity:       g.Float("avg_intensity"),
			AvgLikelihood:      g.Float("avg_likelihood"),
			MostCommonSector:   g.Int("most_common_sector"),
			MostCommonTopic:    g.Int("most_common_topic"),
			PestleDistribution: g.Int("pestle_distribution"),
		})
	}

	pagination, err := core.ParsePagination(params, r.recordsNumber)
	if err != nil {
		return nil, 0, err
	}
	page, err := core.Paginate(rows, pagination)
	if err != nil {
		return nil, 0, err
	}

	return page, len(rows), nil
}

type bubbleRow struct {
	Topic         *string  `json:"topic"`
	Sector        *string  `json:"sector"`
	Country       *string  `json:"country"`
	AvgIntensity  *float64 `json:"avg_intensity"`
	AvgRelevance  *float64 `json:"avg_relevance"`
	AvgLikelihood *float64 `json:"avg_likelihood"`
	EventCount    int      `json:"event_count"`
}

type bubbleReport struct {
	repo record.Repository
}

func (r bubbleReport) Run(ctx context.Context, params url.Values) core.Result {
	rows, err := r.rows(ctx, params)
	if err != nil {
		return fetchFailed("bubble chart data", err)
	}
	return core.Message(http.StatusOK, "Successfully fetched bubble chart data!", rows)
}

func (r bubbleReport) rows(ctx context.Context, params url.Values) ([]bubbleRow, error) {
	filter := record.NewFilter().
		NotNull(record.FieldIntensity).
		NotNull(record.FieldRelevance).
		Contains(record.FieldTopic, params.Get("topic")).
		Contains(record.FieldSector, params.Get("sector")).
		Contains(record.FieldRegion, params.Get("region")).
		IntRange(record.FieldRelevance, params.Get("relevance_min"), params.Get("relevance_max")).
		IntRange(record.FieldIntensity, params.Get("intensity_min"), params.Get("intensity_max"))

	groups, err := r.repo.Aggregate(ctx, record.AggregateSpec{
		Filter:  filter,
		GroupBy: []record.Field{record.FieldTopic, record.FieldSector, record.FieldCountry},
		Measures: []record.Measure{
			{Name: "avg_intensity", Func: record.Avg, Field: record.FieldIntensity},
			{Name: "avg_relevance", Func: record.Avg, Field: record.FieldRelevance},
			{Name: "avg_likelihood", Func: record.Avg, Field: record.FieldLikelihood},
			{Name: "event_count", Func: record.CountRows},
		},
		OrderBy: []record.Order{
			{Key: "event_count", Desc: true},
			{Key: string(record.FieldTopic)},
			{Key: string(record.FieldSector)},
			{Key: string(record.FieldCountry)},
		},
	})
	if err != nil {
		return nil, err
	}

	rows := make([]bubbleRow, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, bubbleRow{
			Topic:         g.Key(record.FieldTopic),
			Sector:        g.Key(record.FieldSector),
			Country:       g.Key(record.FieldCountry),
			AvgIntensity:  g.Float("avg_intensity"),
			AvgRelevance:  g.Float("avg_relevance"),
			AvgLikelihood: g.Float("avg_likelihood"),
			EventCount:    g.Int("event_count"),
		})
	}
	return rows, nil
}
