// AngelaMos | 2026
// filter_test.go

package record

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

func strp(s string) *string { return &s }

func intp(n int) *int { return &n }

func timep(t time.Time) *time.Time { return &t }

func TestFilterWhere(t *testing.T) {
	tests := []struct {
		name      string
		build     func(f *Filter) *Filter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "empty filter",
			build:     func(f *Filter) *Filter { return f },
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name: "empty values add nothing",
			build: func(f *Filter) *Filter {
				return f.Contains(FieldCountry, "").Exact(FieldEndYear, "").IntRange(FieldIntensity, "", "")
			},
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name: "conditions are joined with AND",
			build: func(f *Filter) *Filter {
				return f.Contains(FieldCountry, "ind").
					Exact(FieldEndYear, "2020").
					IntRange(FieldIntensity, "5", "")
			},
			wantWhere: "WHERE country ILIKE ? AND end_year = ? AND intensity >= ?",
			wantArgs:  []any{"%ind%", "2020", 5},
		},
		{
			name:      "swot maps to pestle",
			build:     func(f *Filter) *Filter { return f.SWOT("Strength") },
			wantWhere: "WHERE pestle ILIKE ?",
			wantArgs:  []any{"%Economic%"},
		},
		{
			name:      "unmapped swot is ignored",
			build:     func(f *Filter) *Filter { return f.SWOT("chance") },
			wantWhere: "",
			wantArgs:  nil,
		},
		{
			name:      "title or insight",
			build:     func(f *Filter) *Filter { return f.TitleInsight("oil") },
			wantWhere: "WHERE (title ILIKE ? OR insight ILIKE ?)",
			wantArgs:  []any{"%oil%", "%oil%"},
		},
		{
			name:      "like wildcards are escaped",
			build:     func(f *Filter) *Filter { return f.Contains(FieldTopic, "50%_off") },
			wantWhere: "WHERE topic ILIKE ?",
			wantArgs:  []any{`%50\%\_off%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.build(NewFilter())
			require.NoError(t, f.Err())

			where, args := f.Where()
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func(f *Filter) *Filter
	}{
		{
			name:  "non numeric bound",
			build: func(f *Filter) *Filter { return f.IntRange(FieldIntensity, "high", "") },
		},
		{
			name:  "bad date",
			build: func(f *Filter) *Filter { return f.DateRange(FieldAdded, "23/09/2016", "") },
		},
		{
			name:  "substring on integer field",
			build: func(f *Filter) *Filter { return f.Contains(FieldIntensity, "1") },
		},
		{
			name:  "unknown field",
			build: func(f *Filter) *Filter { return f.NotNull(Field("city")) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.build(NewFilter())
			assert.ErrorIs(t, f.Err(), core.ErrInvalidInput)
		})
	}
}

func sampleRecords() []Record {
	return []Record{
		{
			ID:        1,
			Country:   strp("United States of America"),
			Pestle:    strp("Economic"),
			Intensity: intp(6),
			Title:     strp("Oil prices rise"),
			Added:     timep(time.Date(2016, 9, 23, 10, 0, 0, 0, time.UTC)),
		},
		{
			ID:        2,
			Country:   strp("India"),
			Pestle:    strp("Political"),
			Intensity: intp(16),
			Insight:   strp("oil demand"),
			Added:     timep(time.Date(2016, 9, 24, 0, 0, 0, 0, time.UTC)),
		},
		{
			ID:      3,
			Country: strp("india"),
			Pestle:  strp("Socio-Economic"),
			EndYear: strp("2020"),
		},
		{
			ID: 4,
		},
	}
}

func matchedIDs(f *Filter, records []Record) []int64 {
	ids := []int64{}
	for i := range records {
		if f.Match(&records[i]) {
			ids = append(ids, records[i].ID)
		}
	}
	return ids
}

func TestFilterMatch(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name  string
		build func(f *Filter) *Filter
		want  []int64
	}{
		{
			name:  "no conditions matches everything",
			build: func(f *Filter) *Filter { return f },
			want:  []int64{1, 2, 3, 4},
		},
		{
			name:  "contains is case insensitive",
			build: func(f *Filter) *Filter { return f.Contains(FieldCountry, "INDIA") },
			want:  []int64{2, 3},
		},
		{
			name:  "exact is case sensitive",
			build: func(f *Filter) *Filter { return f.Exact(FieldCountry, "india") },
			want:  []int64{3},
		},
		{
			name:  "swot strength is a pestle substring",
			build: func(f *Filter) *Filter { return f.SWOT("STRENGTH") },
			want:  []int64{1, 3},
		},
		{
			name:  "integer range excludes nulls",
			build: func(f *Filter) *Filter { return f.IntRange(FieldIntensity, "5", "10") },
			want:  []int64{1},
		},
		{
			name:  "date range is inclusive by day",
			build: func(f *Filter) *Filter { return f.DateRange(FieldAdded, "2016-09-23", "2016-09-23") },
			want:  []int64{1},
		},
		{
			name:  "title or insight",
			build: func(f *Filter) *Filter { return f.TitleInsight("OIL") },
			want:  []int64{1, 2},
		},
		{
			name:  "not blank",
			build: func(f *Filter) *Filter { return f.NotBlank(FieldEndYear) },
			want:  []int64{3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.build(NewFilter())
			require.NoError(t, f.Err())
			assert.Equal(t, tt.want, matchedIDs(f, records))
		})
	}
}

func TestFilterConjunctionIsOrderIndependent(t *testing.T) {
	records := sampleRecords()

	steps := []func(f *Filter) *Filter{
		func(f *Filter) *Filter { return f.Contains(FieldCountry, "india") },
		func(f *Filter) *Filter { return f.SWOT("threat") },
		func(f *Filter) *Filter { return f.IntRange(FieldIntensity, "10", "") },
	}

	forward := NewFilter()
	for _, step := range steps {
		forward = step(forward)
	}

	backward := NewFilter()
	for i := len(steps) - 1; i >= 0; i-- {
		backward = steps[i](backward)
	}

	want := records[:0:0]
	for i := range records {
		all := true
		for _, step := range steps {
			if !step(NewFilter()).Match(&records[i]) {
				all = false
			}
		}
		if all {
			want = append(want, records[i])
		}
	}

	require.Len(t, want, 1)
	assert.Equal(t, []int64{want[0].ID}, matchedIDs(forward, records))
	assert.Equal(t, matchedIDs(forward, records), matchedIDs(backward, records))
}

func TestFilterFromQuery(t *testing.T) {
	records := sampleRecords()

	t.Run("combines parameters", func(t *testing.T) {
		q := url.Values{
			"country":       {"india"},
			"swot":          {"weakness"},
			"intensity_max": {"20"},
			"ignored":       {"value"},
		}
		f := FilterFromQuery(q)
		require.NoError(t, f.Err())
		assert.Len(t, f.conds, 3)
		assert.Empty(t, matchedIDs(f, records))
	})

	t.Run("unmapped swot alone returns everything", func(t *testing.T) {
		f := FilterFromQuery(url.Values{"swot": {"nothing"}})
		require.NoError(t, f.Err())
		assert.Equal(t, []int64{1, 2, 3, 4}, matchedIDs(f, records))
	})

	t.Run("reports invalid numbers", func(t *testing.T) {
		f := FilterFromQuery(url.Values{"likelihood_min": {"x"}})
		assert.ErrorIs(t, f.Err(), core.ErrInvalidInput)
	})
}

func TestNilFilter(t *testing.T) {
	var f *Filter

	where, args := f.Where()
	assert.Empty(t, where)
	assert.Nil(t, args)
	assert.True(t, f.Match(&Record{}))
}
