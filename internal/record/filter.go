// AngelaMos | 2026
// filter.go

package record

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

const dateParamLayout = "2006-01-02"

type condition struct {
	sql   string
	args  []any
	match func(r *Record) bool
}

// Filter is a conjunction of conditions over records. Each condition renders
// as SQL with ? placeholders and as an in-memory predicate; both renderings
// select the same rows. Empty parameter values add no condition.
type Filter struct {
	conds []condition
	err   error
}

func NewFilter() *Filter {
	return &Filter{}
}

func (f *Filter) Err() error {
	return f.err
}

func (f *Filter) fail(err error) *Filter {
	if f.err == nil {
		f.err = err
	}
	return f
}

func (f *Filter) add(c condition) *Filter {
	f.conds = append(f.conds, c)
	return f
}

func (f *Filter) requireKind(field Field, kind fieldKind) bool {
	if !field.valid() || field.kind() != kind {
		f.fail(fmt.Errorf("field %q does not support this lookup: %w", field, core.ErrInvalidInput))
		return false
	}
	return true
}

func (f *Filter) Contains(field Field, value string) *Filter {
	if value == "" || !f.requireKind(field, kindText) {
		return f
	}

	needle := strings.ToLower(value)
	return f.add(condition{
		sql:  fmt.Sprintf("%s ILIKE ?", field),
		args: []any{"%" + escapeLike(value) + "%"},
		match: func(r *Record) bool {
			v := r.text(field)
			return v != nil && strings.Contains(strings.ToLower(*v), needle)
		},
	})
}

func (f *Filter) Exact(field Field, value string) *Filter {
	if value == "" || !f.requireKind(field, kindText) {
		return f
	}

	return f.add(condition{
		sql:  fmt.Sprintf("%s = ?", field),
		args: []any{value},
		match: func(r *Record) bool {
			v := r.text(field)
			return v != nil && *v == value
		},
	})
}

func (f *Filter) IntRange(field Field, lower, upper string) *Filter {
	if !f.requireKind(field, kindInt) {
		return f
	}

	for _, bound := range []struct {
		raw string
		op  string
	}{{lower, ">="}, {upper, "<="}} {
		if bound.raw == "" {
			continue
		}

		n, err := strconv.Atoi(strings.TrimSpace(bound.raw))
		if err != nil {
			return f.fail(fmt.Errorf(
				"%s: %q is not a valid number: %w",
				field,
				bound.raw,
				core.ErrInvalidInput,
			))
		}

		op := bound.op
		f.add(condition{
			sql:  fmt.Sprintf("%s %s ?", field, op),
			args: []any{n},
			match: func(r *Record) bool {
				v := r.integer(field)
				if v == nil {
					return false
				}
				if op == ">=" {
					return *v >= n
				}
				return *v <= n
			},
		})
	}

	return f
}

func (f *Filter) DateRange(field Field, after, before string) *Filter {
	if !f.requireKind(field, kindTime) {
		return f
	}

	if after != "" {
		from, err := time.Parse(dateParamLayout, after)
		if err != nil {
			return f.fail(fmt.Errorf("%s_after: enter a valid date: %w", field, core.ErrInvalidInput))
		}
		f.add(condition{
			sql:  fmt.Sprintf("%s >= ?", field),
			args: []any{from},
			match: func(r *Record) bool {
				v := r.timestamp(field)
				return v != nil && !v.Before(from)
			},
		})
	}

	if before != "" {
		to, err := time.Parse(dateParamLayout, before)
		if err != nil {
			return f.fail(fmt.Errorf("%s_before: enter a valid date: %w", field, core.ErrInvalidInput))
		}
		until := to.AddDate(0, 0, 1)
		f.add(condition{
			sql:  fmt.Sprintf("%s < ?", field),
			args: []any{until},
			match: func(r *Record) bool {
				v := r.timestamp(field)
				return v != nil && v.Before(until)
			},
		})
	}

	return f
}

// TextRange bounds a text field lexically. It exists for impact, which is
// stored as text.
func (f *Filter) TextRange(field Field, lower, upper string) *Filter {
	if !f.requireKind(field, kindText) {
		return f
	}

	if lower != "" {
		f.add(condition{
			sql:  fmt.Sprintf("%s >= ?", field),
			args: []any{lower},
			match: func(r *Record) bool {
				v := r.text(field)
				return v != nil && *v >= lower
			},
		})
	}

	if upper != "" {
		f.add(condition{
			sql:  fmt.Sprintf("%s <= ?", field),
			args: []any{upper},
			match: func(r *Record) bool {
				v := r.text(field)
				return v != nil && *v <= upper
			},
		})
	}

	return f
}

func (f *Filter) SWOT(value string) *Filter {
	mapped, ok := SWOTMapping[strings.ToLower(value)]
	if !ok {
		return f
	}
	return f.Contains(FieldPestle, mapped)
}

func (f *Filter) TitleInsight(value string) *Filter {
	if value == "" {
		return f
	}

	needle := strings.ToLower(value)
	pattern := "%" + escapeLike(value) + "%"
	return f.add(condition{
		sql:  "(title ILIKE ? OR insight ILIKE ?)",
		args: []any{pattern, pattern},
		match: func(r *Record) bool {
			for _, v := range []*string{r.Title, r.Insight} {
				if v != nil && strings.Contains(strings.ToLower(*v), needle) {
					return true
				}
			}
			return false
		},
	})
}

func (f *Filter) NotBlank(field Field) *Filter {
	if !f.requireKind(field, kindText) {
		return f
	}

	return f.add(condition{
		sql: fmt.Sprintf("(%s IS NOT NULL AND %s <> '')", field, field),
		match: func(r *Record) bool {
			v := r.text(field)
			return v != nil && *v != ""
		},
	})
}

func (f *Filter) NotNull(field Field) *Filter {
	if !field.valid() {
		return f.fail(fmt.Errorf("unknown field %q: %w", field, core.ErrInvalidInput))
	}

	return f.add(condition{
		sql: fmt.Sprintf("%s IS NOT NULL", field),
		match: func(r *Record) bool {
			return !r.isNull(field)
		},
	})
}

func (f *Filter) Where() (string, []any) {
	if f == nil || len(f.conds) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(f.conds))
	var args []any
	for _, c := range f.conds {
		parts = append(parts, c.sql)
		args = append(args, c.args...)
	}

	return "WHERE " + strings.Join(parts, " AND "), args
}

func (f *Filter) Match(r *Record) bool {
	if f == nil {
		return true
	}
	for _, c := range f.conds {
		if !c.match(r) {
			return false
		}
	}
	return true
}

func FilterFromQuery(values url.Values) *Filter {
	f := NewFilter()

	f.DateRange(FieldAdded, values.Get("added_after"), values.Get("added_before"))
	f.DateRange(FieldPublished, values.Get("published_after"), values.Get("published_before"))

	f.Exact(FieldStartYear, values.Get("start_year"))
	f.Exact(FieldEndYear, values.Get("end_year"))

	for _, field := range []Field{FieldIntensity, FieldRelevance, FieldLikelihood} {
		name := string(field)
		f.IntRange(field, values.Get(name+"_min"), values.Get(name+"_max"))
	}
	f.TextRange(FieldImpact, values.Get("impact_min"), values.Get("impact_max"))

	for _, field := range []Field{
		FieldSector,
		FieldTopic,
		FieldRegion,
		FieldCountry,
		FieldPestle,
		FieldSource,
	} {
		f.Contains(field, values.Get(string(field)))
	}

	f.SWOT(values.Get("swot"))
	f.TitleInsight(values.Get("title_insight"))

	return f
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
