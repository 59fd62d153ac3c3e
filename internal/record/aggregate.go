// AngelaMos | 2026
// aggregate.go

package record

import (
	"fmt"
	"regexp"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

type AggFunc int

// Count and CountDistinct skip nulls; CountRows does not.
const (
	Avg AggFunc = iota
	Count
	CountRows
	CountDistinct
	Min
	Max
)

func (a AggFunc) String() string {
	switch a {
	case Avg:
		return "avg"
	case Count:
		return "count"
	case CountRows:
		return "count_rows"
	case CountDistinct:
		return "count_distinct"
	case Min:
		return "min"
	case Max:
		return "max"
	default:
		return fmt.Sprintf("AggFunc(%d)", int(a))
	}
}

type Measure struct {
	Name  string
	Func  AggFunc
	Field Field
}

// Order sorts groups by a measure name or a group-by field name. Nulls sort
// last in both directions.
type Order struct {
	Key  string
	Desc bool
}

// AggregateSpec describes one grouped summary of the records matching
// Filter. Without GroupBy the result is a single group over all matches.
type AggregateSpec struct {
	Filter   *Filter
	GroupBy  []Field
	Measures []Measure
	OrderBy  []Order
}

var measureName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func (s AggregateSpec) validate() error {
	if s.Filter != nil && s.Filter.Err() != nil {
		return s.Filter.Err()
	}

	keys := make(map[string]struct{}, len(s.GroupBy)+len(s.Measures))

	for _, field := range s.GroupBy {
		if !field.valid() || field.kind() != kindText {
			return fmt.Errorf("cannot group by %q: %w", field, core.ErrInvalidInput)
		}
		keys[string(field)] = struct{}{}
	}

	for _, m := range s.Measures {
		if !measureName.MatchString(m.Name) {
			return fmt.Errorf("invalid measure name %q: %w", m.Name, core.ErrInvalidInput)
		}
		if m.Func != CountRows && !m.Field.valid() {
			return fmt.Errorf("measure %s: unknown field %q: %w", m.Name, m.Field, core.ErrInvalidInput)
		}
		if m.Func == Avg && m.Field.kind() != kindInt {
			return fmt.Errorf("measure %s: cannot average %q: %w", m.Name, m.Field, core.ErrInvalidInput)
		}
		if (m.Func == Min || m.Func == Max) && m.Field.kind() == kindTime {
			return fmt.Errorf("measure %s: unsupported field %q: %w", m.Name, m.Field, core.ErrInvalidInput)
		}
		if _, dup := keys[m.Name]; dup {
			return fmt.Errorf("duplicate key %q: %w", m.Name, core.ErrInvalidInput)
		}
		keys[m.Name] = struct{}{}
	}

	for _, o := range s.OrderBy {
		if _, ok := keys[o.Key]; !ok {
			return fmt.Errorf("cannot order by %q: %w", o.Key, core.ErrInvalidInput)
		}
	}

	return nil
}

type Group struct {
	Keys   map[Field]*string
	values map[string]any
}

func newGroup() Group {
	return Group{Keys: map[Field]*string{}, values: map[string]any{}}
}

func (g Group) Key(f Field) *string {
	return g.Keys[f]
}

func (g Group) Float(name string) *float64 {
	if v, ok := g.values[name].(*float64); ok {
		return v
	}
	return nil
}

func (g Group) Int(name string) int {
	if v, ok := g.values[name].(int); ok {
		return v
	}
	return 0
}

func (g Group) IntOrNil(name string) *int {
	if v, ok := g.values[name].(*int); ok {
		return v
	}
	return nil
}

func (g Group) Text(name string) *string {
	if v, ok := g.values[name].(*string); ok {
		return v
	}
	return nil
}

func (g Group) sortValue(key string) (any, bool) {
	if v, ok := g.Keys[Field(key)]; ok {
		if v == nil {
			return nil, false
		}
		return *v, true
	}

	switch v := g.values[key].(type) {
	case int:
		return float64(v), true
	case *float64:
		if v == nil {
			return nil, false
		}
		return *v, true
	case *int:
		if v == nil {
			return nil, false
		}
		return float64(*v), true
	case *string:
		if v == nil {
			return nil, false
		}
		return *v, true
	}

	return nil, false
}
