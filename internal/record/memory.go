// AngelaMos | 2026
// memory.go

package record

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryRepository keeps records in process memory. It evaluates filters
// through their in-memory predicates and is used for local runs without
// Postgres and in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []Record
	nextID  int64
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (m *MemoryRepository) CreateBatch(
	_ context.Context,
	records []Record,
) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	created := make([]Record, 0, len(records))
	for _, rec := range records {
		rec.ID = m.nextID
		rec.DateCreated = now
		rec.DateUpdated = now
		m.nextID++
		created = append(created, rec)
	}

	m.records = append(m.records, created...)
	return created, nil
}

func (m *MemoryRepository) List(
	_ context.Context,
	filter *Filter,
	limit, offset int,
) ([]Record, error) {
	if filter != nil && filter.Err() != nil {
		return nil, filter.Err()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Record{}
	skipped := 0
	for i := range m.records {
		if !filter.Match(&m.records[i]) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, m.records[i])
	}

	return out, nil
}

func (m *MemoryRepository) Count(_ context.Context, filter *Filter) (int, error) {
	if filter != nil && filter.Err() != nil {
		return 0, filter.Err()
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for i := range m.records {
		if filter.Match(&m.records[i]) {
			total++
		}
	}
	return total, nil
}

type accumulator struct {
	sum      float64
	n        int
	rows     int
	distinct map[string]struct{}
	minInt   *int
	maxInt   *int
	minText  *string
	maxText  *string
}

type bucket struct {
	keys map[Field]*string
	accs []*accumulator
}

func (m *MemoryRepository) Aggregate(
	_ context.Context,
	spec AggregateSpec,
) ([]Group, error) {
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("aggregate records: %w", err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	index := map[string]*bucket{}
	var order []*bucket

	newBucket := func(rec *Record) *bucket {
		b := &bucket{
			keys: make(map[Field]*string, len(spec.GroupBy)),
			accs: make([]*accumulator, len(spec.Measures)),
		}
		for i := range b.accs {
			b.accs[i] = &accumulator{distinct: map[string]struct{}{}}
		}
		if rec != nil {
			for _, field := range spec.GroupBy {
				b.keys[field] = rec.text(field)
			}
		}
		return b
	}

	if len(spec.GroupBy) == 0 {
		b := newBucket(nil)
		index[""] = b
		order = append(order, b)
	}

	for i := range m.records {
		rec := &m.records[i]
		if !spec.Filter.Match(rec) {
			continue
		}

		key := groupKey(rec, spec.GroupBy)
		b, ok := index[key]
		if !ok {
			b = newBucket(rec)
			index[key] = b
			order = append(order, b)
		}

		for j, measure := range spec.Measures {
			b.accs[j].observe(rec, measure)
		}
	}

	groups := make([]Group, 0, len(order))
	for _, b := range order {
		g := newGroup()
		for field, v := range b.keys {
			g.Keys[field] = v
		}
		for j, measure := range spec.Measures {
			g.values[measure.Name] = b.accs[j].result(measure)
		}
		groups = append(groups, g)
	}

	sortGroups(groups, spec.OrderBy)
	return groups, nil
}

func groupKey(rec *Record, fields []Field) string {
	parts := make([]string, len(fields))
	for i, field := range fields {
		if v := rec.text(field); v != nil {
			parts[i] = "v" + *v
		} else {
			parts[i] = "n"
		}
	}
	return strings.Join(parts, "\x1f")
}

func (a *accumulator) observe(rec *Record, m Measure) {
	a.rows++
	if m.Func == CountRows || rec.isNull(m.Field) {
		return
	}
	a.n++

	switch m.Field.kind() {
	case kindInt:
		v := *rec.integer(m.Field)
		a.sum += float64(v)
		a.distinct[fmt.Sprint(v)] = struct{}{}
		if a.minInt == nil || v < *a.minInt {
			a.minInt = &v
		}
		if a.maxInt == nil || v > *a.maxInt {
			a.maxInt = &v
		}
	case kindText:
		v := *rec.text(m.Field)
		a.distinct[v] = struct{}{}
		if a.minText == nil || v < *a.minText {
			a.minText = &v
		}
		if a.maxText == nil || v > *a.maxText {
			a.maxText = &v
		}
	case kindTime:
		a.distinct[rec.timestamp(m.Field).String()] = struct{}{}
	}
}

func (a *accumulator) result(m Measure) any {
	switch m.Func {
	case Avg:
		if a.n == 0 {
			return (*float64)(nil)
		}
		avg := a.sum / float64(a.n)
		return &avg
	case Count:
		return a.n
	case CountRows:
		return a.rows
	case CountDistinct:
		return len(a.distinct)
	case Min:
		if m.Field.kind() == kindText {
			return a.minText
		}
		return a.minInt
	case Max:
		if m.Field.kind() == kindText {
			return a.maxText
		}
		return a.maxInt
	}
	return nil
}

func sortGroups(groups []Group, orders []Order) {
	if len(orders) == 0 {
		return
	}

	sort.SliceStable(groups, func(i, j int) bool {
		for _, o := range orders {
			vi, okI := groups[i].sortValue(o.Key)
			vj, okJ := groups[j].sortValue(o.Key)

			switch {
			case !okI && !okJ:
				continue
			case !okI:
				return false
			case !okJ:
				return true
			}

			c := compareValues(vi, vj)
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	}
	return 0
}

var _ Repository = (*MemoryRepository)(nil)
