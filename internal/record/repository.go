// AngelaMos | 2026
// repository.go

package record

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

type Repository interface {
	// CreateBatch inserts every record or none of them.
	CreateBatch(ctx context.Context, records []Record) ([]Record, error)
	List(ctx context.Context, filter *Filter, limit, offset int) ([]Record, error)
	Count(ctx context.Context, filter *Filter) (int, error)
	Aggregate(ctx context.Context, spec AggregateSpec) ([]Group, error)
}

const (
	recordColumns = `id, end_year, intensity, sector, topic, insight, url, region,
		start_year, impact, added, published, country, relevance, pestle, source,
		title, likelihood, date_created, date_updated`

	insertRecordsQuery = `
		INSERT INTO records (
			end_year, intensity, sector, topic, insight, url, region,
			start_year, impact, added, published, country, relevance, pestle,
			source, title, likelihood
		) VALUES (
			:end_year, :intensity, :sector, :topic, :insight, :url, :region,
			:start_year, :impact, :added, :published, :country, :relevance, :pestle,
			:source, :title, :likelihood
		)
		RETURNING ` + recordColumns

	// 17 bound columns per row keeps a chunk well under the 65535
	// parameter limit of the Postgres wire protocol.
	insertChunkSize = 1000
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBatch(
	ctx context.Context,
	records []Record,
) ([]Record, error) {
	if len(records) == 0 {
		return []Record{}, nil
	}

	created := make([]Record, 0, len(records))

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for start := 0; start < len(records); start += insertChunkSize {
			end := min(start+insertChunkSize, len(records))

			chunk, err := insertChunk(ctx, tx, records[start:end])
			if err != nil {
				return err
			}
			created = append(created, chunk...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create records: %w", err)
	}

	return created, nil
}

func insertChunk(
	ctx context.Context,
	tx *sqlx.Tx,
	records []Record,
) ([]Record, error) {
	rows, err := sqlx.NamedQueryContext(ctx, tx, insertRecordsQuery, records)
	if err != nil {
		return nil, fmt.Errorf("insert records: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	out := make([]Record, 0, len(records))
	for rows.Next() {
		var rec Record
		if err := rows.StructScan(&rec); err != nil {
			return nil, fmt.Errorf("scan inserted record: %w", err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("insert records: %w", err)
	}

	return out, nil
}

func (r *repository) List(
	ctx context.Context,
	filter *Filter,
	limit, offset int,
) ([]Record, error) {
	if filter != nil && filter.Err() != nil {
		return nil, filter.Err()
	}

	where, args := filter.Where()
	query := fmt.Sprintf(`
		SELECT %s
		FROM records
		%s
		ORDER BY id
		LIMIT ? OFFSET ?`, recordColumns, where)

	args = append(args, limit, offset)

	records := []Record{}
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return records, nil
}

func (r *repository) Count(ctx context.Context, filter *Filter) (int, error) {
	if filter != nil && filter.Err() != nil {
		return 0, filter.Err()
	}

	where, args := filter.Where()
	query := fmt.Sprintf("SELECT COUNT(*) FROM records %s", where)

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}

	return total, nil
}

func (r *repository) Aggregate(
	ctx context.Context,
	spec AggregateSpec,
) ([]Group, error) {
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("aggregate records: %w", err)
	}

	query, args := buildAggregateQuery(spec)

	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate records: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	groups := []Group{}
	for rows.Next() {
		cols, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan aggregate: %w", err)
		}

		g, err := groupFromColumns(spec, cols)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("aggregate records: %w", err)
	}

	return groups, nil
}

func buildAggregateQuery(spec AggregateSpec) (string, []any) {
	selects := make([]string, 0, len(spec.GroupBy)+len(spec.Measures))
	groupCols := make([]string, 0, len(spec.GroupBy))

	for _, field := range spec.GroupBy {
		selects = append(selects, string(field))
		groupCols = append(groupCols, string(field))
	}

	for _, m := range spec.Measures {
		selects = append(selects, fmt.Sprintf("%s AS %q", measureSQL(m), m.Name))
	}

	where, args := spec.Filter.Where()

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM records", strings.Join(selects, ", "))
	if where != "" {
		b.WriteString(" " + where)
	}
	if len(groupCols) > 0 {
		fmt.Fprintf(&b, " GROUP BY %s", strings.Join(groupCols, ", "))
	}

	if len(spec.OrderBy) > 0 {
		orders := make([]string, 0, len(spec.OrderBy))
		for _, o := range spec.OrderBy {
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			orders = append(orders, fmt.Sprintf("%q %s NULLS LAST", o.Key, dir))
		}
		fmt.Fprintf(&b, " ORDER BY %s", strings.Join(orders, ", "))
	}

	return b.String(), args
}

func measureSQL(m Measure) string {
	switch m.Func {
	case Avg:
		return fmt.Sprintf("AVG(%s)::float8", m.Field)
	case Count:
		return fmt.Sprintf("COUNT(%s)", m.Field)
	case CountDistinct:
		return fmt.Sprintf("COUNT(DISTINCT %s)", m.Field)
	case Min:
		return fmt.Sprintf("MIN(%s)", m.Field)
	case Max:
		return fmt.Sprintf("MAX(%s)", m.Field)
	default:
		return "COUNT(*)"
	}
}

func groupFromColumns(spec AggregateSpec, cols []any) (Group, error) {
	if len(cols) != len(spec.GroupBy)+len(spec.Measures) {
		return Group{}, fmt.Errorf(
			"aggregate returned %d columns, want %d",
			len(cols),
			len(spec.GroupBy)+len(spec.Measures),
		)
	}

	g := newGroup()
	for i, field := range spec.GroupBy {
		g.Keys[field] = scanText(cols[i])
	}

	for i, m := range spec.Measures {
		raw := cols[len(spec.GroupBy)+i]

		switch {
		case m.Func == Avg:
			g.values[m.Name] = scanFloat(raw)
		case m.Func == Min || m.Func == Max:
			if m.Field.kind() == kindText {
				g.values[m.Name] = scanText(raw)
			} else {
				g.values[m.Name] = scanInt(raw)
			}
		default:
			n := scanInt(raw)
			if n == nil {
				g.values[m.Name] = 0
			} else {
				g.values[m.Name] = *n
			}
		}
	}

	return g, nil
}

func scanText(v any) *string {
	switch t := v.(type) {
	case string:
		return &t
	case []byte:
		s := string(t)
		return &s
	}
	return nil
}

func scanFloat(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case float32:
		f := float64(t)
		return &f
	case int64:
		f := float64(t)
		return &f
	}
	return nil
}

func scanInt(v any) *int {
	switch t := v.(type) {
	case int64:
		n := int(t)
		return &n
	case int32:
		n := int(t)
		return &n
	case int:
		return &t
	}
	return nil
}
