// AngelaMos | 2026
// repository_test.go

package record

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/insight-dashboard/internal/testutil"
)

func TestPostgresRepository(t *testing.T) {
	db := testutil.GetTestDB(t)
	testutil.Truncate(t, db, "records")

	ctx := context.Background()
	repo := NewRepository(db)

	added := time.Date(2016, 9, 23, 0, 0, 0, 0, time.UTC)
	created, err := repo.CreateBatch(ctx, []Record{
		{Country: strp("USA"), Intensity: intp(10), Topic: strp("oil"), Added: &added},
		{Country: strp("USA"), Intensity: intp(20), Topic: strp("gas")},
		{Country: strp("India"), Intensity: intp(30), Topic: strp("oil"), Pestle: strp("Economic")},
		{Country: strp("Peru")},
	})
	require.NoError(t, err)
	require.Len(t, created, 4)
	assert.NotZero(t, created[0].ID)
	assert.False(t, created[0].DateCreated.IsZero())
	require.NotNil(t, created[0].Added)
	assert.True(t, created[0].Added.Equal(added))

	t.Run("list and count share the filter", func(t *testing.T) {
		filter := NewFilter().Contains(FieldCountry, "us")

		total, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, 2, total)

		page, err := repo.List(ctx, filter, 1, 1)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, created[1].ID, page[0].ID)
	})

	t.Run("aggregate matches the in-memory store", func(t *testing.T) {
		memory := seededRepository(t, created...)

		spec := AggregateSpec{
			Filter:  NewFilter().NotBlank(FieldCountry),
			GroupBy: []Field{FieldCountry},
			Measures: []Measure{
				{Name: "avg_intensity", Func: Avg, Field: FieldIntensity},
				{Name: "total_events", Func: Count, Field: FieldCountry},
				{Name: "topics", Func: CountDistinct, Field: FieldTopic},
				{Name: "max_intensity", Func: Max, Field: FieldIntensity},
			},
			OrderBy: []Order{{Key: "avg_intensity", Desc: true}},
		}

		fromDB, err := repo.Aggregate(ctx, spec)
		require.NoError(t, err)
		fromMemory, err := memory.Aggregate(ctx, spec)
		require.NoError(t, err)

		require.Len(t, fromDB, len(fromMemory))
		for i := range fromDB {
			assert.Equal(t, fromMemory[i].Key(FieldCountry), fromDB[i].Key(FieldCountry))
			assert.Equal(t, fromMemory[i].Float("avg_intensity"), fromDB[i].Float("avg_intensity"))
			assert.Equal(t, fromMemory[i].Int("total_events"), fromDB[i].Int("total_events"))
			assert.Equal(t, fromMemory[i].Int("topics"), fromDB[i].Int("topics"))
			assert.Equal(t, fromMemory[i].IntOrNil("max_intensity"), fromDB[i].IntOrNil("max_intensity"))
		}
	})

	t.Run("failed batch stores nothing", func(t *testing.T) {
		before, err := repo.Count(ctx, nil)
		require.NoError(t, err)

		_, err = repo.CreateBatch(ctx, []Record{
			{Country: strp("Chile")},
			{Country: strp("a country name longer than one hundred characters " +
				"is rejected by the varchar limit of the column definition itself")},
		})
		require.Error(t, err)

		after, err := repo.Count(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}
