// AngelaMos | 2026
// service.go

package record

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
)

const tracerName = "github.com/carterperez-dev/insight-dashboard/internal/record"

type Service struct {
	repo          Repository
	decoder       *Decoder
	recordsNumber int
}

func NewService(repo Repository, decoder *Decoder, recordsNumber int) *Service {
	if recordsNumber < 1 {
		recordsNumber = core.DefaultRecordsNumber
	}
	return &Service{
		repo:          repo,
		decoder:       decoder,
		recordsNumber: recordsNumber,
	}
}

// Ingest decodes an uploaded file and stores every record in it, or none.
func (s *Service) Ingest(ctx context.Context, data []byte) ([]Record, error) {
	ctx, span := core.StartSpan(ctx, tracerName, "record.ingest",
		attribute.Int("upload.bytes", len(data)),
	)
	defer span.End()

	records, err := s.decoder.Decode(data)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	created, err := s.repo.CreateBatch(ctx, records)
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, fmt.Errorf("ingest: %w", err)
	}

	span.SetAttributes(attribute.Int("records.created", len(created)))
	slog.InfoContext(ctx, "records ingested", "count", len(created))

	return created, nil
}

// List returns one page of the records matching the query filters, with
// the total number of matches.
func (s *Service) List(
	ctx context.Context,
	query url.Values,
) ([]Record, int, error) {
	filter := FilterFromQuery(query)
	if err := filter.Err(); err != nil {
		return nil, 0, err
	}

	page, err := core.ParsePagination(query, s.recordsNumber)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	offset, limit, err := page.Window(total)
	if err != nil {
		return nil, 0, err
	}

	records, err := s.repo.List(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
