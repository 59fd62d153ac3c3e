// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/insight-dashboard/internal/core"
	"github.com/carterperez-dev/insight-dashboard/internal/record"
)

const tracerName = "github.com/carterperez-dev/insight-dashboard/internal/dashboard"

type Service struct {
	repo          record.Repository
	recordsNumber int
}

func NewService(repo record.Repository, recordsNumber int) *Service {
	if recordsNumber < 1 {
		recordsNumber = core.DefaultRecordsNumber
	}
	return &Service{repo: repo, recordsNumber: recordsNumber}
}

// Report returns the implementation behind an action.
func (s *Service) Report(a Action) Report {
	switch a {
	case GetFilter:
		return filterReport{repo: s.repo}
	case GetOverview:
		return overviewReport{repo: s.repo}
	case GetIntensity:
		return intensityReport{repo: s.repo, recordsNumber: s.recordsNumber}
	case GetTopicDistribution:
		return topicReport{repo: s.repo}
	case GetTrendsOverYears:
		return trendsReport{repo: s.repo}
	case GetWorldMapData:
		return worldMapReport{repo: s.repo, recordsNumber: s.recordsNumber}
	case GetBubbleChartData:
		return bubbleReport{repo: s.repo}
	}
	return nil
}

func (s *Service) Run(ctx context.Context, a Action, params url.Values) core.Result {
	ctx, span := core.StartSpan(ctx, tracerName, "dashboard."+a.String(),
		attribute.String("dashboard.action", a.String()),
	)
	defer span.End()

	report := s.Report(a)
	if report == nil {
		return core.WrongOption()
	}

	res := report.Run(ctx, params)
	span.SetAttributes(attribute.Int("http.response.status_code", res.Status))

	if res.Status >= http.StatusInternalServerError {
		slog.ErrorContext(ctx, "dashboard report failed",
			"action", a.String(),
			"body", res.Body,
		)
		span.SetAttributes(attribute.Bool("error", true))
	}

	return res
}
