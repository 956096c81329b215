package services

import (
	"context"
	"fmt"
	"log"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/factorykit/planner/pkg/domain/entities"
	"github.com/factorykit/planner/pkg/domain/repositories"
	"github.com/factorykit/planner/pkg/planner"
)

// SuggestionService produces production suggestions: it takes one consistent
// catalog snapshot from its source and runs the planning engine over it. The
// result is advisory; persisted stock is never touched.
type SuggestionService struct {
	source repositories.SnapshotSource
	engine *planner.Engine
	tracer trace.Tracer
}

// NewSuggestionService creates a suggestion service over the given snapshot source
func NewSuggestionService(source repositories.SnapshotSource, tracer trace.Tracer) *SuggestionService {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("suggestion-service")
	}
	return &SuggestionService{
		source: source,
		engine: planner.New(),
		tracer: tracer,
	}
}

// Suggest computes a production plan from current stock. Each call takes its
// own snapshot and owns its own working state, so concurrent calls need no
// coordination.
func (s *SuggestionService) Suggest(ctx context.Context) (*entities.Plan, error) {
	ctx, span := s.tracer.Start(ctx, "compute_suggestion")
	defer span.End()

	snap, err := s.source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to take catalog snapshot: %w", err)
	}

	span.SetAttributes(
		attribute.Int("catalog.materials", len(snap.Materials)),
		attribute.Int("catalog.products", len(snap.Products)),
	)

	plan, err := s.engine.ComputeSuggestion(snap)
	if err != nil {
		log.Printf("suggestion failed: %v", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("plan.items", len(plan.Items)))
	return plan, nil
}
