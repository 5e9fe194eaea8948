package store

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/tileroads/internal/telemetry"
	"github.com/samdwyer/tileroads/internal/world"
)

// Export writes g and routes to a new database at filePath.
func Export(ctx context.Context, filePath string, g *world.Grid, routes []Route, opts ...WriterOption) (err error) {
	ctx, span := telemetry.Tracer("store").Start(ctx, "store.export")
	defer span.End()
	span.SetAttributes(
		attribute.String("store.path", filePath),
		attribute.Int("store.cells", g.Placed()),
		attribute.Int("store.routes", len(routes)),
	)

	w, err := NewWriter(filePath, opts...)
	if err != nil {
		return fmt.Errorf("open %s: %w", filePath, err)
	}
	defer func() {
		if cerr := w.Close(); err == nil {
			err = cerr
		}
	}()

	if err := w.WriteGrid(ctx, g); err != nil {
		return err
	}
	for _, r := range routes {
		if err := w.WriteRoute(ctx, r); err != nil {
			return err
		}
	}
	if err := w.Finalize(); err != nil {
		return err
	}

	w.log.WithField("path", filePath).WithField("routes", len(routes)).Info("Map exported")
	return nil
}
