package sizegrid

import (
	"context"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

// Gateway loads and saves full charts. Implementations own transport and
// storage; the session only sees these two calls.
type Gateway interface {
	// Load returns the chart stored under id.
	Load(ctx context.Context, id string) (models.ChartData, error)
	// Save stores payload under id and returns the chart id.
	// An empty id creates a new chart.
	Save(ctx context.Context, id string, payload models.ChartData) (string, error)
}
