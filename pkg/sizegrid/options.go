// Package sizegrid provides the size chart editing session: four table
// grids plus metadata, loaded from and saved to a Gateway.
package sizegrid

import (
	"github.com/rs/zerolog"

	"github.com/ukaji3/sizegrid-go/internal/logging"
	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/sizeorder"
)

// Options configures a Session.
type Options struct {
	// ReadOnly rejects every mutation and save with ErrReadOnly.
	ReadOnly bool
	// Ranks is the size rank table used to order matrix columns.
	// If nil, sizeorder.DefaultRanks is used.
	Ranks *sizeorder.Ranks
	// Logger receives load/save diagnostics.
	// If nil, the "session" component logger is used.
	Logger *zerolog.Logger
}

// DefaultOptions returns default session options.
func DefaultOptions() Options {
	return Options{}
}

// Comparator returns the size comparator for the configured rank table.
func (o Options) Comparator() sizeorder.Comparator {
	return sizeorder.New(o.Ranks)
}

func (o Options) logger() zerolog.Logger {
	if o.Logger != nil {
		return *o.Logger
	}
	return logging.Component("session")
}
