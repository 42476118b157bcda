package lionpack

import (
	"log/slog"
	"math"
)

// Option configures a Pack.
type Option func(*Pack)

// WithLogger attaches a logger for load and write diagnostics. Without it,
// logging is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pack) {
		p.logger = logger
	}
}

// WithMaxBlockSize caps the payload size accepted for a single authored
// block. The cap never exceeds the format's u32 size field; larger values
// are clamped. Set limit to 0 to restore the format maximum.
func WithMaxBlockSize(limit uint64) Option {
	return func(p *Pack) {
		if limit == 0 || limit > math.MaxUint32 {
			limit = math.MaxUint32
		}
		p.maxBlockSize = limit
	}
}
