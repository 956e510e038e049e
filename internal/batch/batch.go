// Package batch converts large identifier lists in paced chunks.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/rocketsource-go/internal/metrics"
	"github.com/donaldgifford/rocketsource-go/pkg/logger"
	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

// IDConverter converts identifiers to ASINs. *rocketsource.ConvertService
// satisfies it.
type IDConverter interface {
	ConvertIDs(
		ctx context.Context,
		marketplace domain.Marketplace,
		ids []string,
	) (domain.ConvertResponse, error)
}

// Runner splits identifier lists into chunks and converts them one request
// at a time, waiting on a token bucket before each request.
type Runner struct {
	conv    IDConverter
	size    int
	limiter *rate.Limiter
	logger  *slog.Logger
	chunks  atomic.Int64
}

// RunnerOption configures the Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used for per-chunk progress lines.
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a runner sending at most size identifiers per request,
// paced at perSecond requests with the given burst.
func NewRunner(
	conv IDConverter,
	size int,
	perSecond float64,
	burst int,
	opts ...RunnerOption,
) *Runner {
	r := &Runner{
		conv:    conv,
		size:    max(size, 1),
		limiter: rate.NewLimiter(rate.Limit(perSecond), max(burst, 1)),
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Convert converts ids chunk by chunk and merges the results. On the first
// failed chunk it stops and returns the results merged so far together with
// the error. Later chunks overwrite duplicate keys of earlier ones.
func (r *Runner) Convert(
	ctx context.Context,
	marketplace domain.Marketplace,
	ids []string,
) (domain.ConvertResponse, error) {
	out := domain.ConvertResponse{}
	chunks := Split(ids, r.size)

	for i, chunk := range chunks {
		if err := r.limiter.Wait(ctx); err != nil {
			return out, fmt.Errorf("rate limiter wait: %w", err)
		}

		r.chunks.Add(1)
		metrics.BatchChunksTotal.Inc()
		metrics.BatchIdentifiersTotal.Add(float64(len(chunk)))

		res, err := r.conv.ConvertIDs(ctx, marketplace, chunk)
		if err != nil {
			return out, fmt.Errorf("converting chunk %d of %d: %w", i+1, len(chunks), err)
		}
		maps.Copy(out, res)

		r.logger.DebugContext(ctx, "converted chunk",
			"chunk", i+1,
			"chunks", len(chunks),
			"identifiers", len(chunk),
			"matched", len(res),
		)
	}

	return out, nil
}

// Chunks returns the number of chunks sent since the runner was created.
func (r *Runner) Chunks() int64 {
	return r.chunks.Load()
}

// Split partitions ids into consecutive slices of at most size elements.
// The returned slices share ids' backing array.
func Split(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}
	size = max(size, 1)

	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end:end])
	}
	return chunks
}
