package obs

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

var (
	once   sync.Once
	logger zerolog.Logger
)

// Log returns the process-wide structured logger, initializing it on first use.
func Log() *zerolog.Logger {
	once.Do(func() {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	})
	return &logger
}

// Time instruments an operation with a structured duration log, keeping the
// teacher's defer-and-close-over-err call shape:
//
//	defer obs.Time(ctx, "ors.GetDistances")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)
		ev := Log().Info()
		if errp != nil && *errp != nil {
			ev = Log().Error().Err(*errp)
		}
		ev.Str("req_id", reqID).Str("op", name).Dur("dur", dur).Msg("op complete")
	}
}
