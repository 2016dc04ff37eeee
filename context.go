package swaplock

import (
	"context"
	"time"

	"github.com/swaplock/swaplock/errors"
)

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyTime
)

// WithHeight sets the block height for the Context. Must only be done once
// per operation batch.
func WithHeight(ctx context.Context, height int64) context.Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height and true, if the block height
// was set, otherwise a default value and false.
func GetHeight(ctx context.Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time for the Context. Block time is always
// represented in UTC.
func WithBlockTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyTime, t.UTC())
}

// BlockTime returns the current block time. An error is returned if the
// block time is not present in the context. Handlers never read the wall
// clock, the runtime injects the clock through the context.
func BlockTime(ctx context.Context) (time.Time, error) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Time{}, errors.Wrap(errors.ErrHuman, "block time not present in the context")
	}
	return val, nil
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the block. Expiration is inclusive, meaning that if
// current time is equal to the expiration time then this function returns
// true.
//
// This function panics if the block time is not present in the context.
func IsExpired(ctx context.Context, t UnixTime) bool {
	blockNow, err := BlockTime(ctx)
	if err != nil {
		panic("block time is not present in the context")
	}
	return t <= AsUnixTime(blockNow)
}

// InThePast returns true if given time is in the past compared to the
// current time as declared in the context. Context "now" should come from
// the block header.
// Keep in mind that this function is not inclusive of current time. If
// given time is equal to "now" then this function returns false.
func InThePast(ctx context.Context, t time.Time) bool {
	blockNow, err := BlockTime(ctx)
	if err != nil {
		panic("block time is not present in the context")
	}
	return t.Before(blockNow)
}

// InTheFuture returns true if given time is in the future compared to the
// current time as declared in the context. Context "now" should come from
// the block header.
// Keep in mind that this function is not inclusive of current time. If
// given time is equal to "now" then this function returns false.
func InTheFuture(ctx context.Context, t time.Time) bool {
	blockNow, err := BlockTime(ctx)
	if err != nil {
		panic("block time is not present in the context")
	}
	return t.After(blockNow)
}
