package swaptest

import (
	"context"

	"github.com/swaplock/swaplock"
)

// Handler is a test implementation counting its calls and returning
// configured results.
type Handler struct {
	checkCall   int
	CheckResult swaplock.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult swaplock.DeliverResult
	DeliverErr    error
}

var _ swaplock.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
