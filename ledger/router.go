package ledger

import (
	"context"
	"fmt"
	"regexp"

	"github.com/swaplock/swaplock"
	"github.com/swaplock/swaplock/errors"
)

// Router directs each decoded message to the handler registered under the
// message path.
type Router struct {
	routes map[string]swaplock.Handler
}

var _ swaplock.Registry = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]swaplock.Handler),
	}
}

// pathPattern describes an allowed format of the registration path.
var pathPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+(/[a-zA-Z0-9_]+)*$`).MatchString

// Handle adds a new handler for the given path. This function panics if a
// handler for the given path is already registered or if the path is
// malformed.
func (r *Router) Handle(path string, h swaplock.Handler) {
	if !pathPattern(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("handler for path %q is already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the registered handler for this path. If none was
// registered, a handler that always fails with ErrNotFound is returned.
// This method always returns a non-nil handler.
func (r *Router) Handler(path string) swaplock.Handler {
	h, ok := r.routes[path]
	if !ok {
		return &noSuchPathHandler{path: path}
	}
	return h
}

type noSuchPathHandler struct {
	path string
}

var _ swaplock.Handler = (*noSuchPathHandler)(nil)

func (h *noSuchPathHandler) Check(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h *noSuchPathHandler) Deliver(ctx context.Context, db swaplock.KVStore, tx swaplock.Tx) (*swaplock.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
