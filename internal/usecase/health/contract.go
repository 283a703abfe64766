package health

import "context"

// ModelChecker reports whether a fitted model is loaded and serving.
type ModelChecker interface {
	Trained() bool
}

// CachePinger checks prediction cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
