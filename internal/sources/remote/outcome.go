package remote

import (
	"context"

	"github.com/rs/zerolog"
)

// Origin says where a resolved document came from.
type Origin int

const (
	// FetchedRemote means the remote document was fetched and validated.
	FetchedRemote Origin = iota
	// FellBackToSnapshot means the remote path failed and the bundled snapshot was used.
	FellBackToSnapshot
)

// String implements fmt.Stringer.
func (o Origin) String() string {
	switch o {
	case FetchedRemote:
		return "remote"
	case FellBackToSnapshot:
		return "snapshot"
	default:
		return "unknown"
	}
}

// Outcome is a resolved document and where it came from. Reason holds the
// remote failure when the snapshot was used.
type Outcome[T any] struct {
	Document T
	Origin   Origin
	Reason   error
}

// Resolve tries fetch and falls back to snapshot on any error. Only a
// snapshot failure is returned.
func Resolve[T any](ctx context.Context, logger *zerolog.Logger, fetch func(context.Context) (T, error), snapshot func() (T, error)) (Outcome[T], error) {
	doc, err := fetch(ctx)
	if err == nil {
		return Outcome[T]{Document: doc, Origin: FetchedRemote}, nil
	}

	logger.Warn().Err(err).Msg("remote fetch failed, falling back to bundled snapshot")
	doc, snapErr := snapshot()
	if snapErr != nil {
		return Outcome[T]{Reason: err}, snapErr
	}
	return Outcome[T]{Document: doc, Origin: FellBackToSnapshot, Reason: err}, nil
}
