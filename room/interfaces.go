package room

import (
	"context"

	"github.com/wfunc/chaos-server/game"
)

// Recorder stores the result of a finished game. It is defined here to keep
// room free of the services and persistence packages.
type Recorder interface {
	RecordMatch(ctx context.Context, roomID string, result game.Result) error
}
