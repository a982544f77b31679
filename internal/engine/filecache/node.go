package filecache

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/jonboulle/clockwork"
)

// ClockNodeID is the unique identifier for the run clock Graft node.
const ClockNodeID graft.ID = "engine.filecache.clock"

func init() {
	graft.Register(graft.Node[clockwork.Clock]{
		ID:        ClockNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (clockwork.Clock, error) {
			return clockwork.NewRealClock(), nil
		},
	})
}
