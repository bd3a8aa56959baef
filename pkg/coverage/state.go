package coverage

import (
	"github.com/mapflow/coverage/pkg/raster"
)

// State is the loading state of a coverage source.
//
// Sources begin Undefined, move to Loading when an external loader starts,
// and end Ready or Error. Renderers treat anything but Ready as "nothing
// to draw"; they never fail a frame over source state.
type State int

const (
	StateUndefined State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateUndefined:
		return "undefined"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Loader is the collaborator contract for asynchronous coverage loading.
// A loader parses raw data (file, network response) into bands and calls
// back with the resulting bands or a terminal error state. Loading itself
// is outside this library; the callback runs on the rendering goroutine
// between frames.
type Loader func(done func(bands []*raster.Band, state State))
