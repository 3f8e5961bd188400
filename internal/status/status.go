package status

// State names are a stable contract - other layers key off them.
type State string

const (
	EmbedderLoading State = "EmbedderLoading"
	EmbedderReady   State = "EmbedderReady"
	EmbedderFailed  State = "EmbedderFailed"

	DocumentIngested     State = "DocumentIngested"
	DocumentIngestFailed State = "DocumentIngestFailed"
	DocumentRemoved      State = "DocumentRemoved"
)

// Event is one state transition in the core. Counts are zero when they
// don't apply to the state.
type Event struct {
	State        State
	Document     string
	ChunkCount   int
	FailedChunks int
	Err          error
}

// Reporter receives core state transitions. The core never talks to a
// presentation layer directly - it only emits events.
type Reporter interface {
	Report(event Event)
}

// Fanout forwards every event to all registered reporters.
type Fanout struct {
	sinks []Reporter
}

func NewFanout(sinks ...Reporter) *Fanout {
	return &Fanout{sinks: sinks}
}

func (f *Fanout) Report(event Event) {
	for _, s := range f.sinks {
		s.Report(event)
	}
}

// Discard is a no-op reporter for tests.
type Discard struct{}

func (Discard) Report(Event) {}
