package indexer

// Phase is the state of the indexing loop.
type Phase int

const (
	PhaseCatchingUp Phase = iota
	PhaseWaitingForChain
	PhaseProcessingBlock
	PhaseShuttingDown
)

// Phases lists every phase, used to reset exported gauges.
var Phases = []Phase{PhaseCatchingUp, PhaseWaitingForChain, PhaseProcessingBlock, PhaseShuttingDown}

func (p Phase) String() string {
	switch p {
	case PhaseCatchingUp:
		return "catching_up"
	case PhaseWaitingForChain:
		return "waiting_for_chain"
	case PhaseProcessingBlock:
		return "processing_block"
	case PhaseShuttingDown:
		return "shutting_down"
	default:
		return "unknown"
	}
}

// Direction selects the sweep order.
type Direction string

var (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)
