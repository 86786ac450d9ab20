package agent

// State of the control loop
type State int

const (
	// AwaitingModel is waiting for the model to produce the next message
	AwaitingModel State = iota
	// AwaitingTool is waiting for the requested tool to return its output
	AwaitingTool
	// Done means that the last message of the chat is the final answer
	Done
)

func (s State) String() string {
	switch s {
	case AwaitingModel:
		return "AWAITING_MODEL"
	case AwaitingTool:
		return "AWAITING_TOOL"
	case Done:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}
