package table

// Phase is the table's game state. Exactly one holds between frames.
//
//	Rack ──Launch──▶ Flight ──pocket edge──▶ Restarting ──Step──▶ Rack
//	                   │
//	                   └──rack empty──▶ Cleared
type Phase int

const (
	PhaseRack       Phase = iota // target follows the cue ball, waiting for a launch
	PhaseFlight                  // target moves under its own velocity
	PhaseCleared                 // every rack ball is gone; terminal
	PhaseRestarting              // target left through the pocket edge; rebuilt next step
)

func (p Phase) String() string {
	switch p {
	case PhaseRack:
		return "rack"
	case PhaseFlight:
		return "flight"
	case PhaseCleared:
		return "cleared"
	case PhaseRestarting:
		return "restarting"
	default:
		return "unknown"
	}
}

// Outcome tells the frame driver whether to keep stepping.
type Outcome int

const (
	Continue Outcome = iota
	Stop
)

func (o Outcome) String() string {
	if o == Stop {
		return "stop"
	}
	return "continue"
}
