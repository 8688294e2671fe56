package entity

type OutcomeStatus string

const (
	StatusInProgress OutcomeStatus = "in_progress"
	StatusWin        OutcomeStatus = "win"
	StatusDraw       OutcomeStatus = "draw"
)

// Outcome is derived from a board, never stored as the source of truth.
type Outcome struct {
	Status OutcomeStatus `json:"status"`
	Winner Mark          `json:"winner,omitempty"`
}

func WinFor(mark Mark) Outcome {
	return Outcome{Status: StatusWin, Winner: mark}
}

func (that Outcome) IsOver() bool {
	return that.Status == StatusWin || that.Status == StatusDraw
}

func (that Outcome) String() string {
	switch that.Status {
	case StatusWin:
		return "win(" + string(that.Winner) + ")"
	case StatusDraw:
		return "draw"
	default:
		return "in progress"
	}
}
