package entity

// Phase is the whole-game state the presentation layer reacts to.
type Phase string

const (
	PhaseAwaitingHumanMove Phase = "awaiting_human_move"
	PhaseComputerTurn      Phase = "computer_turn"
	PhaseGameOver          Phase = "game_over"
)

// The human always plays X and moves first; the computer plays O.
const (
	HumanMark    = PlayerX
	ComputerMark = PlayerO
)

type Game struct {
	ID               string     `json:"id"`
	Board            Board      `json:"board"`
	Difficulty       Difficulty `json:"difficulty"`
	Phase            Phase      `json:"phase"`
	Outcome          Outcome    `json:"outcome"`
	LastComputerMove *Move      `json:"last_computer_move,omitempty"`
}

// NewGame returns a game waiting for the human's first move on an empty board.
func NewGame(id string, difficulty Difficulty) *Game {
	return &Game{
		ID:         id,
		Board:      *NewBoard(),
		Difficulty: difficulty,
		Phase:      PhaseAwaitingHumanMove,
		Outcome:    Outcome{Status: StatusInProgress},
	}
}

func (that *Game) IsOver() bool {
	return that.Phase == PhaseGameOver
}

func (that *Game) IsAwaitingHumanMove() bool {
	return that.Phase == PhaseAwaitingHumanMove
}

func (that *Game) IsComputerTurn() bool {
	return that.Phase == PhaseComputerTurn
}
