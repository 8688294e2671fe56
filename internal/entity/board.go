package entity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-solo/internal/apperror"
)

// Mark is the content of a single cell.
type Mark string

const (
	Empty   Mark = ""
	PlayerX Mark = "X"
	PlayerO Mark = "O"
)

const BoardSize = 3

var (
	ErrInvalidMark   = errors.New("invalid mark")
	ErrInvalidLayout = errors.New("invalid board layout")

	// WinLines lists the winning lines in scan order: rows, then columns, then diagonals.
	WinLines = [8][3]Move{
		{{0, 0}, {0, 1}, {0, 2}},
		{{1, 0}, {1, 1}, {1, 2}},
		{{2, 0}, {2, 1}, {2, 2}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{0, 1}, {1, 1}, {2, 1}},
		{{0, 2}, {1, 2}, {2, 2}},
		{{0, 0}, {1, 1}, {2, 2}},
		{{0, 2}, {1, 1}, {2, 0}},
	}
)

// Opponent returns the other player's mark.
func (m Mark) Opponent() Mark {
	switch m {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return Empty
	}
}

func (m Mark) IsPlayer() bool {
	return m == PlayerX || m == PlayerO
}

// Move names a cell by row and column, both in [0, BoardSize).
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (m Move) InBounds() bool {
	return m.Row >= 0 && m.Row < BoardSize && m.Col >= 0 && m.Col < BoardSize
}

func (m Move) String() string {
	return fmt.Sprintf("(%d,%d)", m.Row, m.Col)
}

// Board is the 3x3 grid plus the mark that moves next.
// ApplyMove never advances Turn: the caller owns turn order.
type Board struct {
	Cells [BoardSize][BoardSize]Mark `json:"cells"`
	Turn  Mark                       `json:"turn"`
}

// NewBoard returns an empty board with X to move.
func NewBoard() *Board {
	return &Board{Turn: PlayerX}
}

func (that *Board) Reset() {
	*that = Board{Turn: PlayerX}
}

func (that *Board) At(row, col int) Mark {
	return that.Cells[row][col]
}

// ApplyMove places mark at (row, col). The cell must be empty and the game not terminal.
func (that *Board) ApplyMove(row, col int, mark Mark) error {
	if !(Move{Row: row, Col: col}).InBounds() {
		return apperror.IllegalMove(fmt.Errorf("%w: (%d,%d)", apperror.ErrInvalidCell, row, col))
	}

	if !mark.IsPlayer() {
		return apperror.IllegalMove(fmt.Errorf("%w: %q", ErrInvalidMark, mark))
	}

	if that.IsTerminal() {
		return apperror.IllegalMove(apperror.ErrGameFinished)
	}

	if that.Cells[row][col] != Empty {
		return apperror.IllegalMove(apperror.ErrCellOccupied)
	}

	that.Cells[row][col] = mark

	return nil
}

// UndoMove clears a cell unconditionally. Only search code backtracking its own move may call it.
func (that *Board) UndoMove(row, col int) {
	that.Cells[row][col] = Empty
}

// Winner reports the mark owning a complete line.
// When a malformed board holds lines for both marks, the first line in WinLines order wins.
func (that *Board) Winner() (Mark, bool) {
	for _, line := range WinLines {
		a := that.Cells[line[0].Row][line[0].Col]
		b := that.Cells[line[1].Row][line[1].Col]
		c := that.Cells[line[2].Row][line[2].Col]
		if a != Empty && a == b && b == c {
			return a, true
		}
	}

	return Empty, false
}

// HasWon is a cheaper Winner for a single mark, used in search.
func (that *Board) HasWon(mark Mark) bool {
	for _, line := range WinLines {
		if that.Cells[line[0].Row][line[0].Col] == mark &&
			that.Cells[line[1].Row][line[1].Col] == mark &&
			that.Cells[line[2].Row][line[2].Col] == mark {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for row := range that.Cells {
		for col := range that.Cells[row] {
			if that.Cells[row][col] == Empty {
				return false
			}
		}
	}

	return true
}

func (that *Board) IsTerminal() bool {
	if _, ok := that.Winner(); ok {
		return true
	}

	return that.IsFull()
}

// IsDraw - the board is full and nobody owns a line.
func (that *Board) IsDraw() bool {
	_, ok := that.Winner()
	return !ok && that.IsFull()
}

// EmptyCells returns the free cells in row-major order.
func (that *Board) EmptyCells() []Move {
	cells := make([]Move, 0, BoardSize*BoardSize)
	for row := range that.Cells {
		for col := range that.Cells[row] {
			if that.Cells[row][col] == Empty {
				cells = append(cells, Move{Row: row, Col: col})
			}
		}
	}

	return cells
}

// Count returns how many cells hold mark.
func (that *Board) Count(mark Mark) int {
	n := 0
	for row := range that.Cells {
		for col := range that.Cells[row] {
			if that.Cells[row][col] == mark {
				n++
			}
		}
	}

	return n
}

// Outcome is recomputed from the grid on every call.
func (that *Board) Outcome() Outcome {
	if winner, ok := that.Winner(); ok {
		return WinFor(winner)
	}

	if that.IsFull() {
		return Outcome{Status: StatusDraw}
	}

	return Outcome{Status: StatusInProgress}
}

// String renders the grid as "X X _ / O O _ / _ _ _".
func (that *Board) String() string {
	rows := make([]string, 0, BoardSize)
	for row := range that.Cells {
		cells := make([]string, 0, BoardSize)
		for col := range that.Cells[row] {
			if mark := that.Cells[row][col]; mark == Empty {
				cells = append(cells, "_")
			} else {
				cells = append(cells, string(mark))
			}
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	return strings.Join(rows, " / ")
}

// ParseBoard reads the layout produced by String. Turn goes to X when both marks
// have the same count, otherwise to O.
func ParseBoard(layout string) (*Board, error) {
	tokens := strings.Fields(strings.ReplaceAll(layout, "/", " "))
	if len(tokens) != BoardSize*BoardSize {
		return nil, fmt.Errorf("%w: want %d cells, got %d", ErrInvalidLayout, BoardSize*BoardSize, len(tokens))
	}

	board := NewBoard()
	for i, token := range tokens {
		var mark Mark
		switch strings.ToUpper(token) {
		case "_", ".":
			mark = Empty
		case string(PlayerX):
			mark = PlayerX
		case string(PlayerO):
			mark = PlayerO
		default:
			return nil, fmt.Errorf("%w: unexpected token %q", ErrInvalidLayout, token)
		}
		board.Cells[i/BoardSize][i%BoardSize] = mark
	}

	if board.Count(PlayerX) > board.Count(PlayerO) {
		board.Turn = PlayerO
	}

	return board, nil
}
