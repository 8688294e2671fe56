package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Difficulty selects how the computer picks its move.
type Difficulty string

const (
	// Hard plays optimal minimax.
	Hard Difficulty = "hard"
	// Normal picks a uniformly random empty cell.
	Normal Difficulty = "normal"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

func ParseDifficulty(value string) (Difficulty, error) {
	switch difficulty := Difficulty(strings.ToLower(strings.TrimSpace(value))); difficulty {
	case Hard, Normal:
		return difficulty, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, value)
	}
}

func (that Difficulty) IsValid() bool {
	return that == Hard || that == Normal
}
