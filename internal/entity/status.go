package entity

import (
	"errors"
	"fmt"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

// Status is the phase of a game. It decides which actions are accepted.
type Status int

const (
	StatusNotStarted Status = iota
	StatusOngoing
	StatusWon
	StatusDraw
)

func (that Status) String() string {
	switch that {
	case StatusNotStarted:
		return "not_started"
	case StatusOngoing:
		return "ongoing"
	case StatusWon:
		return "won"
	case StatusDraw:
		return "draw"
	default:
		return fmt.Sprintf("status(%d)", int(that))
	}
}

// IsFinished reports whether the game ended with a win or a draw.
func (that Status) IsFinished() bool {
	return that == StatusWon || that == StatusDraw
}

func ParseStatus(value string) (Status, error) {
	for _, status := range []Status{StatusNotStarted, StatusOngoing, StatusWon, StatusDraw} {
		if status.String() == value {
			return status, nil
		}
	}

	return StatusNotStarted, fmt.Errorf("%w: %s", ErrUnknownGameStatus, value)
}

func (that Status) MarshalText() ([]byte, error) {
	if _, err := ParseStatus(that.String()); err != nil {
		return nil, err
	}

	return []byte(that.String()), nil
}

func (that *Status) UnmarshalText(text []byte) error {
	status, err := ParseStatus(string(text))
	if err != nil {
		return err
	}

	*that = status

	return nil
}
