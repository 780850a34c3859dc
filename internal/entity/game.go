package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCell    = errors.New("invalid cell mark")
	ErrInvalidPlayers = errors.New("invalid players")
	ErrInvalidTurn    = errors.New("invalid player turn")
)

// PlayerInfo is the stored form of a Player.
type PlayerInfo struct {
	Name string `json:"name"`
	Mark Mark   `json:"mark"`
}

// Game is a snapshot of the whole game state, as kept in the session store.
type Game struct {
	Board   [BoardSize]Mark `json:"board"`
	Status  Status          `json:"status"`
	Players []PlayerInfo    `json:"players,omitempty"`
	// Turn is the ordinal of the active player, 0 before the game starts.
	Turn int `json:"player_turn"`
}

func (that *Game) IsFinished() bool {
	return that.Status.IsFinished()
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusNotStarted
}

// Validate checks that the snapshot describes a state the game can be in.
// Whether the board agrees with the status is left to the game controller.
func (that *Game) Validate() error {
	for index, cell := range that.Board {
		if !cell.IsValid() {
			return fmt.Errorf("%w: cell %d holds %q", ErrInvalidCell, index, cell)
		}
	}

	switch that.Status {
	case StatusNotStarted:
		if len(that.Players) != 0 {
			return fmt.Errorf("%w: %d players before start", ErrInvalidPlayers, len(that.Players))
		}

		if that.Turn != 0 {
			return fmt.Errorf("%w: turn %d before start", ErrInvalidTurn, that.Turn)
		}

		return nil
	case StatusOngoing, StatusWon, StatusDraw:
		return that.validatePlayers()
	default:
		return fmt.Errorf("%w: %d", ErrUnknownGameStatus, int(that.Status))
	}
}

func (that *Game) validatePlayers() error {
	if len(that.Players) != 2 {
		return fmt.Errorf("%w: want 2 players, got %d", ErrInvalidPlayers, len(that.Players))
	}

	for i, player := range that.Players {
		if player.Name == "" {
			return fmt.Errorf("%w: player %d has no name", ErrInvalidPlayers, i+1)
		}

		if player.Mark != MarkForOrdinal(i+1) {
			return fmt.Errorf("%w: player %d plays %q", ErrInvalidPlayers, i+1, player.Mark)
		}
	}

	if that.Turn != 1 && that.Turn != 2 {
		return fmt.Errorf("%w: %d", ErrInvalidTurn, that.Turn)
	}

	return nil
}
