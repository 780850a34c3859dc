package entity

import (
	"fmt"
	"strings"
)

// Player is created once per game on Start and never changes afterwards.
type Player struct {
	name string
	mark Mark
}

// NewPlayer builds the player with the given ordinal (1 or 2). Player 1 plays X,
// player 2 plays O. A blank name falls back to "Player {ordinal}".
func NewPlayer(ordinal int, name string) *Player {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlayerName(ordinal)
	}

	return &Player{
		name: name,
		mark: MarkForOrdinal(ordinal),
	}
}

func (that *Player) Name() string {
	return that.name
}

func (that *Player) Mark() Mark {
	return that.mark
}

func DefaultPlayerName(ordinal int) string {
	return fmt.Sprintf("Player %d", ordinal)
}

func MarkForOrdinal(ordinal int) Mark {
	if ordinal == 1 {
		return PlayerX
	}

	return PlayerO
}
