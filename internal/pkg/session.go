package pkg

import (
	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

// GenerateNewSessionID - generates a new unique sessionID.
func GenerateNewSessionID() string {
	return uuid.NewString()
}

// ValidateSessionID - checks that the id was produced by GenerateNewSessionID.
func ValidateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.ErrInvalidSession
	}

	return nil
}
