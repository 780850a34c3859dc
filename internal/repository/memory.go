package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type memoryRecord struct {
	game      entity.Game
	expiresAt time.Time
}

// memoryGame is the in-process GameRepository used when no Redis is configured.
// Expired records are dropped lazily on access.
type memoryGame struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	records map[string]memoryRecord
}

func NewMemoryGameRepository(ttl time.Duration) GameRepository {
	return newMemoryGameRepository(ttl, time.Now)
}

func newMemoryGameRepository(ttl time.Duration, now func() time.Time) *memoryGame {
	return &memoryGame{
		ttl:     ttl,
		now:     now,
		records: make(map[string]memoryRecord),
	}
}

func (that *memoryGame) CreateOrUpdate(_ context.Context, sessionID string, game *entity.Game) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	record := memoryRecord{game: *game}
	record.game.Players = append([]entity.PlayerInfo(nil), game.Players...)

	if that.ttl > 0 {
		record.expiresAt = that.now().Add(that.ttl)
	}

	that.records[sessionID] = record

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, sessionID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	record, ok := that.lookup(sessionID)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	game := record.game
	game.Players = append([]entity.PlayerInfo(nil), record.game.Players...)

	return &game, nil
}

func (that *memoryGame) DeleteByID(_ context.Context, sessionID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.lookup(sessionID); !ok {
		return apperror.ErrGameNotFound
	}

	delete(that.records, sessionID)

	return nil
}

func (that *memoryGame) lookup(sessionID string) (memoryRecord, bool) {
	record, ok := that.records[sessionID]
	if !ok {
		return memoryRecord{}, false
	}

	if !record.expiresAt.IsZero() && !that.now().Before(record.expiresAt) {
		delete(that.records, sessionID)
		return memoryRecord{}, false
	}

	return record, true
}
