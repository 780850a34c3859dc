package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const (
	sessionCookieName = "user_session"
	saveTimeout       = 5 * time.Second
)

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, sessionID string, game *entity.Game) error
	GetByID(ctx context.Context, sessionID string) (*entity.Game, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

// Server upgrades browser connections and runs one game per connection.
type Server struct {
	logger *slog.Logger

	gameRepo   gameRepo
	sessionTTL time.Duration

	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, gameRepo gameRepo, sessionTTL time.Duration) *Server {
	return &Server{
		logger:     logger.With("component", "websocket"),
		gameRepo:   gameRepo,
		sessionTTL: sessionTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades the connection and plays until the browser goes away.
func (that *Server) ServeHTTP(writer http.ResponseWriter, req *http.Request) {
	sessionID, header := that.sessionCookie(req)
	log := that.logger.With("method", "ServeHTTP", "session", sessionID)

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	ctx := req.Context()

	// the read loop blocks on the socket, so closing it is how shutdown reaches the session
	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	log.Info("WebSocket connection established")

	display := newSession(log, conn)
	controller := tictactoe.NewGameController(log, display, display)

	that.restoreGame(ctx, log, sessionID, controller)

	controller.Subscribe(func(game entity.Game) {
		that.saveGame(ctx, log, sessionID, game)
	})

	controller.Init()

	err = display.run(ctx)
	if websocket.IsUnexpectedCloseError(errors.Unwrap(err), websocket.CloseGoingAway, websocket.CloseNormalClosure) && ctx.Err() == nil {
		log.Warn("connection closed unexpectedly", "error", err)
		return
	}

	log.Info("WebSocket connection closed")
}

func (that *Server) restoreGame(ctx context.Context, log *slog.Logger, sessionID string, controller *tictactoe.GameController) {
	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrGameNotFound) {
		return
	}

	if err != nil {
		log.Error("failed to load game", "error", err)
		return
	}

	if err = controller.Restore(*game); err != nil {
		log.Warn("discarding stored game", "error", err)
		return
	}

	log.Info("game restored", "status", game.Status)
}

// saveGame keeps the session's game, or drops it once the game waits for a new
// start. A transition that already happened is stored even while the server shuts down.
func (that *Server) saveGame(ctx context.Context, log *slog.Logger, sessionID string, game entity.Game) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), saveTimeout)
	defer cancel()

	if game.IsWaiting() {
		err := that.gameRepo.DeleteByID(ctx, sessionID)
		if err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
			log.Error("failed to delete game", "error", err)
		}

		return
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, sessionID, &game); err != nil {
		log.Error("failed to save game", "error", err)
	}
}

// sessionCookie returns the browser session id, and the header that sets a new
// one when the browser has none.
func (that *Server) sessionCookie(req *http.Request) (string, http.Header) {
	if cookie, err := req.Cookie(sessionCookieName); err == nil {
		if pkg.ValidateSessionID(cookie.Value) == nil {
			return cookie.Value, nil
		}
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    pkg.GenerateNewSessionID(),
		Path:     "/",
		MaxAge:   int(that.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	header := http.Header{}
	header.Add("Set-Cookie", cookie.String())

	return cookie.Value, header
}
