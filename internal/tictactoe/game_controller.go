package tictactoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	statusTextIdle = "Let's Play"
	statusTextDraw = "It's a draw."
)

var ErrSnapshotMismatch = errors.New("snapshot does not match its board")

// WinCombos lists the winning lines: rows, then columns, then diagonals.
var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Action is a one-shot callback behind a Start or Reset control.
type Action func(ctx context.Context)

// Display renders the game and forwards raw input. It never changes the game state itself.
type Display interface {
	RenderBoard(cells [entity.BoardSize]entity.Mark)
	SetStatusText(text string)
	// ShowStartControl and ShowResetControl present a control that hides itself
	// once pressed and then calls the action.
	ShowStartControl(onStart Action)
	ShowResetControl(onReset Action)
	// OnCellActivated registers the handler for every cell click, whatever the game status.
	OnCellActivated(handler func(index int))
}

// NameProvider asks a player for a display name.
type NameProvider interface {
	AskName(ctx context.Context, ordinal int) (string, error)
}

// GameController owns the board, the players and the game status.
// It is not safe for concurrent use: the adapter drives it from a single event loop.
type GameController struct {
	logger *slog.Logger

	display Display
	names   NameProvider

	board  *entity.Board
	status entity.Status

	player1      *entity.Player
	player2      *entity.Player
	activePlayer *entity.Player

	winningLine [3]int

	observers []func(game entity.Game)
}

func NewGameController(logger *slog.Logger, display Display, names NameProvider) *GameController {
	return &GameController{
		logger:  logger.With("component", "game_controller"),
		display: display,
		names:   names,
		board:   entity.NewBoard(),
		status:  entity.StatusNotStarted,
	}
}

// Init wires the cell handler and draws the current state.
func (that *GameController) Init() {
	that.display.OnCellActivated(that.ChooseCell)
	that.render()
}

// Subscribe registers an observer called with a snapshot after every accepted transition.
func (that *GameController) Subscribe(observer func(game entity.Game)) {
	that.observers = append(that.observers, observer)
}

// Start asks both players for their names and hands the first turn to player 1.
// It does nothing unless the game is waiting to start. If a name can't be read
// the game keeps waiting and the start control is shown again.
func (that *GameController) Start(ctx context.Context) {
	if that.status != entity.StatusNotStarted {
		return
	}

	var names [2]string
	for i := range names {
		name, err := that.askName(ctx, i+1)
		if err != nil {
			that.logger.Warn("start abandoned, could not get player name", "ordinal", i+1, "error", err)
			that.render()

			return
		}

		names[i] = name
	}

	that.player1 = entity.NewPlayer(1, names[0])
	that.player2 = entity.NewPlayer(2, names[1])
	that.activePlayer = that.player1
	that.status = entity.StatusOngoing

	that.display.SetStatusText(turnText(that.activePlayer))

	that.logger.Debug("game started", "player1", that.player1.Name(), "player2", that.player2.Name())
	that.publish()
}

// ChooseCell plays the active player's mark into the cell. Clicks before the
// game starts, after it ends, on occupied cells or outside the board are ignored.
func (that *GameController) ChooseCell(index int) {
	if that.status != entity.StatusOngoing {
		return
	}

	if !that.board.IsEmpty(index) {
		return
	}

	that.board.Update(index, that.activePlayer.Mark())

	outcome, line := checkGameStatus(that.board)
	switch outcome {
	case entity.StatusWon:
		that.status = entity.StatusWon
		that.winningLine = line
	case entity.StatusDraw:
		that.status = entity.StatusDraw
	case entity.StatusOngoing:
		that.toggleActivePlayer()
	case entity.StatusNotStarted:
		panic("tictactoe: a move can't put the game back to not started")
	}

	that.render()

	that.logger.Debug("cell chosen", "cell", index, "status", that.status)
	that.publish()
}

// Reset clears the board and waits for a new Start. It is accepted in any status.
func (that *GameController) Reset(_ context.Context) {
	that.board.Reset()
	that.status = entity.StatusNotStarted
	that.player1, that.player2, that.activePlayer = nil, nil, nil
	that.winningLine = [3]int{}

	that.render()

	that.logger.Debug("game reset")
	that.publish()
}

func (that *GameController) Status() entity.Status {
	return that.status
}

func (that *GameController) Board() [entity.BoardSize]entity.Mark {
	return that.board.Cells()
}

// ActivePlayer returns the player whose move is accepted next, or the winner
// once the game is won. It is nil before Start.
func (that *GameController) ActivePlayer() *entity.Player {
	return that.activePlayer
}

// WinningLine returns the completed triple of a won game.
func (that *GameController) WinningLine() ([3]int, bool) {
	if that.status != entity.StatusWon {
		return [3]int{}, false
	}

	return that.winningLine, true
}

// Snapshot captures the current state.
func (that *GameController) Snapshot() entity.Game {
	game := entity.Game{
		Board:  that.board.Cells(),
		Status: that.status,
	}

	if that.status == entity.StatusNotStarted {
		return game
	}

	game.Players = []entity.PlayerInfo{
		{Name: that.player1.Name(), Mark: that.player1.Mark()},
		{Name: that.player2.Name(), Mark: that.player2.Mark()},
	}

	game.Turn = 1
	if that.activePlayer == that.player2 {
		game.Turn = 2
	}

	return game
}

// Restore replaces the state with a snapshot taken by Snapshot. It doesn't
// render: call Init afterwards. On error the state is left untouched.
func (that *GameController) Restore(game entity.Game) error {
	if err := game.Validate(); err != nil {
		return fmt.Errorf("invalid game snapshot: %w", err)
	}

	board := entity.BoardFrom(game.Board)
	outcome, line := checkGameStatus(board)

	switch game.Status {
	case entity.StatusNotStarted:
		if game.Board != [entity.BoardSize]entity.Mark{} {
			return fmt.Errorf("%w: board is not empty before start", ErrSnapshotMismatch)
		}
	case entity.StatusOngoing, entity.StatusDraw:
		if outcome != game.Status {
			return fmt.Errorf("%w: board is %s, snapshot says %s", ErrSnapshotMismatch, outcome, game.Status)
		}
	case entity.StatusWon:
		if outcome != entity.StatusWon {
			return fmt.Errorf("%w: board has no winning line", ErrSnapshotMismatch)
		}

		if game.Board[line[0]] != game.Players[game.Turn-1].Mark {
			return fmt.Errorf("%w: winner is not the active player", ErrSnapshotMismatch)
		}
	}

	if !game.IsWaiting() {
		lead := board.Count(entity.PlayerX) - board.Count(entity.PlayerO)
		if want := markLead(game); lead != want {
			return fmt.Errorf("%w: X leads O by %d marks, turn %d needs %d", ErrSnapshotMismatch, lead, game.Turn, want)
		}
	}

	that.board = board
	that.status = game.Status
	that.winningLine = line
	that.player1, that.player2, that.activePlayer = nil, nil, nil

	if !game.IsWaiting() {
		that.player1 = entity.NewPlayer(1, game.Players[0].Name)
		that.player2 = entity.NewPlayer(2, game.Players[1].Name)

		that.activePlayer = that.player1
		if game.Turn == 2 {
			that.activePlayer = that.player2
		}
	}

	return nil
}

// render draws the board and the status line with the control the status calls for.
func (that *GameController) render() {
	that.display.RenderBoard(that.board.Cells())

	switch that.status {
	case entity.StatusNotStarted:
		that.display.SetStatusText(statusTextIdle)
		that.display.ShowStartControl(that.Start)
	case entity.StatusOngoing:
		that.display.SetStatusText(turnText(that.activePlayer))
	case entity.StatusWon:
		that.display.SetStatusText(winText(that.activePlayer))
		that.display.ShowResetControl(that.Reset)
	case entity.StatusDraw:
		that.display.SetStatusText(statusTextDraw)
		that.display.ShowResetControl(that.Reset)
	}
}

func (that *GameController) askName(ctx context.Context, ordinal int) (string, error) {
	that.display.SetStatusText(fmt.Sprintf("Select Player %d Name", ordinal))

	name, err := that.names.AskName(ctx, ordinal)
	if err != nil {
		return "", fmt.Errorf("failed to ask player %d name: %w", ordinal, err)
	}

	return name, nil
}

func (that *GameController) toggleActivePlayer() {
	if that.activePlayer == that.player1 {
		that.activePlayer = that.player2
		return
	}

	that.activePlayer = that.player1
}

func (that *GameController) publish() {
	if len(that.observers) == 0 {
		return
	}

	game := that.Snapshot()
	for _, observer := range that.observers {
		observer(game)
	}
}

func turnText(player *entity.Player) string {
	return fmt.Sprintf("%s's (%s) Turn", player.Name(), player.Mark())
}

func winText(player *entity.Player) string {
	return fmt.Sprintf("%s (%s) wins!", player.Name(), player.Mark())
}

// markLead is how many more X than O marks a started game's board holds.
// X moves first, and the active player of a finished game made the last move.
func markLead(game entity.Game) int {
	if game.IsFinished() {
		return 2 - game.Turn
	}

	return game.Turn - 1
}

// checkGameStatus evaluates a board: Won with the first completed line, Draw when
// the board is full, Ongoing otherwise.
func checkGameStatus(board *entity.Board) (entity.Status, [3]int) {
	cells := board.Cells()

	for _, combo := range WinCombos {
		a, b, c := cells[combo[0]], cells[combo[1]], cells[combo[2]]
		if a != entity.EmptyCell && a == b && b == c {
			return entity.StatusWon, combo
		}
	}

	if board.IsFull() {
		return entity.StatusDraw, [3]int{}
	}

	return entity.StatusOngoing, [3]int{}
}
