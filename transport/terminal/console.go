package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tictactoe"
)

const (
	commandStart = "start"
	commandReset = "reset"
	commandQuit  = "quit"
	commandExit  = "exit"
)

// Console plays the game on a line based terminal. Cells are chosen with 1-9,
// left to right and top to bottom.
type Console struct {
	logger *slog.Logger

	in  *bufio.Scanner
	out *termenv.Output

	onStart tictactoe.Action
	onReset tictactoe.Action
	onCell  func(index int)
}

func New(logger *slog.Logger, in io.Reader, out *termenv.Output) *Console {
	return &Console{
		logger: logger.With("component", "terminal"),
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

func (that *Console) RenderBoard(cells [entity.BoardSize]entity.Mark) {
	var sb strings.Builder

	sb.WriteString("\n")
	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString("---+---+---\n")
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteString("|")
			}

			index := row*3 + col
			sb.WriteString(" " + that.cell(index, cells[index]) + " ")
		}

		sb.WriteString("\n")
	}

	that.print(sb.String())
}

func (that *Console) SetStatusText(text string) {
	that.print("\n" + that.out.String(text).Bold().String() + "\n")
}

func (that *Console) ShowStartControl(onStart tictactoe.Action) {
	that.onStart = onStart
	that.print(that.hint("type 'start' to play") + "\n")
}

func (that *Console) ShowResetControl(onReset tictactoe.Action) {
	that.onReset = onReset
	that.print(that.hint("type 'reset' to play again") + "\n")
}

func (that *Console) OnCellActivated(handler func(index int)) {
	that.onCell = handler
}

// AskName reads the next line as the player's name.
func (that *Console) AskName(ctx context.Context, ordinal int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	that.print(fmt.Sprintf("Enter Player %d's Name: ", ordinal))

	line, err := that.readLine()
	if err != nil {
		return "", err
	}

	return line, nil
}

// Run reads commands until quit, end of input or ctx is canceled.
func (that *Console) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := that.readLine()
		if err != nil {
			if errors.Is(err, apperror.ErrInputClosed) {
				return nil
			}

			return err
		}

		switch command := strings.ToLower(line); command {
		case "":
			continue
		case commandQuit, commandExit:
			return nil
		case commandStart:
			that.press(ctx, &that.onStart)
		case commandReset:
			that.press(ctx, &that.onReset)
		default:
			index, ok := parseCell(command)
			if !ok {
				log.Debug("unknown command", "command", command)
				that.print(that.hint("unknown command, use 1-9, start, reset or quit") + "\n")
				continue
			}

			if that.onCell != nil {
				that.onCell(index)
			}
		}
	}
}

// press calls the control's action once and forgets it. Controls that aren't shown are ignored.
func (that *Console) press(ctx context.Context, control *tictactoe.Action) {
	action := *control
	if action == nil {
		return
	}

	*control = nil
	action(ctx)
}

func (that *Console) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", apperror.ErrInputClosed
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func (that *Console) cell(index int, mark entity.Mark) string {
	switch mark {
	case entity.PlayerX:
		return that.out.String(string(mark)).Foreground(that.out.Color("1")).Bold().String()
	case entity.PlayerO:
		return that.out.String(string(mark)).Foreground(that.out.Color("4")).Bold().String()
	default:
		return that.out.String(strconv.Itoa(index + 1)).Faint().String()
	}
}

func (that *Console) hint(text string) string {
	return that.out.String(text).Italic().String()
}

func (that *Console) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Warn("failed to write output", "error", err)
	}
}

// parseCell maps the keys 1-9 to cell indexes. Other numbers are passed through
// shifted by one so the game controller can reject them.
func parseCell(command string) (int, bool) {
	number, err := strconv.Atoi(command)
	if err != nil {
		return 0, false
	}

	return number - 1, true
}
