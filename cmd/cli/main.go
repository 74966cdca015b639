package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/benbeisheim/kingcapture-backend/internal/model"
	"github.com/benbeisheim/kingcapture-backend/internal/render"
	"github.com/gofiber/fiber/v2/log"
)

const (
	exitOK  = 0
	exitErr = 1
)

var fen = flag.String("fen", "", "start from this FEN position instead of the standard one")

func main() {
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, *fen); err != nil {
		log.Error(err)
		os.Exit(exitErr)
	}
	os.Exit(exitOK)
}

// run plays a hot-seat game. Each line is "<from> <to>", "moves <square>" or "quit".
func run(in io.Reader, out io.Writer, fen string) error {
	var opts []model.GameOption
	if fen != "" {
		opts = append(opts, model.WithFEN(fen))
	}
	game, err := model.NewGame("local", opts...)
	if err != nil {
		return err
	}

	if err := draw(out, game, nil); err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		switch {
		case len(fields) == 0:
			continue
		case fields[0] == "quit":
			return nil
		case fields[0] == "moves" && len(fields) == 2:
			from, err := model.ParseSquare(fields[1])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			targets, _ := game.LegalTargets(from)
			if err := draw(out, game, targets); err != nil {
				return err
			}
		case len(fields) == 2:
			if err := play(game, fields[0], fields[1]); err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			if err := draw(out, game, nil); err != nil {
				return err
			}
			if game.IsGameOver() {
				return nil
			}
		default:
			fmt.Fprintln(out, `enter "<from> <to>", "moves <square>" or "quit"`)
		}
	}
	return scanner.Err()
}

func play(game *model.Game, from, to string) error {
	start, err := model.ParseSquare(from)
	if err != nil {
		return err
	}
	end, err := model.ParseSquare(to)
	if err != nil {
		return err
	}
	_, err = game.ApplyMove(model.MoveRequest{From: start, To: end})
	if errors.Is(err, model.ErrIllegalMove) {
		return fmt.Errorf("illegal move %s-%s", start, end)
	}
	return err
}

func draw(out io.Writer, game *model.Game, targets []model.Square) error {
	state := game.State()
	if err := render.Board(out, state.Board, targets); err != nil {
		return err
	}
	return render.Status(out, state)
}
