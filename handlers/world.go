package handlers

import (
	"context"
	"fmt"
	"io"
	"strings"

	"xpquest/prompts"
	"xpquest/world"
)

// World runs the KBC grid game. Its ledger lives only for the process.
type World struct {
	Map    *world.Map
	Player *world.Player
	Env    *world.Env
}

// HandleCommand processes one command after the turn's tick. It reports true
// when the player asked to leave.
func (h *World) HandleCommand(cmd string) (bool, error) {
	cmd = strings.ToLower(strings.TrimSpace(cmd))
	out := h.Env.Out
	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		fmt.Fprint(out, prompts.KBCGoodbye)
		return true, nil
	case "status":
		fmt.Fprintf(out, prompts.KBCStatus,
			h.Env.Ledger.TotalXP(), h.Env.Ledger.XP(),
			h.Player.Pos.X, h.Player.Pos.Y, h.Player.Age)
		return false, nil
	case "wait":
		fmt.Fprint(out, prompts.KBCWait)
		return false, nil
	case "help":
		fmt.Fprint(out, prompts.KBCHelp)
		return false, nil
	}

	if dir, ok := world.ParseDirection(cmd); ok {
		if !h.Player.Move(h.Map, dir) {
			fmt.Fprintf(out, prompts.KBCEdge, dir.Name)
			return false, nil
		}
		if _, err := h.Env.Ledger.ApplyGain(h.Env.Rewards.Move); err != nil {
			return false, err
		}
		world.Enter(h.Env, h.Map.At(h.Player.Pos))
		return false, nil
	}

	handled, err := world.Interact(h.Env, h.Map.At(h.Player.Pos), cmd)
	if err != nil {
		return false, err
	}
	if !handled {
		fmt.Fprint(out, prompts.KBCUnknown)
	}
	return false, nil
}

// Run plays until the player quits, input ends or ctx is cancelled.
func (h *World) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := newLineReader(ctx, in)

	out := h.Env.Out
	h.Env.ReadAnswer = func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		line, ok, err := lines.next(ctx)
		if !ok {
			if err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return line, nil
	}

	fmt.Fprint(out, prompts.KBCWelcome)
	fmt.Fprint(out, prompts.KBCHelp)
	for {
		h.Player.Tick()
		tile := h.Map.At(h.Player.Pos)
		fmt.Fprintf(out, prompts.KBCLocation, tile.Name, h.Player.Pos.X, h.Player.Pos.Y)
		fmt.Fprint(out, "> ")
		line, ok, err := lines.next(ctx)
		if !ok {
			return err
		}
		done, err := h.HandleCommand(line)
		if err != nil || done {
			return err
		}
	}
}
