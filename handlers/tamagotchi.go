package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"xpquest/ledger"
	"xpquest/prompts"
	"xpquest/storage"
	"xpquest/story"
)

// XP awarded per chat turn.
const (
	ChatXP     = 10
	TeachBonus = 25
	teachCmd   = "teach:"
)

// Tamagotchi runs the chat loop for one persisted AI pet.
type Tamagotchi struct {
	Ledger     *ledger.Ledger
	Transcript *story.Transcript
	Store      storage.Store
	Replier    Replier
	MaxTurns   int
	Out        io.Writer
	Log        *log.Logger
}

// LoadTamagotchi restores the pet from store. A missing or unreadable state
// starts a fresh pet with a warning.
func LoadTamagotchi(ctx context.Context, store storage.Store, logger *log.Logger) (*ledger.Ledger, *story.Transcript) {
	st, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Printf("Warning: Failed to load state: %v", err)
		}
		return ledger.New(ledger.LevelingPolicy), story.NewTranscript(nil)
	}
	l, err := ledger.Restore(ledger.LevelingPolicy, st.Snapshot)
	if err != nil {
		logger.Printf("Warning: Failed to load state: %v", err)
		return ledger.New(ledger.LevelingPolicy), story.NewTranscript(nil)
	}
	return l, story.NewTranscript(st.History)
}

// parseChat splits the teach: prefix off input and returns the bonus it earns.
func parseChat(input string) (string, int) {
	if len(input) >= len(teachCmd) && strings.EqualFold(input[:len(teachCmd)], teachCmd) {
		return strings.TrimSpace(input[len(teachCmd):]), TeachBonus
	}
	return input, 0
}

// HandleInput processes one line of player input. It reports true when the
// player asked to leave.
func (h *Tamagotchi) HandleInput(ctx context.Context, input string) (bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return false, nil
	}
	switch strings.ToLower(input) {
	case "exit", "quit":
		h.save(ctx)
		fmt.Fprint(h.Out, prompts.TamagotchiGoodbye)
		return true, nil
	case "status":
		fmt.Fprintf(h.Out, prompts.TamagotchiStatus, h.Ledger.Level(), h.Ledger.XP(), h.Ledger.Threshold())
		return false, nil
	}

	msg, bonus := parseChat(input)
	if bonus > 0 {
		fmt.Fprintf(h.Out, prompts.TamagotchiTaught, bonus)
	}
	h.Transcript.Append(story.RoleUser, msg)

	reply, err := h.Replier.Reply(ctx, h.Transcript.Prompt(h.MaxTurns))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			h.save(context.WithoutCancel(ctx))
			return true, ctxErr
		}
		h.Log.Printf("Error generating response: %v", err)
		reply = prompts.FallbackReply
	}
	fmt.Fprintf(h.Out, prompts.TamagotchiReply, reply)
	h.Transcript.Append(story.RoleAssistant, reply)

	ups, err := h.Ledger.ApplyGain(ChatXP + bonus)
	if err != nil {
		return false, err
	}
	for _, up := range ups {
		fmt.Fprintf(h.Out, prompts.TamagotchiLevelUp, up.Level)
	}
	h.save(ctx)
	return false, nil
}

// Run reads lines from in until the player leaves, input ends or ctx is
// cancelled. The pet is saved on every way out.
func (h *Tamagotchi) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines := newLineReader(ctx, in)

	fmt.Fprint(h.Out, prompts.TamagotchiWelcome)
	for {
		fmt.Fprint(h.Out, "You: ")
		line, ok, err := lines.next(ctx)
		if !ok {
			h.save(context.WithoutCancel(ctx))
			return err
		}
		done, err := h.HandleInput(ctx, line)
		if err != nil || done {
			return err
		}
	}
}

// save overwrites the stored state; failures are only logged.
func (h *Tamagotchi) save(ctx context.Context) {
	st := story.GameState{Snapshot: h.Ledger.Snapshot(), History: h.Transcript.Turns()}
	if err := h.Store.Save(ctx, st); err != nil {
		h.Log.Printf("Warning: Failed to save state: %v", err)
	}
}
