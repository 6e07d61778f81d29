package handlers

import (
	"context"
	"fmt"
	"strings"
)

// Replier produces the AI's side of a chat turn from the rendered transcript.
type Replier interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// EchoReplier acknowledges the most recent user message. It stands in for a
// language model and keeps the game playable offline.
type EchoReplier struct{}

func (e EchoReplier) Reply(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	lines := strings.Split(prompt, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if msg, ok := strings.CutPrefix(lines[i], "User: "); ok {
			msg = strings.TrimSpace(msg)
			if msg == "" {
				break
			}
			return fmt.Sprintf("Thank you! I will remember that: %s", msg), nil
		}
	}
	return "Tell me something new!", nil
}
