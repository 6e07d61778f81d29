package story

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"xpquest/ledger"
)

// Roles used in the transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one line of the conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UnmarshalJSON also accepts the older ["role", "content"] pair form.
func (t *Turn) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("history turn: want [role, content], got %d elements", len(pair))
		}
		t.Role, t.Content = pair[0], pair[1]
		return nil
	}
	type plain Turn
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("history turn: %w", err)
	}
	*t = Turn(p)
	return nil
}

// GameState is everything the Tamagotchi keeps between sessions. The ledger
// fields are inlined so the file reads {"xp", "level", "total_xp", "history"}.
type GameState struct {
	ledger.Snapshot
	History []Turn `json:"history"`
}

// Transcript is the running chat history.
type Transcript struct {
	turns []Turn
}

// NewTranscript wraps previously saved turns.
func NewTranscript(turns []Turn) *Transcript {
	return &Transcript{turns: append([]Turn(nil), turns...)}
}

// Append records a turn.
func (t *Transcript) Append(role, content string) {
	t.turns = append(t.turns, Turn{Role: role, Content: content})
}

// Turns returns a copy of the history.
func (t *Transcript) Turns() []Turn {
	return append([]Turn(nil), t.turns...)
}

// Len reports how many turns are stored.
func (t *Transcript) Len() int {
	return len(t.turns)
}

// Prompt renders the last maxTurns turns as "Role: content" lines followed by
// the assistant cue.
func (t *Transcript) Prompt(maxTurns int) string {
	recent := t.turns
	if maxTurns >= 0 && len(recent) > maxTurns {
		recent = recent[len(recent)-maxTurns:]
	}
	var b strings.Builder
	for _, turn := range recent {
		b.WriteString(capitalize(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	b.WriteString("Assistant:")
	return b.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
