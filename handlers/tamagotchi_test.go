package handlers

import (
	"bytes"
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xpquest/ledger"
	"xpquest/storage"
	"xpquest/story"
)

type failingReplier struct{}

func (failingReplier) Reply(context.Context, string) (string, error) {
	return "", errors.New("model offline")
}

type memoryStore struct {
	state   story.GameState
	saves   int
	saveErr error
	loadErr error
}

func (m *memoryStore) Load(context.Context) (story.GameState, error) {
	if m.loadErr != nil {
		return story.GameState{}, m.loadErr
	}
	return m.state, nil
}

func (m *memoryStore) Save(_ context.Context, st story.GameState) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.state = st
	return nil
}

func (m *memoryStore) Close() error { return nil }

func newTamagotchi(store storage.Store, replier Replier) (*Tamagotchi, *bytes.Buffer, *bytes.Buffer) {
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	return &Tamagotchi{
		Ledger:     ledger.New(ledger.LevelingPolicy),
		Transcript: story.NewTranscript(nil),
		Store:      store,
		Replier:    replier,
		MaxTurns:   20,
		Out:        out,
		Log:        log.New(logs, "", 0),
	}, out, logs
}

func TestTamagotchiChatTurnAwardsAndSaves(t *testing.T) {
	store := &memoryStore{}
	h, out, _ := newTamagotchi(store, EchoReplier{})

	done, err := h.HandleInput(context.Background(), "hello there")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, ChatXP, h.Ledger.XP())
	assert.Equal(t, 1, store.saves)
	assert.Equal(t, ledger.Snapshot{XP: 10, Level: 1, TotalXP: 10}, store.state.Snapshot)
	assert.Equal(t, []story.Turn{
		{Role: story.RoleUser, Content: "hello there"},
		{Role: story.RoleAssistant, Content: "Thank you! I will remember that: hello there"},
	}, store.state.History)
	assert.Contains(t, out.String(), "AI: Thank you!")
}

func TestTamagotchiTeachBonus(t *testing.T) {
	store := &memoryStore{}
	h, out, _ := newTamagotchi(store, EchoReplier{})

	_, err := h.HandleInput(context.Background(), "TEACH: water boils at 100C")
	require.NoError(t, err)
	assert.Equal(t, ChatXP+TeachBonus, h.Ledger.XP())
	assert.Equal(t, "water boils at 100C", store.state.History[0].Content)
	assert.Contains(t, out.String(), "+25 XP")
}

func TestTamagotchiLevelsUp(t *testing.T) {
	h, out, _ := newTamagotchi(&memoryStore{}, EchoReplier{})
	for i := 0; i < 3; i++ {
		_, err := h.HandleInput(context.Background(), "teach: fact")
		require.NoError(t, err)
	}
	assert.Equal(t, 2, h.Ledger.Level())
	assert.Equal(t, 5, h.Ledger.XP())
	assert.Equal(t, 1, strings.Count(out.String(), "reached level 2"))
}

func TestTamagotchiCommands(t *testing.T) {
	store := &memoryStore{}
	h, out, _ := newTamagotchi(store, EchoReplier{})
	ctx := context.Background()

	done, err := h.HandleInput(ctx, "   ")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Zero(t, store.saves)

	done, err = h.HandleInput(ctx, "Status")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Contains(t, out.String(), "Level: 1, XP: 0/100")
	assert.Zero(t, h.Transcript.Len())

	done, err = h.HandleInput(ctx, "quit")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, 1, store.saves)
}

func TestTamagotchiReplierFailureFallsBack(t *testing.T) {
	h, out, logs := newTamagotchi(&memoryStore{}, failingReplier{})

	_, err := h.HandleInput(context.Background(), "hi")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "AI: I'm having trouble thinking right now.")
	assert.Contains(t, logs.String(), "model offline")
	assert.Equal(t, ChatXP, h.Ledger.XP())
}

func TestTamagotchiSaveFailureIsLogged(t *testing.T) {
	h, _, logs := newTamagotchi(&memoryStore{saveErr: errors.New("disk full")}, EchoReplier{})

	_, err := h.HandleInput(context.Background(), "hi")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "Failed to save state: disk full")
	assert.Equal(t, ChatXP, h.Ledger.XP())
}

func TestTamagotchiRunPersistsAcrossSessions(t *testing.T) {
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "ai_state.json"))
	require.NoError(t, err)
	ctx := context.Background()
	logger := log.New(&bytes.Buffer{}, "", 0)

	l, tr := LoadTamagotchi(ctx, store, logger)
	h := &Tamagotchi{Ledger: l, Transcript: tr, Store: store, Replier: EchoReplier{}, MaxTurns: 20, Out: &bytes.Buffer{}, Log: logger}
	require.NoError(t, h.Run(ctx, strings.NewReader("teach: one\nteach: two\nteach: three\nexit\n")))

	l, tr = LoadTamagotchi(ctx, store, logger)
	assert.Equal(t, ledger.Snapshot{XP: 5, Level: 2, TotalXP: 105}, l.Snapshot())
	assert.Equal(t, 6, tr.Len())
}

func TestLoadTamagotchiFallsBackOnBadState(t *testing.T) {
	logs := &bytes.Buffer{}
	logger := log.New(logs, "", 0)

	l, tr := LoadTamagotchi(context.Background(), &memoryStore{loadErr: storage.ErrNotFound}, logger)
	assert.Equal(t, 1, l.Level())
	assert.Zero(t, tr.Len())
	assert.Empty(t, logs.String())

	bad := &memoryStore{state: story.GameState{Snapshot: ledger.Snapshot{XP: -3}}}
	l, _ = LoadTamagotchi(context.Background(), bad, logger)
	assert.Equal(t, ledger.Snapshot{Level: 1}, l.Snapshot())
	assert.Contains(t, logs.String(), "Failed to load state")
}

func TestParseChat(t *testing.T) {
	msg, bonus := parseChat("teach:  gravity pulls ")
	assert.Equal(t, "gravity pulls", msg)
	assert.Equal(t, TeachBonus, bonus)

	msg, bonus = parseChat("teaching is fun")
	assert.Equal(t, "teaching is fun", msg)
	assert.Zero(t, bonus)
}
