package handlers

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xpquest/ledger"
	"xpquest/prompts"
)

// promptWriter discards output and closes reached once want has been
// written n times.
type promptWriter struct {
	want    string
	n       int
	reached chan struct{}
	once    sync.Once
}

func newPromptWriter(want string, n int) *promptWriter {
	return &promptWriter{want: want, n: n, reached: make(chan struct{})}
}

func (w *promptWriter) Write(p []byte) (int, error) {
	w.n -= strings.Count(string(p), w.want)
	if w.n <= 0 {
		w.once.Do(func() { close(w.reached) })
	}
	return len(p), nil
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for prompt")
	}
}

func runResult(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
		return nil
	}
}

func TestLineReader(t *testing.T) {
	ctx := context.Background()
	r := newLineReader(ctx, strings.NewReader("one\ntwo"))

	line, ok, err := r.next(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "one", line)

	line, ok, _ = r.next(ctx)
	assert.True(t, ok)
	assert.Equal(t, "two", line)

	_, ok, err = r.next(ctx)
	assert.False(t, ok)
	assert.NoError(t, err)
}

func TestLineReaderReportsReadError(t *testing.T) {
	ctx := context.Background()
	pr, pw := io.Pipe()
	pw.CloseWithError(errors.New("tty gone"))

	_, ok, err := newLineReader(ctx, pr).next(ctx)
	assert.False(t, ok)
	assert.EqualError(t, err, "tty gone")
}

func TestLineReaderStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	r := newLineReader(ctx, pr)
	cancel()

	_, ok, err := r.next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTamagotchiRunStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	store := &memoryStore{}
	h, _, _ := newTamagotchi(store, EchoReplier{})
	out := newPromptWriter("You: ", 2)
	h.Out = out

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- h.Run(ctx, io.MultiReader(strings.NewReader("teach: stars are far\n"), pr)) }()

	waitFor(t, out.reached)
	cancel()
	require.ErrorIs(t, runResult(t, errc), context.Canceled)

	// One save for the chat turn, one on the way out.
	assert.Equal(t, 2, store.saves)
	assert.Equal(t, ledger.Snapshot{XP: 35, Level: 1, TotalXP: 35}, store.state.Snapshot)
	assert.Len(t, store.state.History, 2)
}

func TestWorldRunStopsOnCancel(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		prompt string
		count  int
	}{
		{"at command prompt", "east\n", "> ", 2},
		{"awaiting oracle answer", "west\nnorth\nask\n", prompts.OracleAnswerPrompt, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr, pw := io.Pipe()
			defer pw.Close()
			h, _ := newWorld(t, ledger.UnclampedPolicy)
			out := newPromptWriter(tt.prompt, tt.count)
			h.Env.Out = out

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			errc := make(chan error, 1)
			go func() { errc <- h.Run(ctx, io.MultiReader(strings.NewReader(tt.input), pr)) }()

			waitFor(t, out.reached)
			cancel()
			require.ErrorIs(t, runResult(t, errc), context.Canceled)
		})
	}
}
