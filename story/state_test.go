package story

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranscriptPrompt(t *testing.T) {
	tr := NewTranscript(nil)
	tr.Append(RoleUser, "hello")
	tr.Append(RoleAssistant, "hi there")

	assert.Equal(t, "User: hello\nAssistant: hi there\nAssistant:", tr.Prompt(20))
}

func TestTranscriptPromptKeepsLastTurns(t *testing.T) {
	tr := NewTranscript([]Turn{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
	})

	assert.Equal(t, "Assistant: two\nUser: three\nAssistant:", tr.Prompt(2))
	assert.Equal(t, "Assistant:", tr.Prompt(0))
	assert.Equal(t, 3, tr.Len())
}

func TestTranscriptTurnsIsACopy(t *testing.T) {
	tr := NewTranscript(nil)
	tr.Append(RoleUser, "a")
	turns := tr.Turns()
	turns[0].Content = "changed"

	assert.Equal(t, "a", tr.Turns()[0].Content)
}

func TestGameStateDecodesPairHistory(t *testing.T) {
	raw := `{"xp": 40, "level": 2, "history": [["user", "hi"], {"role": "assistant", "content": "hello"}]}`

	var st GameState
	assert.NoError(t, json.Unmarshal([]byte(raw), &st))
	assert.Equal(t, 40, st.XP)
	assert.Equal(t, 2, st.Level)
	assert.Equal(t, []Turn{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}}, st.History)
}

func TestGameStateRejectsShortPair(t *testing.T) {
	var st GameState
	assert.Error(t, json.Unmarshal([]byte(`{"history": [["user"]]}`), &st))
}
