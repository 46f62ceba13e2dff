package bot

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	tele "gopkg.in/telebot.v4"
)

// recordingContext captures replies without a live telegram connection.
// Handlers only touch Chat, Text and Send.
type recordingContext struct {
	tele.Context

	chat *tele.Chat
	text string

	sent []interface{}
}

func (c *recordingContext) Chat() *tele.Chat { return c.chat }
func (c *recordingContext) Text() string     { return c.text }
func (c *recordingContext) Send(what interface{}, opts ...interface{}) error {
	c.sent = append(c.sent, what)
	return nil
}

// newTestBot wires only what the text handlers need. The nil stores and
// clients double as a check that ignored messages touch no backend.
func newTestBot() *Bot {
	return &Bot{
		log:      logrus.StandardLogger().WithField("type", "bot"),
		sessions: newSessionManager(),
		decimals: 6,
	}
}

func TestHandleText_IgnoredWhenIdle(t *testing.T) {
	b := newTestBot()
	c := &recordingContext{chat: &tele.Chat{ID: 42}, text: "100"}

	assert.NoError(t, b.handleText(c))
	assert.Empty(t, c.sent)
	assert.Equal(t, stateIdle, b.sessions.get(42))
}

func TestHandleText_AwaitingAmountClearsSession(t *testing.T) {
	b := newTestBot()
	b.sessions.set(42, stateAwaitingStakeAmount)

	c := &recordingContext{chat: &tele.Chat{ID: 42}, text: "not a number"}

	assert.NoError(t, b.handleText(c))
	assert.Equal(t, stateIdle, b.sessions.get(42))
	assert.Equal(t, []interface{}{msgInvalidAmount}, c.sent)
}

func TestHandleText_OtherChatUnaffected(t *testing.T) {
	b := newTestBot()
	b.sessions.set(42, stateAwaitingStakeAmount)

	c := &recordingContext{chat: &tele.Chat{ID: 7}, text: "100"}

	assert.NoError(t, b.handleText(c))
	assert.Empty(t, c.sent)
	assert.Equal(t, stateAwaitingStakeAmount, b.sessions.get(42))
}

func TestHandleStakeAmount_WholeTokensOnly(t *testing.T) {
	for _, input := range []string{"100.5", "abc", "-5", "0", ""} {
		b := newTestBot()
		b.sessions.set(42, stateAwaitingStakeAmount)

		c := &recordingContext{chat: &tele.Chat{ID: 42}, text: input}

		assert.NoError(t, b.handleText(c), input)
		assert.Equal(t, []interface{}{msgInvalidAmount}, c.sent, input)
	}
}
