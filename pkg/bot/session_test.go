package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionManager(t *testing.T) {
	m := newSessionManager()

	assert.Equal(t, stateIdle, m.get(1))

	m.set(1, stateAwaitingStakeAmount)
	assert.Equal(t, stateAwaitingStakeAmount, m.get(1))
	assert.Equal(t, stateIdle, m.get(2))

	m.clear(1)
	assert.Equal(t, stateIdle, m.get(1))
}
