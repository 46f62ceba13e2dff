package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartMessage(t *testing.T) {
	newUser := startMessage("SomeAddress", 0, 0, true)
	assert.Contains(t, newUser, "<code>SomeAddress</code>")
	assert.Contains(t, newUser, "no SOL balance")

	existing := startMessage("SomeAddress", 1.5, 250, false)
	assert.Contains(t, existing, "SOL BALANCE: 1.5")
	assert.Contains(t, existing, "$LIBRA BALANCE: 250")
	assert.Contains(t, existing, "<code>SomeAddress</code>")
}

func TestStakingInfoMessage(t *testing.T) {
	stakeTime := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)

	msg := stakingInfoMessage(1000, stakeTime, 12.5, 3.25)
	assert.Contains(t, msg, "Total Staked 💰: 1000 LIBRA")
	assert.Contains(t, msg, "3/5/2024 9:30:0")
	assert.Contains(t, msg, "APY 🤑: 12.5%")
	assert.Contains(t, msg, "Current Earnings 💵: 3.25 LIBRA")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "100", formatAmount(100))
	assert.Equal(t, "0.5", formatAmount(0.5))
	assert.Equal(t, "0", formatAmount(0))
}
