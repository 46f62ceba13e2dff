package bot

import (
	"fmt"
	"strconv"
	"time"
)

const (
	msgNoWallet          = "Cannot perform operation. User does not have a wallet."
	msgTemporaryError    = "Something went wrong, please try again later."
	msgEnterStakeAmount  = "Enter amount of $Libra to stake..."
	msgInvalidAmount     = "Invalid amount entered... try again"
	msgContractNotReady  = "Staking contract has not been initialized by admin.."
	msgNoTokenAccount    = "Token account for $Libra not found ❌. Please send some tokens into your bot wallet."
	msgInsufficientFunds = "Insufficient $Libra balance for staking 😔"
	msgStakeFailed       = "An Error Occurred: Could not stake tokens. ❌"
	msgNothingStaked     = "Cannot perform unstake without staking tokens ❌❌"
	msgUnstakeTooEarly   = "Staked tokens has not been held for 24hrs ❌"
	msgUnstakeFailed     = "An Error Occurred: Could not un-stake tokens. ❌"
	msgUnstakeSuccess    = "$Libra successfully un-staked 🚀🎉"

	msgConfirmExportKey = "Are you sure you want to export your <b>Private Key?</b>"
)

func stakeSuccessMessage(amount float64) string {
	return fmt.Sprintf("%s $Libra successfully staked 🚀🎉", formatAmount(amount))
}

func startMessage(publicKey string, solBalance, libraBalance float64, newUser bool) string {
	if newUser {
		return fmt.Sprintf(`Welcome to Libra Bot
A bot for staking Libra tokens 💹 and earning rewards 📈.

You currently have no SOL balance. To get started with staking, send some SOL to your libra wallet address:

<code>%s</code> (tap to copy)

Once done, transfer the amount of $Libra Tokens you would like to stake into the above wallet address.

You can then click on the Stake and unstake buttons below to stake and unstake $Libra tokens from your wallet.
For more info on your wallet and to retrieve your private key, tap the wallet button below. Please do not expose your private key ❗️❗️.`, publicKey)
	}

	return fmt.Sprintf(`Welcome to Libra Bot
A bot for staking Libra tokens 💹 and earning rewards 📈.

SOL BALANCE: %s
$LIBRA BALANCE: %s

WALLET: <code>%s</code> (tap to copy)

You can transfer SOL and $Libra to the wallet above for staking.

You can then click on the Stake and unstake buttons below to stake and unstake $Libra tokens from your wallet.
For more info on your wallet and to retrieve your private key, tap the wallet button below. Please do not expose your private key ❗️❗️.`,
		formatAmount(solBalance),
		formatAmount(libraBalance),
		publicKey,
	)
}

func walletMessage(publicKey string, solBalance, libraBalance float64) string {
	return fmt.Sprintf(`Your Wallet:

  Address: <code>%s</code>
  SOL Balance: %s SOL
  LIBRA Balance: %s LIBRA

  Tap to copy the address and send SOL to deposit.`,
		publicKey,
		formatAmount(solBalance),
		formatAmount(libraBalance),
	)
}

func stakingInfoMessage(totalStaked float64, stakeTime time.Time, apy, earnings float64) string {
	return fmt.Sprintf(`<b>Your Staking Info 🚀</b>:


  Total Staked 💰: %s LIBRA

  Stake Time ⏰: %s

  APY 🤑: %s%%

  Current Earnings 💵: %s LIBRA

  Unstake Time: You cannot unstake until after 24hrs of staking.`,
		formatAmount(totalStaked),
		formatDateTime(stakeTime),
		formatAmount(apy),
		formatAmount(earnings),
	)
}

func privateKeyMessage(secretKey string) string {
	return fmt.Sprintf(`Your Private Key is:

<code>%s</code>

Delete this message once you are done.`, secretKey)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDateTime(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d %d:%d:%d",
		t.Month(), t.Day(), t.Year(),
		t.Hour(), t.Minute(), t.Second(),
	)
}
