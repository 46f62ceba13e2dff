// Package bot is the Telegram surface of the staking bot. Each chat gets a
// custodial wallet; the bot reads balances and program state over RPC and
// submits stake and unstake transactions on the user's behalf.
package bot

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v4"

	"github.com/libra-stake/libra-bot/pkg/data/user"
	"github.com/libra-stake/libra-bot/pkg/solana"
	"github.com/libra-stake/libra-bot/pkg/solana/staking"
	"github.com/libra-stake/libra-bot/pkg/solana/token"
	"github.com/libra-stake/libra-bot/pkg/stake"
	"github.com/libra-stake/libra-bot/pkg/wallet"
)

const lamportsPerSol = 1_000_000_000

// the program requires tokens to be held for a day before unstaking
const minStakeHold = 24 * time.Hour

var (
	btnStake       = tele.Btn{Unique: "stake", Text: "Stake 🤑"}
	btnUnstake     = tele.Btn{Unique: "unstake", Text: "Unstake 🐷"}
	btnStakingInfo = tele.Btn{Unique: "staking_info", Text: "Staking Info 💵"}
	btnWallet      = tele.Btn{Unique: "wallet", Text: "Wallet 💳"}

	btnPrivateKey    = tele.Btn{Unique: "private_key", Text: "Export Private Key"}
	btnPrivateKeyYes = tele.Btn{Unique: "pk_yes", Text: "Yes"}
	btnPrivateKeyNo  = tele.Btn{Unique: "pk_no", Text: "No"}
)

type Config struct {
	Token       string
	PollTimeout time.Duration

	// Decimals of the stake token mint.
	Decimals uint8
}

type Bot struct {
	log *logrus.Entry
	tb  *tele.Bot

	users    user.Store
	sc       solana.Client
	tokens   *token.Client
	staking  *staking.Client
	stake    *stake.Service
	sessions *sessionManager

	decimals uint8
}

func New(
	cfg Config,
	users user.Store,
	sc solana.Client,
	tokens *token.Client,
	stakingClient *staking.Client,
	stakeService *stake.Service,
) (*Bot, error) {
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 10 * time.Second
	}

	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: cfg.PollTimeout},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create telegram bot")
	}

	b := &Bot{
		log:      logrus.StandardLogger().WithField("type", "bot"),
		tb:       tb,
		users:    users,
		sc:       sc,
		tokens:   tokens,
		staking:  stakingClient,
		stake:    stakeService,
		sessions: newSessionManager(),
		decimals: cfg.Decimals,
	}
	b.register()

	return b, nil
}

func (b *Bot) register() {
	b.tb.Handle("/start", b.handleStart)
	b.tb.Handle("/wallet", b.handleWallet)
	b.tb.Handle("/staking_info", b.handleStakingInfo)

	b.tb.Handle(&btnStake, b.handleStakePrompt)
	b.tb.Handle(&btnUnstake, b.handleUnstake)
	b.tb.Handle(&btnStakingInfo, b.handleStakingInfo)
	b.tb.Handle(&btnWallet, b.handleWallet)
	b.tb.Handle(&btnPrivateKey, b.handlePrivateKeyPrompt)
	b.tb.Handle(&btnPrivateKeyYes, b.handlePrivateKeyExport)
	b.tb.Handle(&btnPrivateKeyNo, func(c tele.Context) error {
		return c.Respond()
	})

	b.tb.Handle(tele.OnText, b.handleText)
}

// Run starts long polling and blocks until Stop is called.
func (b *Bot) Run() error {
	err := b.tb.SetCommands([]tele.Command{
		{Text: "start", Description: "Start the bot 🤖"},
		{Text: "wallet", Description: "View your wallet information 💳"},
		{Text: "staking_info", Description: "Monitor staked tokens and accrued interest 💹"},
	})
	if err != nil {
		return errors.Wrap(err, "failed to set bot commands")
	}

	b.log.Info("starting bot")
	b.tb.Start()
	return nil
}

func (b *Bot) Stop() {
	b.tb.Stop()
}

// handleStart finds or creates the chat's custodial wallet and shows the
// main menu.
func (b *Bot) handleStart(c tele.Context) error {
	chatID := c.Chat().ID
	log := b.log.WithField("chat_id", chatID)

	record, err := b.users.GetByChatID(context.Background(), chatID)
	if err == user.ErrNotFound {
		record, err = b.createWallet(chatID)
		if err != nil {
			log.WithError(err).Warn("failed to create wallet")
			return c.Send(msgTemporaryError)
		}

		return c.Send(startMessage(record.PublicKey, 0, 0, true), mainMenu(), tele.ModeHTML)
	} else if err != nil {
		log.WithError(err).Warn("failed to load user")
		return c.Send(msgTemporaryError)
	}

	solBalance, libraBalance, err := b.balances(record)
	if err != nil {
		log.WithError(err).Warn("failed to load balances")
		return c.Send(msgTemporaryError)
	}

	return c.Send(startMessage(record.PublicKey, solBalance, libraBalance, false), mainMenu(), tele.ModeHTML)
}

func (b *Bot) handleWallet(c tele.Context) error {
	log := b.log.WithField("chat_id", c.Chat().ID)

	record, err := b.users.GetByChatID(context.Background(), c.Chat().ID)
	if err == user.ErrNotFound {
		return c.Send(msgNoWallet)
	} else if err != nil {
		log.WithError(err).Warn("failed to load user")
		return c.Send(msgTemporaryError)
	}

	solBalance, libraBalance, err := b.balances(record)
	if err != nil {
		log.WithError(err).Warn("failed to load balances")
		return c.Send(msgTemporaryError)
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnPrivateKey))

	return c.Send(walletMessage(record.PublicKey, solBalance, libraBalance), markup, tele.ModeHTML)
}

func (b *Bot) handleStakingInfo(c tele.Context) error {
	log := b.log.WithField("chat_id", c.Chat().ID)

	record, err := b.users.GetByChatID(context.Background(), c.Chat().ID)
	if err == user.ErrNotFound {
		return c.Send(msgNoWallet)
	} else if err != nil {
		log.WithError(err).Warn("failed to load user")
		return c.Send(msgTemporaryError)
	}

	owner, err := base58.Decode(record.PublicKey)
	if err != nil {
		return errors.Wrap(err, "invalid stored public key")
	}

	userAccount, err := b.staking.GetUserAccount(owner, solana.CommitmentConfirmed)
	if errors.Is(err, staking.ErrAccountNotFound) {
		return c.Send(msgNothingStaked)
	} else if err != nil {
		log.WithError(err).Warn("failed to load user stake account")
		return c.Send(msgTemporaryError)
	}

	var apy float64
	contract, err := b.staking.GetContractAccount(solana.CommitmentConfirmed)
	if err == nil {
		apy = float64(contract.NormalStakingApy) / 10
	}

	stakeTime := time.Unix(int64(userAccount.StakeTs), 0)
	totalStaked := b.fromQuarks(userAccount.TotalStaked)

	// apy% of the stake, pro rated over the elapsed fraction of a year
	stakeDuration := time.Since(stakeTime)
	earnings := (apy * float64(userAccount.TotalStaked) * float64(stakeDuration.Milliseconds()) / 31_536_000_000) / math.Pow10(int(b.decimals))

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnUnstake))

	return c.Send(stakingInfoMessage(totalStaked, stakeTime, apy, earnings), markup, tele.ModeHTML)
}

// handleStakePrompt begins the stake conversation. The amount arrives as the
// next text message.
func (b *Bot) handleStakePrompt(c tele.Context) error {
	if err := c.Respond(); err != nil {
		return err
	}

	_, err := b.users.GetByChatID(context.Background(), c.Chat().ID)
	if err == user.ErrNotFound {
		return c.Send(msgNoWallet)
	} else if err != nil {
		b.log.WithError(err).Warn("failed to load user")
		return c.Send(msgTemporaryError)
	}

	b.sessions.set(c.Chat().ID, stateAwaitingStakeAmount)
	return c.Send(msgEnterStakeAmount)
}

func (b *Bot) handleText(c tele.Context) error {
	switch b.sessions.get(c.Chat().ID) {
	case stateAwaitingStakeAmount:
		b.sessions.clear(c.Chat().ID)
		return b.handleStakeAmount(c)
	default:
		return nil
	}
}

func (b *Bot) handleStakeAmount(c tele.Context) error {
	log := b.log.WithField("chat_id", c.Chat().ID)

	// whole tokens only
	tokens, err := strconv.ParseUint(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil || tokens == 0 {
		return c.Send(msgInvalidAmount)
	}
	amount := float64(tokens)

	record, err := b.users.GetByChatID(context.Background(), c.Chat().ID)
	if err == user.ErrNotFound {
		return c.Send(msgNoWallet)
	} else if err != nil {
		log.WithError(err).Warn("failed to load user")
		return c.Send(msgTemporaryError)
	}

	contract, err := b.staking.GetContractAccount(solana.CommitmentConfirmed)
	if errors.Is(err, staking.ErrAccountNotFound) {
		return c.Send(msgContractNotReady)
	} else if err != nil {
		log.WithError(err).Warn("failed to load contract account")
		return c.Send(msgTemporaryError)
	}

	minimumStakeAmount := b.fromQuarks(contract.MinimumStakeAmount)
	if amount < minimumStakeAmount {
		return c.Send("Cannot perform staking ❌. Minimum Stake Amount: " + formatAmount(minimumStakeAmount))
	}

	kp, err := wallet.FromSecretBase58(record.SecretKey)
	if err != nil {
		return errors.Wrap(err, "invalid stored secret key")
	}

	_, tokenAccount, err := b.tokens.GetAssociatedAccount(kp.Public(), solana.CommitmentConfirmed)
	if errors.Is(err, token.ErrAccountNotFound) {
		return c.Send(msgNoTokenAccount)
	} else if err != nil {
		log.WithError(err).Warn("failed to load token account")
		return c.Send(msgTemporaryError)
	}

	if b.fromQuarks(tokenAccount.Amount) < amount {
		return c.Send(msgInsufficientFunds)
	}

	success, txID, err := b.stake.Stake(kp, staking.StakeTypeNormal, amount, 0)
	if err != nil {
		log.WithError(err).Warn("stake submission failed")
		return c.Send(msgTemporaryError)
	}
	if !success {
		return c.Send(msgStakeFailed)
	}

	log.WithField("transaction", txID).Info("staked")
	return c.Send(stakeSuccessMessage(amount))
}

func (b *Bot) handleUnstake(c tele.Context) error {
	if err := c.Respond(); err != nil {
		return err
	}

	log := b.log.WithField("chat_id", c.Chat().ID)

	record, err := b.users.GetByChatID(context.Background(), c.Chat().ID)
	if err == user.ErrNotFound {
		return c.Send(msgNoWallet)
	} else if err != nil {
		log.WithError(err).Warn("failed to load user")
		return c.Send(msgTemporaryError)
	}

	kp, err := wallet.FromSecretBase58(record.SecretKey)
	if err != nil {
		return errors.Wrap(err, "invalid stored secret key")
	}

	userAccount, err := b.staking.GetUserAccount(kp.Public(), solana.CommitmentConfirmed)
	if errors.Is(err, staking.ErrAccountNotFound) {
		return c.Send(msgNothingStaked)
	} else if err != nil {
		log.WithError(err).Warn("failed to load user stake account")
		return c.Send(msgTemporaryError)
	}

	if time.Since(time.Unix(int64(userAccount.StakeTs), 0)) < minStakeHold {
		return c.Send(msgUnstakeTooEarly)
	}

	_, _, err = b.tokens.GetAssociatedAccount(kp.Public(), solana.CommitmentConfirmed)
	if errors.Is(err, token.ErrAccountNotFound) {
		return c.Send(msgNoTokenAccount)
	} else if err != nil {
		log.WithError(err).Warn("failed to load token account")
		return c.Send(msgTemporaryError)
	}

	success, txID, err := b.stake.Unstake(kp)
	if err != nil {
		log.WithError(err).Warn("unstake submission failed")
		return c.Send(msgTemporaryError)
	}
	if !success {
		return c.Send(msgUnstakeFailed)
	}

	log.WithField("transaction", txID).Info("unstaked")
	return c.Send(msgUnstakeSuccess)
}

func (b *Bot) handlePrivateKeyPrompt(c tele.Context) error {
	if err := c.Respond(); err != nil {
		return err
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnPrivateKeyYes, btnPrivateKeyNo))

	return c.Send(msgConfirmExportKey, markup, tele.ModeHTML)
}

func (b *Bot) handlePrivateKeyExport(c tele.Context) error {
	if err := c.Respond(); err != nil {
		return err
	}

	record, err := b.users.GetByChatID(context.Background(), c.Chat().ID)
	if err == user.ErrNotFound {
		return c.Send(msgNoWallet)
	} else if err != nil {
		b.log.WithError(err).Warn("failed to load user")
		return c.Send(msgTemporaryError)
	}

	return c.Send(privateKeyMessage(record.SecretKey), tele.ModeHTML)
}

func (b *Bot) createWallet(chatID int64) (*user.Record, error) {
	kp, err := wallet.Generate()
	if err != nil {
		return nil, err
	}

	record := &user.Record{
		ChatID:    chatID,
		PublicKey: kp.PublicBase58(),
		SecretKey: kp.SecretBase58(),
	}
	if err := b.users.Put(context.Background(), record); err != nil {
		return nil, err
	}

	return record, nil
}

// balances returns the wallet's SOL and stake token balances in whole units.
// A missing token account reads as a zero balance.
func (b *Bot) balances(record *user.Record) (solBalance, libraBalance float64, err error) {
	owner, err := base58.Decode(record.PublicKey)
	if err != nil {
		return 0, 0, errors.Wrap(err, "invalid stored public key")
	}

	lamports, err := b.sc.GetBalance(owner)
	if err != nil && err != solana.ErrNoBalance {
		return 0, 0, err
	}
	solBalance = float64(lamports) / lamportsPerSol

	_, tokenAccount, err := b.tokens.GetAssociatedAccount(owner, solana.CommitmentConfirmed)
	if errors.Is(err, token.ErrAccountNotFound) {
		return solBalance, 0, nil
	} else if err != nil {
		return 0, 0, err
	}

	return solBalance, b.fromQuarks(tokenAccount.Amount), nil
}

func (b *Bot) fromQuarks(quarks uint64) float64 {
	return float64(quarks) / math.Pow10(int(b.decimals))
}

func mainMenu() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnStake, btnUnstake),
		markup.Row(btnStakingInfo, btnWallet),
	)
	return markup
}
