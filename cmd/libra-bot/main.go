package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/libra-stake/libra-bot/pkg/bot"
	"github.com/libra-stake/libra-bot/pkg/config"
	userpg "github.com/libra-stake/libra-bot/pkg/data/user/postgres"
	pg "github.com/libra-stake/libra-bot/pkg/database/postgres"
	"github.com/libra-stake/libra-bot/pkg/solana"
	"github.com/libra-stake/libra-bot/pkg/solana/staking"
	"github.com/libra-stake/libra-bot/pkg/solana/token"
	"github.com/libra-stake/libra-bot/pkg/stake"
)

func main() {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("invalid log level")
	}
	log.SetLevel(level)

	db, err := pg.Connect(cfg.PostgresDSN, cfg.MaxOpenConnections, cfg.MaxIdleConnections)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer db.Close()

	users := userpg.New(db)

	sc := solana.New(cfg.SolanaRPCEndpoint)
	tokens := token.NewClient(sc, cfg.StakeTokenMint.PublicKey())
	stakingClient := staking.NewClient(sc, cfg.StakingProgramID.PublicKey(), cfg.ContractDataAccount.PublicKey())
	stakeService := stake.NewService(
		sc,
		cfg.StakingProgramID.PublicKey(),
		cfg.StakeTokenMint.PublicKey(),
		cfg.ContractTokenAccount.PublicKey(),
		cfg.ContractDataAccount.PublicKey(),
		cfg.StakeTokenDecimals,
	)

	b, err := bot.New(
		bot.Config{
			Token:    cfg.TelegramToken,
			Decimals: cfg.StakeTokenDecimals,
		},
		users,
		sc,
		tokens,
		stakingClient,
		stakeService,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to create bot")
	}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		log.Info("shutting down")
		b.Stop()
	}()

	if err := b.Run(); err != nil {
		log.WithError(err).Fatal("bot stopped with error")
	}
}
