package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"botbackend/src/connectors"
	"botbackend/src/hub"
	"botbackend/src/pricefeed"
	"botbackend/src/server"
	"botbackend/src/service"
	"botbackend/src/store"
)

func SetupLogger() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))

	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		level = logger.InfoLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	app := cli.NewApp()
	app.Name = "botbackend"
	app.Usage = "Crypto trading bot backend"

	app.Commands = []cli.Command{
		serverCMD,
		validateCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serverCMD = cli.Command{
		Name:        "server",
		Usage:       "run the backend API and price poller",
		Action:      serverAction,
		Description: `Serve the accounts/trades API, the dashboard and the live price feed.`,
	}
	validateCMD = cli.Command{
		Name:        "validate",
		Usage:       "validate one account against its exchange",
		Action:      validateAction,
		ArgsUsage:   "<account-id>",
		Description: `Run the exchange connectivity check for a stored account and print the result.`,
	}
)

func serverAction(_ *cli.Context) error {
	SetupLogger()

	st := store.NewFromConfig(store.GetConfig())
	feedHub := hub.New()
	cache := pricefeed.NewCache()

	poller := pricefeed.NewPoller(
		connectors.NewBybitTickers(""),
		cache,
		feedHub,
		pricefeed.GetConfig(),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	server.StartServer(server.GetConfig().Port, server.Deps{
		Accounts:  service.NewAccounts(st, connectors.NewGoexChecker()),
		Bot:       service.NewBot(st),
		Dashboard: service.NewDashboard(st),
		History:   service.NewHistory(st),
		Hub:       feedHub,
		Prices:    cache,
	})
	return nil
}

func validateAction(c *cli.Context) error {
	SetupLogger()

	id := c.Args().First()
	if id == "" {
		return errors.New("account id required")
	}

	st := store.NewFromConfig(store.GetConfig())
	accounts := service.NewAccounts(st, connectors.NewGoexChecker())

	result, err := accounts.Test(context.Background(), id)
	if err != nil {
		logger.WithError(err).Error("validation aborted")
		return err
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
