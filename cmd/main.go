package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/eurofurence/reg-paycomet-client/internal/cli"
	"github.com/eurofurence/reg-paycomet-client/internal/config"
	"github.com/eurofurence/reg-paycomet-client/internal/interaction"
	"github.com/eurofurence/reg-paycomet-client/internal/logging"
	"github.com/eurofurence/reg-paycomet-client/internal/repository/downstreams/paycomet"
)

const dotEnvFile = ".env"

func main() {
	os.Exit(run(filepath.Base(os.Args[0]), os.Args[1:]))
}

func run(programName string, args []string) int {
	help := cli.New(nil, os.Stdout, programName)

	flags := flag.NewFlagSet(programName, flag.ContinueOnError)
	flags.Usage = help.Help
	configPath := flags.String("config", "", "optional yaml configuration file")
	token := flags.String("token", "", "PAYCOMET api token, overrides the environment")
	terminal := flags.String("terminal", "", "PAYCOMET terminal, overrides the environment")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cli.ExitOk
		}
		return cli.ExitUsage
	}

	if cli.IsHelp(flags.Args()) {
		help.Help()
		return cli.ExitOk
	}

	logger := logging.NewLogger()

	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		logger.Error("failed to read %s. [error]: %v", dotEnvFile, err)
		return cli.ExitError
	}

	conf, err := config.Load(*configPath, config.Overrides{
		ApiToken: *token,
		Terminal: *terminal,
	})
	if err != nil {
		logger.Error("failed to load configuration. [error]: %v", err)
		return cli.ExitError
	}

	if err := config.Validate(conf, logger.Error); err != nil {
		logger.Error("invalid configuration. [error]: %v", err)
		return cli.ExitError
	}

	logging.Setup(conf.Logging.Severity, conf.Logging.Style == config.Json)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.ContextWithRequestID(ctx, logging.NewRequestID())

	client, err := paycomet.New(conf.Paycomet)
	if err != nil {
		logging.LoggerFromContext(ctx).Error("failed to create PAYCOMET client. [error]: %v", err)
		return cli.ExitError
	}
	defer client.Close()

	interactor, err := interaction.NewServiceInteractor(client, logging.LoggerFromContext(ctx))
	if err != nil {
		logging.LoggerFromContext(ctx).Error("failed to set up. [error]: %v", err)
		return cli.ExitError
	}

	return cli.New(interactor, os.Stdout, programName).Run(ctx, flags.Args())
}
