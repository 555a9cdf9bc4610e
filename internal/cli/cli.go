// Package cli maps command line subcommands onto the payment use cases and prints their results.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eurofurence/reg-paycomet-client/internal/config"
	"github.com/eurofurence/reg-paycomet-client/internal/entities"
	"github.com/eurofurence/reg-paycomet-client/internal/interaction"
	"github.com/eurofurence/reg-paycomet-client/internal/logging"
	"github.com/eurofurence/reg-paycomet-client/internal/options"
)

const (
	ExitOk    = 0
	ExitError = 1
	ExitUsage = 2
)

var errUsage = errors.New("invalid arguments")

type command struct {
	name        string
	args        string
	description string
	minArgs     int
	run         func(c *Cli, ctx context.Context, args []string) error
}

var commands = []command{
	{name: "methods-get", description: "Get allowed methods.", run: (*Cli).methods},
	{name: "exchange", args: "MONETARY CURRENCY", description: "Exchange currency.", minArgs: 2, run: (*Cli).exchange},
	{name: "heartbeat", description: "Check the connection is right.", run: (*Cli).heartbeat},
	{name: "form-auth", args: "OPTS...", description: "Create a payment form and get URL.", run: formCommand(entities.OperationAuthorization)},
	{name: "form-preauth", args: "OPTS...", description: "Create a preauthorization form and get URL.", run: formCommand(entities.OperationPreauthorization)},
	{name: "form-subs", args: "OPTS...", description: "Create a subscription form and get URL.", run: formCommand(entities.OperationSubscription)},
	{name: "form-token", args: "OPTS...", description: "Create a card tokenization form and get URL.", run: formCommand(entities.OperationTokenization)},
	{name: "payment-info", args: "ORDER", description: "Get payment info of form.", minArgs: 1, run: (*Cli).paymentInfo},
	{name: "payment-status", args: "ORDER", description: "Get status: correct,failed,unfinished", minArgs: 1, run: (*Cli).paymentStatus},
	{name: "payment-history", args: "ORDER", description: "Get the history of a payment.", minArgs: 1, run: (*Cli).paymentHistory},
	{name: "payment-refund", args: "ORDER [amount=MONETARY]", description: "Refund payment.", minArgs: 1, run: (*Cli).paymentRefund},
}

const formHelp = `Form options:

    order=ORDER                : An identifier to check it later.
    amount=MONETARY            : The amount to charge, for example 100.00EUR.
    language=LANG              : Language to use.
    description=DESC           : Product description.
    merchantDescription=DESC   : Merchant's description.
    url_success=URL_OK         : URL when success.
    url_cancel=URL_KO          : URL when cancelling.
    idUser=ID tokenUser=TOKEN  : Charge a tokenized card.
    secure=0|1                 : Request 3DS authentication.
    userInteraction=0|1        : Whether the payer is present.
    scoring=0..100             : Risk scoring.
    methods=1,2 excludedMethods=3
                               : Payment method codes.

    date_start=YYYY/MM/DD      : Subscription start date (default today)
    date_end=YYYY/MM/DD        : Subscription end date (default 5 years)
    periodicity=NUM            : Payment periodicity in days. (default 30)
`

type Cli struct {
	interactor interaction.Interactor
	out        io.Writer
	name       string
}

// New creates a command line front end that writes results to out.
func New(interactor interaction.Interactor, out io.Writer, programName string) *Cli {
	return &Cli{
		interactor: interactor,
		out:        out,
		name:       programName,
	}
}

// IsHelp tells whether args ask for the help text, which needs no configuration.
func IsHelp(args []string) bool {
	return len(args) == 0 || args[0] == "-h" || args[0] == "--help"
}

// Run executes the subcommand in args[0] and returns the process exit code.
func (c *Cli) Run(ctx context.Context, args []string) int {
	logger := logging.LoggerFromContext(ctx)

	if IsHelp(args) {
		c.Help()
		return ExitOk
	}

	cmd, ok := lookup(args[0])
	if !ok {
		logger.Error("invalid subcommand: %s", args[0])
		return ExitUsage
	}

	if len(args)-1 < cmd.minArgs {
		logger.Error("invalid arguments, usage: %s %s %s", c.name, cmd.name, cmd.args)
		return ExitUsage
	}

	if err := cmd.run(c, ctx, args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			logger.Error("%v, usage: %s %s %s", err, c.name, cmd.name, cmd.args)
			return ExitUsage
		}
		logger.Error("%s failed. [error]: %v", cmd.name, err)
		return ExitError
	}

	return ExitOk
}

func (c *Cli) Help() {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Usage: %s [-config FILE] [-token TOKEN] [-terminal TERMINAL] COMMAND ...\n\n", c.name)
	b.WriteString(config.EnvironmentHelp())
	b.WriteString("\n\nCreate payment forms using PAYCOMET.\n\n")
	for _, cmd := range commands {
		fmt.Fprintf(b, "    %-26s : %s\n", strings.TrimSpace(cmd.name+" "+cmd.args), cmd.description)
	}
	b.WriteString("\n")
	b.WriteString(formHelp)
	_, _ = io.WriteString(c.out, b.String())
}

func lookup(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}
	return command{}, false
}

func (c *Cli) methods(ctx context.Context, _ []string) error {
	result, err := c.interactor.ListMethods(ctx)
	if err != nil {
		return err
	}
	return c.printJson(result)
}

func (c *Cli) exchange(ctx context.Context, args []string) error {
	amount, err := entities.ParseMoney(args[0])
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	result, err := c.interactor.Exchange(ctx, amount, args[1])
	if err != nil {
		return err
	}
	return c.println(result.String())
}

func (c *Cli) heartbeat(ctx context.Context, _ []string) error {
	result, err := c.interactor.Heartbeat(ctx)
	if err != nil {
		return err
	}
	return c.printJson(result)
}

func formCommand(operationType entities.OperationType) func(c *Cli, ctx context.Context, args []string) error {
	return func(c *Cli, ctx context.Context, args []string) error {
		challengeUrl, err := c.interactor.CreateForm(ctx, operationType, options.ToMap(args))
		if err != nil {
			return err
		}
		return c.println(challengeUrl)
	}
}

func (c *Cli) paymentInfo(ctx context.Context, args []string) error {
	result, err := c.interactor.PaymentInfo(ctx, args[0])
	if err != nil {
		return err
	}
	return c.printJson(result.Info)
}

func (c *Cli) paymentStatus(ctx context.Context, args []string) error {
	result, err := c.interactor.PaymentInfo(ctx, args[0])
	if err != nil {
		return err
	}
	return c.println(result.State.String())
}

func (c *Cli) paymentHistory(ctx context.Context, args []string) error {
	result, err := c.interactor.PaymentInfo(ctx, args[0])
	if err != nil {
		return err
	}
	return c.printJson(result.History)
}

func (c *Cli) paymentRefund(ctx context.Context, args []string) error {
	var override *entities.Money
	if value, ok := options.Lookup(options.ToMap(args[1:]), "amount"); ok {
		amount, err := entities.ParseMoney(value)
		if err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		override = &amount
	}

	result, err := c.interactor.RefundPayment(ctx, args[0], override)
	if err != nil {
		return err
	}

	if err := c.println("==== INFO ========================"); err != nil {
		return err
	}
	if err := c.printJson(result.Payment); err != nil {
		return err
	}
	if err := c.println("==== REFUND ======================"); err != nil {
		return err
	}
	return c.printJson(result.Refund)
}

func (c *Cli) printJson(v interface{}) error {
	encoder := json.NewEncoder(c.out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	return encoder.Encode(v)
}

func (c *Cli) println(line string) error {
	_, err := fmt.Fprintln(c.out, line)
	return err
}
