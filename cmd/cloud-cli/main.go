package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chainguard-dev/clog"
	"github.com/noelmcloughlin/cloud-cli/internal/config"
	"github.com/noelmcloughlin/cloud-cli/internal/log"
	"github.com/noelmcloughlin/cloud-cli/internal/version"
	cloudaws "github.com/noelmcloughlin/cloud-cli/pkg/aws"
	"github.com/noelmcloughlin/cloud-cli/pkg/environment"
	"github.com/noelmcloughlin/cloud-cli/pkg/handler"
	"github.com/noelmcloughlin/cloud-cli/pkg/pricing"
	"github.com/noelmcloughlin/cloud-cli/pkg/utils"
	"github.com/spf13/cobra"
)

const DefaultTarget = "ec2"

// usageError marks failures caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// handledError is an error the shared handler has already reported.
type handledError struct {
	err  error
	code int
}

func (e handledError) Error() string { return e.err.Error() }
func (e handledError) Unwrap() error { return e.err }

// envFactory builds the environment an action runs against.
type envFactory func(ctx context.Context, cfg *config.Config, out io.Writer) (*environment.Environment, error)

type cli struct {
	out    io.Writer
	errOut io.Writer
	newEnv envFactory
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	c := &cli{out: os.Stdout, errOut: os.Stderr, newEnv: awsEnvironment}
	code := c.run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// awsEnvironment wires the environment to the real EC2, STS and Pricing APIs.
func awsEnvironment(ctx context.Context, cfg *config.Config, out io.Writer) (*environment.Environment, error) {
	client, err := cloudaws.NewEC2Client(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}
	identity, err := cloudaws.NewSTSClient(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}
	opts := environment.Options{
		Out:      out,
		Identity: identity,
		Spinner:  true,
	}
	prices, err := pricing.NewClient(ctx)
	if err != nil {
		clog.FromContext(ctx).Warn("pricing unavailable", "err", err)
	} else {
		opts.Prices = prices
	}
	return environment.New(client, cfg, opts), nil
}

// run executes the command line and returns the process exit code.
func (c *cli) run(ctx context.Context, args []string) int {
	var (
		action      string
		target      string
		keypair     string
		region      string
		logFile     string
		debug       bool
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:   "cloud-cli",
		Short: "Provision and tear down a minimal EC2 environment",
		Long: `cloud-cli creates a VPC with an internet gateway, subnet, security group,
elastic IP and one instance, and cleans all of it up again. Every action
runs as a dry run first, then for real.`,
		Example: `  cloud-cli -a start
  cloud-cli -a info -k mykey
  cloud-cli -a clean -r eu-west-1`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unexpected arguments %q", args)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				info := version.Get()
				fmt.Fprintf(c.out, "cloud-cli version %s (built: %s, commit: %s, %s)\n",
					info.Version, info.BuildDate, info.GitCommit, info.GoVersion)
				return nil
			}
			if action == "" {
				return usageError{errors.New(`required flag "action" not set`)}
			}

			cfg := config.Default()
			if keypair != "" {
				cfg.KeyPairName = keypair
			}
			if region != "" {
				cfg.Region = region
			}
			cfg.Debug = debug
			cfg.LogFile = logFile
			if err := cfg.Validate(); err != nil {
				return usageError{err}
			}

			ctx, closeLog, err := log.Setup(cmd.Context(), c.errOut, cfg.Debug, cfg.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()
			if !utils.IsValidRegion(cfg.Region) {
				clog.FromContext(ctx).Warn("unrecognised region, prices will be unavailable", "region", cfg.Region)
			}

			return c.dispatch(ctx, cfg, strings.ToLower(action), strings.ToLower(target))
		},
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	rootCmd.Flags().StringVarP(&action, "action", "a", "", "Action to run: start|clean|stop|terminate|info")
	rootCmd.Flags().StringVarP(&target, "target", "t", DefaultTarget, "Target environment")
	rootCmd.Flags().StringVarP(&keypair, "keypair", "k", "", fmt.Sprintf("EC2 key pair name (default: %s)", config.DefaultKeyPairName))
	rootCmd.Flags().StringVarP(&region, "region", "r", "", fmt.Sprintf("AWS region (default: %s)", config.DefaultRegion))
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Also write debug logs as JSON to this file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Show debug logs")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Show version information")

	rootCmd.SetArgs(args)
	rootCmd.SetOut(c.out)
	rootCmd.SetErr(c.errOut)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var handled handledError
		if errors.As(err, &handled) {
			return handled.code
		}
		fmt.Fprintf(c.errOut, "Error: %v\n", err)
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprint(c.errOut, rootCmd.UsageString())
		}
		return 1
	}
	return 0
}

// dispatch runs action against target. Anything unrecognised is echoed back.
func (c *cli) dispatch(ctx context.Context, cfg *config.Config, action, target string) error {
	if target == "" {
		target = DefaultTarget
	}
	known := map[string]bool{"start": true, "clean": true, "stop": true, "terminate": true, "info": true}
	if !known[action] || !strings.Contains(target, DefaultTarget) {
		fmt.Fprintln(c.out, action)
		fmt.Fprintln(c.out, target)
		return nil
	}

	ctx = log.With(ctx, "action", action, "region", cfg.Region)
	env, err := c.newEnv(ctx, cfg, c.out)
	if err != nil {
		return c.handle(ctx, err)
	}

	switch action {
	case "start":
		env.Start(ctx)
	case "clean", "stop", "terminate":
		env.Clean(ctx)
	case "info":
		env.Info(ctx)
	}
	return nil
}

// handle reports err through the shared handler. The exit status is carried
// back to run so deferred cleanup still happens.
func (c *cli) handle(ctx context.Context, err error) error {
	code := 0
	h := &handler.Handler{Out: c.out, Exit: func(status int) { code = status }}
	h.Handle(ctx, err)
	if code == 0 {
		return nil
	}
	return handledError{err: err, code: code}
}
