// Package environment runs the start, clean and info sequences against EC2.
//
// Start and Clean run twice: a dry-run pass that checks permissions and
// parameters, then the real pass. A dry-run answer from EC2 is not a failure;
// the step yields no result and the steps depending on it are skipped.
package environment

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/noelmcloughlin/cloud-cli/internal/config"
	"github.com/noelmcloughlin/cloud-cli/internal/models"
	cloudaws "github.com/noelmcloughlin/cloud-cli/pkg/aws"
	"github.com/noelmcloughlin/cloud-cli/pkg/handler"
	"github.com/noelmcloughlin/cloud-cli/pkg/pricing"
)

// ErrorHandler decides what a failed call does to the run.
type ErrorHandler interface {
	Handle(ctx context.Context, err error)
}

// PriceLookup returns the hourly price of an instance type.
type PriceLookup interface {
	InstanceHourlyPrice(ctx context.Context, instanceType, region string) (float64, pricing.PricingSource)
}

// IdentityLookup reports who the credentials belong to.
type IdentityLookup interface {
	CallerIdentity(ctx context.Context) (models.CallerIdentity, error)
}

// Options configures an Environment. Zero values fall back to stdout, the
// exiting handler, and no price or identity lookups.
type Options struct {
	Out      io.Writer
	Handler  ErrorHandler
	Prices   PriceLookup
	Identity IdentityLookup
	// Spinner shows progress while waiting on instance state changes.
	Spinner bool
}

// Environment drives one EC2 environment described by a Config.
type Environment struct {
	ec2  *cloudaws.EC2Client
	cfg  *config.Config
	opts Options
}

func New(client *cloudaws.EC2Client, cfg *config.Config, opts Options) *Environment {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Handler == nil {
		opts.Handler = handler.New()
	}
	return &Environment{ec2: client, cfg: cfg, opts: opts}
}

// passes are the dry-run flags of the two passes, in order.
var passes = []bool{true, false}

func (e *Environment) handle(ctx context.Context, err error) {
	e.opts.Handler.Handle(ctx, err)
}

func (e *Environment) banner(title string, dryRun bool) {
	mode := "for real, please be patient"
	if dryRun {
		mode = "dryrun"
	}
	fmt.Fprintf(e.opts.Out, "\n%s %s\n", title, mode)
}

// wait runs fn behind a spinner when enabled.
func (e *Environment) wait(suffix string, fn func() error) error {
	if !e.opts.Spinner {
		return fn()
	}
	s := spinner.New(spinner.CharSets[9], 200*time.Millisecond, spinner.WithWriter(e.opts.Out))
	s.Suffix = " " + suffix
	start := time.Now()
	s.Start()
	err := fn()
	if err == nil {
		s.FinalMSG = fmt.Sprintf("✓ %s - Completed in %.2f seconds\n", suffix, time.Since(start).Seconds())
	}
	s.Stop()
	return err
}
