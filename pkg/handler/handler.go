// Package handler decides what a failed EC2 call does to the process.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/smithy-go"
	"github.com/chainguard-dev/clog"
)

// CodeDryRun is returned by EC2 when a dry-run request would have succeeded.
const CodeDryRun = "DryRunOperation"

// CodeParamValidation is reported for requests the SDK rejects before sending.
const CodeParamValidation = "ParamValidationError"

// Reported lists the provider codes printed as "Failed (<code>)".
var Reported = map[string]bool{
	"DependencyViolation":   true,
	"InvalidGroup.NotFound": true,
	"VpcLimitExceeded":      true,
	"UnauthorizedOperation": true,
	CodeParamValidation:     true,
	"AddressLimitExceeded":  true,
}

// Handler prints a failure to Out and ends the process through Exit.
type Handler struct {
	Out  io.Writer
	Exit func(code int)
}

// New returns a handler writing to stdout and exiting the process.
func New() *Handler {
	return &Handler{Out: os.Stdout, Exit: os.Exit}
}

// Code returns the provider error code carried by err, or "" if it has none.
func Code(err error) string {
	var invalid smithy.InvalidParamsError
	if errors.As(err, &invalid) {
		return CodeParamValidation
	}
	var invalidPtr *smithy.InvalidParamsError
	if errors.As(err, &invalidPtr) {
		return CodeParamValidation
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// Handle does nothing for nil and for a successful dry run. Every other error
// is printed and exits with status 1.
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	code := Code(err)
	if code == CodeDryRun {
		clog.FromContext(ctx).Debug("dry run succeeded", "err", err)
		return
	}
	clog.FromContext(ctx).Debug("request failed", "code", code, "err", err)
	if Reported[code] {
		fmt.Fprintf(h.Out, "Failed (%s)\n", code)
	} else {
		fmt.Fprintf(h.Out, "Failed with %v\n", err)
	}
	h.Exit(1)
}
