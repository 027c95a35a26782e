package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/noelmcloughlin/cloud-cli/internal/config"
	"github.com/noelmcloughlin/cloud-cli/internal/ec2test"
	cloudaws "github.com/noelmcloughlin/cloud-cli/pkg/aws"
	"github.com/noelmcloughlin/cloud-cli/pkg/environment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCLI struct {
	*cli
	out    *bytes.Buffer
	errOut *bytes.Buffer
	fake   *ec2test.EC2
	cfg    *config.Config
}

func newTestCLI() *testCLI {
	t := &testCLI{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, fake: &ec2test.EC2{}}
	t.cli = &cli{
		out:    t.out,
		errOut: t.errOut,
		newEnv: func(_ context.Context, cfg *config.Config, out io.Writer) (*environment.Environment, error) {
			t.cfg = cfg
			client := cloudaws.NewEC2ClientFromAPI(t.fake, cfg.Region, out)
			return environment.New(client, cfg, environment.Options{Out: out}), nil
		},
	}
	return t
}

func TestRunStart(t *testing.T) {
	c := newTestCLI()
	require.Equal(t, 0, c.run(context.Background(), []string{"-a", "START", "-k", "MyKey"}))

	assert.Contains(t, c.fake.RealOps(), "RunInstances")
	launch := c.fake.Last("RunInstances").Input.(*ec2.RunInstancesInput)
	assert.Equal(t, "MyKey", aws.ToString(launch.KeyName))
	assert.Contains(t, c.out.String(), "created Instance i-123")
	assert.Equal(t, config.DefaultRegion, c.cfg.Region)
}

func TestRunCleanAliases(t *testing.T) {
	for _, action := range []string{"clean", "stop", "terminate"} {
		t.Run(action, func(t *testing.T) {
			c := newTestCLI()
			require.Equal(t, 0, c.run(context.Background(), []string{"--action", action, "--target", "my-EC2-env"}))
			assert.Equal(t, []string{"DescribeVpcs", "DescribeVpcs"}, c.fake.Ops())
			assert.Contains(t, c.out.String(), "CLEAN DOWN EC2 ENVIRON")
		})
	}
}

func TestRunInfo(t *testing.T) {
	c := newTestCLI()
	require.Equal(t, 0, c.run(context.Background(), []string{"-a", "info", "-r", "eu-west-2"}))
	assert.Equal(t, "eu-west-2", c.cfg.Region)
	assert.Equal(t, "DescribeKeyPairs", c.fake.Ops()[0])
}

func TestRunUnknownActionOrTarget(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown action", []string{"-a", "Reboot"}, "reboot\nec2\n"},
		{"unknown target", []string{"-a", "start", "-t", "S3"}, "start\ns3\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCLI()
			require.Equal(t, 0, c.run(context.Background(), tc.args))
			assert.Equal(t, tc.want, c.out.String())
			assert.Empty(t, c.fake.Calls)
			assert.Nil(t, c.cfg)
		})
	}
}

func TestRunUsageErrors(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"-a"},
		{"--bogus"},
		{"-a", "start", "extra"},
	} {
		c := newTestCLI()
		assert.Equal(t, 1, c.run(context.Background(), args), "%q", args)
		assert.Contains(t, c.errOut.String(), "Usage:")
		assert.Empty(t, c.fake.Calls)
	}
}

func TestRunVersion(t *testing.T) {
	c := newTestCLI()
	require.Equal(t, 0, c.run(context.Background(), []string{"--version"}))
	assert.Contains(t, c.out.String(), "cloud-cli version dev")
}

func TestRunEnvironmentError(t *testing.T) {
	c := newTestCLI()
	c.newEnv = func(context.Context, *config.Config, io.Writer) (*environment.Environment, error) {
		return nil, errors.New("no credentials")
	}
	assert.Equal(t, 1, c.run(context.Background(), []string{"-a", "info"}))
	assert.Equal(t, "Failed with no credentials\n", c.out.String())
	assert.NotContains(t, c.errOut.String(), "Error:")
}

func TestRunEnvironmentErrorWithCode(t *testing.T) {
	c := newTestCLI()
	c.newEnv = func(context.Context, *config.Config, io.Writer) (*environment.Environment, error) {
		return nil, fmt.Errorf("%w: %w", cloudaws.ErrCallerIdentity, ec2test.APIError("UnauthorizedOperation"))
	}
	assert.Equal(t, 1, c.run(context.Background(), []string{"-a", "start"}))
	assert.Equal(t, "Failed (UnauthorizedOperation)\n", c.out.String())
}
