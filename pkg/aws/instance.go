package aws

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/chainguard-dev/clog"
)

// InstanceSpec describes the single instance launched into the environment.
type InstanceSpec struct {
	AMI             string
	InstanceType    string
	SecurityGroupID string
	SubnetID        string
	UserData        string // plain text, encoded on launch
	KeyName         string
	Project         string
}

var (
	ErrInstanceCreate            = fmt.Errorf("failed to create EC2 instance")
	ErrInstanceCreateNoInstances = fmt.Errorf("encountered no error during " +
		"instance launch, but no instance was actually created")
	ErrInstanceCreateIDNil = fmt.Errorf("encountered no error during instance " +
		"launch, but the returned instance ID was nil")
)

// RunInstance launches exactly one instance from spec.
func (c *EC2Client) RunInstance(ctx context.Context, spec InstanceSpec, dryRun bool) (*ec2.RunInstancesOutput, error) {
	if dryRun {
		fmt.Fprintln(c.out, "Creating instance (dryrun)")
	} else {
		fmt.Fprintln(c.out, "Creating instance")
	}
	input := &ec2.RunInstancesInput{
		ImageId:           aws.String(spec.AMI),
		MinCount:          aws.Int32(1),
		MaxCount:          aws.Int32(1),
		InstanceType:      types.InstanceType(spec.InstanceType),
		SecurityGroupIds:  []string{spec.SecurityGroupID},
		SubnetId:          aws.String(spec.SubnetID),
		TagSpecifications: projectTagSpecification(types.ResourceTypeInstance, spec.Project),
		DryRun:            aws.Bool(dryRun),
	}
	if spec.KeyName != "" {
		input.KeyName = aws.String(spec.KeyName)
	}
	if spec.UserData != "" {
		input.UserData = aws.String(base64.StdEncoding.EncodeToString([]byte(spec.UserData)))
	}

	out, err := c.client.RunInstances(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInstanceCreate, err)
	}
	if len(out.Instances) < 1 {
		return nil, fmt.Errorf("%w: %w", ErrInstanceCreate, ErrInstanceCreateNoInstances)
	}
	if out.Instances[0].InstanceId == nil {
		return nil, fmt.Errorf("%w: %w", ErrInstanceCreate, ErrInstanceCreateIDNil)
	}
	return out, nil
}

var ErrInstanceDelete = fmt.Errorf("failed to delete EC2 instance")

func (c *EC2Client) TerminateInstance(ctx context.Context, instanceID string, dryRun bool) (*ec2.TerminateInstancesOutput, error) {
	fmt.Fprintf(c.out, "Terminating instance %s %s\n", instanceID, dryRunSuffix(dryRun))
	out, err := c.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: []string{instanceID},
		DryRun:      aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInstanceDelete, err)
	}
	return out, nil
}

var ErrInstanceDescribe = fmt.Errorf("failed to describe EC2 instances")

// GetInstances describes the instances matching filter. A non-empty state
// further restricts them to that instance-state-name.
func (c *EC2Client) GetInstances(ctx context.Context, filter types.Filter, state string, dryRun bool) (*ec2.DescribeInstancesOutput, error) {
	filters := []types.Filter{filter}
	if state != "" {
		filters = append(filters, NewFilter("instance-state-name", state))
	}
	out, err := c.client.DescribeInstances(ctx, &ec2.DescribeInstancesInput{
		Filters: filters,
		DryRun:  aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInstanceDescribe, err)
	}
	return out, nil
}

var (
	ErrInstanceWaitRunning    = fmt.Errorf("failed waiting for EC2 instance to run")
	ErrInstanceWaitTerminated = fmt.Errorf("failed waiting for EC2 instance termination")
)

// WaitRunning blocks until instanceID is running or timeout elapses.
func (c *EC2Client) WaitRunning(ctx context.Context, instanceID string, timeout time.Duration) (*ec2.DescribeInstancesOutput, error) {
	log := clog.FromContext(ctx).With("id", instanceID)
	log.Info("waiting for instance to enter running state")
	waiter := ec2.NewInstanceRunningWaiter(c.client)
	out, err := waiter.WaitForOutput(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInstanceWaitRunning, err)
	}
	log.Info("instance running")
	return out, nil
}

// WaitTerminated blocks until instanceID is terminated or timeout elapses.
// Its network interface is only released once terminated, so subnet and
// security group deletes depend on this.
func (c *EC2Client) WaitTerminated(ctx context.Context, instanceID string, timeout time.Duration) error {
	log := clog.FromContext(ctx).With("id", instanceID)
	log.Info("waiting for instance to terminate")
	waiter := ec2.NewInstanceTerminatedWaiter(c.client)
	if err := waiter.Wait(ctx, &ec2.DescribeInstancesInput{
		InstanceIds: []string{instanceID},
	}, timeout); err != nil {
		return fmt.Errorf("%w: %w", ErrInstanceWaitTerminated, err)
	}
	log.Info("instance terminated")
	return nil
}
