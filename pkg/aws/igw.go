package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

var (
	ErrInternetGatewayCreate = fmt.Errorf("failed to create internet gateway")
	ErrNilInternetGatewayID  = fmt.Errorf("received no error in internet gateway create, but the internet gateway ID returned was nil")
)

func (c *EC2Client) CreateInternetGateway(ctx context.Context, project string, dryRun bool) (*ec2.CreateInternetGatewayOutput, error) {
	out, err := c.client.CreateInternetGateway(ctx, &ec2.CreateInternetGatewayInput{
		TagSpecifications: projectTagSpecification(types.ResourceTypeInternetGateway, project),
		DryRun:            aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternetGatewayCreate, err)
	}
	if out.InternetGateway == nil || out.InternetGateway.InternetGatewayId == nil {
		return nil, fmt.Errorf("%w: %w", ErrInternetGatewayCreate, ErrNilInternetGatewayID)
	}
	return out, nil
}

var ErrInternetGatewayDelete = fmt.Errorf("failed to delete internet gateway")

func (c *EC2Client) DeleteInternetGateway(ctx context.Context, gatewayID string, dryRun bool) (*ec2.DeleteInternetGatewayOutput, error) {
	fmt.Fprintf(c.out, "Deleting %s %s\n", gatewayID, dryRunSuffix(dryRun))
	out, err := c.client.DeleteInternetGateway(ctx, &ec2.DeleteInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		DryRun:            aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternetGatewayDelete, err)
	}
	return out, nil
}

var ErrInternetGatewayDescribe = fmt.Errorf("failed to describe internet gateways")

func (c *EC2Client) GetInternetGateways(ctx context.Context, dryRun bool, filters ...types.Filter) (*ec2.DescribeInternetGatewaysOutput, error) {
	out, err := c.client.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{
		Filters: filters,
		DryRun:  aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternetGatewayDescribe, err)
	}
	return out, nil
}

var ErrInternetGatewayAttach = fmt.Errorf("failed to attach internet gateway to VPC")

func (c *EC2Client) AttachInternetGateway(ctx context.Context, gatewayID, vpcID string, dryRun bool) (*ec2.AttachInternetGatewayOutput, error) {
	fmt.Fprintf(c.out, "Attaching %s to %s %s\n", gatewayID, vpcID, dryRunSuffix(dryRun))
	out, err := c.client.AttachInternetGateway(ctx, &ec2.AttachInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		VpcId:             aws.String(vpcID),
		DryRun:            aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternetGatewayAttach, err)
	}
	return out, nil
}

var ErrInternetGatewayDetach = fmt.Errorf("failed to detach internet gateway")

func (c *EC2Client) DetachInternetGateway(ctx context.Context, gatewayID, vpcID string, dryRun bool) (*ec2.DetachInternetGatewayOutput, error) {
	fmt.Fprintf(c.out, "Detaching %s from %s %s\n", gatewayID, vpcID, dryRunSuffix(dryRun))
	out, err := c.client.DetachInternetGateway(ctx, &ec2.DetachInternetGatewayInput{
		InternetGatewayId: aws.String(gatewayID),
		VpcId:             aws.String(vpcID),
		DryRun:            aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInternetGatewayDetach, err)
	}
	return out, nil
}
