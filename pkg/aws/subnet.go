package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

var (
	ErrSubnetCreate = fmt.Errorf("failed to create subnet")
	ErrNilSubnetID  = fmt.Errorf("received no error in subnet create, but the subnet ID returned was nil")
)

func (c *EC2Client) CreateSubnet(ctx context.Context, project, cidr, vpcID string, dryRun bool) (*ec2.CreateSubnetOutput, error) {
	out, err := c.client.CreateSubnet(ctx, &ec2.CreateSubnetInput{
		CidrBlock:         aws.String(cidr),
		VpcId:             aws.String(vpcID),
		TagSpecifications: projectTagSpecification(types.ResourceTypeSubnet, project),
		DryRun:            aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubnetCreate, err)
	}
	if out.Subnet == nil || out.Subnet.SubnetId == nil {
		return nil, fmt.Errorf("%w: %w", ErrSubnetCreate, ErrNilSubnetID)
	}
	return out, nil
}

var ErrSubnetDelete = fmt.Errorf("failed to delete subnet")

func (c *EC2Client) DeleteSubnet(ctx context.Context, subnetID string, dryRun bool) (*ec2.DeleteSubnetOutput, error) {
	fmt.Fprintf(c.out, "Deleting %s %s\n", subnetID, dryRunSuffix(dryRun))
	out, err := c.client.DeleteSubnet(ctx, &ec2.DeleteSubnetInput{
		SubnetId: aws.String(subnetID),
		DryRun:   aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubnetDelete, err)
	}
	return out, nil
}

var ErrSubnetDescribe = fmt.Errorf("failed to describe subnets")

func (c *EC2Client) GetSubnets(ctx context.Context, dryRun bool, filters ...types.Filter) (*ec2.DescribeSubnetsOutput, error) {
	out, err := c.client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: filters,
		DryRun:  aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubnetDescribe, err)
	}
	return out, nil
}
