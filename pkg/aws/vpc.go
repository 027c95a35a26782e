package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/chainguard-dev/clog"
)

var (
	ErrVPCCreate = fmt.Errorf("failed VPC creation")
	ErrNilVPCID  = fmt.Errorf("received no error in VPC create, but the VPC ID returned was nil")
)

// CreateVpc creates a virtual private cloud with an Amazon provided IPv6
// block alongside cidr.
func (c *EC2Client) CreateVpc(ctx context.Context, project, cidr, tenancy string, dryRun bool) (*ec2.CreateVpcOutput, error) {
	log := clog.FromContext(ctx).With("project", project, "cidr", cidr, "dryrun", dryRun)
	log.Debug("creating VPC")
	out, err := c.client.CreateVpc(ctx, &ec2.CreateVpcInput{
		CidrBlock:                   aws.String(cidr),
		AmazonProvidedIpv6CidrBlock: aws.Bool(true),
		InstanceTenancy:             types.Tenancy(tenancy),
		TagSpecifications:           projectTagSpecification(types.ResourceTypeVpc, project),
		DryRun:                      aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVPCCreate, err)
	}
	if out.Vpc == nil || out.Vpc.VpcId == nil {
		return nil, fmt.Errorf("%w: %w", ErrVPCCreate, ErrNilVPCID)
	}
	log.Debug("created VPC", "id", *out.Vpc.VpcId)
	return out, nil
}

var ErrVPCDelete = fmt.Errorf("failed to delete VPC")

// DeleteVpc deletes a virtual private cloud. Everything inside it must
// already be gone.
func (c *EC2Client) DeleteVpc(ctx context.Context, vpcID string, dryRun bool) (*ec2.DeleteVpcOutput, error) {
	fmt.Fprintf(c.out, "Deleting %s %s\n", vpcID, dryRunSuffix(dryRun))
	out, err := c.client.DeleteVpc(ctx, &ec2.DeleteVpcInput{
		VpcId:  aws.String(vpcID),
		DryRun: aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVPCDelete, err)
	}
	return out, nil
}

var ErrVPCDescribe = fmt.Errorf("failed to describe VPCs")

// GetVpcs describes the VPCs matching all filters.
func (c *EC2Client) GetVpcs(ctx context.Context, dryRun bool, filters ...types.Filter) (*ec2.DescribeVpcsOutput, error) {
	out, err := c.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: filters,
		DryRun:  aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVPCDescribe, err)
	}
	return out, nil
}
