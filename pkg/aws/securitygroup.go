package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// IngressRule is one inbound permission on a security group.
type IngressRule struct {
	FromPort int32
	ToPort   int32
	Protocol string
	CIDRs    []string
	CIDRsV6  []string
}

func (r IngressRule) permission() types.IpPermission {
	p := types.IpPermission{
		FromPort:   aws.Int32(r.FromPort),
		ToPort:     aws.Int32(r.ToPort),
		IpProtocol: aws.String(r.Protocol),
	}
	for _, cidr := range r.CIDRs {
		p.IpRanges = append(p.IpRanges, types.IpRange{CidrIp: aws.String(cidr)})
	}
	for _, cidr := range r.CIDRsV6 {
		p.Ipv6Ranges = append(p.Ipv6Ranges, types.Ipv6Range{CidrIpv6: aws.String(cidr)})
	}
	return p
}

var (
	ErrSecurityGroupCreate = fmt.Errorf("failed to create security group")
	ErrNilSecurityGroupID  = fmt.Errorf("received no error in security group create, but the group ID returned was nil")
)

// CreateSecurityGroup creates groupName in vpcID. The description doubles as
// the project tag value.
func (c *EC2Client) CreateSecurityGroup(ctx context.Context, description, groupName, vpcID string, dryRun bool) (*ec2.CreateSecurityGroupOutput, error) {
	out, err := c.client.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
		Description:       aws.String(description),
		GroupName:         aws.String(groupName),
		VpcId:             aws.String(vpcID),
		TagSpecifications: projectTagSpecification(types.ResourceTypeSecurityGroup, description),
		DryRun:            aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSecurityGroupCreate, err)
	}
	if out.GroupId == nil {
		return nil, fmt.Errorf("%w: %w", ErrSecurityGroupCreate, ErrNilSecurityGroupID)
	}
	return out, nil
}

var ErrSecurityGroupDelete = fmt.Errorf("failed to delete security group")

func (c *EC2Client) DeleteSecurityGroup(ctx context.Context, groupID string, dryRun bool) (*ec2.DeleteSecurityGroupOutput, error) {
	fmt.Fprintf(c.out, "Deleting %s %s\n", groupID, dryRunSuffix(dryRun))
	out, err := c.client.DeleteSecurityGroup(ctx, &ec2.DeleteSecurityGroupInput{
		GroupId: aws.String(groupID),
		DryRun:  aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSecurityGroupDelete, err)
	}
	return out, nil
}

var ErrSecurityGroupDescribe = fmt.Errorf("failed to describe security groups")

// GetSecurityGroups describes the groups named groupName that also match
// filters. An empty groupName matches any name.
func (c *EC2Client) GetSecurityGroups(ctx context.Context, groupName string, dryRun bool, filters ...types.Filter) (*ec2.DescribeSecurityGroupsOutput, error) {
	if groupName != "" {
		filters = append(filters, NewFilter("group-name", groupName))
	}
	out, err := c.client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{
		Filters: filters,
		DryRun:  aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSecurityGroupDescribe, err)
	}
	return out, nil
}

var ErrSecurityGroupInboundRuleCreate = fmt.Errorf("failed to add security group rule")

// AddIngress adds rule to the inbound permissions of groupID.
func (c *EC2Client) AddIngress(ctx context.Context, groupID string, rule IngressRule, dryRun bool) (*ec2.AuthorizeSecurityGroupIngressOutput, error) {
	out, err := c.client.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId:       aws.String(groupID),
		IpPermissions: []types.IpPermission{rule.permission()},
		DryRun:        aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSecurityGroupInboundRuleCreate, err)
	}
	return out, nil
}
