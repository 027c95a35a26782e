package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// DefaultRouteCIDR is the destination routed through the internet gateway.
const DefaultRouteCIDR = "0.0.0.0/0"

var ErrRouteTableGetForVPC = fmt.Errorf("failed to fetch route table for VPC")

// GetRouteTables describes the main route table of vpcID.
func (c *EC2Client) GetRouteTables(ctx context.Context, vpcID string, dryRun bool) (*ec2.DescribeRouteTablesOutput, error) {
	out, err := c.client.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{
		Filters: []types.Filter{
			NewFilter("vpc-id", vpcID),
			NewFilter("association.main", "true"),
		},
		DryRun: aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRouteTableGetForVPC, err)
	}
	return out, nil
}

var ErrRouteTableRouteCreate = fmt.Errorf("failed to add route to route table")

// CreateDefaultRoute sends all IPv4 traffic of routeTableID through gatewayID.
func (c *EC2Client) CreateDefaultRoute(ctx context.Context, routeTableID, gatewayID string, dryRun bool) (*ec2.CreateRouteOutput, error) {
	out, err := c.client.CreateRoute(ctx, &ec2.CreateRouteInput{
		RouteTableId:         aws.String(routeTableID),
		GatewayId:            aws.String(gatewayID),
		DestinationCidrBlock: aws.String(DefaultRouteCIDR),
		DryRun:               aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRouteTableRouteCreate, err)
	}
	if out.Return != nil && !*out.Return {
		return nil, ErrRouteTableRouteCreate
	}
	return out, nil
}
