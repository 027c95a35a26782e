package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

var (
	ErrElasticIPCreate = fmt.Errorf("failed to create public IP address")
	ErrElasticIPIDNil  = fmt.Errorf("encountered no error in elastic IP " +
		"address creation, but the returned allocation ID was nil")
)

// AllocateAddress allocates an elastic IP address. The allocation ID in the
// output is the handle used to associate and release it.
func (c *EC2Client) AllocateAddress(ctx context.Context, domain, project string, dryRun bool) (*ec2.AllocateAddressOutput, error) {
	out, err := c.client.AllocateAddress(ctx, &ec2.AllocateAddressInput{
		Domain:            types.DomainType(domain),
		TagSpecifications: projectTagSpecification(types.ResourceTypeElasticIp, project),
		DryRun:            aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrElasticIPCreate, err)
	}
	if out.AllocationId == nil {
		return nil, fmt.Errorf("%w: %w", ErrElasticIPCreate, ErrElasticIPIDNil)
	}
	return out, nil
}

var ErrElasticIPAttach = fmt.Errorf("failed to associate the elastic IP address with the instance")

func (c *EC2Client) AssociateAddress(ctx context.Context, allocationID, instanceID string, dryRun bool) (*ec2.AssociateAddressOutput, error) {
	out, err := c.client.AssociateAddress(ctx, &ec2.AssociateAddressInput{
		AllocationId: aws.String(allocationID),
		InstanceId:   aws.String(instanceID),
		DryRun:       aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrElasticIPAttach, err)
	}
	return out, nil
}

var ErrElasticIPDelete = fmt.Errorf("failed to delete elastic IP address")

// ReleaseAddress releases an elastic IP address. publicIP is only printed.
func (c *EC2Client) ReleaseAddress(ctx context.Context, allocationID, publicIP string, dryRun bool) (*ec2.ReleaseAddressOutput, error) {
	fmt.Fprintf(c.out, "Deleting %s %s %s\n", allocationID, publicIP, dryRunSuffix(dryRun))
	out, err := c.client.ReleaseAddress(ctx, &ec2.ReleaseAddressInput{
		AllocationId: aws.String(allocationID),
		DryRun:       aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrElasticIPDelete, err)
	}
	return out, nil
}

var ErrElasticIPDescribe = fmt.Errorf("failed to describe elastic IP addresses")

// GetAddresses describes the addresses matching filter. A non-empty
// allocationID narrows the query to that allocation; otherwise a non-empty
// instanceID narrows it to addresses associated with that instance.
func (c *EC2Client) GetAddresses(ctx context.Context, filter types.Filter, allocationID, instanceID string, dryRun bool) (*ec2.DescribeAddressesOutput, error) {
	input := &ec2.DescribeAddressesInput{
		Filters: []types.Filter{filter},
		DryRun:  aws.Bool(dryRun),
	}
	switch {
	case allocationID != "":
		input.AllocationIds = []string{allocationID}
	case instanceID != "":
		input.Filters = append(input.Filters, NewFilter("instance-id", instanceID))
	}
	out, err := c.client.DescribeAddresses(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrElasticIPDescribe, err)
	}
	return out, nil
}
