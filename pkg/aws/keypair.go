package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

var ErrKeyPairDescribe = fmt.Errorf("failed to describe key pairs")

// GetKeyPairs describes the key pairs whose filter name matches value, for
// example ("key-name", "ec2_user").
func (c *EC2Client) GetKeyPairs(ctx context.Context, name, value string, dryRun bool) (*ec2.DescribeKeyPairsOutput, error) {
	out, err := c.client.DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{
		Filters: []types.Filter{NewFilter(name, value)},
		DryRun:  aws.Bool(dryRun),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyPairDescribe, err)
	}
	return out, nil
}
