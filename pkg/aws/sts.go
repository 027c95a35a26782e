package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/noelmcloughlin/cloud-cli/internal/models"
)

// STSAPI is the part of the STS API used to report who is calling.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// STSClient struct for STS client
type STSClient struct {
	client STSAPI
}

// NewSTSClient creates a new STSClient
func NewSTSClient(ctx context.Context, region string) (*STSClient, error) {
	cfg, err := LoadConfig(ctx, region)
	if err != nil {
		return nil, err
	}
	return NewSTSClientFromAPI(sts.NewFromConfig(cfg)), nil
}

func NewSTSClientFromAPI(api STSAPI) *STSClient {
	return &STSClient{client: api}
}

var ErrCallerIdentity = fmt.Errorf("failed to get caller identity")

// CallerIdentity returns the account and principal of the credentials.
func (c *STSClient) CallerIdentity(ctx context.Context) (models.CallerIdentity, error) {
	out, err := c.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return models.CallerIdentity{}, fmt.Errorf("%w: %w", ErrCallerIdentity, err)
	}
	return models.CallerIdentity{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
