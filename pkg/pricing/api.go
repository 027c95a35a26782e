package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
)

// The AWS Pricing API is only available in us-east-1 and ap-south-1.
const pricingRegion = "us-east-1"

// ProductsAPI is the part of the Pricing API used for lookups.
type ProductsAPI interface {
	GetProducts(ctx context.Context, params *pricing.GetProductsInput, optFns ...func(*pricing.Options)) (*pricing.GetProductsOutput, error)
}

// Client looks up on-demand prices and caches them for the process lifetime.
type Client struct {
	api ProductsAPI

	mu    sync.RWMutex
	cache map[string]float64
	stats map[string]*Stats
}

// NewClient initializes the AWS pricing client
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(pricingRegion))
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config for pricing API: %w", err)
	}
	return NewClientFromAPI(pricing.NewFromConfig(cfg)), nil
}

func NewClientFromAPI(api ProductsAPI) *Client {
	return &Client{
		api:   api,
		cache: make(map[string]float64),
		stats: make(map[string]*Stats),
	}
}

// getPriceFromAPI returns the first price list entry matching filters.
func (c *Client) getPriceFromAPI(ctx context.Context, serviceCode string, filters []types.Filter, resourceType, region string) (string, error) {
	resp, err := c.api.GetProducts(ctx, &pricing.GetProductsInput{
		ServiceCode: aws.String(serviceCode),
		Filters:     filters,
		MaxResults:  aws.Int32(1),
	})
	if err != nil {
		return "", fmt.Errorf("error calling AWS Pricing API: %w", err)
	}
	if len(resp.PriceList) == 0 {
		return "", fmt.Errorf("no pricing found for %s in region %s", resourceType, region)
	}
	return resp.PriceList[0], nil
}
