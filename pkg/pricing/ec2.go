package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/chainguard-dev/clog"
	"github.com/noelmcloughlin/cloud-cli/pkg/utils"
)

const lookupTimeout = 5 * time.Second

// InstanceHourlyPrice returns the on-demand Linux hourly price of
// instanceType in region and where it came from. A failed lookup returns 0
// with PricingSourceNA; failures are not cached.
func (c *Client) InstanceHourlyPrice(ctx context.Context, instanceType, region string) (float64, PricingSource) {
	cacheKey := fmt.Sprintf("%s:%s", region, instanceType)

	c.mu.RLock()
	price, exists := c.cache[cacheKey]
	c.mu.RUnlock()
	if exists {
		c.record(region, func(s *Stats) { s.Cache++ })
		return price, PricingSourceCache
	}

	price, err := c.getEC2PriceFromAPI(ctx, instanceType, region)
	if err != nil {
		clog.FromContext(ctx).Warn("error getting price from API", "err", err, "type", instanceType, "region", region)
		c.record(region, func(s *Stats) { s.Failure++ })
		return 0, PricingSourceNA
	}
	c.record(region, func(s *Stats) { s.Success++ })

	c.mu.Lock()
	c.cache[cacheKey] = price
	c.mu.Unlock()
	return price, PricingSourceAPI
}

func (c *Client) getEC2PriceFromAPI(ctx context.Context, instanceType, region string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	priceJSON, err := c.getPriceFromAPI(ctx, "AmazonEC2", InstanceFilters(instanceType, region), instanceType, region)
	if err != nil {
		return 0, err
	}
	return ExtractOnDemandPrice(priceJSON)
}

// InstanceFilters selects shared-tenancy Linux on-demand usage of
// instanceType in region.
func InstanceFilters(instanceType, region string) []types.Filter {
	term := func(field, value string) types.Filter {
		return types.Filter{
			Type:  types.FilterTypeTermMatch,
			Field: aws.String(field),
			Value: aws.String(value),
		}
	}
	return []types.Filter{
		term("instanceType", instanceType),
		term("location", utils.GetRegionDescriptiveName(region)),
		term("operatingSystem", "Linux"),
		term("tenancy", "Shared"),
		term("preInstalledSw", "NA"),
		term("capacitystatus", "Used"),
	}
}
