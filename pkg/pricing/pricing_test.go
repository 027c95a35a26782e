package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/pricing"
	"github.com/aws/aws-sdk-go-v2/service/pricing/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const t2MicroIreland = `{
  "product": {"attributes": {"instanceType": "t2.micro"}},
  "terms": {
    "OnDemand": {
      "ABC.JRTCKXETXF": {
        "priceDimensions": {
          "ABC.JRTCKXETXF.6YS6EN2CT7": {
            "unit": "Hrs",
            "pricePerUnit": {"USD": "0.0126000000"}
          }
        }
      }
    }
  }
}`

type fakeProducts struct {
	calls  int
	input  *pricing.GetProductsInput
	prices []string
	err    error
}

func (f *fakeProducts) GetProducts(_ context.Context, in *pricing.GetProductsInput, _ ...func(*pricing.Options)) (*pricing.GetProductsOutput, error) {
	f.calls++
	f.input = in
	if f.err != nil {
		return nil, f.err
	}
	return &pricing.GetProductsOutput{PriceList: f.prices}, nil
}

func TestExtractOnDemandPrice(t *testing.T) {
	price, err := ExtractOnDemandPrice(t2MicroIreland)
	require.NoError(t, err)
	assert.InDelta(t, 0.0126, price, 1e-9)

	tests := []struct {
		name string
		json string
	}{
		{"not json", "{"},
		{"no terms", `{"product": {}}`},
		{"no on demand", `{"terms": {"Reserved": {}}}`},
		{"empty on demand", `{"terms": {"OnDemand": {}}}`},
		{"no usd", `{"terms": {"OnDemand": {"a": {"priceDimensions": {"b": {"pricePerUnit": {"EUR": "1"}}}}}}}`},
		{"bad number", `{"terms": {"OnDemand": {"a": {"priceDimensions": {"b": {"pricePerUnit": {"USD": "cheap"}}}}}}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractOnDemandPrice(tc.json)
			assert.Error(t, err)
		})
	}
}

func TestInstanceHourlyPriceCaches(t *testing.T) {
	ctx := context.Background()
	api := &fakeProducts{prices: []string{t2MicroIreland}}
	c := NewClientFromAPI(api)

	price, source := c.InstanceHourlyPrice(ctx, "t2.micro", "eu-west-1")
	assert.InDelta(t, 0.0126, price, 1e-9)
	assert.Equal(t, PricingSourceAPI, source)

	price, source = c.InstanceHourlyPrice(ctx, "t2.micro", "eu-west-1")
	assert.InDelta(t, 0.0126, price, 1e-9)
	assert.Equal(t, PricingSourceCache, source)
	assert.Equal(t, 1, api.calls)

	assert.Equal(t, "AmazonEC2", aws.ToString(api.input.ServiceCode))
	assert.Contains(t, api.input.Filters, types.Filter{
		Type:  types.FilterTypeTermMatch,
		Field: aws.String("location"),
		Value: aws.String("EU (Ireland)"),
	})
	assert.Equal(t, map[string]Stats{"eu-west-1": {Success: 1, Cache: 1}}, c.Stats())
}

func TestInstanceHourlyPriceFailure(t *testing.T) {
	ctx := context.Background()
	api := &fakeProducts{err: errors.New("access denied")}
	c := NewClientFromAPI(api)

	price, source := c.InstanceHourlyPrice(ctx, "t2.micro", "eu-west-1")
	assert.Zero(t, price)
	assert.Equal(t, PricingSourceNA, source)

	api.err = nil
	_, source = c.InstanceHourlyPrice(ctx, "t2.micro", "eu-west-1")
	assert.Equal(t, PricingSourceNA, source, "empty price list")
	assert.Equal(t, 2, api.calls)
	assert.Equal(t, map[string]Stats{"eu-west-1": {Failure: 2}}, c.Stats())
}

func TestMonthlyCost(t *testing.T) {
	assert.InDelta(t, 9.198, MonthlyCost(0.0126), 1e-9)
}
