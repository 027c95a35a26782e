package utils

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	tags := []types.Tag{
		{Key: aws.String("Name"), Value: aws.String("assignment project")},
		{Key: aws.String("project"), Value: aws.String("assignment project")},
		{Key: aws.String("empty")},
	}
	assert.Equal(t, "assignment project", GetName(tags))
	assert.Equal(t, "", GetTagValue(tags, "empty"))
	assert.Equal(t, "", GetTagValue(tags, "missing"))
}

func TestRegions(t *testing.T) {
	assert.True(t, IsValidRegion("eu-west-1"))
	assert.False(t, IsValidRegion("mars-1"))
	assert.Equal(t, "EU (Ireland)", GetRegionDescriptiveName("eu-west-1"))
	assert.Equal(t, "mars-1", GetRegionDescriptiveName("mars-1"))
}

func TestJSON(t *testing.T) {
	m, err := ParseJSON(`{"a": {"b": 1}}`)
	require.NoError(t, err)
	v, err := GetFirstMapValue(m)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"b": float64(1)}, v)

	_, err = GetFirstMapValue(map[string]interface{}{})
	assert.Error(t, err)
	_, err = ParseJSON("[")
	assert.Error(t, err)
}

func TestSafeDeref(t *testing.T) {
	assert.Equal(t, "", SafeDeref(nil))
	assert.Equal(t, "x", SafeDeref(aws.String("x")))
}
