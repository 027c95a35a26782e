package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, "ec2_user", c.KeyPairName)
	assert.Equal(t, "ami-0fad7378adf284ce0", c.AMI)
	assert.Equal(t, "t2.micro", c.InstanceType)
	assert.Equal(t, "10.0.0.0/16", c.VPCCIDR)
	assert.Equal(t, c.VPCCIDR, c.SubnetCIDR)
	assert.Equal(t, "mygroupname", c.GroupName)
	assert.Equal(t, "assignment project", c.ProjectName)
	assert.Equal(t, "eu-west-1", c.Region)
	assert.Equal(t, "default", c.Tenancy)
	assert.Equal(t, []int32{22, 80, 443}, c.IngressPorts)
	assert.Equal(t, 10*time.Minute, c.WaitTimeout)
	require.NoError(t, c.Validate())
}

func TestApplyDefaultsKeepsOverrides(t *testing.T) {
	c := &Config{KeyPairName: "mykey", VPCCIDR: "172.16.0.0/16", IngressPorts: []int32{8080}}
	c.ApplyDefaults()
	assert.Equal(t, "mykey", c.KeyPairName)
	assert.Equal(t, "172.16.0.0/16", c.SubnetCIDR)
	assert.Equal(t, []int32{8080}, c.IngressPorts)

	// The defaults slice must not be shared with the config.
	c.IngressPorts[0] = 1
	assert.Equal(t, int32(22), DefaultIngressPorts[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"bad vpc cidr", func(c *Config) { c.VPCCIDR = "10.0.0.0" }},
		{"bad subnet cidr", func(c *Config) { c.SubnetCIDR = "nope" }},
		{"bad ingress cidr6", func(c *Config) { c.IngressCIDR6 = "::/200" }},
		{"bad port", func(c *Config) { c.IngressPorts = []int32{70000} }},
		{"no keypair", func(c *Config) { c.KeyPairName = "" }},
		{"no ami", func(c *Config) { c.AMI = "" }},
		{"negative timeout", func(c *Config) { c.WaitTimeout = -time.Second }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := Default()
			tc.modify(c)
			assert.Error(t, c.Validate())
		})
	}
}
