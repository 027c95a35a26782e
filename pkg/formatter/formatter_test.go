package formatter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/noelmcloughlin/cloud-cli/internal/models"
	"github.com/noelmcloughlin/cloud-cli/pkg/pricing"
	"github.com/stretchr/testify/assert"
)

func TestPrintCreated(t *testing.T) {
	ids := Created{VpcID: "vpc-1", SubnetID: "subnet-1", SecurityGroupID: "sg-1", InstanceID: "i-1"}

	var buf bytes.Buffer
	PrintCreated(&buf, ids, true)
	assert.Equal(t, "created VPC (dryrun)\n"+
		"created Subnet (dryrun)\n"+
		"created Security Group (dryrun)\n"+
		"created Instance (dryrun)\n", buf.String())

	buf.Reset()
	PrintCreated(&buf, ids, false)
	assert.Equal(t, "created VPC vpc-1\n"+
		"created Subnet subnet-1\n"+
		"created Security Group sg-1\n"+
		"created Instance i-1\n", buf.String())
}

func TestPrintKeyPairs(t *testing.T) {
	var buf bytes.Buffer
	PrintKeyPairs(&buf, []models.KeyPairInfo{
		{KeyName: "ec2_user", KeyFingerprint: "1f:51:ae"},
		{KeyName: "other", KeyFingerprint: "2a:00:01"},
	})
	assert.Equal(t, "KeyName: ec2_user, KeyFingerprint: 1f:51:ae\n"+
		"KeyName: other, KeyFingerprint: 2a:00:01\n", buf.String())
}

func TestPrintInstancesTable(t *testing.T) {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	older := fixed.Add(-3 * time.Hour)
	newer := fixed.Add(-10 * time.Minute)
	var buf bytes.Buffer
	PrintInstancesTable(&buf, []models.InstanceInfo{
		{InstanceID: "i-new", InstanceType: "t2.micro", State: "running", LaunchTime: &newer, PricingSource: string(pricing.PricingSourceNA)},
		{InstanceID: "i-old", Name: "web", InstanceType: "t2.micro", State: "running", PublicIP: "203.0.113.1", LaunchTime: &older, HourlyPrice: 0.0126, PricingSource: string(pricing.PricingSourceAPI)},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "## Instances", lines[0])
	assert.Contains(t, lines[1], "INSTANCE ID")
	assert.Contains(t, lines[2], "i-old")
	assert.Contains(t, lines[2], "3 hours ago")
	assert.Contains(t, lines[2], "$0.0126")
	assert.Contains(t, lines[2], "$9.20")
	assert.Contains(t, lines[3], "i-new")
	assert.Contains(t, lines[3], "<unnamed>")
	assert.Contains(t, lines[3], "10 minutes ago")
	assert.Contains(t, lines[3], "N/A")
	assert.Contains(t, lines[4], "Total:")
}

func TestPrintEmptyTables(t *testing.T) {
	var buf bytes.Buffer
	PrintVPCsTable(&buf, nil)
	PrintSubnetsTable(&buf, nil)
	PrintSecurityGroupsTable(&buf, nil)
	PrintGatewaysTable(&buf, nil)
	PrintEIPsTable(&buf, nil)
	PrintInstancesTable(&buf, nil)
	PrintPricingAPIStats(&buf, nil)

	for _, want := range []string{
		"No VPCs found",
		"No subnets found",
		"No security groups found",
		"No internet gateways found",
		"No Elastic IPs found",
		"No instances found",
	} {
		assert.Contains(t, buf.String(), want)
	}
	assert.NotContains(t, buf.String(), "Pricing API")
}

func TestPrintNetworkTables(t *testing.T) {
	var buf bytes.Buffer
	PrintVPCsTable(&buf, []models.VPCInfo{{VpcID: "vpc-1", CidrBlock: "10.0.0.0/16", State: "available", Tenancy: "default"}})
	PrintSecurityGroupsTable(&buf, []models.SecurityGroupInfo{{GroupID: "sg-1", GroupName: "mygroupname", VpcID: "vpc-1", Ingress: []string{"tcp:22 0.0.0.0/0", "tcp:22 ::/0"}}})
	PrintGatewaysTable(&buf, []models.GatewayInfo{{GatewayID: "igw-1"}})
	PrintEIPsTable(&buf, []models.EIPInfo{
		{AllocationID: "eipalloc-2", PublicIP: "203.0.113.2"},
		{AllocationID: "eipalloc-1", PublicIP: "203.0.113.1", InstanceID: "i-1", AssociationID: "eipassoc-1"},
	})

	out := buf.String()
	assert.Contains(t, out, "vpc-1")
	assert.Contains(t, out, "tcp:22 0.0.0.0/0, tcp:22 ::/0")
	assert.Contains(t, out, "igw-1")
	assert.Less(t, strings.Index(out, "eipalloc-1"), strings.Index(out, "eipalloc-2"))
	assert.Contains(t, out, "1 unattached")
}

func TestPrintPricingAPIStats(t *testing.T) {
	var buf bytes.Buffer
	PrintPricingAPIStats(&buf, map[string]pricing.Stats{"eu-west-1": {Success: 1, Failure: 1, Cache: 3}})
	assert.Contains(t, buf.String(), "eu-west-1")
	assert.Contains(t, buf.String(), "50.0%")
}
