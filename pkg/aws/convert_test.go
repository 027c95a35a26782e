package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/noelmcloughlin/cloud-cli/internal/ec2test"
	"github.com/noelmcloughlin/cloud-cli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertNil(t *testing.T) {
	assert.Nil(t, KeyPairInfos(nil))
	assert.Nil(t, VPCInfos(nil))
	assert.Nil(t, SubnetInfos(nil))
	assert.Nil(t, SecurityGroupInfos(nil))
	assert.Nil(t, GatewayInfos(nil))
	assert.Nil(t, EIPInfos(nil))
	assert.Nil(t, InstanceInfos(nil))
}

func TestInstanceInfos(t *testing.T) {
	launched := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	out := &ec2.DescribeInstancesOutput{Reservations: []types.Reservation{
		{Instances: []types.Instance{{
			InstanceId:       aws.String("i-1"),
			InstanceType:     types.InstanceTypeT2Micro,
			State:            &types.InstanceState{Name: types.InstanceStateNameRunning},
			VpcId:            aws.String("vpc-1"),
			PublicIpAddress:  aws.String("203.0.113.1"),
			Placement:        &types.Placement{AvailabilityZone: aws.String("eu-west-1a")},
			LaunchTime:       &launched,
			Tags:             []types.Tag{{Key: aws.String("Name"), Value: aws.String("web")}},
			PrivateIpAddress: aws.String("10.0.0.5"),
		}}},
		{Instances: []types.Instance{{InstanceId: aws.String("i-2")}}},
	}}

	got := InstanceInfos(out)
	require.Len(t, got, 2)
	assert.Equal(t, models.InstanceInfo{
		InstanceID:       "i-1",
		Name:             "web",
		InstanceType:     "t2.micro",
		State:            "running",
		VpcID:            "vpc-1",
		PublicIP:         "203.0.113.1",
		PrivateIP:        "10.0.0.5",
		AvailabilityZone: "eu-west-1a",
		LaunchTime:       &launched,
	}, got[0])
	assert.Equal(t, "i-2", got[1].InstanceID)
	assert.Empty(t, got[1].State)
}

func TestSecurityGroupInfos(t *testing.T) {
	out := &ec2.DescribeSecurityGroupsOutput{SecurityGroups: []types.SecurityGroup{{
		GroupId:   aws.String("sg-1"),
		GroupName: aws.String("mygroupname"),
		IpPermissions: []types.IpPermission{
			{
				FromPort:   aws.Int32(22),
				ToPort:     aws.Int32(22),
				IpProtocol: aws.String("TCP"),
				IpRanges:   []types.IpRange{{CidrIp: aws.String("0.0.0.0/0")}},
				Ipv6Ranges: []types.Ipv6Range{{CidrIpv6: aws.String("::/0")}},
			},
			{
				FromPort:   aws.Int32(8000),
				ToPort:     aws.Int32(8080),
				IpProtocol: aws.String("tcp"),
				IpRanges:   []types.IpRange{{CidrIp: aws.String("10.0.0.0/8")}},
			},
		},
	}}}

	got := SecurityGroupInfos(out)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"tcp:22 0.0.0.0/0", "tcp:22 ::/0", "tcp:8000-8080 10.0.0.0/8"}, got[0].Ingress)
}

func TestEIPInfos(t *testing.T) {
	out := &ec2.DescribeAddressesOutput{Addresses: []types.Address{
		{AllocationId: aws.String("eipalloc-1"), PublicIp: aws.String("203.0.113.1"), InstanceId: aws.String("i-1"), AssociationId: aws.String("eipassoc-1")},
		{AllocationId: aws.String("eipalloc-2"), PublicIp: aws.String("203.0.113.2")},
	}}
	got := EIPInfos(out)
	require.Len(t, got, 2)
	assert.True(t, got[0].Attached())
	assert.False(t, got[1].Attached())
	assert.Equal(t, "203.0.113.2", got[1].PublicIP)
}

func TestVPCAndGatewayInfos(t *testing.T) {
	vpcs := VPCInfos(&ec2.DescribeVpcsOutput{Vpcs: []types.Vpc{{
		VpcId:     aws.String("vpc-1"),
		CidrBlock: aws.String("10.0.0.0/16"),
		State:     types.VpcStateAvailable,
		Ipv6CidrBlockAssociationSet: []types.VpcIpv6CidrBlockAssociation{
			{Ipv6CidrBlock: aws.String("2a05:d018::/56")},
		},
	}}})
	require.Len(t, vpcs, 1)
	assert.Equal(t, "2a05:d018::/56", vpcs[0].Ipv6Cidr)
	assert.Equal(t, "available", vpcs[0].State)

	gateways := GatewayInfos(&ec2.DescribeInternetGatewaysOutput{InternetGateways: []types.InternetGateway{{
		InternetGatewayId: aws.String("igw-1"),
		Attachments:       []types.InternetGatewayAttachment{{VpcId: aws.String("vpc-1"), State: types.AttachmentStatusAttached}},
	}}})
	require.Len(t, gateways, 1)
	assert.Equal(t, []string{"vpc-1 (attached)"}, gateways[0].Attachments)
}

func TestCallerIdentity(t *testing.T) {
	c := NewSTSClientFromAPI(&ec2test.STS{Account: "123456789012", Arn: "arn:aws:iam::123456789012:user/dev", UserID: "AIDA"})
	id, err := c.CallerIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.CallerIdentity{Account: "123456789012", Arn: "arn:aws:iam::123456789012:user/dev", UserID: "AIDA"}, id)

	c = NewSTSClientFromAPI(&ec2test.STS{Err: errors.New("expired token")})
	_, err = c.CallerIdentity(context.Background())
	require.ErrorIs(t, err, ErrCallerIdentity)
}
