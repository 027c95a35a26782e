package aws

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/noelmcloughlin/cloud-cli/internal/models"
	"github.com/noelmcloughlin/cloud-cli/pkg/utils"
)

// KeyPairInfos converts a describe key pairs result; nil yields nil.
func KeyPairInfos(out *ec2.DescribeKeyPairsOutput) []models.KeyPairInfo {
	if out == nil {
		return nil
	}
	keys := make([]models.KeyPairInfo, 0, len(out.KeyPairs))
	for _, kp := range out.KeyPairs {
		keys = append(keys, models.KeyPairInfo{
			KeyName:        aws.ToString(kp.KeyName),
			KeyFingerprint: aws.ToString(kp.KeyFingerprint),
			KeyPairID:      aws.ToString(kp.KeyPairId),
			KeyType:        string(kp.KeyType),
		})
	}
	return keys
}

func VPCInfos(out *ec2.DescribeVpcsOutput) []models.VPCInfo {
	if out == nil {
		return nil
	}
	vpcs := make([]models.VPCInfo, 0, len(out.Vpcs))
	for _, vpc := range out.Vpcs {
		info := models.VPCInfo{
			VpcID:     aws.ToString(vpc.VpcId),
			Name:      utils.GetName(vpc.Tags),
			CidrBlock: aws.ToString(vpc.CidrBlock),
			State:     string(vpc.State),
			Tenancy:   string(vpc.InstanceTenancy),
			IsDefault: aws.ToBool(vpc.IsDefault),
		}
		if len(vpc.Ipv6CidrBlockAssociationSet) > 0 {
			info.Ipv6Cidr = aws.ToString(vpc.Ipv6CidrBlockAssociationSet[0].Ipv6CidrBlock)
		}
		vpcs = append(vpcs, info)
	}
	return vpcs
}

func SubnetInfos(out *ec2.DescribeSubnetsOutput) []models.SubnetInfo {
	if out == nil {
		return nil
	}
	subnets := make([]models.SubnetInfo, 0, len(out.Subnets))
	for _, sn := range out.Subnets {
		subnets = append(subnets, models.SubnetInfo{
			SubnetID:         aws.ToString(sn.SubnetId),
			VpcID:            aws.ToString(sn.VpcId),
			Name:             utils.GetName(sn.Tags),
			CidrBlock:        aws.ToString(sn.CidrBlock),
			AvailabilityZone: aws.ToString(sn.AvailabilityZone),
			AvailableIPs:     aws.ToInt32(sn.AvailableIpAddressCount),
		})
	}
	return subnets
}

func SecurityGroupInfos(out *ec2.DescribeSecurityGroupsOutput) []models.SecurityGroupInfo {
	if out == nil {
		return nil
	}
	groups := make([]models.SecurityGroupInfo, 0, len(out.SecurityGroups))
	for _, sg := range out.SecurityGroups {
		info := models.SecurityGroupInfo{
			GroupID:     aws.ToString(sg.GroupId),
			GroupName:   aws.ToString(sg.GroupName),
			VpcID:       aws.ToString(sg.VpcId),
			Description: aws.ToString(sg.Description),
		}
		for _, p := range sg.IpPermissions {
			port := fmt.Sprintf("%s:%d", strings.ToLower(aws.ToString(p.IpProtocol)), aws.ToInt32(p.FromPort))
			if aws.ToInt32(p.ToPort) != aws.ToInt32(p.FromPort) {
				port = fmt.Sprintf("%s-%d", port, aws.ToInt32(p.ToPort))
			}
			for _, r := range p.IpRanges {
				info.Ingress = append(info.Ingress, port+" "+aws.ToString(r.CidrIp))
			}
			for _, r := range p.Ipv6Ranges {
				info.Ingress = append(info.Ingress, port+" "+aws.ToString(r.CidrIpv6))
			}
		}
		groups = append(groups, info)
	}
	return groups
}

func GatewayInfos(out *ec2.DescribeInternetGatewaysOutput) []models.GatewayInfo {
	if out == nil {
		return nil
	}
	gateways := make([]models.GatewayInfo, 0, len(out.InternetGateways))
	for _, igw := range out.InternetGateways {
		info := models.GatewayInfo{
			GatewayID: aws.ToString(igw.InternetGatewayId),
			Name:      utils.GetName(igw.Tags),
		}
		for _, a := range igw.Attachments {
			info.Attachments = append(info.Attachments, fmt.Sprintf("%s (%s)", aws.ToString(a.VpcId), a.State))
		}
		gateways = append(gateways, info)
	}
	return gateways
}

func EIPInfos(out *ec2.DescribeAddressesOutput) []models.EIPInfo {
	if out == nil {
		return nil
	}
	eips := make([]models.EIPInfo, 0, len(out.Addresses))
	for _, eip := range out.Addresses {
		eips = append(eips, models.EIPInfo{
			AllocationID:       utils.SafeDeref(eip.AllocationId),
			PublicIP:           utils.SafeDeref(eip.PublicIp),
			AssociationID:      utils.SafeDeref(eip.AssociationId),
			InstanceID:         utils.SafeDeref(eip.InstanceId),
			NetworkInterfaceID: utils.SafeDeref(eip.NetworkInterfaceId),
			Domain:             string(eip.Domain),
			Name:               utils.GetName(eip.Tags),
		})
	}
	return eips
}

// InstanceInfos flattens every reservation of a describe instances result.
// Pricing fields are left for the caller.
func InstanceInfos(out *ec2.DescribeInstancesOutput) []models.InstanceInfo {
	if out == nil {
		return nil
	}
	var instances []models.InstanceInfo
	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			info := models.InstanceInfo{
				InstanceID:   aws.ToString(instance.InstanceId),
				Name:         utils.GetName(instance.Tags),
				InstanceType: string(instance.InstanceType),
				VpcID:        aws.ToString(instance.VpcId),
				SubnetID:     aws.ToString(instance.SubnetId),
				PublicIP:     aws.ToString(instance.PublicIpAddress),
				PrivateIP:    aws.ToString(instance.PrivateIpAddress),
				KeyName:      aws.ToString(instance.KeyName),
				LaunchTime:   instance.LaunchTime,
			}
			if instance.State != nil {
				info.State = string(instance.State.Name)
			}
			if instance.Placement != nil {
				info.AvailabilityZone = aws.ToString(instance.Placement.AvailabilityZone)
			}
			instances = append(instances, info)
		}
	}
	return instances
}
