// Package ec2test provides an in-memory stand-in for the EC2 and STS APIs.
// It records every call and answers dry-run requests the way EC2 does.
package ec2test

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

// IDs handed out by the create calls.
const (
	VpcID         = "vpc-123"
	GatewayID     = "igw-123"
	SubnetID      = "subnet-123"
	GroupID       = "sg-123"
	AllocationID  = "eipalloc-123"
	AssociationID = "eipassoc-123"
	InstanceID    = "i-123"
	RouteTableID  = "rtb-123"
	PublicIP      = "203.0.113.10"
)

// APIError returns a provider error carrying code, as the SDK surfaces it.
func APIError(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: code}
}

// Call is one recorded request.
type Call struct {
	Op     string
	DryRun bool
	Input  any
}

// EC2 implements the EC2 operations used by the environment. The zero value
// is ready to use. Describe calls answer with the matching slice fields.
type EC2 struct {
	mu    sync.Mutex
	Calls []Call

	// Errors forces an operation to fail, keyed by operation name. A forced
	// error wins over the dry-run answer.
	Errors map[string]error

	KeyPairs         []types.KeyPairInfo
	Vpcs             []types.Vpc
	Subnets          []types.Subnet
	SecurityGroups   []types.SecurityGroup
	Addresses        []types.Address
	InternetGateways []types.InternetGateway
	RouteTables      []types.RouteTable
	Instances        []types.Instance

	// DescribeByID answers describe calls carrying instance IDs, as the
	// waiters send. Defaults to a running instance, or a terminated one
	// once TerminateInstances has succeeded.
	DescribeByID func(ids []string) []types.Instance

	terminated map[string]bool
}

func (f *EC2) record(op string, dryRun *bool, input any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{Op: op, DryRun: aws.ToBool(dryRun), Input: input})
	if err, ok := f.Errors[op]; ok && err != nil {
		return err
	}
	if aws.ToBool(dryRun) {
		return APIError("DryRunOperation")
	}
	return nil
}

// Ops lists the recorded operation names in call order.
func (f *EC2) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ops := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		ops = append(ops, c.Op)
	}
	return ops
}

// RealOps lists the operation names of calls made without DryRun.
func (f *EC2) RealOps() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ops []string
	for _, c := range f.Calls {
		if !c.DryRun {
			ops = append(ops, c.Op)
		}
	}
	return ops
}

// Last returns the most recent call to op, or nil.
func (f *EC2) Last(op string) *Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.Calls) - 1; i >= 0; i-- {
		if f.Calls[i].Op == op {
			c := f.Calls[i]
			return &c
		}
	}
	return nil
}

func (f *EC2) DescribeKeyPairs(_ context.Context, in *ec2.DescribeKeyPairsInput, _ ...func(*ec2.Options)) (*ec2.DescribeKeyPairsOutput, error) {
	if err := f.record("DescribeKeyPairs", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DescribeKeyPairsOutput{KeyPairs: f.KeyPairs}, nil
}

func (f *EC2) CreateVpc(_ context.Context, in *ec2.CreateVpcInput, _ ...func(*ec2.Options)) (*ec2.CreateVpcOutput, error) {
	if err := f.record("CreateVpc", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.CreateVpcOutput{Vpc: &types.Vpc{VpcId: aws.String(VpcID), CidrBlock: in.CidrBlock}}, nil
}

func (f *EC2) DeleteVpc(_ context.Context, in *ec2.DeleteVpcInput, _ ...func(*ec2.Options)) (*ec2.DeleteVpcOutput, error) {
	if err := f.record("DeleteVpc", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DeleteVpcOutput{}, nil
}

func (f *EC2) DescribeVpcs(_ context.Context, in *ec2.DescribeVpcsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	if err := f.record("DescribeVpcs", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DescribeVpcsOutput{Vpcs: f.Vpcs}, nil
}

func (f *EC2) CreateSubnet(_ context.Context, in *ec2.CreateSubnetInput, _ ...func(*ec2.Options)) (*ec2.CreateSubnetOutput, error) {
	if err := f.record("CreateSubnet", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.CreateSubnetOutput{Subnet: &types.Subnet{SubnetId: aws.String(SubnetID), VpcId: in.VpcId}}, nil
}

func (f *EC2) DeleteSubnet(_ context.Context, in *ec2.DeleteSubnetInput, _ ...func(*ec2.Options)) (*ec2.DeleteSubnetOutput, error) {
	if err := f.record("DeleteSubnet", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DeleteSubnetOutput{}, nil
}

func (f *EC2) DescribeSubnets(_ context.Context, in *ec2.DescribeSubnetsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	if err := f.record("DescribeSubnets", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DescribeSubnetsOutput{Subnets: f.Subnets}, nil
}

func (f *EC2) CreateSecurityGroup(_ context.Context, in *ec2.CreateSecurityGroupInput, _ ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error) {
	if err := f.record("CreateSecurityGroup", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.CreateSecurityGroupOutput{GroupId: aws.String(GroupID)}, nil
}

func (f *EC2) DeleteSecurityGroup(_ context.Context, in *ec2.DeleteSecurityGroupInput, _ ...func(*ec2.Options)) (*ec2.DeleteSecurityGroupOutput, error) {
	if err := f.record("DeleteSecurityGroup", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DeleteSecurityGroupOutput{}, nil
}

func (f *EC2) DescribeSecurityGroups(_ context.Context, in *ec2.DescribeSecurityGroupsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	if err := f.record("DescribeSecurityGroups", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DescribeSecurityGroupsOutput{SecurityGroups: f.SecurityGroups}, nil
}

func (f *EC2) AuthorizeSecurityGroupIngress(_ context.Context, in *ec2.AuthorizeSecurityGroupIngressInput, _ ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error) {
	if err := f.record("AuthorizeSecurityGroupIngress", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.AuthorizeSecurityGroupIngressOutput{Return: aws.Bool(true)}, nil
}

func (f *EC2) AllocateAddress(_ context.Context, in *ec2.AllocateAddressInput, _ ...func(*ec2.Options)) (*ec2.AllocateAddressOutput, error) {
	if err := f.record("AllocateAddress", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.AllocateAddressOutput{
		AllocationId: aws.String(AllocationID),
		PublicIp:     aws.String(PublicIP),
		Domain:       in.Domain,
	}, nil
}

func (f *EC2) AssociateAddress(_ context.Context, in *ec2.AssociateAddressInput, _ ...func(*ec2.Options)) (*ec2.AssociateAddressOutput, error) {
	if err := f.record("AssociateAddress", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.AssociateAddressOutput{AssociationId: aws.String(AssociationID)}, nil
}

func (f *EC2) ReleaseAddress(_ context.Context, in *ec2.ReleaseAddressInput, _ ...func(*ec2.Options)) (*ec2.ReleaseAddressOutput, error) {
	if err := f.record("ReleaseAddress", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.ReleaseAddressOutput{}, nil
}

// DescribeAddresses honours the instance-id filter so callers can tell an
// instance's addresses apart from the unassociated ones.
func (f *EC2) DescribeAddresses(_ context.Context, in *ec2.DescribeAddressesInput, _ ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
	if err := f.record("DescribeAddresses", in.DryRun, in); err != nil {
		return nil, err
	}
	var instanceID string
	for _, filter := range in.Filters {
		if aws.ToString(filter.Name) == "instance-id" && len(filter.Values) > 0 {
			instanceID = filter.Values[0]
		}
	}
	if instanceID == "" {
		return &ec2.DescribeAddressesOutput{Addresses: f.Addresses}, nil
	}
	var addrs []types.Address
	for _, a := range f.Addresses {
		if aws.ToString(a.InstanceId) == instanceID {
			addrs = append(addrs, a)
		}
	}
	return &ec2.DescribeAddressesOutput{Addresses: addrs}, nil
}

func (f *EC2) CreateInternetGateway(_ context.Context, in *ec2.CreateInternetGatewayInput, _ ...func(*ec2.Options)) (*ec2.CreateInternetGatewayOutput, error) {
	if err := f.record("CreateInternetGateway", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.CreateInternetGatewayOutput{
		InternetGateway: &types.InternetGateway{InternetGatewayId: aws.String(GatewayID)},
	}, nil
}

func (f *EC2) DeleteInternetGateway(_ context.Context, in *ec2.DeleteInternetGatewayInput, _ ...func(*ec2.Options)) (*ec2.DeleteInternetGatewayOutput, error) {
	if err := f.record("DeleteInternetGateway", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DeleteInternetGatewayOutput{}, nil
}

func (f *EC2) DescribeInternetGateways(_ context.Context, in *ec2.DescribeInternetGatewaysInput, _ ...func(*ec2.Options)) (*ec2.DescribeInternetGatewaysOutput, error) {
	if err := f.record("DescribeInternetGateways", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DescribeInternetGatewaysOutput{InternetGateways: f.InternetGateways}, nil
}

func (f *EC2) AttachInternetGateway(_ context.Context, in *ec2.AttachInternetGatewayInput, _ ...func(*ec2.Options)) (*ec2.AttachInternetGatewayOutput, error) {
	if err := f.record("AttachInternetGateway", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.AttachInternetGatewayOutput{}, nil
}

func (f *EC2) DetachInternetGateway(_ context.Context, in *ec2.DetachInternetGatewayInput, _ ...func(*ec2.Options)) (*ec2.DetachInternetGatewayOutput, error) {
	if err := f.record("DetachInternetGateway", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.DetachInternetGatewayOutput{}, nil
}

// DescribeRouteTables answers with RouteTables, or a single main table when
// none are configured.
func (f *EC2) DescribeRouteTables(_ context.Context, in *ec2.DescribeRouteTablesInput, _ ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error) {
	if err := f.record("DescribeRouteTables", in.DryRun, in); err != nil {
		return nil, err
	}
	if f.RouteTables != nil {
		return &ec2.DescribeRouteTablesOutput{RouteTables: f.RouteTables}, nil
	}
	return &ec2.DescribeRouteTablesOutput{RouteTables: []types.RouteTable{
		{RouteTableId: aws.String(RouteTableID), VpcId: aws.String(VpcID)},
	}}, nil
}

func (f *EC2) CreateRoute(_ context.Context, in *ec2.CreateRouteInput, _ ...func(*ec2.Options)) (*ec2.CreateRouteOutput, error) {
	if err := f.record("CreateRoute", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.CreateRouteOutput{Return: aws.Bool(true)}, nil
}

func (f *EC2) RunInstances(_ context.Context, in *ec2.RunInstancesInput, _ ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error) {
	if err := f.record("RunInstances", in.DryRun, in); err != nil {
		return nil, err
	}
	return &ec2.RunInstancesOutput{Instances: []types.Instance{{
		InstanceId:   aws.String(InstanceID),
		InstanceType: in.InstanceType,
		State:        &types.InstanceState{Name: types.InstanceStateNamePending},
	}}}, nil
}

func (f *EC2) TerminateInstances(_ context.Context, in *ec2.TerminateInstancesInput, _ ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error) {
	if err := f.record("TerminateInstances", in.DryRun, in); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.terminated == nil {
		f.terminated = map[string]bool{}
	}
	for _, id := range in.InstanceIds {
		f.terminated[id] = true
	}
	return &ec2.TerminateInstancesOutput{}, nil
}

func (f *EC2) DescribeInstances(_ context.Context, in *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if err := f.record("DescribeInstances", in.DryRun, in); err != nil {
		return nil, err
	}
	if len(in.InstanceIds) == 0 {
		return &ec2.DescribeInstancesOutput{
			Reservations: []types.Reservation{{Instances: f.Instances}},
		}, nil
	}
	if f.DescribeByID != nil {
		return &ec2.DescribeInstancesOutput{
			Reservations: []types.Reservation{{Instances: f.DescribeByID(in.InstanceIds)}},
		}, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	instances := make([]types.Instance, 0, len(in.InstanceIds))
	for _, id := range in.InstanceIds {
		state := types.InstanceStateNameRunning
		if f.terminated[id] {
			state = types.InstanceStateNameTerminated
		}
		instances = append(instances, types.Instance{
			InstanceId: aws.String(id),
			State:      &types.InstanceState{Name: state},
		})
	}
	return &ec2.DescribeInstancesOutput{
		Reservations: []types.Reservation{{Instances: instances}},
	}, nil
}

// STS answers GetCallerIdentity with the configured identity.
type STS struct {
	Account string
	Arn     string
	UserID  string
	Err     error
}

func (s *STS) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &sts.GetCallerIdentityOutput{
		Account: aws.String(s.Account),
		Arn:     aws.String(s.Arn),
		UserId:  aws.String(s.UserID),
	}, nil
}
