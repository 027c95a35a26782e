package environment

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/chainguard-dev/clog"
	cloudaws "github.com/noelmcloughlin/cloud-cli/pkg/aws"
)

// Clean tears down every VPC with the configured CIDR block and project tag,
// along with everything inside it. VPCs without the project tag are not found.
func (e *Environment) Clean(ctx context.Context) {
	for _, dryRun := range passes {
		e.cleanPass(ctx, dryRun)
	}
}

func (e *Environment) cleanPass(ctx context.Context, dryRun bool) {
	e.banner("CLEAN DOWN EC2 ENVIRON", dryRun)

	vpcs, err := e.ec2.GetVpcs(ctx, dryRun,
		cloudaws.NewFilter("cidr", e.cfg.VPCCIDR),
		cloudaws.ProjectFilter(e.cfg.ProjectName),
	)
	e.handle(ctx, err)
	if vpcs == nil || len(vpcs.Vpcs) == 0 {
		fmt.Fprintln(e.opts.Out, "No VPCs found")
		return
	}

	for _, vpc := range vpcs.Vpcs {
		e.cleanVpc(ctx, aws.ToString(vpc.VpcId), dryRun)
	}
}

// cleanVpc deletes in dependency order: instances and their addresses, the
// remaining project addresses, subnets, gateways, the security group and
// finally the VPC itself.
func (e *Environment) cleanVpc(ctx context.Context, vpcID string, dryRun bool) {
	log := clog.FromContext(ctx).With("vpc", vpcID, "dryrun", dryRun)
	log.Info("cleaning VPC")
	inVpc := cloudaws.NewFilter("vpc-id", vpcID)

	instances, err := e.ec2.GetInstances(ctx, inVpc, "", dryRun)
	e.handle(ctx, err)
	if instances != nil {
		for _, reservation := range instances.Reservations {
			for _, instance := range reservation.Instances {
				if instance.State != nil && instance.State.Name == types.InstanceStateNameTerminated {
					continue
				}
				e.terminate(ctx, aws.ToString(instance.InstanceId), dryRun)
			}
		}
	}

	project, err := e.ec2.GetAddresses(ctx, cloudaws.ProjectFilter(e.cfg.ProjectName), "", "", dryRun)
	e.handle(ctx, err)
	if project != nil {
		for _, addr := range project.Addresses {
			if addr.AssociationId != nil {
				continue
			}
			_, err = e.ec2.ReleaseAddress(ctx, aws.ToString(addr.AllocationId), aws.ToString(addr.PublicIp), dryRun)
			e.handle(ctx, err)
		}
	}

	subnets, err := e.ec2.GetSubnets(ctx, dryRun, inVpc)
	e.handle(ctx, err)
	if subnets != nil {
		for _, sn := range subnets.Subnets {
			_, err = e.ec2.DeleteSubnet(ctx, aws.ToString(sn.SubnetId), dryRun)
			e.handle(ctx, err)
		}
	}

	gateways, err := e.ec2.GetInternetGateways(ctx, dryRun, cloudaws.NewFilter("attachment.vpc-id", vpcID))
	e.handle(ctx, err)
	if gateways != nil {
		for _, igw := range gateways.InternetGateways {
			gatewayID := aws.ToString(igw.InternetGatewayId)
			_, err = e.ec2.DetachInternetGateway(ctx, gatewayID, vpcID, dryRun)
			e.handle(ctx, err)
			_, err = e.ec2.DeleteInternetGateway(ctx, gatewayID, dryRun)
			e.handle(ctx, err)
		}
	}

	groups, err := e.ec2.GetSecurityGroups(ctx, e.cfg.GroupName, dryRun, inVpc)
	e.handle(ctx, err)
	if groups != nil {
		for _, sg := range groups.SecurityGroups {
			_, err = e.ec2.DeleteSecurityGroup(ctx, aws.ToString(sg.GroupId), dryRun)
			e.handle(ctx, err)
		}
	}

	_, err = e.ec2.DeleteVpc(ctx, vpcID, dryRun)
	e.handle(ctx, err)
}

// terminate looks up the instance's addresses first, since termination
// disassociates them, then releases them once the instance is gone.
func (e *Environment) terminate(ctx context.Context, instanceID string, dryRun bool) {
	eips, err := e.ec2.GetAddresses(ctx, cloudaws.NewFilter("domain", string(types.DomainTypeVpc)), "", instanceID, dryRun)
	e.handle(ctx, err)

	out, err := e.ec2.TerminateInstance(ctx, instanceID, dryRun)
	e.handle(ctx, err)
	if out == nil {
		return
	}
	err = e.wait(fmt.Sprintf("Waiting for instance %s to terminate ...", instanceID), func() error {
		return e.ec2.WaitTerminated(ctx, instanceID, e.cfg.WaitTimeout)
	})
	e.handle(ctx, err)

	if eips == nil {
		return
	}
	for _, addr := range eips.Addresses {
		_, err = e.ec2.ReleaseAddress(ctx, aws.ToString(addr.AllocationId), aws.ToString(addr.PublicIp), dryRun)
		e.handle(ctx, err)
	}
}
