package environment

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/chainguard-dev/clog"
	cloudaws "github.com/noelmcloughlin/cloud-cli/pkg/aws"
	"github.com/noelmcloughlin/cloud-cli/pkg/formatter"
)

// Start creates the environment: VPC, internet gateway with a default route,
// subnet, security group, elastic IP and one instance.
func (e *Environment) Start(ctx context.Context) {
	for _, dryRun := range passes {
		e.startPass(ctx, dryRun)
	}
}

func (e *Environment) startPass(ctx context.Context, dryRun bool) {
	cfg := e.cfg
	e.banner("CREATE EC2 ENVIRON", dryRun)
	log := clog.FromContext(ctx).With("dryrun", dryRun)

	vpc, err := e.ec2.CreateVpc(ctx, cfg.ProjectName, cfg.VPCCIDR, cfg.Tenancy, dryRun)
	e.handle(ctx, err)
	if vpc == nil {
		fmt.Fprintln(e.opts.Out, "No VPCs found")
		return
	}
	var created formatter.Created
	created.VpcID = aws.ToString(vpc.Vpc.VpcId)
	log = log.With("vpc", created.VpcID)

	igw, err := e.ec2.CreateInternetGateway(ctx, cfg.ProjectName, dryRun)
	e.handle(ctx, err)
	if igw != nil {
		gatewayID := aws.ToString(igw.InternetGateway.InternetGatewayId)
		_, err = e.ec2.AttachInternetGateway(ctx, gatewayID, created.VpcID, dryRun)
		e.handle(ctx, err)
		e.addDefaultRoute(ctx, created.VpcID, gatewayID, dryRun)
	}

	subnet, err := e.ec2.CreateSubnet(ctx, cfg.ProjectName, cfg.SubnetCIDR, created.VpcID, dryRun)
	e.handle(ctx, err)
	if subnet != nil {
		created.SubnetID = aws.ToString(subnet.Subnet.SubnetId)
	}

	sg, err := e.ec2.CreateSecurityGroup(ctx, cfg.ProjectName, cfg.GroupName, created.VpcID, dryRun)
	e.handle(ctx, err)
	if sg != nil {
		created.SecurityGroupID = aws.ToString(sg.GroupId)
		for _, port := range cfg.IngressPorts {
			_, err = e.ec2.AddIngress(ctx, created.SecurityGroupID, cloudaws.IngressRule{
				FromPort: port,
				ToPort:   port,
				Protocol: cfg.Protocol,
				CIDRs:    []string{cfg.IngressCIDR},
				CIDRsV6:  []string{cfg.IngressCIDR6},
			}, dryRun)
			e.handle(ctx, err)
		}
	}

	var allocationID string
	eip, err := e.ec2.AllocateAddress(ctx, string(types.DomainTypeVpc), cfg.ProjectName, dryRun)
	e.handle(ctx, err)
	if eip != nil {
		allocationID = aws.ToString(eip.AllocationId)
	}

	run, err := e.ec2.RunInstance(ctx, cloudaws.InstanceSpec{
		AMI:             cfg.AMI,
		InstanceType:    cfg.InstanceType,
		SecurityGroupID: created.SecurityGroupID,
		SubnetID:        created.SubnetID,
		UserData:        cfg.UserData,
		KeyName:         cfg.KeyPairName,
		Project:         cfg.ProjectName,
	}, dryRun)
	e.handle(ctx, err)
	if run != nil {
		created.InstanceID = aws.ToString(run.Instances[0].InstanceId)
		log.Info("launched instance", "id", created.InstanceID)

		err = e.wait(fmt.Sprintf("Waiting for instance %s to run ...", created.InstanceID), func() error {
			_, err := e.ec2.WaitRunning(ctx, created.InstanceID, cfg.WaitTimeout)
			return err
		})
		e.handle(ctx, err)

		if allocationID != "" {
			_, err = e.ec2.AssociateAddress(ctx, allocationID, created.InstanceID, dryRun)
			e.handle(ctx, err)
		}
	}

	formatter.PrintCreated(e.opts.Out, created, dryRun)
}

// addDefaultRoute routes the VPC's main route table through the gateway.
func (e *Environment) addDefaultRoute(ctx context.Context, vpcID, gatewayID string, dryRun bool) {
	tables, err := e.ec2.GetRouteTables(ctx, vpcID, dryRun)
	e.handle(ctx, err)
	if tables == nil || len(tables.RouteTables) == 0 {
		return
	}
	_, err = e.ec2.CreateDefaultRoute(ctx, aws.ToString(tables.RouteTables[0].RouteTableId), gatewayID, dryRun)
	e.handle(ctx, err)
}
