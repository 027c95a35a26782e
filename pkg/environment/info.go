package environment

import (
	"context"

	"github.com/noelmcloughlin/cloud-cli/internal/models"
	cloudaws "github.com/noelmcloughlin/cloud-cli/pkg/aws"
	"github.com/noelmcloughlin/cloud-cli/pkg/formatter"
	"github.com/noelmcloughlin/cloud-cli/pkg/pricing"
)

// Info prints who is calling, the configured key pair and every resource
// carrying the project tag. It only reads, so it makes a single real pass.
func (e *Environment) Info(ctx context.Context) {
	out := e.opts.Out

	if e.opts.Identity != nil {
		id, err := e.opts.Identity.CallerIdentity(ctx)
		e.handle(ctx, err)
		formatter.PrintCallerIdentity(out, id, e.ec2.Region())
	}

	keys, err := e.ec2.GetKeyPairs(ctx, "key-name", e.cfg.KeyPairName, false)
	e.handle(ctx, err)
	formatter.PrintKeyPairs(out, cloudaws.KeyPairInfos(keys))

	project := cloudaws.ProjectFilter(e.cfg.ProjectName)

	vpcs, err := e.ec2.GetVpcs(ctx, false, project)
	e.handle(ctx, err)
	formatter.PrintVPCsTable(out, cloudaws.VPCInfos(vpcs))

	subnets, err := e.ec2.GetSubnets(ctx, false, project)
	e.handle(ctx, err)
	formatter.PrintSubnetsTable(out, cloudaws.SubnetInfos(subnets))

	groups, err := e.ec2.GetSecurityGroups(ctx, e.cfg.GroupName, false, project)
	e.handle(ctx, err)
	formatter.PrintSecurityGroupsTable(out, cloudaws.SecurityGroupInfos(groups))

	gateways, err := e.ec2.GetInternetGateways(ctx, false, project)
	e.handle(ctx, err)
	formatter.PrintGatewaysTable(out, cloudaws.GatewayInfos(gateways))

	eips, err := e.ec2.GetAddresses(ctx, project, "", "", false)
	e.handle(ctx, err)
	formatter.PrintEIPsTable(out, cloudaws.EIPInfos(eips))

	instances, err := e.ec2.GetInstances(ctx, project, "", false)
	e.handle(ctx, err)
	formatter.PrintInstancesTable(out, e.priced(ctx, cloudaws.InstanceInfos(instances)))

	if s, ok := e.opts.Prices.(interface{ Stats() map[string]pricing.Stats }); ok {
		formatter.PrintPricingAPIStats(out, s.Stats())
	}
}

func (e *Environment) priced(ctx context.Context, instances []models.InstanceInfo) []models.InstanceInfo {
	for i := range instances {
		if e.opts.Prices == nil {
			instances[i].PricingSource = string(pricing.PricingSourceNA)
			continue
		}
		price, source := e.opts.Prices.InstanceHourlyPrice(ctx, instances[i].InstanceType, e.ec2.Region())
		instances[i].HourlyPrice = price
		instances[i].PricingSource = string(source)
	}
	return instances
}
