package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/noelmcloughlin/cloud-cli/internal/models"
)

// PrintVPCsTable prints a formatted table of VPCs
func PrintVPCsTable(out io.Writer, vpcs []models.VPCInfo) {
	fmt.Fprintln(out, "\n## VPCs")
	if len(vpcs) == 0 {
		fmt.Fprintln(out, "No VPCs found")
		return
	}

	w := newTableWriter(out)
	fmt.Fprintln(w, "VPC ID\tNAME\tCIDR\tIPV6 CIDR\tSTATE\tTENANCY")
	for _, vpc := range vpcs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			vpc.VpcID,
			orNone(vpc.Name),
			vpc.CidrBlock,
			orNone(vpc.Ipv6Cidr),
			vpc.State,
			vpc.Tenancy,
		)
	}
	w.Flush()
}

// PrintSubnetsTable prints a formatted table of subnets
func PrintSubnetsTable(out io.Writer, subnets []models.SubnetInfo) {
	fmt.Fprintln(out, "\n## Subnets")
	if len(subnets) == 0 {
		fmt.Fprintln(out, "No subnets found")
		return
	}

	w := newTableWriter(out)
	fmt.Fprintln(w, "SUBNET ID\tVPC ID\tCIDR\tZONE\tFREE IPS")
	for _, sn := range subnets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			sn.SubnetID,
			sn.VpcID,
			sn.CidrBlock,
			sn.AvailabilityZone,
			sn.AvailableIPs,
		)
	}
	w.Flush()
}

// PrintSecurityGroupsTable prints security groups with their inbound rules.
func PrintSecurityGroupsTable(out io.Writer, groups []models.SecurityGroupInfo) {
	fmt.Fprintln(out, "\n## Security Groups")
	if len(groups) == 0 {
		fmt.Fprintln(out, "No security groups found")
		return
	}

	w := newTableWriter(out)
	fmt.Fprintln(w, "GROUP ID\tNAME\tVPC ID\tINGRESS")
	for _, sg := range groups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			sg.GroupID,
			sg.GroupName,
			sg.VpcID,
			orNone(strings.Join(sg.Ingress, ", ")),
		)
	}
	w.Flush()
}

// PrintGatewaysTable prints internet gateways and what they are attached to.
func PrintGatewaysTable(out io.Writer, gateways []models.GatewayInfo) {
	fmt.Fprintln(out, "\n## Internet Gateways")
	if len(gateways) == 0 {
		fmt.Fprintln(out, "No internet gateways found")
		return
	}

	w := newTableWriter(out)
	fmt.Fprintln(w, "GATEWAY ID\tNAME\tATTACHMENTS")
	for _, igw := range gateways {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			igw.GatewayID,
			orNone(igw.Name),
			orNone(strings.Join(igw.Attachments, ", ")),
		)
	}
	w.Flush()
}
