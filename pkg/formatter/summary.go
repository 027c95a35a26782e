package formatter

import (
	"fmt"
	"io"
)

// Created holds the IDs produced by one start pass.
type Created struct {
	VpcID           string
	SubnetID        string
	SecurityGroupID string
	InstanceID      string
}

// PrintCreated prints what a start pass created. A dry run has no IDs to show.
func PrintCreated(out io.Writer, c Created, dryRun bool) {
	show := func(id string) string {
		if dryRun {
			return "(dryrun)"
		}
		return id
	}
	fmt.Fprintf(out, "created VPC %s\n", show(c.VpcID))
	fmt.Fprintf(out, "created Subnet %s\n", show(c.SubnetID))
	fmt.Fprintf(out, "created Security Group %s\n", show(c.SecurityGroupID))
	fmt.Fprintf(out, "created Instance %s\n", show(c.InstanceID))
}
