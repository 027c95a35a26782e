package formatter

import (
	"fmt"
	"io"
	"sort"

	"github.com/noelmcloughlin/cloud-cli/internal/models"
)

// PrintEIPsTable prints a formatted table of Elastic IPs, attached ones first.
func PrintEIPsTable(out io.Writer, eips []models.EIPInfo) {
	fmt.Fprintln(out, "\n## Elastic IPs")
	if len(eips) == 0 {
		fmt.Fprintln(out, "No Elastic IPs found")
		return
	}

	sort.SliceStable(eips, func(i, j int) bool {
		if eips[i].Attached() != eips[j].Attached() {
			return eips[i].Attached()
		}
		return eips[i].PublicIP < eips[j].PublicIP
	})

	w := newTableWriter(out)
	fmt.Fprintln(w, "ALLOCATION ID\tPUBLIC IP\tINSTANCE\tSTATUS")
	unattached := 0
	for _, eip := range eips {
		status := "attached"
		if !eip.Attached() {
			status = "unattached"
			unattached++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			eip.AllocationID,
			eip.PublicIP,
			orNone(eip.InstanceID),
			status,
		)
	}
	fmt.Fprintf(w, "Total:\t%d\t\t%d unattached\n", len(eips), unattached)
	w.Flush()
}
