package formatter

import (
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/noelmcloughlin/cloud-cli/internal/models"
	"github.com/noelmcloughlin/cloud-cli/pkg/pricing"
)

// PrintInstancesTable prints a formatted table of EC2 instances
func PrintInstancesTable(out io.Writer, instances []models.InstanceInfo) {
	fmt.Fprintln(out, "\n## Instances")
	if len(instances) == 0 {
		fmt.Fprintln(out, "No instances found")
		return
	}

	// Oldest first
	sort.SliceStable(instances, func(i, j int) bool {
		if instances[i].LaunchTime == nil || instances[j].LaunchTime == nil {
			return instances[j].LaunchTime == nil && instances[i].LaunchTime != nil
		}
		return instances[i].LaunchTime.Before(*instances[j].LaunchTime)
	})

	w := newTableWriter(out)
	fmt.Fprintln(w, "INSTANCE ID\tNAME\tTYPE\tSTATE\tPUBLIC IP\tZONE\tAGE\tCOST/HR\tCOST/MO\tPRICING")

	var totalMonthlyCost float64
	for _, instance := range instances {
		age := "Unknown"
		if instance.LaunchTime != nil {
			age = humanize.RelTime(*instance.LaunchTime, now(), "ago", "from now")
		}

		hourly, monthly := "N/A", "N/A"
		if instance.PricingSource != "" && instance.PricingSource != string(pricing.PricingSourceNA) {
			cost := pricing.MonthlyCost(instance.HourlyPrice)
			totalMonthlyCost += cost
			hourly = fmt.Sprintf("$%.4f", instance.HourlyPrice)
			monthly = fmt.Sprintf("$%.2f", cost)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			instance.InstanceID,
			getInstanceName(instance.Name),
			instance.InstanceType,
			instance.State,
			orNone(instance.PublicIP),
			instance.AvailabilityZone,
			age,
			hourly,
			monthly,
			GetPricingMarker(instance.PricingSource),
		)
	}
	fmt.Fprintf(w, "Total:\t%d\t\t\t\t\t\t\t$%.2f\t\n", len(instances), totalMonthlyCost)
	w.Flush()
}

// getInstanceName returns a formatted instance name or <unnamed> if empty
func getInstanceName(name string) string {
	if name == "" {
		return "<unnamed>"
	}
	return name
}

// GetPricingMarker returns a suitable marker for the pricing source
func GetPricingMarker(source string) string {
	switch pricing.PricingSource(source) {
	case pricing.PricingSourceAPI:
		return "API"
	case pricing.PricingSourceCache:
		return "CACHE"
	case pricing.PricingSourceNA:
		return "N/A"
	default:
		return "-"
	}
}
