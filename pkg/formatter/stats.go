package formatter

import (
	"fmt"
	"io"
	"sort"

	"github.com/noelmcloughlin/cloud-cli/pkg/pricing"
)

// PrintPricingAPIStats prints the statistics of pricing API calls
func PrintPricingAPIStats(out io.Writer, stats map[string]pricing.Stats) {
	if len(stats) == 0 {
		return
	}

	regions := make([]string, 0, len(stats))
	for region := range stats {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	fmt.Fprintln(out, "\n## AWS Pricing API Call Statistics")
	w := newTableWriter(out)
	fmt.Fprintln(w, "REGION\tAPI CALLS\tSUCCESS\tFAILURE\tCACHE HITS\tSUCCESS RATE")
	for _, region := range regions {
		s := stats[region]
		total := s.Success + s.Failure

		successRate := 0.0
		if total > 0 {
			successRate = float64(s.Success) / float64(total) * 100.0
		}

		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.1f%%\n",
			region,
			total,
			s.Success,
			s.Failure,
			s.Cache,
			successRate,
		)
	}
	w.Flush()
}
