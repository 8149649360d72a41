package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/dating"
)

// render writes data in the requested format.
func render(w io.Writer, format string, data interface{}) error {
	switch format {
	case "json":
		return writeJSON(w, data)
	case "table", "":
		return table(w, data)
	default:
		return fmt.Errorf("unknown output format: %s (use table or json)", format)
	}
}

func writeJSON(w io.Writer, data interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func table(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case compatibility.Result:
		return resultTable(w, v)
	case *dating.SyncRun:
		return syncRunTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func resultTable(w io.Writer, r compatibility.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PHYSICAL\tMENTAL\tOVERALL\tQUALITY")
	fmt.Fprintln(tw, "--------\t------\t-------\t-------")
	fmt.Fprintf(tw, "%d\t%d\t%d\t%s\n", r.PhysicalScore, r.MentalScore, r.OverallScore, r.Quality())
	if err := tw.Flush(); err != nil {
		return err
	}

	bd := r.Breakdown
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CRITERION\tPOINTS")
	fmt.Fprintln(tw, "---------\t------")
	for _, row := range []struct {
		name   string
		points float64
	}{
		{"height", bd.Height},
		{"body type", bd.BodyType},
		{"age", bd.Age},
		{"interests", bd.Interests},
		{"personality traits", bd.Traits},
		{"values", bd.Values},
		{"relationship goals", bd.Goals},
	} {
		fmt.Fprintf(tw, "%s\t%g\n", row.name, row.points)
	}
	fmt.Fprintf(tw, "physical\t%g / %g\n", bd.PhysicalEarned, bd.PhysicalBudget)
	fmt.Fprintf(tw, "mental\t%g / %g\n", bd.MentalEarned, bd.MentalBudget)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	if len(r.SharedInterests) > 0 {
		fmt.Fprintf(w, "Shared interests: %s\n", strings.Join(r.SharedInterests, ", "))
	} else {
		fmt.Fprintln(w, "Shared interests: none")
	}
	for _, reason := range r.CompatibilityReasons {
		fmt.Fprintf(w, "  • %s\n", reason)
	}
	return nil
}

func syncRunTable(w io.Writer, run *dating.SyncRun) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTATUS\tPROFILES\tPAIRS\tFAILURES\tDURATION")
	fmt.Fprintln(tw, "---\t------\t--------\t-----\t--------\t--------")

	duration := "-"
	if run.FinishedAt != nil {
		duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
	}
	fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
		run.ID, run.Status, run.ProfilesProcessed, run.PairsScored, run.Failures, duration)
	return tw.Flush()
}
