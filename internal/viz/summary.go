package viz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/san-kum/fdtd/internal/config"
	"github.com/san-kum/fdtd/internal/sim"
)

// Summary renders the report printed after a run.
func Summary(cfg *config.Config, result *sim.Result, elapsed time.Duration, runErr error) string {
	var b strings.Builder

	b.WriteString(Header.Render(GradientText(strings.ToUpper(cfg.Name), CurrentTheme.Title, CurrentTheme.Accent)) + "\n")

	status := StatusRunning.Render("completed")
	switch {
	case errors.Is(runErr, context.Canceled):
		status = StatusPaused.Render("interrupted")
	case runErr != nil:
		status = StatusFailed.Render("stopped: " + runErr.Error())
	}
	b.WriteString(Row("status", "") + status + "\n")
	b.WriteString(Row("grid", cfg.Grid.String()) + "\n")
	b.WriteString(Row("courant", fmt.Sprintf("%.4f", cfg.Courant)) + "\n")
	b.WriteString(Row("steps", fmt.Sprintf("%d/%d", result.StepsTaken, cfg.Steps)) + "  " +
		ProgressBar(float64(result.StepsTaken)/float64(max(cfg.Steps, 1)), 20) + "\n")
	b.WriteString(Row("elapsed", elapsed.Round(time.Millisecond)) + "\n")
	if elapsed > 0 && result.StepsTaken > 0 {
		cells := float64(cfg.Grid.Cells()) * float64(result.StepsTaken)
		b.WriteString(Row("throughput", fmt.Sprintf("%.1f Mcells/s", cells/elapsed.Seconds()/1e6)) + "\n")
	}

	if len(result.Metrics) > 0 {
		b.WriteString(Separator(40) + "\n")
		b.WriteString(Title.Render("metrics") + "\n")
		names := make([]string, 0, len(result.Metrics))
		for name := range result.Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(Row(name, fmt.Sprintf("%.6g", result.Metrics[name])) + "\n")
		}
	}

	if len(result.Energy) > 1 {
		b.WriteString("\n" + Row("energy", "") + SparklineChart(result.Energy, 40) + "\n")
	}

	return Panel.Render(b.String())
}
