package cli

import (
	"fmt"

	"github.com/julianstephens/diacare/internal/metrics"
)

// StatsCmd prints the progress gauges in Prometheus text format, or
// writes them to a node_exporter textfile.
type StatsCmd struct {
	Textfile string `help:"Write metrics to this file for the node_exporter textfile collector." type:"path"`
}

func (c *StatsCmd) Run(ctx *Context) error {
	exp := metrics.New(ctx.Tracker)

	if c.Textfile != "" {
		if err := exp.WriteTextfile(ctx.Ctx, c.Textfile); err != nil {
			return err
		}
		ctx.printf("✓ Metrics written to %s\n", c.Textfile)
		return nil
	}

	exp.Refresh(ctx.Ctx)
	families, err := exp.Registry().Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += fmt.Sprintf("{%s=%q}", lp.GetName(), lp.GetValue())
			}
			ctx.printf("%-52s %g\n", name, m.GetGauge().GetValue())
		}
	}
	return nil
}
