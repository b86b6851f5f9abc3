package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

const (
	PlotHeight = 15
	PlotWidth  = 70
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Magenta,
	asciigraph.Yellow,
	asciigraph.Green,
}

// SweepPlot draws one line per engine of average time against ladder index.
// averages is indexed [engine][size].
func SweepPlot(names []string, sizes []int, averages [][]float64) string {
	if len(averages) == 0 || len(sizes) == 0 {
		return ""
	}

	colors := make([]asciigraph.AnsiColor, len(averages))
	for i := range colors {
		colors[i] = seriesColors[i%len(seriesColors)]
	}

	return asciigraph.PlotMany(averages,
		asciigraph.Height(PlotHeight),
		asciigraph.Width(PlotWidth),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(colors...),
		asciigraph.SeriesLegends(names...),
		asciigraph.Caption("avg ms vs segments "+ladder(sizes)),
	)
}

// TimingPlot draws per-call times of a single benchmark.
func TimingPlot(name string, times []float64) string {
	if len(times) == 0 {
		return ""
	}
	return asciigraph.Plot(times,
		asciigraph.Height(PlotHeight/2),
		asciigraph.Width(PlotWidth),
		asciigraph.Caption(name+" time per call (ms)"),
	)
}

func ladder(sizes []int) string {
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = compact(n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func compact(n int) string {
	switch {
	case n >= 1_000_000 && n%1_000_000 == 0:
		return fmt.Sprintf("%dM", n/1_000_000)
	case n >= 1000 && n%1000 == 0:
		return fmt.Sprintf("%dk", n/1000)
	}
	return fmt.Sprint(n)
}
