// Package viz renders simulation output for the terminal.
//
//   - [Plot] and [PlotMany]: asciigraph line charts of energy and probe series
//   - [HeatMap]: a lipgloss-coloured map of one xy plane of a field
//   - [Wavefront]: a braille [Canvas] marking cells above a threshold
//   - [Summary]: the styled run report printed by the CLI
//
// Colours come from the current [Theme]; see [SetTheme].
package viz
