// Package export renders field planes, wavefronts and probe traces as SVG.
package export
