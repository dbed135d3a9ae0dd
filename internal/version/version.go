// Package version provides build and version information.
package version

import "fmt"

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Terminal wheel view with rotation, placement table, theme files
// 0.2.0 - PNG output, true-longitude ticks, wraparound cluster merge
// 0.1.0 - Initial release: SVG wheel render, collision layout, YAML/JSON charts

// String returns the line printed by the version command.
func String() string {
	return fmt.Sprintf("ls-wheel v%s", Version)
}
