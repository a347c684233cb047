// ABOUTME: Version constants for wavecanvas builds
// ABOUTME: Identifies the product in CLI output
package version

const (
	// Version is the semantic version of this build.
	Version = "0.1.0"

	// Product is the user-facing product name.
	Product = "WaveCanvas"

	// Manufacturer identifies the project publishing this build.
	Manufacturer = "WaveCanvas Project"
)
