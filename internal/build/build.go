// Package build holds build-time information.
package build

// Version is the agent version.
// It defaults to "dev" and can be overwritten by linker flags.
var Version = "dev"
