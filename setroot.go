// Package setroot holds the build metadata and default configuration shared
// by the setroot commands.
package setroot

import _ "embed"

//go:embed VERSION
var Version string

//go:embed setroot.toml
var DefaultConfig string
