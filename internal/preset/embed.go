// Package preset holds the named maze configurations shipped with the binary.
package preset

import "embed"

//go:embed *.json
var dataFS embed.FS
