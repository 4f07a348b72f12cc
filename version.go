package baton

import _ "embed"

// Version is the release of the baton module and CLI.
//
//go:embed VERSION
var Version string
