// Copyright 2025 Author(s) of sandtimer-mcp
// SPDX-License-Identifier: Apache-2.0

package appconsts

const (
	// Name is the server name reported to MCP clients in the initialize
	// response. It is also used in help messages and other user-facing output.
	Name = "sandtimer-mcp"
)

// Version is the version of the sandtimer-mcp server. This is a variable so it
// can be set at build time using ldflags. The default value is "dev", which is
// used for local development builds.
var Version = "dev"
