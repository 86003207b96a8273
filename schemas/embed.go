// Package schemas embeds the JSON Schemas describing persisted state snapshots.
package schemas

import "embed"

// Files holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names.
const (
	ApplicationState = "application_state.schema.json"
	AuthSession      = "auth_session.schema.json"
)
