// Package schemas embeds the JSON Schemas shipped with the tool.
package schemas

import _ "embed"

// CustomPoints validates the persisted resume-custom-points snapshot
//
//go:embed custom_points.schema.json
var CustomPoints string

// Config validates a configuration file after decoding
//
//go:embed config.schema.json
var Config string

// All maps each schema file name to its content
var All = map[string]string{
	"custom_points.schema.json": CustomPoints,
	"config.schema.json":        Config,
}
