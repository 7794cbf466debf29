// Package schemas holds the JSON Schemas of the documents accepted and produced by
// the assessment engine.
package schemas

import "embed"

// Files contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var Files embed.FS
