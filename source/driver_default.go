// Package source installs the default high-performance JSON driver and
// provides input helpers that need third-party preprocessing.
package source

import (
	codable "github.com/codablekit/codable"
	drvgojson "github.com/codablekit/codable/source/gojson"
)

// init in a separate package to avoid an import cycle in root. This sets
// go-json as the default driver.
func init() { codable.SetJSONDriver(drvgojson.Driver()) }
