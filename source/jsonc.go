package source

import (
	"github.com/tidwall/jsonc"

	codable "github.com/codablekit/codable"
)

// JSONCBytes wraps a byte slice of JSON-with-comments (comments and trailing
// commas allowed) as a Source. The input is rewritten to plain JSON before
// tokenizing, so byte offsets refer to the rewritten form.
func JSONCBytes(b []byte) codable.Source {
	return codable.JSONBytes(jsonc.ToJSON(b))
}
