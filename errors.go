package codable

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codablekit/codable/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// CodeTypeMismatch reports a present value of the wrong shape.
	CodeTypeMismatch = "invalid_type"
	// CodeKeyNotFound reports a required key absent from a keyed container.
	CodeKeyNotFound = "key_not_found"
	// CodeValueNotFound reports an exhausted unkeyed container, or null where a
	// non-optional value was required.
	CodeValueNotFound = "value_not_found"
	// CodeDataCorrupted is the catch-all for strategy failures and structural
	// invariant violations (unparseable dates, duplicate catalog names,
	// exceeded nesting depth).
	CodeDataCorrupted = "data_corrupted"
	// CodeDuplicateKey reports a duplicated object key in the input bytes.
	CodeDuplicateKey = "duplicate_key"
	// CodeParseError reports malformed input below the Value layer.
	CodeParseError = "parse_error"
	// CodeTruncated reports input cut off by a size cap.
	CodeTruncated = "truncated"
)

// Issue represents a single encode/decode failure.
type Issue struct {
	Path    string // JSON Pointer from the root (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, format names, etc.
	Cause   error  // Optional: underlying error.
	Offset  int64  // Byte offset in the input source (-1 when unknown).
	// Params carries structured parameters (e.g., {"expected":"number",
	// "found":"string"}) for i18n and observability.
	Params map[string]any
}

// Issues is a collection of failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether any issue carried by err has the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// ---- issue constructors ----
//
// Messages go through i18n.T so SetLanguage/SetTranslator apply to the
// library's own diagnostics; Params stays the structured source of truth.

func issueTypeMismatch(path string, expected, found Kind) Issue {
	data := map[string]string{"expected": expected.String(), "found": found.String()}
	return Issue{
		Path:    path,
		Code:    CodeTypeMismatch,
		Message: i18n.T(CodeTypeMismatch, data),
		Offset:  -1,
		Params:  map[string]any{"expected": expected.String(), "found": found.String()},
	}
}

func issueKeyNotFound(path, key string) Issue {
	return Issue{
		Path:    path,
		Code:    CodeKeyNotFound,
		Message: i18n.T(CodeKeyNotFound, map[string]string{"key": key}),
		Offset:  -1,
		Params:  map[string]any{"key": key},
	}
}

func issueValueNotFound(path string, expected Kind) Issue {
	return Issue{
		Path:    path,
		Code:    CodeValueNotFound,
		Message: i18n.T(CodeValueNotFound, map[string]string{"expected": expected.String()}),
		Offset:  -1,
		Params:  map[string]any{"expected": expected.String()},
	}
}

func issueDataCorrupted(path, reason string, cause error) Issue {
	return Issue{Path: path, Code: CodeDataCorrupted, Message: reason, Cause: cause, Offset: -1}
}

// toIssues coerces any error into Issues, wrapping foreign errors from
// Encodable/Decodable contracts as data_corrupted at the root.
func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeDataCorrupted, Message: err.Error(), Cause: err, Offset: -1})
}
