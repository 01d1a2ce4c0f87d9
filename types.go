package codable

// DateStrategy selects the wire representation for time.Time values. It is
// installed per Encoder/Decoder construction; there is no global state.
type DateStrategy int

const (
	// DateDefault encodes ISO-8601 and decodes by probing, in order: ISO-8601
	// string, then epoch-seconds number, then data_corrupted.
	DateDefault DateStrategy = iota
	DateISO8601
	DateEpochSeconds
	DateEpochMillis
	// DateCustomLayout uses the Go reference layout in DateLayout.
	DateCustomLayout
)

// KeyStrategy controls how declared key names map to wire names.
type KeyStrategy int

const (
	KeysAsDeclared KeyStrategy = iota
	// KeysToSnakeCase writes camelCase declarations as snake_case on the wire
	// (encode direction).
	KeysToSnakeCase
	// KeysFromSnakeCase reads snake_case wire keys back into camelCase
	// declarations (decode direction).
	KeysFromSnakeCase
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness configures enforcement of duplicate keys in the input bytes.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON keys).
}

// EncodeOptions bundles per-encode configuration. The trailing-variadic
// convention applies at call sites: the last options value wins.
type EncodeOptions struct {
	Dates      DateStrategy
	DateLayout string // Required when Dates is DateCustomLayout.
	Keys       KeyStrategy
	// KeyFunc maps a declared name to its wire name. When set it overrides
	// Keys. Round-trip correctness with the decode-side KeyFunc is a caller
	// contract; the framework does not verify inversion.
	KeyFunc func(string) string
}

// DecodeOptions bundles per-decode configuration.
type DecodeOptions struct {
	Dates      DateStrategy
	DateLayout string
	Keys       KeyStrategy
	// KeyFunc maps a wire name to its declared name. When set it overrides Keys.
	KeyFunc func(string) string

	// MaxDepth bounds container nesting while tokenizing; exceeding it fails
	// with data_corrupted ("max depth exceeded"). Zero disables the check.
	MaxDepth int
	// MaxBytes caps consumed input; exceeding it fails with truncated.
	// Zero disables the check. Buffering drivers may detect the overrun
	// before the parse position reaches it, but never report input the
	// document does not contain.
	MaxBytes   int64
	Strictness Strictness
	// WarningSink receives non-fatal issues found while tokenizing,
	// currently duplicate keys under Strictness{OnDuplicateKey: Warn}.
	// Nil drops them; Warn without a sink behaves like Ignore.
	WarningSink func(Issue)
}

func lastEncodeOpt(opts []EncodeOptions) EncodeOptions {
	if len(opts) == 0 {
		return EncodeOptions{}
	}
	return opts[len(opts)-1]
}

func lastDecodeOpt(opts []DecodeOptions) DecodeOptions {
	if len(opts) == 0 {
		return DecodeOptions{}
	}
	return opts[len(opts)-1]
}
