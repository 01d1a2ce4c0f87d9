package codable

import (
	"strconv"
	"strings"
	"unicode"
)

// CodingKey identifies an addressable child of a keyed container. Index is
// meaningful only for positional keys (see IndexKey); it is -1 otherwise.
type CodingKey struct {
	Name  string
	Index int
}

// Key returns a named CodingKey.
func Key(name string) CodingKey { return CodingKey{Name: name, Index: -1} }

// IndexKey returns a positional CodingKey. Its Name is the decimal rendering
// of the index so the key still produces a usable JSON Pointer segment.
func IndexKey(i int) CodingKey { return CodingKey{Name: strconv.Itoa(i), Index: i} }

// HasIndex reports whether the key is positional.
func (k CodingKey) HasIndex() bool { return k.Index >= 0 }

// Catalog is the ordered set of CodingKeys a type declares for its keyed
// container. Declared names are unique within one catalog.
type Catalog struct {
	keys  []CodingKey
	names map[string]struct{}
}

// NewCatalog builds a Catalog, failing with data_corrupted when a declared
// name repeats.
func NewCatalog(keys ...CodingKey) (Catalog, error) {
	names := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		if _, dup := names[k.Name]; dup {
			return Catalog{}, Issues{issueDataCorrupted("/", "duplicate key '"+k.Name+"' in catalog", nil)}
		}
		names[k.Name] = struct{}{}
	}
	return Catalog{keys: keys, names: names}, nil
}

// MustCatalog is NewCatalog for package-level declarations; it panics on a
// duplicate name.
func MustCatalog(keys ...CodingKey) Catalog {
	c, err := NewCatalog(keys...)
	if err != nil {
		panic(err)
	}
	return c
}

// Keys returns the declared keys in declaration order.
func (c Catalog) Keys() []CodingKey { return append([]CodingKey(nil), c.keys...) }

// Len returns the number of declared keys.
func (c Catalog) Len() int { return len(c.keys) }

// Contains reports whether a declared name belongs to the catalog. An empty
// catalog contains every name (no declaration means no restriction).
func (c Catalog) Contains(name string) bool {
	if len(c.keys) == 0 {
		return true
	}
	_, ok := c.names[name]
	return ok
}

// ---- casing transforms ----

// ToSnakeCase converts a camelCase name to snake_case: "userName" becomes
// "user_name". Pure ASCII-rune transform, no locale dependency.
func ToSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && !unicode.IsUpper(runes[i-1]) && runes[i-1] != '_'
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FromSnakeCase converts a snake_case name to camelCase: "user_name" becomes
// "userName". Leading and trailing underscores are preserved.
func FromSnakeCase(s string) string {
	core := strings.Trim(s, "_")
	if core == "" {
		return s
	}
	lead := s[:strings.Index(s, core)]
	trail := s[strings.Index(s, core)+len(core):]

	parts := strings.Split(core, "_")
	var b strings.Builder
	b.Grow(len(core))
	for i, p := range parts {
		if p == "" || i == 0 {
			b.WriteString(p)
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return lead + b.String() + trail
}

// encodeWireName maps a declared name to the wire name for the active encode
// strategy.
func encodeWireName(name string, o EncodeOptions) string {
	if o.KeyFunc != nil {
		return o.KeyFunc(name)
	}
	switch o.Keys {
	case KeysToSnakeCase:
		return ToSnakeCase(name)
	case KeysFromSnakeCase:
		return FromSnakeCase(name)
	default:
		return name
	}
}

// decodeDeclaredName maps an incoming wire name to the declared name for the
// active decode strategy.
func decodeDeclaredName(wire string, o DecodeOptions) string {
	if o.KeyFunc != nil {
		return o.KeyFunc(wire)
	}
	switch o.Keys {
	case KeysFromSnakeCase:
		return FromSnakeCase(wire)
	case KeysToSnakeCase:
		return ToSnakeCase(wire)
	default:
		return wire
	}
}

// ---- JSON Pointer helpers ----

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	esc := jsonPointerEscaper.Replace(token)
	if base == "" || base == "/" {
		return "/" + esc
	}
	return base + "/" + esc
}

func joinPointerIndex(base string, i int) string {
	if base == "" || base == "/" {
		return "/" + strconv.Itoa(i)
	}
	return base + "/" + strconv.Itoa(i)
}
