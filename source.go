package codable

import (
	"encoding/json"
	"errors"
	"io"
	"sync"

	eng "github.com/codablekit/codable/internal/engine"
	jsonsrc "github.com/codablekit/codable/source/json"
)

// tokenKind enumerates structural token kinds.
type tokenKind int

const (
	_tokenBeginObject tokenKind = iota
	_tokenEndObject
	_tokenBeginArray
	_tokenEndArray
	_tokenKey
	_tokenString
	_tokenNumber
	_tokenBool
	_tokenNull
)

// TokenKind is the exported alias of the token kind enumeration so drivers can
// reference kinds without relying on unstable APIs.
type TokenKind = tokenKind

const (
	TokenBeginObject TokenKind = _tokenBeginObject
	TokenEndObject   TokenKind = _tokenEndObject
	TokenBeginArray  TokenKind = _tokenBeginArray
	TokenEndArray    TokenKind = _tokenEndArray
	TokenKey         TokenKind = _tokenKey
	TokenString      TokenKind = _tokenString
	TokenNumber      TokenKind = _tokenNumber
	TokenBool        TokenKind = _tokenBool
	TokenNull        TokenKind = _tokenNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise). Numbers stay in lexical form; the Value
// layer preserves them without precision loss.
type Token struct {
	Kind   tokenKind
	String string // Stored for key/string tokens.
	Number string
	Bool   bool
	Offset int64
}

// Source abstracts over polymorphic input sources.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONDriver converts JSON input into a Source via a pluggable SPI. The
// default implementation is based on encoding/json; importing the source
// package swaps in goccy/go-json.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil values are ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the default encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

// defaultJSONDriver wraps the encoding/json implementation.
type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return SourceFromEngine(jsonsrc.NewReader(r))
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return SourceFromEngine(jsonsrc.NewBytes(b))
}
func (defaultJSONDriver) Name() string { return "encoding/json" }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// SourceFromEngine wraps an engine.TokenSource as a Source.
func SourceFromEngine(inner eng.TokenSource) Source {
	return &engineSourceAdapter{inner: inner}
}

type engineSourceAdapter struct {
	inner eng.TokenSource
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) Location() int64 { return s.inner.Location() }

// ---- Source -> engine.TokenSource adapter ----

type tokenSourceAdapter struct{ inner Source }

func (a *tokenSourceAdapter) NextToken() (eng.Token, error) {
	t, err := a.inner.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	return eng.Token{Kind: toEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}

func (a *tokenSourceAdapter) Location() int64 { return a.inner.Location() }

// engineTokenSource exposes the engine view of a Source, unwrapping
// engine-backed sources to avoid adapter round-trips.
func engineTokenSource(s Source) eng.TokenSource {
	if ea, ok := s.(*engineSourceAdapter); ok {
		return ea.inner
	}
	return &tokenSourceAdapter{inner: s}
}

func fromEngineKind(k eng.Kind) tokenKind {
	switch k {
	case eng.KindBeginObject:
		return _tokenBeginObject
	case eng.KindEndObject:
		return _tokenEndObject
	case eng.KindBeginArray:
		return _tokenBeginArray
	case eng.KindEndArray:
		return _tokenEndArray
	case eng.KindKey:
		return _tokenKey
	case eng.KindString:
		return _tokenString
	case eng.KindNumber:
		return _tokenNumber
	case eng.KindBool:
		return _tokenBool
	default:
		return _tokenNull
	}
}

func toEngineKind(k tokenKind) eng.Kind {
	switch k {
	case _tokenBeginObject:
		return eng.KindBeginObject
	case _tokenEndObject:
		return eng.KindEndObject
	case _tokenBeginArray:
		return eng.KindBeginArray
	case _tokenEndArray:
		return eng.KindEndArray
	case _tokenKey:
		return eng.KindKey
	case _tokenString:
		return eng.KindString
	case _tokenNumber:
		return eng.KindNumber
	case _tokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}

// ---- Value construction from a token stream ----

// BuildValue drains a Source into a Value tree, applying the enforcement
// configured in opts (duplicate keys, max depth, max bytes).
func BuildValue(src Source, opts ...DecodeOptions) (Value, error) {
	opt := lastDecodeOpt(opts)
	var sink func(eng.SimpleIssue)
	if opt.WarningSink != nil {
		warn := opt.WarningSink
		sink = func(si eng.SimpleIssue) {
			warn(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: src.Location()})
		}
	}
	enforced := eng.WrapWithEnforcement(engineTokenSource(src), eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   sink,
	})
	tok, err := enforced.NextToken()
	if err != nil {
		return Value{}, sourceErrToIssues(err, src)
	}
	v, err := buildValueFrom(enforced, tok)
	if err != nil {
		return Value{}, sourceErrToIssues(err, src)
	}
	return v, nil
}

func buildValueFrom(src eng.TokenSource, tok eng.Token) (Value, error) {
	switch tok.Kind {
	case eng.KindBeginObject:
		return buildObject(src)
	case eng.KindBeginArray:
		return buildArray(src)
	case eng.KindString:
		return String(tok.String), nil
	case eng.KindNumber:
		return Number(json.Number(tok.Number)), nil
	case eng.KindBool:
		return Bool(tok.Bool), nil
	case eng.KindNull:
		return Null(), nil
	default:
		return Value{}, io.ErrUnexpectedEOF
	}
}

func buildObject(src eng.TokenSource) (Value, error) {
	obj := newObject()
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == eng.KindEndObject {
			return obj, nil
		}
		if tok.Kind != eng.KindKey {
			return Value{}, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return Value{}, err
		}
		v, err := buildValueFrom(src, vt)
		if err != nil {
			return Value{}, err
		}
		obj.setMember(tok.String, v)
	}
}

func buildArray(src eng.TokenSource) (Value, error) {
	arr := newArray()
	for {
		tok, err := src.NextToken()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == eng.KindEndArray {
			return arr, nil
		}
		v, err := buildValueFrom(src, tok)
		if err != nil {
			return Value{}, err
		}
		arr.appendElem(v)
	}
}

// ParseJSON parses JSON bytes into a Value tree using the active driver.
func ParseJSON(data []byte, opts ...DecodeOptions) (Value, error) {
	return BuildValue(JSONBytes(data), opts...)
}

// ParseJSONReader parses JSON from an io.Reader into a Value tree.
func ParseJSONReader(r io.Reader, opts ...DecodeOptions) (Value, error) {
	return BuildValue(JSONReader(r), opts...)
}

// DetectJSONDuplicateKeys scans JSON bytes and reports duplicated object keys
// without building a Value tree. maxIssues < 0 means unlimited.
func DetectJSONDuplicateKeys(data []byte, strict Strictness, maxIssues int) (Issues, error) {
	si, err := eng.DetectDuplicateKeys(engineTokenSource(JSONBytes(data)), toEngineDup(strict.OnDuplicateKey), maxIssues)
	if err != nil {
		return nil, err
	}
	var iss Issues
	for _, s := range si {
		iss = AppendIssues(iss, Issue{Code: s.Code, Path: s.Path, Message: s.Message, Offset: -1})
	}
	return iss, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func sourceErrToIssues(err error, src Source) Issues {
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message, Offset: src.Location()})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err, Offset: src.Location()})
}
