package engine

import (
	"strconv"
	"strings"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling, max
// depth checks, and max bytes truncation in a streaming fashion.

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink is an optional callback to receive non-fatal issues (duplicate
	// keys at Warn severity). If nil, such issues are dropped.
	IssueSink func(SimpleIssue)
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	path         string
	nextIndex    int
	pendingKey   string
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key
// policy, maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.OnDuplicate == DupIgnore && opt.MaxDepth == 0 && opt.MaxBytes == 0 {
		return inner
	}
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
	depth int
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	path := normalizeIssuePath(e.pathForToken(tok))

	switch tok.Kind {
	case KindBeginObject:
		e.stack = append(e.stack, frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true, path: path})
		if err := e.enterContainer(path); err != nil {
			return Token{}, err
		}
	case KindBeginArray:
		e.stack = append(e.stack, frame{kind: kindArray, path: path})
		if err := e.enterContainer(path); err != nil {
			return Token{}, err
		}
	case KindEndObject, KindEndArray:
		e.leaveContainer()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				if e.opt.OnDuplicate != DupIgnore {
					if _, dup := top.keys[tok.String]; dup {
						si := SimpleIssue{Code: "duplicate_key", Path: path, Message: "key '" + tok.String + "' duplicated"}
						if e.opt.IssueSink != nil {
							e.opt.IssueSink(si)
						}
						if e.opt.OnDuplicate == DupError {
							return Token{}, IssueError{si}
						}
					}
				}
				top.keys[tok.String] = struct{}{}
				top.expectingKey = false
				top.pendingKey = tok.String
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			si := SimpleIssue{Code: "truncated", Path: path, Message: "max bytes exceeded"}
			return Token{}, IssueError{si}
		}
	}

	return tok, nil
}

func (e *enforcingTokenSource) enterContainer(path string) error {
	e.depth++
	if e.opt.MaxDepth > 0 && e.depth > e.opt.MaxDepth {
		return IssueError{SimpleIssue{Code: "data_corrupted", Path: path, Message: "max depth exceeded"}}
	}
	return nil
}

func (e *enforcingTokenSource) leaveContainer() {
	if n := len(e.stack); n > 0 {
		e.stack = e.stack[:n-1]
	}
	if e.depth > 0 {
		e.depth--
	}
	e.valueDone()
}

// valueDone marks that the enclosing object finished one key/value pair.
func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
			top.pendingKey = ""
		}
	}
}

func (e *enforcingTokenSource) pathForToken(tok Token) string {
	if len(e.stack) == 0 {
		if tok.Kind == KindKey {
			return joinJSONPointer("", tok.String)
		}
		return ""
	}

	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return joinJSONPointer(top.path, tok.String)
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		if top.kind == kindArray {
			p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
			top.nextIndex++
			return p
		}
		if top.pendingKey != "" || !top.expectingKey {
			return joinJSONPointer(top.path, top.pendingKey)
		}
		return top.path
	default:
		return top.path
	}
}

func normalizeIssuePath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	esc := jsonPointerEscaper.Replace(token)
	if base == "" || base == "/" {
		return "/" + esc
	}
	return base + "/" + esc
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
