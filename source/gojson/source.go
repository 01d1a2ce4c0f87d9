// Package gojson provides the goccy/go-json-backed token source. It is the
// default driver installed by importing the source package.
package gojson

import (
	"bytes"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	codable "github.com/codablekit/codable"
	eng "github.com/codablekit/codable/internal/engine"
)

// Driver returns a codable.JSONDriver backed by goccy/go-json.
func Driver() codable.JSONDriver { return driverGoJSON{} }

type driverGoJSON struct{}

func (driverGoJSON) NewReader(r io.Reader) codable.Source {
	return codable.SourceFromEngine(NewReader(r))
}
func (driverGoJSON) NewBytes(b []byte) codable.Source {
	return codable.SourceFromEngine(NewBytes(b))
}
func (driverGoJSON) Name() string { return "go-json" }

// ---- engine.TokenSource implementation using the go-json Decoder ----

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type source struct {
	dec   *j.Decoder
	in    *countingReader
	stack []frame
}

// countingReader tracks bytes pulled from the underlying input. The decoder
// buffers ahead, so the count can run past the parse position, but it never
// exceeds the document length; size caps stay exact.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
func NewReader(r io.Reader) eng.TokenSource {
	cr := &countingReader{r: r}
	dec := j.NewDecoder(cr)
	dec.UseNumber()
	return &source{dec: dec, in: cr}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.push(kindObject)
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		case '[':
			s.push(kindArray)
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		default: // ']'
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
	case string:
		if s.awaitingKey() {
			s.keyRead()
			return eng.Token{Kind: eng.KindKey, String: v, Offset: -1}, nil
		}
		s.valueDone()
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case bool:
		s.valueDone()
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		s.valueDone()
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	default: // nil
		s.valueDone()
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	}
}

// Location reports bytes pulled from the input so far. The decoder reads
// ahead, so this is an upper bound on the parse position.
func (s *source) Location() int64 { return s.in.n }

func (s *source) push(k containerKind) {
	s.stack = append(s.stack, frame{kind: k, expectingKey: k == kindObject})
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *source) awaitingKey() bool {
	n := len(s.stack)
	return n > 0 && s.stack[n-1].kind == kindObject && s.stack[n-1].expectingKey
}

func (s *source) keyRead() {
	s.stack[len(s.stack)-1].expectingKey = false
}

func (s *source) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
