// Package json provides the encoding/json-backed token source.
package json

import (
	"bytes"
	"encoding/json"
	"io"

	eng "github.com/codablekit/codable/internal/engine"
)

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	expectingKey bool
}

type jsonSource struct {
	dec        *json.Decoder
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON.
func NewReader(r io.Reader) eng.TokenSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &jsonSource{dec: dec, lastOffset: -1}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *jsonSource) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if err == io.EOF {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			s.push(kindObject)
			return s.emit(eng.Token{Kind: eng.KindBeginObject}), nil
		case '}':
			s.pop()
			return s.emit(eng.Token{Kind: eng.KindEndObject}), nil
		case '[':
			s.push(kindArray)
			return s.emit(eng.Token{Kind: eng.KindBeginArray}), nil
		default: // ']'
			s.pop()
			return s.emit(eng.Token{Kind: eng.KindEndArray}), nil
		}
	case string:
		if s.awaitingKey() {
			s.keyRead()
			return s.emit(eng.Token{Kind: eng.KindKey, String: v}), nil
		}
		return s.emitValue(eng.Token{Kind: eng.KindString, String: v}), nil
	case bool:
		return s.emitValue(eng.Token{Kind: eng.KindBool, Bool: v}), nil
	case json.Number:
		return s.emitValue(eng.Token{Kind: eng.KindNumber, Number: string(v)}), nil
	default: // nil
		return s.emitValue(eng.Token{Kind: eng.KindNull}), nil
	}
}

func (s *jsonSource) Location() int64 { return s.lastOffset }

func (s *jsonSource) push(k containerKind) {
	s.stack = append(s.stack, frame{kind: k, expectingKey: k == kindObject})
}

func (s *jsonSource) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

func (s *jsonSource) awaitingKey() bool {
	n := len(s.stack)
	return n > 0 && s.stack[n-1].kind == kindObject && s.stack[n-1].expectingKey
}

func (s *jsonSource) keyRead() {
	s.stack[len(s.stack)-1].expectingKey = false
}

// valueDone flips the enclosing object back to key position after a value.
func (s *jsonSource) valueDone() {
	if n := len(s.stack); n > 0 {
		top := &s.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

func (s *jsonSource) emit(t eng.Token) eng.Token {
	t.Offset = s.lastOffset
	return t
}

func (s *jsonSource) emitValue(t eng.Token) eng.Token {
	s.valueDone()
	return s.emit(t)
}
