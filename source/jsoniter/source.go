// Package jsoniter provides a json-iterator/go-backed token source. The
// iterator API is callback-driven, so the driver tokenizes the whole input up
// front and replays the token slice; decoding materializes a full Value tree
// anyway, so the eager pass costs no extra asymptotic memory.
package jsoniter

import (
	"io"

	jsoniter "github.com/json-iterator/go"

	codable "github.com/codablekit/codable"
	eng "github.com/codablekit/codable/internal/engine"
)

// Driver returns a codable.JSONDriver backed by json-iterator/go.
func Driver() codable.JSONDriver { return driverJsoniter{} }

type driverJsoniter struct{}

func (driverJsoniter) NewReader(r io.Reader) codable.Source {
	return codable.SourceFromEngine(NewReader(r))
}
func (driverJsoniter) NewBytes(b []byte) codable.Source {
	return codable.SourceFromEngine(NewBytes(b))
}
func (driverJsoniter) Name() string { return "jsoniter" }

type source struct {
	toks []eng.Token
	err  error
	pos  int
	size int64
}

// NewReader wraps an io.Reader into an engine.TokenSource using jsoniter.
func NewReader(r io.Reader) eng.TokenSource {
	data, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err}
	}
	return NewBytes(data)
}

// NewBytes wraps a byte slice into an engine.TokenSource using jsoniter.
func NewBytes(b []byte) eng.TokenSource {
	it := jsoniter.ParseBytes(jsoniter.ConfigCompatibleWithStandardLibrary, b)
	s := &source{size: int64(len(b))}
	s.tokenizeValue(it)
	if it.Error != nil && it.Error != io.EOF {
		s.err = it.Error
	}
	return s
}

func (s *source) NextToken() (eng.Token, error) {
	if s.pos >= len(s.toks) {
		if s.err != nil {
			return eng.Token{}, s.err
		}
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

// Location reports the input length; tokenization is eager, so the whole
// document has been consumed before the first token is replayed.
func (s *source) Location() int64 { return s.size }

func (s *source) tokenizeValue(it *jsoniter.Iterator) bool {
	switch it.WhatIsNext() {
	case jsoniter.ObjectValue:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindBeginObject, Offset: -1})
		ok := it.ReadMapCB(func(it *jsoniter.Iterator, key string) bool {
			s.toks = append(s.toks, eng.Token{Kind: eng.KindKey, String: key, Offset: -1})
			return s.tokenizeValue(it)
		})
		s.toks = append(s.toks, eng.Token{Kind: eng.KindEndObject, Offset: -1})
		return ok
	case jsoniter.ArrayValue:
		s.toks = append(s.toks, eng.Token{Kind: eng.KindBeginArray, Offset: -1})
		ok := it.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			return s.tokenizeValue(it)
		})
		s.toks = append(s.toks, eng.Token{Kind: eng.KindEndArray, Offset: -1})
		return ok
	case jsoniter.StringValue:
		v := it.ReadString()
		s.toks = append(s.toks, eng.Token{Kind: eng.KindString, String: v, Offset: -1})
	case jsoniter.NumberValue:
		n := it.ReadNumber()
		s.toks = append(s.toks, eng.Token{Kind: eng.KindNumber, Number: string(n), Offset: -1})
	case jsoniter.BoolValue:
		v := it.ReadBool()
		s.toks = append(s.toks, eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1})
	case jsoniter.NilValue:
		it.ReadNil()
		s.toks = append(s.toks, eng.Token{Kind: eng.KindNull, Offset: -1})
	default:
		it.ReportError("tokenize", "invalid value")
		return false
	}
	return it.Error == nil
}
