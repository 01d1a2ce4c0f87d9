package codable

// Package codable provides:
//
// - A format-agnostic structured Value model (null/bool/number/string/array/object)
// - Encodable/Decodable contracts driven through Keyed/Unkeyed/SingleValue containers
// - A stable error model via Issues (JSON Pointer, code, message)
// - Pluggable date and key-casing strategies installed per Encoder/Decoder
// - Tokenized input via Source drivers with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only public APIs in the root package; put token-level detail under internal/.
// - Place input drivers under source/, wrapper codecs under codec/, and alternate
//   wire formats in cborwire/ and yamlwire/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	var rec Record
//	err := codable.DecodeJSON(data, &rec)
//
//	val, err := codable.Encode(rec, codable.EncodeOptions{Keys: codable.KeysToSnakeCase})
//	wire, err := codable.WriteJSON(val, false)
