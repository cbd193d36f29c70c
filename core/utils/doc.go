// Package utils contains small shared helpers.
//
// The conversion helpers (ToInt, ToFloat, ToString, ToBool) normalize the
// loosely typed values that come out of decoding export JSON into
// map[string]any, where a numeric field may arrive as float64, json.Number,
// or even a quoted string depending on the exporter version.
package utils
