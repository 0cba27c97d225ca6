package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Attribute documents are flat map-like structures, for which JSON is stable
// and portable across bindings in other languages.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the default codec used by the library.
//
// Persisted attribute documents are plain JSON either way; Default only
// selects the implementation doing the encoding.
var Default Codec = GoJSON{}
