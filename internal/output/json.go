// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v2"

	"hibf-hashing/pkg/api"
)

// WriteJSON writes a single JSON array of v1 hits (pretty-indented).
func WriteJSON(w io.Writer, list []api.HitV1) error {
	if list == nil {
		list = []api.HitV1{}
	}
	return encodeIndented(w, list)
}

// WriteIndexJSON writes index metadata as indented JSON.
func WriteIndexJSON(w io.Writer, info api.IndexInfoV1) error {
	return encodeIndented(w, info)
}

// WriteIndexYAML writes index metadata as YAML.
func WriteIndexYAML(w io.Writer, info api.IndexInfoV1) error {
	b, err := yaml.Marshal(info)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func encodeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
