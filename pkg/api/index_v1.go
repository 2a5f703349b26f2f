// pkg/api/index_v1.go
package api

import "time"

// IndexInfoV1 describes a built index (inspect, GET /index).
type IndexInfoV1 struct {
	FormatVersion    int       `json:"format_version" yaml:"format_version"`
	BuildID          string    `json:"build_id" yaml:"build_id"`
	CreatedAt        time.Time `json:"created_at" yaml:"created_at"`
	Mode             string    `json:"mode" yaml:"mode"`
	KmerSize         int       `json:"kmer_size" yaml:"kmer_size"`
	WindowSize       int       `json:"window_size" yaml:"window_size"`
	SmerSize         int       `json:"smer_size,omitempty" yaml:"smer_size,omitempty"`
	Offset           int       `json:"offset,omitempty" yaml:"offset,omitempty"`
	NumHashFunctions int       `json:"num_hash_functions" yaml:"num_hash_functions"`
	MaxFPR           float64   `json:"max_fpr" yaml:"max_fpr"`
	FilterBits       uint64    `json:"filter_bits" yaml:"filter_bits"`
	Bins             []string  `json:"bins" yaml:"bins"`
}
