// pkg/api/hits_v1.go
package api

// HitV1 is the stable JSON/JSONL schema for one searched read.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type HitV1 struct {
	ID           string   `json:"id"`
	Bins         []int    `json:"bins"` // ascending user-bin ids; [] when nothing matched
	BinFiles     []string `json:"bin_files,omitempty"`
	Fingerprints int      `json:"fingerprints"`
	Threshold    int      `json:"threshold"`
	Error        string   `json:"error,omitempty"`
}

// ReadV1 is one query sequence submitted over HTTP.
type ReadV1 struct {
	ID  string `json:"id"`
	Seq string `json:"seq"`
}

// SearchRequestV1 is the body of POST /search.
type SearchRequestV1 struct {
	Reads     []ReadV1 `json:"reads"`
	Errors    *int     `json:"errors,omitempty"`    // defaults to the server setting
	Threshold float64  `json:"threshold,omitempty"` // fixed fraction; 0 = k-mer lemma
}
