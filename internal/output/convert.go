// internal/output/convert.go
package output

import (
	"hibf-hashing/internal/index"
	"hibf-hashing/internal/pipeline"
	"hibf-hashing/pkg/api"
)

// ToAPIHit converts a search hit to the stable wire schema (v1). When bins
// is non-nil the matching file names are attached.
func ToAPIHit(h pipeline.Hit, bins []string) api.HitV1 {
	v := api.HitV1{
		ID:           h.ID,
		Bins:         append([]int{}, h.Bins...),
		Fingerprints: h.Count,
		Threshold:    h.Threshold,
	}
	if h.Err != nil {
		v.Error = h.Err.Error()
	}
	if bins != nil {
		for _, b := range h.Bins {
			if b >= 0 && b < len(bins) {
				v.BinFiles = append(v.BinFiles, bins[b])
			}
		}
	}
	return v
}

// ToIndexInfo summarizes an index for inspect and the HTTP API.
func ToIndexInfo(idx *index.Index) api.IndexInfoV1 {
	m := idx.Meta
	info := api.IndexInfoV1{
		FormatVersion:    m.FormatVersion,
		BuildID:          m.BuildID,
		CreatedAt:        m.CreatedAt,
		Mode:             string(m.Mode),
		KmerSize:         m.KmerSize,
		WindowSize:       m.WindowSize,
		SmerSize:         m.SmerSize,
		Offset:           m.Offset,
		NumHashFunctions: m.NumHashFunctions,
		MaxFPR:           m.MaxFPR,
		Bins:             append([]string(nil), m.Bins...),
	}
	if idx.Filter != nil {
		info.FilterBits = idx.Filter.BitCount()
	}
	return info
}
