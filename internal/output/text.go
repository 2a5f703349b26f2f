// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hibf-hashing/pkg/api"
)

// FormatHitLine renders "id: [b0,b1]".
func FormatHitLine(h api.HitV1) string {
	var sb strings.Builder
	sb.WriteString(h.ID)
	sb.WriteString(": [")
	for i, b := range h.Bins {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(b))
	}
	sb.WriteByte(']')
	return sb.String()
}

// StreamText writes one line per hit as they arrive.
func StreamText(w io.Writer, in <-chan api.HitV1) error {
	for h := range in {
		if _, err := fmt.Fprintln(w, FormatHitLine(h)); err != nil {
			return err
		}
	}
	return nil
}

// WriteIndexText prints index metadata as aligned key/value lines.
func WriteIndexText(w io.Writer, info api.IndexInfoV1) error {
	rows := [][2]string{
		{"build id", info.BuildID},
		{"created", info.CreatedAt.Format("2006-01-02T15:04:05Z07:00")},
		{"format", strconv.Itoa(info.FormatVersion)},
		{"mode", info.Mode},
		{"k-mer size", strconv.Itoa(info.KmerSize)},
		{"window size", strconv.Itoa(info.WindowSize)},
	}
	if info.Mode == "syncmer" {
		rows = append(rows,
			[2]string{"s-mer size", strconv.Itoa(info.SmerSize)},
			[2]string{"offset", strconv.Itoa(info.Offset)})
	}
	rows = append(rows,
		[2]string{"hash functions", strconv.Itoa(info.NumHashFunctions)},
		[2]string{"max fpr", strconv.FormatFloat(info.MaxFPR, 'g', -1, 64)},
		[2]string{"filter bits", strconv.FormatUint(info.FilterBits, 10)},
		[2]string{"user bins", strconv.Itoa(len(info.Bins))},
	)
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%-15s %s\n", r[0]+":", r[1]); err != nil {
			return err
		}
	}
	for i, b := range info.Bins {
		if _, err := fmt.Fprintf(w, "  [%d] %s\n", i, b); err != nil {
			return err
		}
	}
	return nil
}
