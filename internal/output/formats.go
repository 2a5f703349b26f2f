// internal/output/formats.go
package output

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatKafka = "kafka"
	FormatYAML  = "yaml"
)

// TextHeader precedes text results on the terminal (not in the results file).
const TextHeader = "The following hits were found:"
