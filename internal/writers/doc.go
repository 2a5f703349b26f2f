// Package writers turns search hits into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (text lines, JSON/JSONL, Kafka).
//   - Pipeline stays orchestration-only.
//   - JSON/JSONL/Kafka go through pkg/api (v1) for a stable wire format.
//
// Every writer is a goroutine fed through a channel; the error channel
// yields exactly one value once the input channel is closed. After a write
// error the writer keeps draining its input so producers never block.
package writers
