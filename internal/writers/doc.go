// Package writers turns a scoring Report into serialized output.
//
// Design:
//   - Writers own all presentation knowledge (text styling, JSON shape, timing line).
//   - The engine stays domain-only; the pipeline stays orchestration-only.
//   - JSON goes through pkg/api (v1) for a stable wire format.
package writers
