// Package writers renders store results for the host.
//
// Design:
//   - Writers own all presentation knowledge (text, JSON, JSONL, FASTA).
//   - The store stays presentation-free; commands pick a registry and a format.
//   - JSON and JSONL go through pkg/api (v1) for a stable wire format.
package writers
