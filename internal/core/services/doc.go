// Package services implements the driving port interfaces: the
// ingestion pipeline and the retrieval pipeline. Services contain
// the core business logic and orchestrate calls to driven ports
// (loaders, embedding, vector index, LLM).
//
// Services are pure Go with no I/O of their own; everything external
// arrives through a port.
package services
