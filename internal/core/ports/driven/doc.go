// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
// The retrieval engine depends only on these interfaces; concrete
// backends (federated HTTP services, a unified Neo4j store, Ollama)
// live under internal/adapters/driven.
package driven
