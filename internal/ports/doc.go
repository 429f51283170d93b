// Package ports defines interfaces between layers in the hexagonal architecture.
// Service ports are implemented by the application layer and called by the
// entry point. Client ports are implemented by outbound adapters and called by
// the demonstration catalogue.
package ports
