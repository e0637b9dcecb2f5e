// Package driving defines interfaces that external actors (UI, CLI, MCP) use
// to interact with core services. These are the "driving" ports in hexagonal
// architecture terminology - they drive the application.
//
// The mutation methods here are the only way callers change a project.
// Implementations live in internal/core/services.
package driving
