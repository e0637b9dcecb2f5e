// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - MetadataStore: TOML-based project metadata (meta/config.toml)
package file
