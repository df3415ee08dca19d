// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.pragati.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: User-editable module generation prompt templates
package file
