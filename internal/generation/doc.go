// Package generation holds the textual contract between pragati and the
// language model: the prompt builder that asks for a fixed
// TITLE / SECTION / DURATION / CONTENT / ACTIVITY layout, and the parser
// that turns the model's free text back into a domain.Module.
//
// Both sides must change together. A prompt that stops asking for a marker
// the parser relies on degrades every module to the single fallback section.
//
// # Import Rules
//
//   - Can Import: domain, ports/driven, logger
//   - Cannot Import: Any adapter package
package generation
