package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible default
	// or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
// Templates use text/template syntax.
const (
	// PromptModuleSystem is the system prompt for module generation.
	// Fields: .TargetDuration, .DifficultyLevel.
	PromptModuleSystem = "module_system"

	// PromptModuleUser is the user prompt for module generation.
	// Fields: .History ([]HistoryLine), .Challenge, .TargetDuration.
	// The TITLE/SECTION/DURATION/CONTENT/ACTIVITY markers it asks for
	// are parsed back by the module parser and must stay compatible.
	PromptModuleUser = "module_user"
)

// PromptStoreAware is an optional interface for services that can use custom prompts.
type PromptStoreAware interface {
	// SetPromptStore sets the prompt store for loading customisable prompts.
	// If not set, the service should use hardcoded default prompts.
	SetPromptStore(store PromptStore)
}
