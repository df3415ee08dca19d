package domain

import "time"

// DifficultyLevel is the intended audience level of a module.
type DifficultyLevel string

// Available difficulty levels.
const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// IsValid returns true if the difficulty level is recognised.
func (d DifficultyLevel) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (d DifficultyLevel) String() string {
	return string(d)
}

// AllDifficultyLevels returns all difficulty levels in increasing order.
func AllDifficultyLevels() []DifficultyLevel {
	return []DifficultyLevel{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// Module default values.
const (
	// DefaultModuleTitle is used when the generated output has no TITLE marker.
	DefaultModuleTitle = "Addressing Classroom Challenge"

	// FallbackSectionTitle names the single section synthesised from unparsed output.
	FallbackSectionTitle = "Practical Solution"

	// DefaultSectionTitle is used for a SECTION line without a colon.
	DefaultSectionTitle = "Section"

	// DefaultSectionDuration is the duration in minutes of a section with no parsable DURATION.
	DefaultSectionDuration = 3
)

// ModuleSection is one titled, timed part of a module.
type ModuleSection struct {
	Title           string `json:"title" yaml:"title"`
	Content         string `json:"content" yaml:"content"`
	DurationMinutes int    `json:"duration_minutes" yaml:"duration_minutes"`
	Activity        string `json:"activity,omitempty" yaml:"activity,omitempty"`
}

// Module is a structured micro-learning module produced for a classroom challenge.
// TotalDuration always equals the sum of section durations and Sections is never empty.
type Module struct {
	// ID is a fresh UUID per generation.
	ID string `json:"id" yaml:"id"`

	// Title is the module title.
	Title string `json:"title" yaml:"title"`

	// Challenge is the teacher's description of the classroom problem.
	Challenge string `json:"challenge" yaml:"challenge"`

	// Sections is the ordered list of module sections.
	Sections []ModuleSection `json:"sections" yaml:"sections"`

	// TotalDuration is the sum of section durations in minutes.
	TotalDuration int `json:"total_duration" yaml:"total_duration"`

	// DifficultyLevel is the intended audience level.
	DifficultyLevel DifficultyLevel `json:"difficulty_level" yaml:"difficulty_level"`

	// CreatedAt is when the module was generated.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Language is the module language code.
	Language string `json:"language" yaml:"language"`
}

// SumDurations returns the total of all section durations.
func (m *Module) SumDurations() int {
	total := 0
	for _, s := range m.Sections {
		total += s.DurationMinutes
	}
	return total
}

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Speaker returns the label used for the role inside generation prompts.
func (r Role) Speaker() string {
	if r == RoleUser {
		return "Teacher"
	}
	return "Assistant"
}

// HistoryEntry is one prior turn of a conversation supplied to the prompt builder.
type HistoryEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
