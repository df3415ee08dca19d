package generation

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/logger"
)

// MaxHistoryTurns is the number of most recent conversation turns kept in the prompt.
const MaxHistoryTurns = 4

// DefaultSystemPrompt is the built-in module_system template.
const DefaultSystemPrompt = `You are an expert educational content designer specializing in teacher training.

Your task is to create micro-learning modules that are:
- Actionable and practical for classroom implementation
- Culturally sensitive and adaptable to diverse contexts
- Focused on solving specific teaching challenges
- Designed for {{.TargetDuration}}-minute learning sessions
- Appropriate for {{.DifficultyLevel}} level teachers

Structure each module with:
1. Clear title
2. 3-5 focused sections
3. Practical activities or examples
4. Implementation tips

Keep language simple, clear, and encouraging.`

// DefaultUserPrompt is the built-in module_user template.
const DefaultUserPrompt = `[INST]
You are an expert teacher trainer.
{{if .History}}

Previous conversation:
{{range .History}}{{.Speaker}}: {{.Content}}
{{end}}
Based on the above conversation, {{end}}Create a {{.TargetDuration}}-minute micro-learning module for this challenge:
"{{.Challenge}}"

Format your response using proper markdown for readability:
- Use blank lines (double newlines) between paragraphs
- Use bullet points (- ) for lists
- Bold key terms with **text**
- Keep content well-organized with clear spacing

Structure your response exactly like this:

TITLE: [Module Title]

SECTION 1: [Name]
DURATION: [X min]
CONTENT: [Explanation with proper paragraphs and formatting]

ACTIVITY: [Short activity description]

SECTION 2: [Name]
DURATION: [X min]
CONTENT: [Explanation with proper paragraphs and formatting]

ACTIVITY: [Short activity description]
[/INST]`

// PromptInput holds everything needed to build module generation prompts.
type PromptInput struct {
	Challenge       string
	TargetDuration  int
	DifficultyLevel domain.DifficultyLevel
	History         []domain.HistoryEntry
}

// Prompts is a built system and user prompt pair.
type Prompts struct {
	System string
	User   string
}

// HistoryLine is one rendered conversation turn.
type HistoryLine struct {
	Speaker string
	Content string
}

type templateData struct {
	Challenge       string
	TargetDuration  int
	DifficultyLevel string
	History         []HistoryLine
}

// PromptBuilder renders module generation prompts.
// It implements driven.PromptStoreAware.
type PromptBuilder struct {
	prompts driven.PromptStore
}

var _ driven.PromptStoreAware = (*PromptBuilder)(nil)

// NewPromptBuilder creates a prompt builder using the built-in templates.
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// SetPromptStore sets the prompt store for loading customisable templates.
func (b *PromptBuilder) SetPromptStore(store driven.PromptStore) {
	b.prompts = store
}

// Build renders the system and user prompts. Only the last MaxHistoryTurns
// history entries are included; older turns are dropped.
func (b *PromptBuilder) Build(in PromptInput) Prompts {
	data := templateData{
		Challenge:       in.Challenge,
		TargetDuration:  in.TargetDuration,
		DifficultyLevel: in.DifficultyLevel.String(),
		History:         historyLines(in.History),
	}

	return Prompts{
		System: b.render(driven.PromptModuleSystem, DefaultSystemPrompt, data),
		User:   b.render(driven.PromptModuleUser, DefaultUserPrompt, data),
	}
}

// render executes the named template, falling back to the default on any
// load, parse or execution error.
func (b *PromptBuilder) render(name, fallback string, data templateData) string {
	if b.prompts != nil {
		src, err := b.prompts.Load(name)
		if err == nil && src != "" {
			out, execErr := execute(name, src, data)
			if execErr == nil {
				return out
			}
			logger.Warn("prompt %s: %v, using built-in template", name, execErr)
		} else if err != nil {
			logger.Warn("prompt %s: %v, using built-in template", name, err)
		}
	}

	out, err := execute(name, fallback, data)
	if err != nil {
		// Built-in templates are covered by tests; this is unreachable in practice.
		panic(fmt.Sprintf("built-in prompt %s: %v", name, err))
	}
	return out
}

func execute(name, src string, data templateData) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

func historyLines(history []domain.HistoryEntry) []HistoryLine {
	if len(history) > MaxHistoryTurns {
		history = history[len(history)-MaxHistoryTurns:]
	}
	lines := make([]HistoryLine, 0, len(history))
	for _, h := range history {
		lines = append(lines, HistoryLine{Speaker: h.Role.Speaker(), Content: h.Content})
	}
	return lines
}

// WithContext wraps a user prompt with retrieved passages as numbered
// [Context i] blocks. This is the prompt actually sent to the model.
func WithContext(userPrompt string, contexts []string) string {
	blocks := make([]string, len(contexts))
	for i, c := range contexts {
		blocks[i] = fmt.Sprintf("[Context %d]\n%s", i+1, c)
	}

	var sb strings.Builder
	sb.WriteString("Context Information:\n")
	sb.WriteString(strings.Join(blocks, "\n\n"))
	sb.WriteString("\n\nUser Query: ")
	sb.WriteString(userPrompt)
	sb.WriteString("\n\nPlease provide a comprehensive response based on the context above.")
	return sb.String()
}
