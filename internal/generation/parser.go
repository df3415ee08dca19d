package generation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/logger"
)

// Output markers, matched case-insensitively after '*' is stripped.
const (
	markerTitle    = "TITLE:"
	markerSection  = "SECTION"
	markerDuration = "DURATION:"
	markerActivity = "ACTIVITY:"
	markerContent  = "CONTENT:"
)

// parseState is the line scanner state.
type parseState int

const (
	// stateNoSection means no SECTION line has been seen yet.
	stateNoSection parseState = iota

	// stateInSection means lines belong to the open section.
	stateInSection
)

// Parser turns free-text model output into a Module.
type Parser struct {
	now   func() time.Time
	newID func() string
}

// NewParser creates a parser using the wall clock and random UUIDs.
func NewParser() *Parser {
	return &Parser{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// ParseInput holds the generation parameters the parsed module inherits.
type ParseInput struct {
	Raw             string
	Challenge       string
	TargetDuration  int
	DifficultyLevel domain.DifficultyLevel
}

// Parse never fails. Output without any SECTION marker yields one
// "Practical Solution" section holding the raw text for TargetDuration
// minutes, and an unexpected internal failure yields the same shape.
func (p *Parser) Parse(in ParseInput) (module *domain.Module) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("parse module: %v, returning raw output", r)
			module = p.build(in, domain.DefaultModuleTitle, nil)
		}
	}()

	lines := strings.Split(strings.TrimSpace(in.Raw), "\n")
	return p.build(in, parseTitle(lines), parseSections(lines))
}

func (p *Parser) build(in ParseInput, title string, sections []domain.ModuleSection) *domain.Module {
	if len(sections) == 0 {
		sections = []domain.ModuleSection{{
			Title:           domain.FallbackSectionTitle,
			Content:         in.Raw,
			DurationMinutes: in.TargetDuration,
		}}
	}

	m := &domain.Module{
		ID:              p.newID(),
		Title:           title,
		Challenge:       in.Challenge,
		Sections:        sections,
		DifficultyLevel: in.DifficultyLevel,
		CreatedAt:       p.now(),
		Language:        domain.DefaultLanguage,
	}
	m.TotalDuration = m.SumDurations()
	return m
}

// cleanLine trims a line and removes markdown emphasis.
func cleanLine(line string) string {
	return strings.TrimSpace(strings.ReplaceAll(line, "*", ""))
}

// hasMarker reports whether clean starts with marker, ignoring case,
// and returns the trimmed remainder after it.
func hasMarker(clean, marker string) (string, bool) {
	if len(clean) < len(marker) || !strings.EqualFold(clean[:len(marker)], marker) {
		return "", false
	}
	return strings.TrimSpace(clean[len(marker):]), true
}

func parseTitle(lines []string) string {
	for _, line := range lines {
		if rest, ok := hasMarker(cleanLine(line), markerTitle); ok {
			return rest
		}
	}
	return domain.DefaultModuleTitle
}

func parseSections(lines []string) []domain.ModuleSection {
	var (
		sections []domain.ModuleSection
		current  domain.ModuleSection
		state    = stateNoSection
	)

	flush := func() {
		if state == stateInSection {
			sections = append(sections, current)
		}
	}

	for _, line := range lines {
		clean := cleanLine(line)

		if _, ok := hasMarker(clean, markerSection); ok {
			flush()
			current = domain.ModuleSection{
				Title:           sectionTitle(clean),
				DurationMinutes: domain.DefaultSectionDuration,
			}
			state = stateInSection
			continue
		}

		trimmed := strings.TrimSpace(line)
		if state != stateInSection || trimmed == "" {
			continue
		}

		if rest, ok := hasMarker(clean, markerDuration); ok {
			if d, err := firstNumber(rest); err == nil {
				current.DurationMinutes = d
			} else {
				logger.Debug("parse module: %v, keeping %d min", err, current.DurationMinutes)
			}
		} else if rest, ok := hasMarker(clean, markerActivity); ok {
			current.Activity = rest
		} else if rest, ok := hasMarker(clean, markerContent); ok {
			current.Content = rest
		} else {
			current.Content += "\n" + trimmed
		}
	}
	flush()

	return sections
}

func sectionTitle(clean string) string {
	_, after, found := strings.Cut(clean, ":")
	if !found {
		return domain.DefaultSectionTitle
	}
	return strings.TrimSpace(after)
}

// firstNumber returns the first contiguous run of ASCII digits in s.
func firstNumber(s string) (int, error) {
	start := strings.IndexAny(s, "0123456789")
	if start < 0 {
		return 0, fmt.Errorf("no digits in duration %q", s)
	}
	end := start
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return strconv.Atoi(s[start:end])
}
