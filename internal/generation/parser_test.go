package generation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func testParser() *Parser {
	return &Parser{
		now:   func() time.Time { return fixedNow },
		newID: func() string { return "module-1" },
	}
}

func parse(raw string) *domain.Module {
	return testParser().Parse(ParseInput{
		Raw:             raw,
		Challenge:       "Students do not listen",
		TargetDuration:  15,
		DifficultyLevel: domain.DifficultyIntermediate,
	})
}

func TestParse_WellFormed(t *testing.T) {
	m := parse("TITLE: Foo\nSECTION 1: Intro\nDURATION: 5 min\nCONTENT: Hello\nACTIVITY: Do X\n")

	assert.Equal(t, "Foo", m.Title)
	require.Len(t, m.Sections, 1)
	assert.Equal(t, domain.ModuleSection{
		Title:           "Intro",
		Content:         "Hello",
		DurationMinutes: 5,
		Activity:        "Do X",
	}, m.Sections[0])
	assert.Equal(t, 5, m.TotalDuration)
	assert.Equal(t, "module-1", m.ID)
	assert.Equal(t, fixedNow, m.CreatedAt)
	assert.Equal(t, "Students do not listen", m.Challenge)
	assert.Equal(t, domain.DifficultyIntermediate, m.DifficultyLevel)
	assert.Equal(t, domain.DefaultLanguage, m.Language)
}

func TestParse_NoSectionMarkers(t *testing.T) {
	m := parse("just some text")

	assert.Equal(t, domain.DefaultModuleTitle, m.Title)
	require.Len(t, m.Sections, 1)
	assert.Equal(t, domain.FallbackSectionTitle, m.Sections[0].Title)
	assert.Equal(t, "just some text", m.Sections[0].Content)
	assert.Equal(t, 15, m.Sections[0].DurationMinutes)
	assert.Equal(t, 15, m.TotalDuration)
}

func TestParse_FallbackKeepsRawText(t *testing.T) {
	raw := "  \nTITLE: Only a title\nno sections here\n"
	m := parse(raw)

	assert.Equal(t, "Only a title", m.Title)
	require.Len(t, m.Sections, 1)
	assert.Equal(t, raw, m.Sections[0].Content)
}

func TestParse_EmptyOutput(t *testing.T) {
	m := parse("")

	require.Len(t, m.Sections, 1)
	assert.Equal(t, domain.FallbackSectionTitle, m.Sections[0].Title)
	assert.Equal(t, 15, m.TotalDuration)
}

func TestParse_MissingDurationDigits(t *testing.T) {
	m := parse("SECTION 1: X\nDURATION: none\nCONTENT: Y")

	require.Len(t, m.Sections, 1)
	assert.Equal(t, "X", m.Sections[0].Title)
	assert.Equal(t, domain.DefaultSectionDuration, m.Sections[0].DurationMinutes)
	assert.Equal(t, "Y", m.Sections[0].Content)
	assert.Equal(t, 3, m.TotalDuration)
}

func TestParse_Duration(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected int
	}{
		{"plain minutes", "DURATION: 4 min", 4},
		{"no space", "DURATION:10min", 10},
		{"range takes first run", "DURATION: 5-7 minutes", 5},
		{"bold marker", "**DURATION:** 6 minutes", 6},
		{"lowercase marker", "duration: 2 min", 2},
		{"zero", "DURATION: 0 min", 0},
		{"no digits", "DURATION: a few minutes", domain.DefaultSectionDuration},
		{"empty", "DURATION:", domain.DefaultSectionDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := parse("SECTION 1: A\n" + tt.line)
			require.Len(t, m.Sections, 1)
			assert.Equal(t, tt.expected, m.Sections[0].DurationMinutes)
		})
	}
}

func TestParse_MultipleSections(t *testing.T) {
	raw := `**TITLE:** Managing Noise

**SECTION 1: Understanding the Cause**
DURATION: 4 min
CONTENT: Noise often signals **boredom**.

Observe which activities trigger it.
ACTIVITY: List three noisy moments.

SECTION 2: Signals
DURATION: 6 min
CONTENT: Agree on a silent signal.
ACTIVITY: Practise the signal.
ACTIVITY: Reflect with a partner.

Section 3
CONTENT: Wrap up.`

	m := parse(raw)

	assert.Equal(t, "Managing Noise", m.Title)
	require.Len(t, m.Sections, 3)

	assert.Equal(t, "Understanding the Cause", m.Sections[0].Title)
	assert.Equal(t, 4, m.Sections[0].DurationMinutes)
	assert.Equal(t, "Noise often signals boredom.\nObserve which activities trigger it.", m.Sections[0].Content)
	assert.Equal(t, "List three noisy moments.", m.Sections[0].Activity)

	assert.Equal(t, "Signals", m.Sections[1].Title)
	assert.Equal(t, "Reflect with a partner.", m.Sections[1].Activity, "last activity wins")

	assert.Equal(t, domain.DefaultSectionTitle, m.Sections[2].Title)
	assert.Equal(t, domain.DefaultSectionDuration, m.Sections[2].DurationMinutes)
	assert.Equal(t, "Wrap up.", m.Sections[2].Content)
	assert.Empty(t, m.Sections[2].Activity)

	assert.Equal(t, 4+6+3, m.TotalDuration)
}

func TestParse_ContentAccumulatesWithoutMarker(t *testing.T) {
	m := parse("SECTION 1: A\nfirst line\n  **second** line  ")

	require.Len(t, m.Sections, 1)
	assert.Equal(t, "\nfirst line\n**second** line", m.Sections[0].Content)
}

func TestParse_LinesBeforeFirstSectionIgnored(t *testing.T) {
	m := parse("Here is your module.\nDURATION: 9 min\nSECTION 1: A\nCONTENT: B")

	require.Len(t, m.Sections, 1)
	assert.Equal(t, "B", m.Sections[0].Content)
	assert.Equal(t, domain.DefaultSectionDuration, m.Sections[0].DurationMinutes)
}

func TestParse_TitleIsFirstMarker(t *testing.T) {
	m := parse("title: first\nTITLE: second\nSECTION 1: A")
	assert.Equal(t, "first", m.Title)
}

func TestParse_TotalDurationInvariant(t *testing.T) {
	inputs := []string{
		"",
		"garbage",
		"SECTION: a\nDURATION: 2\nSECTION: b\nDURATION: 11",
		"SECTION\nSECTION\nSECTION",
	}
	for _, raw := range inputs {
		m := parse(raw)
		assert.NotEmpty(t, m.Sections, raw)
		assert.Equal(t, m.SumDurations(), m.TotalDuration, raw)
	}
}

func TestNewParser(t *testing.T) {
	p := NewParser()
	a := p.Parse(ParseInput{Raw: "x", TargetDuration: 5})
	b := p.Parse(ParseInput{Raw: "x", TargetDuration: 5})

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
	assert.WithinDuration(t, time.Now(), a.CreatedAt, time.Minute)
}
