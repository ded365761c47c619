// Package assembler turns a raw text completion into structured character
// fields. The generator is asked to emit a fixed sequence of bold-labeled
// blocks (Name through Avatar Prompt); real completions frequently deviate
// from that format, so extraction is best-effort and every field has a
// fixed default. Parse never fails.
package assembler

import (
	"fmt"
	"regexp"
	"strings"
)

// CharacterFields is the structured result of parsing one completion.
type CharacterFields struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	Personality     string `json:"personality"`
	Greeting        string `json:"greeting"`
	Scenario        string `json:"scenario"`
	ExampleDialogue string `json:"exampleDialogue"`
	AvatarPrompt    string `json:"avatarPrompt"`
}

// Defaults substituted per field when its label is not found.
const (
	DefaultName            = "Unknown Character"
	DefaultTitle           = "Mysterious Being"
	DefaultPersonality     = "Mysterious and enigmatic."
	DefaultGreeting        = "Hello there!"
	DefaultScenario        = "You encounter this character in an unknown place."
	DefaultExampleDialogue = "Character: Nice to meet you!"
)

// Each field except the last is captured between its own label and the next
// expected label; the last field runs to the end of the input. Matching is
// case-insensitive and spans lines.
var (
	nameRe            = regexp.MustCompile(`(?i)\*\*Name:\*\*\s*([\s\S]+?)\n+\*\*Title:`)
	titleRe           = regexp.MustCompile(`(?i)\*\*Title:\*\*\s*([\s\S]+?)\n+\*\*Personality:`)
	personalityRe     = regexp.MustCompile(`(?i)\*\*Personality:\*\*\s*([\s\S]+?)\n+\*\*Greeting:`)
	greetingRe        = regexp.MustCompile(`(?i)\*\*Greeting:\*\*\s*([\s\S]+?)\n+\*\*Scenario:`)
	scenarioRe        = regexp.MustCompile(`(?i)\*\*Scenario:\*\*\s*([\s\S]+?)\n+\*\*Example Dialogue:`)
	exampleDialogueRe = regexp.MustCompile(`(?i)\*\*Example Dialogue:\*\*\s*([\s\S]+?)\n+\*\*Avatar Prompt:`)
	avatarPromptRe    = regexp.MustCompile(`(?i)\*\*Avatar Prompt:\*\*\s*([\s\S]+)`)
)

// Parse extracts the seven character fields from a raw completion. Fields
// whose labels are missing take their documented defaults; the avatar prompt
// default is derived from the already-resolved name and title.
func Parse(raw string) CharacterFields {
	fields := CharacterFields{
		Name:            extract(nameRe, raw, DefaultName),
		Title:           extract(titleRe, raw, DefaultTitle),
		Personality:     extract(personalityRe, raw, DefaultPersonality),
		Greeting:        extract(greetingRe, raw, DefaultGreeting),
		Scenario:        extract(scenarioRe, raw, DefaultScenario),
		ExampleDialogue: extract(exampleDialogueRe, raw, DefaultExampleDialogue),
	}
	fields.AvatarPrompt = extract(avatarPromptRe, raw,
		fmt.Sprintf("Portrait of %s, %s", fields.Name, fields.Title))
	return fields
}

func extract(re *regexp.Regexp, raw, fallback string) string {
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return fallback
	}
	return cleanText(m[1])
}

// cleanText strips the bold markup and surrounding whitespace from a
// captured value.
func cleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}
