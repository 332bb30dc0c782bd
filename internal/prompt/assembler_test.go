package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleBasicSections(t *testing.T) {
	out := Assemble(Input{
		CompanionName:  "Ada",
		Instructions:   "You are Ada, a curious engineer.",
		RecentDialogue: "User: hi\nAda: hello",
		Prompt:         "how are you?",
	})

	assert.Contains(t, out, "You are Ada.")
	assert.Contains(t, out, "You are Ada, a curious engineer.")
	assert.Contains(t, out, "Recent conversation:\nUser: hi\nAda: hello")
	assert.True(t, strings.HasSuffix(out, "Ada:"), "prompt must end with the response cue")
}

func TestAssembleUserTurnNotDuplicated(t *testing.T) {
	out := Assemble(Input{
		CompanionName:  "Ada",
		RecentDialogue: "User: hi\nAda: hello\nUser: how are you?\n",
		Prompt:         "how are you?",
	})

	assert.Equal(t, 1, strings.Count(out, "User: how are you?"))
}

func TestAssembleFallsBackToUserLineWithoutDialogue(t *testing.T) {
	out := Assemble(Input{CompanionName: "Ada", Prompt: "how are you?"})

	assert.Contains(t, out, "User: how are you?\n")
	assert.True(t, strings.HasSuffix(out, "Ada:"))
}

func TestAssembleOmitsEmptySections(t *testing.T) {
	out := Assemble(Input{CompanionName: "Ada", Prompt: "hello"})

	assert.NotContains(t, out, "Recent conversation:")
	assert.NotContains(t, out, "Things you remember")
	assert.NotContains(t, out, "Do not repeat yourself")
}

func TestAssembleRepetitionDirective(t *testing.T) {
	out := Assemble(Input{
		CompanionName: "Ada",
		Prompt:        "tell me again",
		Repetitive:    true,
		RepeatedLine:  "I already told you about the garden.",
	})

	assert.Contains(t, out, "Do not repeat yourself")
	assert.Contains(t, out, "I already told you about the garden.")
}

func TestAssembleSemanticContext(t *testing.T) {
	out := Assemble(Input{
		CompanionName:   "Ada",
		UserName:        "Sam",
		Prompt:          "trip ideas?",
		SemanticContext: []string{"loves hiking", "afraid of heights"},
	})

	assert.Contains(t, out, "Things you remember about Sam:")
	assert.Contains(t, out, "- loves hiking\n")
	assert.Contains(t, out, "- afraid of heights\n")
}

func TestAssembleDeterministic(t *testing.T) {
	in := Input{CompanionName: "Ada", Instructions: "Be kind.", Prompt: "hi"}
	assert.Equal(t, Assemble(in), Assemble(in))
}
