// Package prompt renders the single text block sent to the model:
// persona instructions, retrieved long-term context, the recent
// dialogue window, and the pending user message.
package prompt

import "strings"

type Input struct {
	CompanionName string
	Instructions  string
	UserName      string

	// RecentDialogue is the newline-joined history window, oldest first.
	RecentDialogue string
	// SemanticContext holds retrieved memory fragments, best match first.
	SemanticContext []string

	// Prompt is the pending user message. RecentDialogue already ends
	// with it when the history write succeeded, so it is rendered only
	// when the dialogue window came back empty.
	Prompt string

	// Repetitive flags that the model's last replies were echoed back;
	// RepeatedLine is the line it should steer away from.
	Repetitive   bool
	RepeatedLine string
}

func Assemble(in Input) string {
	var b strings.Builder

	b.WriteString("You are ")
	b.WriteString(in.CompanionName)
	b.WriteString(". Stay in character at all times and reply in one short paragraph, with no role prefix.\n\n")

	if in.Instructions != "" {
		b.WriteString(in.Instructions)
		b.WriteString("\n\n")
	}

	if in.Repetitive {
		b.WriteString("Do not repeat yourself. Your previous reply was too close to: \"")
		b.WriteString(strings.TrimSpace(in.RepeatedLine))
		b.WriteString("\". Say something new.\n\n")
	}

	if len(in.SemanticContext) > 0 {
		b.WriteString("Things you remember about ")
		if in.UserName != "" {
			b.WriteString(in.UserName)
		} else {
			b.WriteString("this person")
		}
		b.WriteString(":\n")
		for _, frag := range in.SemanticContext {
			b.WriteString("- ")
			b.WriteString(strings.TrimSpace(frag))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if in.RecentDialogue != "" {
		b.WriteString("Recent conversation:\n")
		b.WriteString(in.RecentDialogue)
		b.WriteString("\n\n")
	} else {
		b.WriteString("User: ")
		b.WriteString(in.Prompt)
		b.WriteString("\n")
	}

	b.WriteString(in.CompanionName)
	b.WriteString(":")

	return b.String()
}
