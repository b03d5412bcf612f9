package prompt

import "fmt"

// GetSystemPrompt returns the system prompt for text summarization.
func GetSystemPrompt() string {
	return `You are a concise technical editor. Summarize the user's text in at most five sentences, keeping the register of the original. Do not add commentary, headings, or opinions. Reply with the summary only.`
}

// GetUserPrompt wraps the text to summarize.
func GetUserPrompt(text string) string {
	return fmt.Sprintf("Summarize the following text:\n\n%s", text)
}
