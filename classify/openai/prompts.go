package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/radiolex/lexicon"
)

const classificationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "category": {
      "type": "string",
      "enum": [%s]
    }
  },
  "required": ["category"],
  "additionalProperties": false
}`

const classificationPromptTemplate = `Classify the intercepted radio message given by the user and return the result as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Categories and the terms that typically mark them:
%s

Rules:
- The category field must be exactly one of: %s.
- Messages are informal Russian radio traffic and may be fragmentary or misspelled.
- Choose the category describing the main subject of the message.
- If no category clearly applies, answer "%s".

Example:
Input: "Сокол, я Береза, координаты цели квадрат сорок пять"
Output:
{"category":"coordinates"}`

// buildSystemPrompt creates the system prompt with the vocabulary's categories embedded.
func buildSystemPrompt(vocab *lexicon.Vocabulary) string {
	names := vocab.CategoryNames()
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	var markers strings.Builder
	for _, cat := range vocab.Categories() {
		fmt.Fprintf(&markers, "- %s: %s\n", cat.Name, strings.Join(cat.Markers, ", "))
	}

	return fmt.Sprintf(classificationPromptTemplate,
		fmt.Sprintf(classificationResponseSchema, strings.Join(quoted, ", ")),
		strings.TrimRight(markers.String(), "\n"),
		strings.Join(names, ", "),
		vocab.DefaultCategory())
}
