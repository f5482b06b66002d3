package openai

import (
	"fmt"
	"strings"
	"time"

	"github.com/poiesic/keywordx/ai"
)

const recognitionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entities": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "type": {
            "type": "string"
          },
          "text": {
            "type": "string"
          },
          "value": {
            "type": "string"
          }
        },
        "required": ["type", "text"],
        "additionalProperties": false
      }
    }
  },
  "required": ["entities"],
  "additionalProperties": false
}`

const recognitionPromptTemplate = `Identify named entities in the given text and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Type field must match exactly one of the listed values: %s.
- DATE is a calendar date or relative day ("tomorrow", "next Friday", "March 15th").
- TIME is a time of day ("5pm", "noon", "17:30").
- MONEY is an amount of money including its currency ("$1500", "20 euros").
- CARDINAL is a number that is not part of a date, time or money amount.
- GPE is a city, state or country. LOC is any other location (mountains, rivers, regions).
- Text must be copied exactly as it appears in the input, preserving capitalization.
- List entities in the order they appear in the input.
- For DATE entities set value to the ISO-8601 date the expression refers to, taking today as %s.
- For TIME entities set value to the ISO-8601 time ("T17:00:00"). Omit value for other types.
- Include only entities that are explicitly present in the text. Do not hallucinate.
- If no entities can be identified, return "entities": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "I want to visit Paris next Friday with a budget of $1500."
Output:
{
  "entities": [
    {"type":"GPE","text":"Paris"},
    {"type":"DATE","text":"next Friday","value":"2025-06-13"},
    {"type":"MONEY","text":"$1500"}
  ]
}

Example (informal, no punctuation):
Input: "meet me at 5pm tmrw"
Output:
{
  "entities": [
    {"type":"TIME","text":"5pm","value":"T17:00:00"},
    {"type":"DATE","text":"tmrw","value":"2025-06-07"}
  ]
}`

// buildSystemPrompt creates the system prompt with entity types and the
// reference date embedded.
func buildSystemPrompt(now time.Time) string {
	recognizable := ai.RecognizableEntityTypes()
	types := make([]string, len(recognizable))
	for i, t := range recognizable {
		types[i] = string(t)
	}
	return fmt.Sprintf(recognitionPromptTemplate,
		recognitionResponseSchema,
		strings.Join(types, ", "),
		now.Format("2006-01-02 (Monday)"))
}
