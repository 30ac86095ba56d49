package content

// deckSchemaName identifies the compiled deck schema resource.
const deckSchemaName = "deck"

// DeckSchema is the JSON schema every deck file must satisfy before the
// semantic checks in Validate run.
var DeckSchema = map[string]any{
	"type":     "object",
	"required": []any{"format", "id", "questions"},
	"properties": map[string]any{
		"format": map[string]any{
			"type":        "string",
			"description": "Deck format version as a semver string, e.g. v1.0.0",
		},
		"id": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"title": map[string]any{
			"type": "string",
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []any{"id", "content", "options", "correct_option_id"},
				"properties": map[string]any{
					"id":      map[string]any{"type": "string", "minLength": 1},
					"content": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items": map[string]any{
							"type":     "object",
							"required": []any{"id", "text"},
							"properties": map[string]any{
								"id":   map[string]any{"type": "string", "minLength": 1},
								"text": map[string]any{"type": "string"},
							},
						},
					},
					"correct_option_id": map[string]any{"type": "string", "minLength": 1},
					"tags": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"level": map[string]any{"type": "string"},
							"skills": map[string]any{
								"type":  "array",
								"items": map[string]any{"type": "string"},
							},
						},
					},
					"explanation": map[string]any{"type": "string"},
				},
			},
		},
	},
}
