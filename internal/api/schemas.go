package api

// Schema is a JSON Schema a response body must satisfy before it is decoded.
type Schema struct {
	// Name identifies the schema in the compiled-schema cache.
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

func intProp() map[string]any    { return map[string]any{"type": "integer"} }
func stringProp() map[string]any { return map[string]any{"type": "string"} }

func dimensionObject(prop func() map[string]any) map[string]any {
	keys := []string{
		"linguistic", "logical_mathematical", "spatial", "musical",
		"bodily_kinesthetic", "naturalistic", "interpersonal", "intrapersonal",
	}
	props := make(map[string]any, len(keys))
	required := make([]any, len(keys))
	for i, k := range keys {
		props[k] = prop()
		required[i] = k
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

var userDefinition = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":        intProp(),
		"full_name": stringProp(),
		"age":       intProp(),
		"gender":    stringProp(),
		"email":     stringProp(),
	},
	"required": []any{"id", "full_name", "email"},
}

var registerResponseSchema = &Schema{
	Name: "register-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":        intProp(),
			"full_name": stringProp(),
			"age":       intProp(),
			"gender":    stringProp(),
			"email":     stringProp(),
			"message":   stringProp(),
		},
		"required": []any{"id"},
	},
}

var loginResponseSchema = &Schema{
	Name: "login-response",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"token":   map[string]any{"type": "string", "minLength": 1},
			"user":    userDefinition,
			"message": stringProp(),
		},
		"required": []any{"token"},
	},
}

var profileSchema = &Schema{
	Name: "profile",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"user": userDefinition,
			"intelligence_test": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"test_date":     stringProp(),
					"intelligences": dimensionObject(intProp),
				},
				"required": []any{"test_date", "intelligences"},
			},
			"area_suggestions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"area": stringProp(),
						"sample_professions": map[string]any{
							"type":  "array",
							"items": stringProp(),
						},
						"probability": map[string]any{"type": []any{"string", "number"}},
					},
					"required": []any{"area"},
				},
			},
		},
		"required": []any{"user", "intelligence_test", "area_suggestions"},
	},
}

var testResultSchema = &Schema{
	Name: "test-result",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"intelligences": dimensionObject(intProp),
			"descriptions":  dimensionObject(stringProp),
		},
		"required": []any{"intelligences"},
	},
}
