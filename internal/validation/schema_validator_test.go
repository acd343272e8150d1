package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validCatalogYAML = `
seeds:
  - {id: green, rarity: 1, outcomes: [flower_red]}
varieties:
  - {id: flower_red, type: flower, seed: green, rarity: 1, stage_hours: [1, 2, 3], water_hours: 12}
residents:
  - id: rabbit
    area: garden
    liked_gifts: [flower_red]
    schedule: {morning: garden, afternoon: garden, evening: home, night: home}
quest_templates:
  rabbit:
    - {type: grow, target: flower_red, count: 1, reward: {seeds: {green: 2}}, text: Grow a flower!}
recipes:
  - id: bouquet
    ingredients:
      - {tag: flower, count: 2, distance: 100, same_variety: true}
`

func TestSchemaValidator_ValidateYAML_Catalog(t *testing.T) {
	validator := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid catalog",
			data: validCatalogYAML,
		},
		{
			name:      "misspelled top level key",
			data:      strings.Replace(validCatalogYAML, "recipes:", "recipies:", 1),
			wantError: true,
			errorMsg:  "additionalProperties",
		},
		{
			name:      "misspelled variety field",
			data:      strings.Replace(validCatalogYAML, "water_hours", "water_hour", 1),
			wantError: true,
			errorMsg:  "/varieties/0",
		},
		{
			name:      "wrong stage count",
			data:      strings.Replace(validCatalogYAML, "[1, 2, 3]", "[1, 2]", 1),
			wantError: true,
			errorMsg:  "minItems",
		},
		{
			name:      "unknown quest type",
			data:      strings.Replace(validCatalogYAML, "type: grow", "type: dance", 1),
			wantError: true,
			errorMsg:  "/quest_templates/rabbit/0/type",
		},
		{
			name:      "rarity out of range",
			data:      strings.Replace(validCatalogYAML, "rarity: 1, outcomes", "rarity: 9, outcomes", 1),
			wantError: true,
			errorMsg:  "maximum",
		},
		{
			name:      "missing seeds",
			data:      "varieties: []\n",
			wantError: true,
			errorMsg:  "required",
		},
		{
			name:      "invalid YAML",
			data:      "seeds: [unclosed",
			wantError: true,
			errorMsg:  "parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateYAML([]byte(tt.data), SchemaCatalog)

			if tt.wantError {
				if err == nil {
					t.Errorf("Expected error but got none")
				} else if tt.errorMsg != "" && !strings.Contains(err.Error(), tt.errorMsg) {
					t.Errorf("Expected error to contain %q, got: %v", tt.errorMsg, err)
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSchemaValidator_ValidateBytes(t *testing.T) {
	validator := NewSchemaValidator()

	tests := []struct {
		name      string
		data      string
		wantError bool
	}{
		{
			name: "valid JSON catalog",
			data: `{"seeds":[{"id":"green","rarity":1,"outcomes":["a"]}],"varieties":[{"id":"a","type":"flower","stage_hours":[1,1,1]}]}`,
		},
		{
			name:      "negative water interval",
			data:      `{"seeds":[{"id":"green","rarity":1,"outcomes":["a"]}],"varieties":[{"id":"a","type":"flower","stage_hours":[1,1,1],"water_hours":-1}]}`,
			wantError: true,
		},
		{
			name:      "zero stage duration",
			data:      `{"seeds":[{"id":"green","rarity":1,"outcomes":["a"]}],"varieties":[{"id":"a","type":"flower","stage_hours":[0,1,1]}]}`,
			wantError: true,
		},
		{
			name:      "invalid JSON",
			data:      `{"seeds": }`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateBytes([]byte(tt.data), SchemaCatalog)

			if tt.wantError && err == nil {
				t.Errorf("Expected error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSchemaValidator_ValidateFile(t *testing.T) {
	validator := NewSchemaValidator()
	tmpDir := t.TempDir()

	yamlPath := filepath.Join(tmpDir, "catalog.yaml")
	if err := os.WriteFile(yamlPath, []byte(validCatalogYAML), 0o600); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}
	if err := validator.ValidateFile(yamlPath, SchemaCatalog); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}

	jsonPath := filepath.Join(tmpDir, "catalog.json")
	if err := os.WriteFile(jsonPath, []byte(`{"seeds": "nope"}`), 0o600); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}
	if err := validator.ValidateFile(jsonPath, SchemaCatalog); err == nil {
		t.Error("Expected error for invalid JSON catalog")
	}

	err := validator.ValidateFile(filepath.Join(tmpDir, "missing.yaml"), SchemaCatalog)
	if err == nil || !strings.Contains(err.Error(), "failed to read data file") {
		t.Errorf("Expected 'failed to read data file' error, got: %v", err)
	}
}

func TestSchemaValidator_UnknownSchema(t *testing.T) {
	validator := NewSchemaValidator()

	err := validator.ValidateBytes([]byte(`{}`), "nonexistent.schema.json")
	if err == nil {
		t.Fatal("Expected error for unknown schema")
	}
	if !strings.Contains(err.Error(), "failed to load schema") {
		t.Errorf("Expected 'failed to load schema' error, got: %v", err)
	}
}

func TestSchemaValidator_CachesCompiledSchemas(t *testing.T) {
	v := NewSchemaValidator().(*validator)

	for i := 0; i < 2; i++ {
		if err := v.ValidateYAML([]byte(validCatalogYAML), SchemaCatalog); err != nil {
			t.Fatalf("Validation %d failed: %v", i+1, err)
		}
		if len(v.schemas) != 1 {
			t.Errorf("Expected 1 cached schema, got %d", len(v.schemas))
		}
	}
}
