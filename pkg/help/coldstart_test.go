package help

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestQuickstartYAMLIsValid(t *testing.T) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(QuickstartYAML), &doc); err != nil {
		t.Fatalf("QuickstartYAML is not valid YAML: %v", err)
	}
	for _, key := range []string{"output", "commands", "config_file_example", "failure_modes"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing top-level key %q", key)
		}
	}
}
