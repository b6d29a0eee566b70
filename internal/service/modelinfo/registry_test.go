package modelinfo

import "testing"

func TestRegistryLookup(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	tests := []struct {
		model    string
		wantHit  bool
		wantName string
	}{
		{"llama3", true, "Llama 3"},
		{"llama3:8b", true, "Llama 3"},
		{"mistral:latest", true, "Mistral"},
		{"codellama:13b-instruct", true, "Code Llama"},
		{"some-custom-finetune", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			meta, ok := registry.Lookup(tt.model)
			if ok != tt.wantHit {
				t.Fatalf("Lookup(%s) hit = %v, want %v", tt.model, ok, tt.wantHit)
			}
			if ok && meta.DisplayName != tt.wantName {
				t.Errorf("display name = %q, want %q", meta.DisplayName, tt.wantName)
			}
		})
	}
}

func TestRegistryDefaultsPresent(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}

	meta, ok := registry.Lookup("llama3:70b")
	if !ok {
		t.Fatal("llama3 family missing from registry")
	}
	if _, ok := meta.DefaultParameters["temperature"]; !ok {
		t.Error("llama3 defaults missing temperature")
	}
}
