package integrations

import "testing"

func TestParseToolName_AllKnown(t *testing.T) {
	for _, want := range AllTools() {
		t.Run(string(want), func(t *testing.T) {
			name, ok := ParseToolName(string(want))
			if !ok {
				t.Fatalf("ParseToolName(%q) returned false, want true", want)
			}
			if name != want {
				t.Fatalf("ParseToolName(%q) = %q, want %q", want, name, want)
			}
		})
	}
}

func TestParseToolName_Invalid(t *testing.T) {
	cases := []string{"unknown", "", "PINIA", "vue router", "eslint"}

	for _, input := range cases {
		t.Run(input, func(t *testing.T) {
			name, ok := ParseToolName(input)
			if ok {
				t.Fatalf("ParseToolName(%q) returned true, want false", input)
			}
			if name != "" {
				t.Fatalf("ParseToolName(%q) = %q, want empty string", input, name)
			}
		})
	}
}

func TestParseToolNames(t *testing.T) {
	got, err := ParseToolNames([]string{" pinia", "", "axios", "pinia"})
	if err != nil {
		t.Fatalf("ParseToolNames() error: %v", err)
	}
	if len(got) != 2 || got[0] != Pinia || got[1] != Axios {
		t.Errorf("ParseToolNames() = %v, want [pinia axios]", got)
	}

	if _, err := ParseToolNames([]string{"pinia", "redux"}); err == nil {
		t.Error("ParseToolNames() should reject unknown tools")
	}
}

func TestEveryToolHasHandlerAndRequirements(t *testing.T) {
	for _, tool := range AllTools() {
		if _, ok := handlers[tool]; !ok {
			t.Errorf("no handler for %s", tool)
		}
		if _, err := Requirements(tool); err != nil {
			t.Errorf("Requirements(%s) error: %v", tool, err)
		}
	}
	if len(handlers) != len(AllTools()) {
		t.Errorf("handlers has %d entries, AllTools has %d", len(handlers), len(AllTools()))
	}
}

func TestRequirements(t *testing.T) {
	req, err := Requirements(Axios)
	if err != nil {
		t.Fatal(err)
	}
	if req.Dependencies["axios"] != "^1.10.0" || req.Dependencies["defu"] != "^6.1.4" {
		t.Errorf("axios dependencies = %v", req.Dependencies)
	}
	if req.DevDependencies["@types/qs"] != "^6.14.0" {
		t.Errorf("axios devDependencies = %v", req.DevDependencies)
	}

	proxy, err := Requirements(ViteProxy)
	if err != nil {
		t.Fatal(err)
	}
	if len(proxy.Dependencies)+len(proxy.DevDependencies) != 0 {
		t.Errorf("vite-proxy should add no packages, got %+v", proxy)
	}
}
