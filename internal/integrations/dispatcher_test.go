package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kickstart-labs/kickstart/internal/fileops"
	"github.com/kickstart-labs/kickstart/internal/scaffold"
)

// newProject materializes the embedded web-vue template into a temp dir.
func newProject(t *testing.T) string {
	t.Helper()
	tmpl, err := scaffold.Lookup("web-vue")
	if err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(t.TempDir(), "demo")
	if _, err := scaffold.Materialize(context.Background(), tmpl, dir, scaffold.NewData("demo", "pnpm")); err != nil {
		t.Fatalf("Materialize() error: %v", err)
	}
	return dir
}

func apply(t *testing.T, dir string, opts Options, tools ...ToolName) *Result {
	t.Helper()
	result, err := ApplyTools(context.Background(), tools, dir, "my-app", opts)
	if err != nil {
		t.Fatalf("ApplyTools() error: %v", err)
	}
	return result
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q\n--- content ---\n%s", substr, content)
	}
}

func TestApplyToolsBaseline(t *testing.T) {
	dir := newProject(t)
	result := apply(t, dir, Options{VerifySyntax: true})

	wantUpdated := []string{"index.html", "src/main.ts", "vite.config.ts", "package.json", "tsconfig.app.json", ".gitignore"}
	if strings.Join(result.Updated, ",") != strings.Join(wantUpdated, ",") {
		t.Errorf("Updated = %v, want %v", result.Updated, wantUpdated)
	}
	if len(result.Created) != 0 {
		t.Errorf("Created = %v, want none", result.Created)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}

	wantVite := `import { defineConfig } from 'vite'
import vue from '@vitejs/plugin-vue'
import path from 'path';

// https://vite.dev/config/
export default defineConfig({
  plugins: [
    vue()
  ],
  resolve: {
    alias: {
      '@': path.resolve(__dirname, './src')
    }
  }
})
`
	if got := readFile(t, dir, "vite.config.ts"); got != wantVite {
		t.Errorf("vite.config.ts:\n%s\nwant:\n%s", got, wantVite)
	}

	wantMain := `import { createApp } from 'vue'
import './style.css'
import App from './App.vue'

const app = createApp(App);

app.mount('#app')
`
	if got := readFile(t, dir, "src/main.ts"); got != wantMain {
		t.Errorf("src/main.ts:\n%s\nwant:\n%s", got, wantMain)
	}

	var pkg struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(readFile(t, dir, "package.json")), &pkg); err != nil {
		t.Fatal(err)
	}
	if pkg.Name != "my-app" {
		t.Errorf("package name = %q, want my-app", pkg.Name)
	}

	ts := readFile(t, dir, "tsconfig.app.json")
	assertContains(t, ts, `"baseUrl": "."`)
	assertContains(t, ts, "\"@/*\": [\n")
	assertNotContains(t, ts, "/* Linting */")

	assertContains(t, readFile(t, dir, "index.html"), "<title>my-app</title>")
	// Nothing was appended to .gitignore.
	assertNotContains(t, readFile(t, dir, ".gitignore"), "Added by CLI")
}

func TestApplyToolsAll(t *testing.T) {
	dir := newProject(t)
	result := apply(t, dir, Options{VerifySyntax: true, PackageManager: "npm"}, AllTools()...)

	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}

	vite := readFile(t, dir, "vite.config.ts")
	for _, want := range []string{
		`import vueDevTools from "vite-plugin-vue-devtools";`,
		`import tailwindcss from "@tailwindcss/vite";`,
		"import Components from 'unplugin-vue-components/vite';",
		"plugins: [\n    vue(),\n    vueDevTools(),\n    tailwindcss(),\n    Components({resolvers: [AntDesignVueResolver({ importStyle: false })]})\n  ]",
		"'/api': {\n        target: 'http://localhost:3000',\n        changeOrigin: true,\n        rewrite: (path) => path.replace(/^\\/api/, '')\n      }",
	} {
		assertContains(t, vite, want)
	}

	main := readFile(t, dir, "src/main.ts")
	for _, want := range []string{
		"import './assets/tailwind.css';",
		`import { setupStore } from "@/store";`,
		`import { setupRouterGuard } from "./router/guard";`,
		"const app = createApp(App);\n\n// Configure Pinia state management\nsetupStore(app);\n\n// router\napp.use(router);\n\n// router guard\nsetupRouterGuard(router);\n\napp.mount('#app')\n",
	} {
		assertContains(t, main, want)
	}

	pkg := readFile(t, dir, "package.json")
	for _, want := range []string{
		`"code:fix": "npm run lint:fix && npm run format"`,
		`"lint:fix": "eslint \"src/**/*.{js,ts}\" --fix"`,
		`"ant-design-vue": "^4.2.6"`,
		`"sass": "^1.94.0"`,
		`"vite-plugin-vue-devtools": "^7.7.7"`,
	} {
		assertContains(t, pkg, want)
	}

	assertContains(t, readFile(t, dir, "tsconfig.app.json"), `"ant-design-vue/typings/global.d.ts"`)
	assertContains(t, readFile(t, dir, ".gitignore"), "# Added by CLI\n# auto components types\ncomponents.d.ts\n")

	assertContains(t, readFile(t, dir, "src/assets/tailwind.css"), `@import "tailwindcss";`)
	assertContains(t, readFile(t, dir, ".env"), "VITE_API_BASE_URL=")
	assertContains(t, readFile(t, dir, "src/App.vue"), "<RouterView />")
	view := readFile(t, dir, "src/views/index.vue")
	assertContains(t, view, "from '@/components/HelloWorld.vue'")
	assertContains(t, view, `src="@/assets/vue.svg"`)

	for _, rel := range []string{
		"src/store/index.ts",
		"src/router/index.ts",
		"src/router/guard/index.ts",
		"src/request-client/request-client.ts",
		"src/vite-env.d.ts",
		"ENVREADME.md",
		"eslint.config.js",
		".prettierrc.json",
	} {
		if !fileops.PathExists(filepath.Join(dir, filepath.FromSlash(rel))) {
			t.Errorf("missing %s", rel)
		}
	}
}

func TestApplyToolsIdempotentEdits(t *testing.T) {
	dir := newProject(t)
	apply(t, dir, Options{}, DevTools, AntDesignVue)
	first := map[string]string{}
	for _, rel := range []string{"vite.config.ts", "package.json", "tsconfig.app.json", ".gitignore"} {
		first[rel] = readFile(t, dir, rel)
	}

	apply(t, dir, Options{}, DevTools, AntDesignVue)
	for rel, before := range first {
		if after := readFile(t, dir, rel); after != before {
			t.Errorf("%s changed on second run:\n%s\n---\n%s", rel, before, after)
		}
	}
}

func TestApplyToolsEnvKeepsExistingValues(t *testing.T) {
	dir := newProject(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("VITE_API_BASE_URL=https://api.example.com\nPORT=8080\n"), 0644); err != nil {
		t.Fatal(err)
	}
	apply(t, dir, Options{}, Env)

	env := readFile(t, dir, ".env")
	assertContains(t, env, "https://api.example.com")
	assertContains(t, env, "PORT=8080")
	assertNotContains(t, env, "your-ip")
}

func TestApplyToolsCustomSeparator(t *testing.T) {
	dir := newProject(t)
	apply(t, dir, Options{Separator: "kickstart"}, AntDesignVue)
	assertContains(t, readFile(t, dir, ".gitignore"), "# kickstart\n")
}

func TestApplyToolsResourceDir(t *testing.T) {
	res := t.TempDir()
	if err := fileops.CopyFS(scaffold.Resources(), ".", res); err != nil {
		t.Fatal(err)
	}
	marker := "// local override\n"
	if err := os.WriteFile(filepath.Join(res, "web", "store", "index.ts"), []byte(marker), 0644); err != nil {
		t.Fatal(err)
	}

	dir := newProject(t)
	result := apply(t, dir, Options{ResourceDir: res}, Pinia, Axios)

	if got := readFile(t, dir, "src/store/index.ts"); got != marker {
		t.Errorf("store/index.ts = %q, want override", got)
	}
	assertContains(t, strings.Join(result.Created, ","), "src/store")
	assertContains(t, strings.Join(result.Created, ","), "src/request-client")
}

func TestApplyToolsErrors(t *testing.T) {
	t.Run("unknown tool", func(t *testing.T) {
		_, err := ApplyTools(context.Background(), []ToolName{"redux"}, newProject(t), "x", Options{})
		if err == nil || !strings.Contains(err.Error(), "redux") {
			t.Fatalf("err = %v, want unknown tool error", err)
		}
	})

	t.Run("missing package.json", func(t *testing.T) {
		dir := newProject(t)
		if err := os.Remove(filepath.Join(dir, "package.json")); err != nil {
			t.Fatal(err)
		}
		_, err := ApplyTools(context.Background(), nil, dir, "x", Options{})
		if !errors.Is(err, fileops.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		// Nothing saved: main.ts keeps its template form.
		assertContains(t, readFile(t, dir, "src/main.ts"), "createApp(App).mount('#app')")
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := ApplyTools(ctx, []ToolName{Pinia}, newProject(t), "x", Options{})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
	})
}
