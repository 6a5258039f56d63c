package integrations

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/kickstart-labs/kickstart/internal/fileops"
	"github.com/kickstart-labs/kickstart/internal/gitignore"
	"github.com/kickstart-labs/kickstart/internal/mainfile"
	"github.com/kickstart-labs/kickstart/internal/manifest"
	"github.com/kickstart-labs/kickstart/internal/scaffold"
	"github.com/kickstart-labs/kickstart/internal/tsconfig"
	"github.com/kickstart-labs/kickstart/internal/viteconfig"
)

// Project files touched by every run, relative to the project root.
const (
	manifestFile  = "package.json"
	tsconfigFile  = "tsconfig.app.json"
	mainFile      = "src/main.ts"
	viteFile      = "vite.config.ts"
	gitignoreFile = ".gitignore"
	htmlFile      = "index.html"
)

// resourceRoot is the resource directory for web-vue tools.
const resourceRoot = "web"

// Options tunes ApplyTools.
type Options struct {
	// Logger receives per-tool progress at debug level. Nil discards.
	Logger *log.Logger
	// VerifySyntax parses the rendered vite config and main.ts before
	// saving and reports problems as warnings.
	VerifySyntax bool
	// Separator is the comment above sections added to .gitignore.
	Separator string
	// PackageManager is used in generated scripts. Defaults to pnpm.
	PackageManager string
	// ResourceDir overrides the embedded resources with a directory on disk
	// laid out the same way (web/store, web/App.vue, ...).
	ResourceDir string
}

// Result lists what a run changed, as slash-separated paths relative to the
// project root.
type Result struct {
	Updated  []string
	Created  []string
	Warnings []string
}

// run is the state shared by tool handlers during one ApplyTools call.
type run struct {
	ctx    context.Context
	dir    string
	opts   Options
	logger *log.Logger
	res    fs.FS
	result *Result

	pkg  *manifest.Editor
	ts   *tsconfig.Editor
	main *mainfile.Editor
	vite *viteconfig.Editor
	ign  *gitignore.Editor
}

type handler func(r *run) error

// handlers is the tool dispatch table.
var handlers = map[ToolName]handler{
	EslintPrettier: applyEslintPrettier,
	DevTools:       applyDevTools,
	Tailwind:       applyTailwind,
	Axios:          applyAxios,
	Pinia:          applyPinia,
	VueRouter:      applyVueRouter,
	ViteProxy:      applyViteProxy,
	Env:            applyEnv,
	Scss:           applyScss,
	AntDesignVue:   applyAntDesignVue,
}

// ApplyTools configures the selected tools in the web-vue project at
// targetDir. projectName must already be a valid package name.
//
// The five config files are loaded up front and saved once at the end, in
// the order main.ts, vite.config.ts, package.json, tsconfig.app.json,
// .gitignore. Resource copies happen while handlers run. A failure leaves
// earlier writes in place.
func ApplyTools(ctx context.Context, tools []ToolName, targetDir, projectName string, opts Options) (*Result, error) {
	for _, tool := range tools {
		if _, ok := handlers[tool]; !ok {
			return nil, fmt.Errorf("unknown tool %q", tool)
		}
	}

	r := &run{
		ctx:    ctx,
		dir:    targetDir,
		opts:   opts,
		logger: opts.Logger,
		res:    scaffold.Resources(),
		result: &Result{},
		pkg:    manifest.New(filepath.Join(targetDir, manifestFile)),
		ts:     tsconfig.New(filepath.Join(targetDir, tsconfigFile)),
		main:   mainfile.New(filepath.Join(targetDir, filepath.FromSlash(mainFile))),
		vite:   viteconfig.New(filepath.Join(targetDir, viteFile)),
		ign:    gitignore.New(filepath.Join(targetDir, gitignoreFile), gitignore.WithSeparator(opts.Separator)),
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	if r.opts.PackageManager == "" {
		r.opts.PackageManager = "pnpm"
	}

	if err := r.load(); err != nil {
		return nil, err
	}

	if fileops.PathExists(filepath.Join(targetDir, htmlFile)) {
		if err := fileops.UpdateHTMLTitle(filepath.Join(targetDir, htmlFile), projectName); err != nil {
			return nil, err
		}
		r.updated(htmlFile)
	}
	r.pkg.SetField("name", projectName)

	// Path alias used by every resource.
	r.vite.
		AddImport("import path from 'path';").
		AddAlias("@", "path.resolve(__dirname, './src')")
	r.ts.AddPaths("@/*", []string{"src/*"}).SetBaseURL(".")

	for _, tool := range tools {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.logger.Debug("configuring tool", "tool", tool)
		if err := handlers[tool](r); err != nil {
			return nil, fmt.Errorf("configuring %s: %w", tool, err)
		}
	}

	if opts.VerifySyntax {
		r.verify()
	}

	if err := r.save(); err != nil {
		return nil, err
	}

	r.result.Warnings = append(r.result.Warnings, r.pkg.Warnings()...)
	for _, w := range r.result.Warnings {
		r.logger.Warn(w)
	}
	return r.result, nil
}

func (r *run) load() error {
	steps := []struct {
		name string
		load func() error
	}{
		{gitignoreFile, r.ign.Load},
		{tsconfigFile, r.ts.Load},
		{mainFile, r.main.Init},
		{manifestFile, r.pkg.Load},
		{viteFile, r.vite.Load},
	}
	for _, s := range steps {
		if err := s.load(); err != nil {
			return fmt.Errorf("loading %s: %w", s.name, err)
		}
	}
	return nil
}

func (r *run) verify() {
	if err := r.vite.Verify(r.ctx); err != nil {
		r.warn("%v", err)
	}
	content, err := r.main.Content()
	if err != nil {
		return
	}
	if err := viteconfig.CheckSyntax(r.ctx, []byte(content)); err != nil {
		r.warn("%s: %v", mainFile, err)
	}
}

func (r *run) save() error {
	steps := []struct {
		name string
		save func() error
	}{
		{mainFile, r.main.Save},
		{viteFile, r.vite.Save},
		{manifestFile, r.pkg.Save},
		{tsconfigFile, r.ts.Save},
		{gitignoreFile, r.ign.Save},
	}
	for _, s := range steps {
		if err := s.save(); err != nil {
			return err
		}
		r.updated(s.name)
	}
	return nil
}

func (r *run) updated(rel string) {
	r.result.Updated = append(r.result.Updated, rel)
}

func (r *run) created(rel string) {
	r.logger.Debug("wrote", "path", rel)
	r.result.Created = append(r.result.Created, rel)
}

func (r *run) warn(format string, args ...any) {
	r.result.Warnings = append(r.result.Warnings, fmt.Sprintf(format, args...))
}

func (r *run) path(rel string) string {
	return filepath.Join(r.dir, filepath.FromSlash(rel))
}

func (r *run) requirements(tool ToolName) error {
	req, err := Requirements(tool)
	if err != nil {
		return err
	}
	r.pkg.AddBothDependencies(req)
	return nil
}

// copyResourceDir copies the resource directory name into destParent
// (relative to the project) as newName.
func (r *run) copyResourceDir(name, destParent, newName string) error {
	dst := r.path(destParent)
	if r.opts.ResourceDir != "" {
		src := filepath.Join(r.opts.ResourceDir, resourceRoot, name)
		var err error
		if newName == filepath.Base(src) {
			err = fileops.CopyDirWithSelf(src, dst)
		} else {
			err = fileops.CopyDirWithRename(src, dst, newName)
		}
		if err != nil {
			return err
		}
	} else if err := fileops.CopyFS(r.res, resourceRoot+"/"+name, filepath.Join(dst, newName)); err != nil {
		return err
	}
	r.created(destParent + "/" + newName)
	return nil
}

// copyResourceContents copies the files inside resource directory name into
// the project root.
func (r *run) copyResourceContents(name string) error {
	var (
		entries []fs.DirEntry
		err     error
	)
	if r.opts.ResourceDir != "" {
		src := filepath.Join(r.opts.ResourceDir, resourceRoot, name)
		if entries, err = os.ReadDir(src); err != nil {
			return fmt.Errorf("reading resource %s: %w", name, err)
		}
		err = fileops.CopyDir(src, r.dir)
	} else {
		src := resourceRoot + "/" + name
		if entries, err = fs.ReadDir(r.res, src); err != nil {
			return fmt.Errorf("reading resource %s: %w", name, err)
		}
		err = fileops.CopyFS(r.res, src, r.dir)
	}
	if err != nil {
		return err
	}
	for _, e := range entries {
		r.created(e.Name())
	}
	return nil
}

// copyResourceFile copies one resource file to rel inside the project.
func (r *run) copyResourceFile(name, rel string) error {
	if r.opts.ResourceDir != "" {
		if err := fileops.CopyFileToProject(filepath.Join(r.opts.ResourceDir, resourceRoot, name), r.path(rel)); err != nil {
			return err
		}
	} else {
		data, err := fs.ReadFile(r.res, resourceRoot+"/"+name)
		if err != nil {
			return fmt.Errorf("reading resource %s: %w", name, err)
		}
		if err := fileops.WriteFile(r.path(rel), data, 0644); err != nil {
			return err
		}
	}
	r.created(rel)
	return nil
}

func applyEslintPrettier(r *run) error {
	if err := r.requirements(EslintPrettier); err != nil {
		return err
	}
	pm := r.opts.PackageManager
	r.pkg.AddScript(map[string]string{
		"lint":     "eslint --ext .ts .",
		"format":   "prettier --write .",
		"lint:fix": `eslint "src/**/*.{js,ts}" --fix`,
		"code:fix": pm + " run lint:fix && " + pm + " run format",
	})
	return r.copyResourceContents("code-format")
}

func applyDevTools(r *run) error {
	if err := r.requirements(DevTools); err != nil {
		return err
	}
	r.vite.
		AddImport(`import vueDevTools from "vite-plugin-vue-devtools";`).
		AddPlugin("vueDevTools()")
	return nil
}

func applyTailwind(r *run) error {
	if err := r.requirements(Tailwind); err != nil {
		return err
	}
	const entry = "src/assets/tailwind.css"
	if err := fileops.WriteTextFile(r.path(entry), "@import \"tailwindcss\";\n"); err != nil {
		return err
	}
	r.created(entry)
	r.vite.
		AddImport(`import tailwindcss from "@tailwindcss/vite";`).
		AddPlugin("tailwindcss()")
	r.main.AddImports("import './assets/tailwind.css';")
	return nil
}

func applyAxios(r *run) error {
	if err := r.requirements(Axios); err != nil {
		return err
	}
	return r.copyResourceDir("request-client", "src", "request-client")
}

func applyPinia(r *run) error {
	if err := r.requirements(Pinia); err != nil {
		return err
	}
	if err := r.copyResourceDir("store", "src", "store"); err != nil {
		return err
	}
	r.main.AddImports(`import { setupStore } from "@/store";`)
	r.main.AddSetupCodes([]string{"// Configure Pinia state management", "setupStore(app);"}, false)
	return nil
}

var (
	relativeImportRe = regexp.MustCompile(`from (['"])\./`)
	relativeSrcRe    = regexp.MustCompile(`src=(['"])\./(assets|components)/`)
)

// toAliasPaths rewrites "./" imports and asset references to the "@/"
// alias so the file still resolves after moving to src/views.
func toAliasPaths(content string) string {
	content = relativeImportRe.ReplaceAllString(content, "from $1@/")
	return relativeSrcRe.ReplaceAllString(content, "src=$1@/$2/")
}

func applyVueRouter(r *run) error {
	if err := r.requirements(VueRouter); err != nil {
		return err
	}
	if err := r.copyResourceDir("vue-router", "src", "router"); err != nil {
		return err
	}

	r.main.AddImports(
		`import { router } from "@/router";`,
		`import { setupRouterGuard } from "./router/guard";`,
	)
	r.main.AddSetupCodes([]string{"// router", "app.use(router);"}, false)
	r.main.AddSetupCodes([]string{"// router guard", "setupRouterGuard(router);"}, false)

	// The template's root component becomes the home view.
	app, err := fileops.ReadTextFile(r.path("src/App.vue"))
	if err != nil && !errors.Is(err, fileops.ErrNotFound) {
		return err
	}
	if err == nil {
		const view = "src/views/index.vue"
		if err := fileops.WriteTextFile(r.path(view), toAliasPaths(app)); err != nil {
			return err
		}
		r.created(view)
	}

	return r.copyResourceFile("App.vue", "src/App.vue")
}

func applyViteProxy(r *run) error {
	r.vite.AddProxy(viteconfig.Proxy{
		Prefix:       "/api",
		Target:       "http://localhost:3000",
		ChangeOrigin: true,
		Rewrite:      `path => path.replace(/^\/api/, '')`,
	})
	return nil
}

// envDefaults are written to .env unless already set there.
var envDefaults = map[string]string{
	"VITE_API_BASE_URL": "http://your-ip:your-port",
}

func applyEnv(r *run) error {
	if err := r.copyResourceFile("vite-env.d.ts", "src/vite-env.d.ts"); err != nil {
		return err
	}

	envPath := r.path(".env")
	env := map[string]string{}
	if fileops.PathExists(envPath) {
		existing, err := godotenv.Read(envPath)
		if err != nil {
			return fmt.Errorf("reading .env: %w", err)
		}
		env = existing
	}
	for k, v := range envDefaults {
		if _, ok := env[k]; !ok {
			env[k] = v
		}
	}
	content, err := godotenv.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding .env: %w", err)
	}
	if err := fileops.WriteTextFile(envPath, content+"\n"); err != nil {
		return err
	}
	r.created(".env")

	return r.copyResourceFile("ENVREADME.md", "ENVREADME.md")
}

func applyScss(r *run) error {
	return r.requirements(Scss)
}

func applyAntDesignVue(r *run) error {
	r.ts.AppendTypes("ant-design-vue/typings/global.d.ts")
	r.ign.AppendLines("# auto components types", "components.d.ts")
	if err := r.requirements(AntDesignVue); err != nil {
		return err
	}
	r.vite.
		AddImport("import Components from 'unplugin-vue-components/vite';").
		AddImport("import { AntDesignVueResolver } from 'unplugin-vue-components/resolvers';").
		AddPlugin("Components({resolvers: [AntDesignVueResolver({ importStyle: false })]})")
	return nil
}
