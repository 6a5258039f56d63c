package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kickstart-labs/kickstart/internal/config"
	"github.com/kickstart-labs/kickstart/internal/fileops"
	"github.com/kickstart-labs/kickstart/internal/integrations"
	"github.com/kickstart-labs/kickstart/internal/pkgmanager"
	"github.com/kickstart-labs/kickstart/internal/prompt"
	"github.com/kickstart-labs/kickstart/internal/scaffold"
	"github.com/kickstart-labs/kickstart/internal/ui"
)

// defaultProjectName is offered when no name argument is given.
const defaultProjectName = "vite-project"

var (
	createTemplate     string
	createTools        string
	createForce        bool
	createInstall      bool
	createPM           string
	createNoGit        bool
	createYes          bool
	createResourcesDir string
)

func init() {
	addProjectFlags(createCmd)
	createCmd.Flags().BoolVar(&createForce, "force", false, "Empty the target directory without asking")
	rootCmd.AddCommand(createCmd)
}

// addProjectFlags registers the flags shared by create and init.
func addProjectFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&createTemplate, "template", "t", "", "Template name or github:owner/repo[#branch]")
	f.StringVar(&createTools, "tools", "", "Comma-separated tools to configure (see 'ls')")
	f.BoolVar(&createInstall, "install", false, "Install dependencies after generating")
	f.StringVar(&createPM, "pm", "", "Package manager: pnpm, yarn or npm")
	f.BoolVar(&createNoGit, "no-git", false, "Skip git initialization")
	f.BoolVarP(&createYes, "yes", "y", false, "Accept defaults instead of prompting")
	f.StringVar(&createResourcesDir, "resources-dir", "", "Directory overriding the built-in tool resources")
	_ = f.MarkHidden("resources-dir")
}

var createCmd = &cobra.Command{
	Use:   "create [project-name]",
	Short: "Create a new project from a template",
	Long: `Create a new project from a template and configure the selected tools.

Examples:
  kickstart create my-app
  kickstart create my-app --template web-vue --tools pinia,vue-router,tailwindcss
  kickstart create api --template github:microsoft/TypeScript-Node-Starter --no-git`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd.Context(), cmd, args, createForce)
	},
}

// createPlan is everything decided before any file is written.
type createPlan struct {
	name      string
	targetDir string
	template  scaffold.Template
	tools     []integrations.ToolName
	overwrite bool
}

func runCreate(ctx context.Context, cmd *cobra.Command, args []string, force bool) error {
	out := cmd.OutOrStdout()
	settings := config.Current()
	p := prompt.New(cmd.InOrStdin(), out)

	plan, err := planCreate(p, args, settings, force)
	if err != nil {
		return err
	}

	pm := settings.PackageManager
	if cmd.Flags().Changed("pm") {
		pm = createPM
	}
	if err := pkgmanager.Validate(pm); err != nil {
		return err
	}

	fmt.Fprintln(out, ui.TitleStyle.Render(fmt.Sprintf("Creating %s from %s", plan.name, plan.template.Name)))

	if plan.overwrite {
		if err := fileops.EmptyDir(plan.targetDir); err != nil {
			return err
		}
	}

	logger.Debug("materializing template", "template", plan.template.Name, "source", plan.template.Source, "dir", plan.targetDir)
	result, err := scaffold.Materialize(ctx, plan.template, plan.targetDir, scaffold.NewData(plan.name, pm))
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		logger.Warn(w)
	}
	fmt.Fprintln(out, ui.SuccessStyle.Render(fmt.Sprintf("Template ready (%d files)", len(result.Files))))

	if !plan.template.IsRemote() {
		applied, err := integrations.ApplyTools(ctx, plan.tools, plan.targetDir, fileops.ToValidPackageName(plan.name), integrations.Options{
			Logger:         logger,
			VerifySyntax:   settings.VerifySyntax,
			Separator:      settings.GitignoreSeparator,
			PackageManager: pm,
			ResourceDir:    createResourcesDir,
		})
		if err != nil {
			return err
		}
		if len(plan.tools) > 0 {
			names := make([]string, len(plan.tools))
			for i, t := range plan.tools {
				names[i] = string(t)
			}
			fmt.Fprintln(out, ui.SuccessStyle.Render("Configured "+strings.Join(names, ", ")))
		}
		logger.Debug("config files saved", "updated", applied.Updated, "created", applied.Created)
	}

	install, pm, err := decideInstall(cmd, p, settings, pm)
	if err != nil {
		return err
	}
	if install && !cmd.Flags().Changed("pm") && !pkgmanager.Available(pm) {
		detected := pkgmanager.Detect()
		logger.Warn("package manager not found, falling back", "pm", pm, "using", detected)
		pm = detected
	}
	if install {
		fmt.Fprintf(out, "Installing dependencies with %s...\n", pm)
		if err := pkgmanager.Install(ctx, plan.targetDir, pm, out, cmd.ErrOrStderr()); err != nil {
			return err
		}
	}

	if !createNoGit && settings.GitInit {
		// A failed git init does not fail the project.
		if err := pkgmanager.InitGit(ctx, plan.targetDir); err != nil {
			logger.Warn("git init skipped", "err", err)
		}
	}

	printNextSteps(out, plan, pm, install)
	return nil
}

func planCreate(p *prompt.Prompter, args []string, settings config.Settings, force bool) (*createPlan, error) {
	plan := &createPlan{}

	var name string
	switch {
	case len(args) == 1:
		name = args[0]
	case createYes:
		name = defaultProjectName
	default:
		n, err := p.ProjectName(defaultProjectName)
		if err != nil {
			return nil, err
		}
		name = n
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("invalid project name %q", name)
	}

	targetDir, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("resolving target directory: %w", err)
	}
	plan.targetDir = targetDir
	// Name the project after its directory, so "." takes the cwd's name.
	plan.name = filepath.Base(targetDir)
	if fileops.ToValidPackageName(plan.name) == "" {
		return nil, fmt.Errorf("invalid project name %q", name)
	}

	tmpl, err := chooseTemplate(p, settings)
	if err != nil {
		return nil, err
	}
	plan.template = tmpl

	tools, err := chooseTools(p, tmpl)
	if err != nil {
		return nil, err
	}
	plan.tools = tools

	empty, err := isEmptyDir(targetDir)
	if err != nil {
		return nil, err
	}
	if !empty {
		switch {
		case force:
			// overwrite without asking
		case createYes:
			return nil, fmt.Errorf("target directory %s is not empty; use --force to overwrite", targetDir)
		default:
			ok, err := p.Confirm(fmt.Sprintf("Directory %s is not empty. Remove existing files and continue?", targetDir), false)
			if err != nil {
				return nil, err
			}
			if !ok {
				return nil, prompt.ErrCancelled
			}
		}
		plan.overwrite = true
	}

	return plan, nil
}

func chooseTemplate(p *prompt.Prompter, settings config.Settings) (scaffold.Template, error) {
	if createTemplate != "" {
		return scaffold.Lookup(createTemplate)
	}
	if createYes {
		return scaffold.Lookup(settings.Template)
	}

	templates, err := scaffold.Templates()
	if err != nil {
		return scaffold.Template{}, err
	}
	labels := make([]string, len(templates))
	for i, t := range templates {
		labels[i] = fmt.Sprintf("%s - %s", t.Name, t.DisplayName)
	}
	idx, err := p.Select("Select a template:", labels)
	if err != nil {
		return scaffold.Template{}, err
	}
	return templates[idx], nil
}

func chooseTools(p *prompt.Prompter, tmpl scaffold.Template) ([]integrations.ToolName, error) {
	var values []string
	switch {
	case createTools != "":
		values = strings.Split(createTools, ",")
	case createYes || len(tmpl.Tools) == 0:
		return nil, nil
	default:
		labels := make([]string, len(tmpl.Tools))
		for i, t := range tmpl.Tools {
			labels[i] = fmt.Sprintf("%s - %s", t.Value, t.Label)
		}
		picked, err := p.MultiSelect("Select tools to configure:", labels)
		if err != nil {
			return nil, err
		}
		for _, i := range picked {
			values = append(values, tmpl.Tools[i].Value)
		}
	}

	tools, err := integrations.ParseToolNames(values)
	if err != nil {
		return nil, err
	}
	offered := tmpl.ToolValues()
	for _, t := range tools {
		if !slices.Contains(offered, string(t)) {
			return nil, fmt.Errorf("template %s does not offer tool %q", tmpl.Name, t)
		}
	}
	return tools, nil
}

func decideInstall(cmd *cobra.Command, p *prompt.Prompter, settings config.Settings, pm string) (bool, string, error) {
	if cmd.Flags().Changed("install") {
		return createInstall, pm, nil
	}
	if createYes {
		return settings.Install, pm, nil
	}

	ok, err := p.Confirm("Install dependencies now?", settings.Install)
	if err != nil || !ok {
		return false, pm, err
	}
	if cmd.Flags().Changed("pm") {
		return true, pm, nil
	}

	// Offer the configured manager first.
	choices := []string{pm}
	for _, s := range pkgmanager.Supported() {
		if s != pm {
			choices = append(choices, s)
		}
	}
	idx, err := p.Select("Select a package manager:", choices)
	if err != nil {
		return false, pm, err
	}
	return true, choices[idx], nil
}

func printNextSteps(out io.Writer, plan *createPlan, pm string, installed bool) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.SuccessStyle.Render(fmt.Sprintf("Project %s created.", plan.name)))
	fmt.Fprintln(out, ui.MutedStyle.Render("Next steps:"))
	if cwd, err := os.Getwd(); err == nil {
		rel, err := filepath.Rel(cwd, plan.targetDir)
		switch {
		case err == nil && rel == ".":
		case err == nil && !strings.HasPrefix(rel, ".."):
			fmt.Fprintf(out, "  cd %s\n", rel)
		default:
			fmt.Fprintf(out, "  cd %s\n", plan.targetDir)
		}
	}
	if !installed {
		fmt.Fprintf(out, "  %s install\n", pm)
	}
	fmt.Fprintf(out, "  %s run dev\n", pm)
}

// isEmptyDir reports whether dir is missing or has no entries.
func isEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("reading %s: %w", dir, err)
	}
	return len(entries) == 0, nil
}
