package controllers

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/bumpchain/internal/domain/commands"
	"github.com/rios0rios0/bumpchain/internal/domain/entities"
)

const (
	OutputText = "text"
	OutputYAML = "yaml"

	yamlIndent = 2
)

type versionChangeView struct {
	File       string `yaml:"file"`
	Source     string `yaml:"source"`
	Property   string `yaml:"property"`
	OldVersion string `yaml:"old_version,omitempty"`
	NewVersion string `yaml:"new_version,omitempty"`
}

type referenceChangeView struct {
	Name       string `yaml:"name"`
	Package    bool   `yaml:"package"`
	Kind       string `yaml:"kind"`
	OldVersion string `yaml:"old_version,omitempty"`
	NewVersion string `yaml:"new_version,omitempty"`
}

type projectView struct {
	Name             string                `yaml:"name"`
	Version          string                `yaml:"version"`
	Status           string                `yaml:"status"`
	Excluded         bool                  `yaml:"excluded,omitempty"`
	ChangedFiles     int                   `yaml:"changed_files"`
	ChangedLines     int                   `yaml:"changed_lines"`
	VersionChange    *versionChangeView    `yaml:"version_change,omitempty"`
	ReferenceChanges []referenceChangeView `yaml:"reference_changes,omitempty"`
}

type failureView struct {
	Project string `yaml:"project"`
	Error   string `yaml:"error"`
}

type statusView struct {
	RepoRoot string        `yaml:"repo_root"`
	Provider string        `yaml:"provider"`
	Projects []projectView `yaml:"projects"`
	Failures []failureView `yaml:"failures,omitempty"`
}

type nodeView struct {
	Project    string     `yaml:"project"`
	Version    string     `yaml:"version"`
	NewVersion string     `yaml:"new_version,omitempty"`
	Status     string     `yaml:"status"`
	Root       bool       `yaml:"root,omitempty"`
	Selected   bool       `yaml:"selected,omitempty"`
	Excluded   bool       `yaml:"excluded,omitempty"`
	Referrers  []nodeView `yaml:"referrers,omitempty"`
}

type forestView struct {
	Stats entities.ForestStats `yaml:"stats"`
	Roots []nodeView           `yaml:"roots"`
}

type updateView struct {
	Project    string `yaml:"project"`
	OldVersion string `yaml:"old_version"`
	NewVersion string `yaml:"new_version"`
}

type bumpView struct {
	State     string       `yaml:"state"`
	Forest    forestView   `yaml:"forest"`
	Updates   []updateView `yaml:"updates,omitempty"`
	Successes []string     `yaml:"successes,omitempty"`
	Errors    []string     `yaml:"errors,omitempty"`
}

// ValidateOutput rejects unknown --output values.
func ValidateOutput(format string) error {
	if format != OutputText && format != OutputYAML {
		return fmt.Errorf("unknown output format %q, expected %q or %q", format, OutputText, OutputYAML)
	}
	return nil
}

// RenderStatus prints the analysis of every project.
func RenderStatus(w io.Writer, report *commands.AnalysisReport, format string) error {
	view := newStatusView(report)
	if format == OutputYAML {
		return writeYAML(w, view)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Repository: %s (%s)\n", view.RepoRoot, view.Provider)
	for _, p := range view.Projects {
		fmt.Fprintf(&sb, "%s %s [%s]", p.Name, p.Version, p.Status)
		if p.Excluded {
			sb.WriteString(" (excluded)")
		}
		if p.ChangedFiles > 0 {
			fmt.Fprintf(&sb, " files=%d lines=%d", p.ChangedFiles, p.ChangedLines)
		}
		sb.WriteString("\n")
		if p.VersionChange != nil {
			fmt.Fprintf(&sb, "  version %s -> %s (%s %s)\n",
				orNone(p.VersionChange.OldVersion), orNone(p.VersionChange.NewVersion),
				p.VersionChange.Source, p.VersionChange.Property)
		}
		for _, ref := range p.ReferenceChanges {
			sb.WriteString("  " + referenceLine(ref) + "\n")
		}
	}
	if len(view.Failures) > 0 {
		sb.WriteString("Failures:\n")
		for _, f := range view.Failures {
			fmt.Fprintf(&sb, "  %s: %s\n", f.Project, f.Error)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderForest prints a referrer forest with its statistics.
func RenderForest(w io.Writer, roots []*entities.ReferrerChainNode, stats entities.ForestStats, format string) error {
	view := newForestView(roots, stats)
	if format == OutputYAML {
		return writeYAML(w, view)
	}

	var sb strings.Builder
	writeForestText(&sb, view)
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderBump prints the propagation plan and what was written.
func RenderBump(w io.Writer, result *commands.BumpResult, format string) error {
	view := bumpView{
		State:  result.State.String(),
		Forest: newForestView(result.Graph.Roots, result.Graph.Stats),
	}
	for _, update := range result.Updates {
		view.Updates = append(view.Updates, updateView{
			Project:    update.Project.Name,
			OldVersion: update.OldVersion,
			NewVersion: update.NewVersion,
		})
	}
	if result.Outcome != nil {
		view.Successes = result.Outcome.Successes
		view.Errors = result.Outcome.Errors
	}
	if format == OutputYAML {
		return writeYAML(w, view)
	}

	var sb strings.Builder
	writeForestText(&sb, view.Forest)
	fmt.Fprintf(&sb, "State: %s\n", view.State)
	for _, update := range view.Updates {
		fmt.Fprintf(&sb, "  %s: %s -> %s\n", update.Project, update.OldVersion, update.NewVersion)
	}
	for _, line := range view.Successes {
		sb.WriteString("Updated " + line + "\n")
	}
	for _, line := range view.Errors {
		sb.WriteString("Failed " + line + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeForestText(sb *strings.Builder, view forestView) {
	var walk func(node nodeView, depth int)
	walk = func(node nodeView, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		if node.Root {
			sb.WriteString("[R] ")
		}
		sb.WriteString(node.Project)
		if node.Selected {
			sb.WriteString("*")
		}
		if node.Excluded {
			sb.WriteString(" (excluded)")
		}
		fmt.Fprintf(sb, " V %s", node.Version)
		if node.NewVersion != "" && node.NewVersion != node.Version {
			fmt.Fprintf(sb, " -> %s", node.NewVersion)
		}
		fmt.Fprintf(sb, " [%s]\n", node.Status)
		for _, child := range node.Referrers {
			walk(child, depth+1)
		}
	}
	for _, root := range view.Roots {
		walk(root, 0)
	}
	fmt.Fprintf(sb, "roots=%d nodes=%d unique=%d edges=%d\n",
		view.Stats.Roots, view.Stats.Nodes, view.Stats.UniqueProjects, view.Stats.Edges)
}

func newStatusView(report *commands.AnalysisReport) statusView {
	view := statusView{RepoRoot: report.RepoRoot, Provider: report.Provider, Projects: []projectView{}}
	for _, project := range report.Projects {
		p := projectView{
			Name:         project.Name,
			Version:      project.CurrentVersion(),
			Status:       project.Status.String(),
			Excluded:     project.ExcludedFromUpdates,
			ChangedFiles: project.ChangedFileCount,
			ChangedLines: project.ChangedLineCount,
		}
		if vc := project.VersionChange; vc != nil {
			p.VersionChange = &versionChangeView{
				File:       vc.File,
				Source:     string(vc.Source),
				Property:   vc.Property,
				OldVersion: vc.OldVersion,
				NewVersion: vc.NewVersion,
			}
		}
		for _, ref := range project.ReferenceChanges {
			p.ReferenceChanges = append(p.ReferenceChanges, referenceChangeView{
				Name:       ref.Name,
				Package:    ref.IsPackageReference,
				Kind:       ref.Kind.String(),
				OldVersion: ref.OldVersion,
				NewVersion: ref.NewVersion,
			})
		}
		view.Projects = append(view.Projects, p)
	}
	for _, failure := range report.Failures {
		view.Failures = append(view.Failures, failureView{Project: failure.Project, Error: failure.Err.Error()})
	}
	return view
}

func newForestView(roots []*entities.ReferrerChainNode, stats entities.ForestStats) forestView {
	view := forestView{Stats: stats, Roots: make([]nodeView, 0, len(roots))}
	for _, root := range roots {
		view.Roots = append(view.Roots, newNodeView(root))
	}
	return view
}

func newNodeView(node *entities.ReferrerChainNode) nodeView {
	view := nodeView{
		Project:    node.Project.Name,
		Version:    node.Project.CurrentVersion(),
		NewVersion: node.NewVersion,
		Status:     node.Project.Status.String(),
		Root:       node.IsRoot,
		Selected:   node.WasOriginallySelected,
		Excluded:   node.Project.ExcludedFromUpdates,
	}
	for _, child := range node.Referrers {
		view.Referrers = append(view.Referrers, newNodeView(child))
	}
	return view
}

func referenceLine(ref referenceChangeView) string {
	kind := "project"
	if ref.Package {
		kind = "package"
	}
	switch ref.Kind {
	case entities.ReferenceAdded.String():
		return strings.TrimSpace(fmt.Sprintf("+ %s %s %s", kind, ref.Name, ref.NewVersion))
	case entities.ReferenceRemoved.String():
		return strings.TrimSpace(fmt.Sprintf("- %s %s %s", kind, ref.Name, ref.OldVersion))
	default:
		return fmt.Sprintf("~ %s %s %s -> %s", kind, ref.Name, ref.OldVersion, ref.NewVersion)
	}
}

func orNone(value string) string {
	if value == "" {
		return "(none)"
	}
	return value
}

func writeYAML(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to render yaml: %w", err)
	}
	return encoder.Close()
}
