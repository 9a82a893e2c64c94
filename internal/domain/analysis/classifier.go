package analysis

import (
	"path"
	"regexp"
	"strings"
)

// Classification is the category a changed diff line falls into.
type Classification int

const (
	Unrecognized Classification = iota
	PackageReferenceChange
	ProjectReferenceChange
	VersionPropertyChange
	AssemblyVersionChange
)

func (c Classification) String() string {
	switch c {
	case PackageReferenceChange:
		return "package-reference"
	case ProjectReferenceChange:
		return "project-reference"
	case VersionPropertyChange:
		return "version-property"
	case AssemblyVersionChange:
		return "assembly-version"
	default:
		return "unrecognized"
	}
}

// LineMatch is the result of classifying one changed line. Name holds the
// reference name or the property name; Value holds the reference version or
// the property value.
type LineMatch struct {
	Kind  Classification
	Added bool
	Name  string
	Value string
}

// Recognized reports whether any matcher claimed the line.
func (m LineMatch) Recognized() bool {
	return m.Kind != Unrecognized
}

// lineMatcher turns regexp submatches into a name/value pair; ok=false
// rejects a syntactic match.
type lineMatcher struct {
	kind    Classification
	pattern *regexp.Regexp
	extract func(groups []string) (name, value string, ok bool)
}

var (
	packageReferencePattern = regexp.MustCompile(
		`<PackageReference[^>]*Include="([^"]+)"[^>]*Version="([^"]*)"[^>]*>`)
	projectReferencePattern = regexp.MustCompile(
		`<ProjectReference[^>]*Include="([^"]+)"[^>]*>`)
	versionPropertyPattern = regexp.MustCompile(
		`<(Version|AssemblyVersion|FileVersion)[^>]*>([^<]+)</(Version|AssemblyVersion|FileVersion)>`)
	assemblyAttributePattern = regexp.MustCompile(
		`\[assembly:\s*(AssemblyVersion|AssemblyFileVersion)\("([0-9.]+)"\)\]`)
)

// defaultMatchers is the priority-ordered table used by NewDiffClassifier.
func defaultMatchers() []lineMatcher {
	return []lineMatcher{
		{
			kind:    PackageReferenceChange,
			pattern: packageReferencePattern,
			extract: func(g []string) (string, string, bool) { return g[1], g[2], true },
		},
		{
			kind:    ProjectReferenceChange,
			pattern: projectReferencePattern,
			extract: func(g []string) (string, string, bool) { return ProjectNameFromInclude(g[1]), "", true },
		},
		{
			kind:    VersionPropertyChange,
			pattern: versionPropertyPattern,
			extract: func(g []string) (string, string, bool) {
				// RE2 has no back-references, so the closing tag is checked here
				return g[1], strings.TrimSpace(g[2]), g[1] == g[3]
			},
		},
		{
			kind:    AssemblyVersionChange,
			pattern: assemblyAttributePattern,
			extract: func(g []string) (string, string, bool) { return g[1], g[2], true },
		},
	}
}

// DiffClassifier matches changed diff lines against an ordered table of
// patterns; the first matcher that accepts a line wins.
type DiffClassifier struct {
	matchers []lineMatcher
}

// NewDiffClassifier creates a classifier for MSBuild manifests and AssemblyInfo files.
func NewDiffClassifier() *DiffClassifier {
	return &DiffClassifier{matchers: defaultMatchers()}
}

// Classify inspects one line starting with '+' or '-'. Header, hunk and blank
// lines must be filtered out beforehand with IsChangedLine.
func (c *DiffClassifier) Classify(line string) LineMatch {
	added := strings.HasPrefix(line, "+")
	body := strings.TrimLeft(line, "+-")

	for _, m := range c.matchers {
		groups := m.pattern.FindStringSubmatch(body)
		if groups == nil {
			continue
		}
		name, value, ok := m.extract(groups)
		if !ok {
			continue
		}
		return LineMatch{Kind: m.kind, Added: added, Name: name, Value: value}
	}
	return LineMatch{Kind: Unrecognized, Added: added}
}

// IsChangedLine reports whether a raw diff line is an added or removed line
// that carries content worth classifying.
func IsChangedLine(line string) bool {
	if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") || strings.HasPrefix(line, "@@") {
		return false
	}
	if !strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "-") {
		return false
	}

	trimmed := strings.TrimSpace(strings.TrimLeft(line, "+-"))
	return trimmed != "" && !strings.HasPrefix(trimmed, "<!--")
}

// ProjectNameFromInclude reduces a ProjectReference Include path such as
// "..\Core\Core.csproj" to the project name "Core".
func ProjectNameFromInclude(include string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(include), `\`, "/")
	base := path.Base(normalized)
	return strings.TrimSuffix(base, path.Ext(base))
}
