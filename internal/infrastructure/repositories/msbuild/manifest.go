package msbuild

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/rios0rios0/bumpchain/internal/domain/analysis"
)

const (
	manifestExtension = ".csproj"
	assemblyInfoFile  = "AssemblyInfo.cs"
	changelogFile     = "CHANGELOG.md"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	versionElements = []string{"Version", "AssemblyVersion", "FileVersion"}
)

// manifest is a parsed project file that remembers whether it carried a BOM.
type manifest struct {
	path string
	doc  *etree.Document
	bom  bool
}

func readManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	m := &manifest{path: path, doc: etree.NewDocument()}
	if bytes.HasPrefix(data, utf8BOM) {
		m.bom = true
		data = data[len(utf8BOM):]
	}
	if err = m.doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	if m.doc.Root() == nil {
		return nil, fmt.Errorf("failed to parse %q: no root element", path)
	}
	return m, nil
}

func (m *manifest) save() error {
	data, err := m.doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("failed to render %q: %w", m.path, err)
	}
	if m.bom {
		data = append(append([]byte{}, utf8BOM...), data...)
	}
	info, err := os.Stat(m.path)
	if err != nil {
		return fmt.Errorf("failed to stat %q: %w", m.path, err)
	}
	if err = os.WriteFile(m.path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write %q: %w", m.path, err)
	}
	return nil
}

// declaredVersions returns the first non-empty value of each version element, in
// Version, AssemblyVersion, FileVersion order.
func (m *manifest) declaredVersions() []string {
	var values []string
	for _, tag := range versionElements {
		for _, el := range m.doc.FindElements("//" + tag) {
			if value := strings.TrimSpace(el.Text()); value != "" {
				values = append(values, value)
				break
			}
		}
	}
	return values
}

// references lists the project names of every ProjectReference, in document order.
func (m *manifest) references() []string {
	var names []string
	for _, el := range m.doc.FindElements("//ProjectReference[@Include]") {
		name := analysis.ProjectNameFromInclude(el.SelectAttrValue("Include", ""))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// propertyVersionElements returns the version elements that sit directly in a PropertyGroup.
func (m *manifest) propertyVersionElements() []*etree.Element {
	var elements []*etree.Element
	for _, group := range m.doc.FindElements("//PropertyGroup") {
		for _, tag := range versionElements {
			elements = append(elements, group.SelectElements(tag)...)
		}
	}
	return elements
}

func projectName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
