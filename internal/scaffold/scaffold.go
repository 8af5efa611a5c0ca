package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"github.com/bladeengine/bladegen/internal/branding"
	"github.com/bladeengine/bladegen/internal/manifest"
)

//go:embed templates
var scaffoldFS embed.FS

const (
	templatesRoot    = "templates"
	manifestFileName = "template.yaml"
)

// ProjectData holds all template variables available to template bodies and
// file path templates.
type ProjectData struct {
	ProjectName  string // e.g., "Demo"; class name, executable name, file stem
	EngineDir    string // vendored engine directory, relative to the project root
	VendorEngine bool   // engine tree is relocated into the project
}

// NewProjectData creates a ProjectData with derived fields populated.
func NewProjectData(name string, vendorEngine bool) *ProjectData {
	return &ProjectData{
		ProjectName:  name,
		EngineDir:    branding.EngineDirName(),
		VendorEngine: vendorEngine,
	}
}

// Template is a loaded project template.
type Template struct {
	Manifest *manifest.TemplateManifest
	fsys     fs.FS
	dir      string
}

// RenderedFile is a template body rendered for a specific project. Path is
// slash-separated and relative to the project root.
type RenderedFile struct {
	Path    string
	Content []byte
}

// Templates returns every built-in template ordered by menu selector.
func Templates() ([]*Template, error) {
	return loadAll(scaffoldFS, templatesRoot)
}

// Lookup returns the built-in template with the given name.
func Lookup(name string) (*Template, error) {
	all, err := Templates()
	if err != nil {
		return nil, err
	}
	for _, t := range all {
		if t.Manifest.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("template %q not found", name)
}

// BySelector returns the template bound to a menu selector. The boolean is
// false when no template uses the selector.
func BySelector(selector string) (*Template, bool, error) {
	all, err := Templates()
	if err != nil {
		return nil, false, err
	}
	selector = strings.TrimSpace(selector)
	for _, t := range all {
		if t.Manifest.Selector == selector {
			return t, true, nil
		}
	}
	return nil, false, nil
}

func loadAll(fsys fs.FS, root string) ([]*Template, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	var out []*Template
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t, err := load(fsys, path.Join(root, entry.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Manifest.Selector < out[j].Manifest.Selector
	})
	return out, nil
}

// load reads and validates the manifest in dir and checks that every
// referenced template body exists.
func load(fsys fs.FS, dir string) (*Template, error) {
	manifestPath := path.Join(dir, manifestFileName)
	data, err := fs.ReadFile(fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifestPath, err)
	}

	m, err := manifest.Parse(data, manifestPath)
	if err != nil {
		return nil, err
	}

	for _, f := range m.Files {
		if _, err := fs.Stat(fsys, path.Join(dir, f.Template)); err != nil {
			return nil, fmt.Errorf("template %s references missing body %s: %w", m.Name, f.Template, err)
		}
	}

	return &Template{Manifest: m, fsys: fsys, dir: dir}, nil
}

// Directories returns the skeleton directories in creation order.
func (t *Template) Directories() []string {
	return append([]string(nil), t.Manifest.Directories...)
}

// Assets returns the paths to relocate from the engine clone. The engine
// tree itself is included only when vendorEngine is set.
func (t *Template) Assets(vendorEngine bool) []manifest.AssetSpec {
	var out []manifest.AssetSpec
	for _, a := range t.Manifest.Assets {
		if a.Engine && !vendorEngine {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Render renders every file of the template for data, in manifest order.
func (t *Template) Render(data *ProjectData) ([]RenderedFile, error) {
	files := make([]RenderedFile, 0, len(t.Manifest.Files))
	for _, f := range t.Manifest.Files {
		outPath, err := renderString("path:"+f.Path, f.Path, data)
		if err != nil {
			return nil, err
		}
		outPath = path.Clean(outPath)
		if path.IsAbs(outPath) || outPath == ".." || strings.HasPrefix(outPath, "../") {
			return nil, fmt.Errorf("rendered path %q escapes the project root", outPath)
		}

		body, err := fs.ReadFile(t.fsys, path.Join(t.dir, f.Template))
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", f.Template, err)
		}

		content, err := renderString(f.Template, string(body), data)
		if err != nil {
			return nil, err
		}

		files = append(files, RenderedFile{Path: outPath, Content: []byte(content)})
	}
	return files, nil
}

func renderString(name, text string, data *ProjectData) (string, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
