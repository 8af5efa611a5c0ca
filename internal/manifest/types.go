package manifest

// Asset kinds.
const (
	KindDir  = "dir"
	KindFile = "file"
)

// TemplateManifest describes a single project template.
type TemplateManifest struct {
	Name        string      `yaml:"name" json:"name"`
	Title       string      `yaml:"title" json:"title"`
	Selector    string      `yaml:"selector" json:"selector"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Directories []string    `yaml:"directories" json:"directories"`
	Files       []FileSpec  `yaml:"files" json:"files"`
	Assets      []AssetSpec `yaml:"assets,omitempty" json:"assets,omitempty"`
}

// FileSpec maps a template body to its output path. Path is itself a
// text/template over the project data (e.g. "src/{{.ProjectName}}.cpp").
type FileSpec struct {
	Path     string `yaml:"path" json:"path"`
	Template string `yaml:"template" json:"template"`
}

// AssetSpec is a path relocated from the engine clone into the project.
type AssetSpec struct {
	From   string `yaml:"from" json:"from"`                         // relative to the clone root
	To     string `yaml:"to" json:"to"`                             // relative to the project root
	Kind   string `yaml:"kind" json:"kind"`                         // "dir" or "file"
	Engine bool   `yaml:"engine,omitempty" json:"engine,omitempty"` // vendored engine tree, skippable
}
