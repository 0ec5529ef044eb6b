package assets

// Names of the built-in assets.
const (
	DefaultStyleName  = "default"
	PageTemplateName  = "page"
	BrowserScriptName = "script"
)

// Kind locates one asset family inside an asset directory.
type Kind struct {
	Dir      string
	Ext      string
	NotFound error
}

// Asset kinds.
var (
	Style    = Kind{Dir: "styles", Ext: ".css", NotFound: ErrStyleNotFound}
	Template = Kind{Dir: "templates", Ext: ".html", NotFound: ErrTemplateNotFound}
	Script   = Kind{Dir: "scripts", Ext: ".js", NotFound: ErrScriptNotFound}
)

// path returns the slash-separated location of name.
func (k Kind) path(name string) string {
	return k.Dir + "/" + name + k.Ext
}

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in stylesheet by name, without extension.
func LoadStyle(name string) (string, error) {
	return defaultLoader.Load(Style, name)
}

// LoadTemplate loads a built-in page template by name, without extension.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.Load(Template, name)
}

// LoadScript loads a built-in browser script by name, without extension.
func LoadScript(name string) (string, error) {
	return defaultLoader.Load(Script, name)
}
