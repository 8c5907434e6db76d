package cache

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	VizType   string `json:"viz_type"`
	ThemeHash string `json:"theme_hash"`
	LineStyle string `json:"line_style,omitempty"`
	Free      bool   `json:"free,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format       string  `json:"format"`
	Scale        float64 `json:"scale,omitempty"`
	Padding      float64 `json:"padding,omitempty"`
	EmbedFont    bool    `json:"embed_font,omitempty"`
	NoBackground bool    `json:"no_background,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	LayoutKey(docHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the content hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", docHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
