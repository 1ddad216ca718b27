package types

// Config holds the settings the server and store need at startup.
type Config struct {
	// BaseURI is the absolute URI prefix under which records are
	// served, without a trailing slash (e.g. "http://localhost:8730").
	BaseURI string `json:"base_uri" yaml:"base_uri"`

	// Org is an optional organization suffix recognized (and stripped)
	// when parsing unique identifier strings.
	Org string `json:"org" yaml:"org"`

	// Listen is the address the HTTP server binds to.
	Listen string `json:"listen" yaml:"listen"`

	// DataDir is the directory holding the SQLite database.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Defaults for Config fields left empty.
const (
	DefaultListen  = ":8730"
	DefaultBaseURI = "http://localhost:8730"
)

// Validate checks that the Config is well-formed. It returns a
// sentinel error from this package on failure.
func (c Config) Validate() error {
	if c.BaseURI == "" {
		return ErrBaseURIEmpty
	}
	if c.Listen == "" {
		return ErrListenEmpty
	}
	return nil
}
