package session

// Config controls how a session translates.
type Config struct {
	// StrictConstraints makes Import fail on the first host constraint that
	// has no internal counterpart. When false such constraints are skipped
	// and reported as warnings.
	StrictConstraints bool `mapstructure:"strict_constraints" yaml:"strict_constraints"`
	// ExposeInternalGeometry makes Export add the auxiliary axis and focus
	// geometry of every ellipse.
	ExposeInternalGeometry bool `mapstructure:"expose_internal_geometry" yaml:"expose_internal_geometry"`
	// DocumentName names host documents the CLI creates.
	DocumentName string `mapstructure:"document_name" yaml:"document_name"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		StrictConstraints:      true,
		ExposeInternalGeometry: true,
		DocumentName:           "Unnamed",
	}
}
