package config

// Default input values.
const (
	DefaultTimeoutMinutes = 5.0
	DefaultMaxScore       = 0.0
	DefaultLibFolder      = "lib"
	DefaultPartialCredit  = false
)

// applyDefaults fills in default values for unset inputs.
func applyDefaults(o *Options) {
	if o.Timeout == nil {
		v := DefaultTimeoutMinutes
		o.Timeout = &v
	}
	if o.MaxScore == nil {
		v := DefaultMaxScore
		o.MaxScore = &v
	}
	if o.LibFolder == "" {
		o.LibFolder = DefaultLibFolder
	}
	if o.PartialCredit == nil {
		v := DefaultPartialCredit
		o.PartialCredit = &v
	}
}
