package config

// Defaults.
const (
	DefaultLogLevel       = "warn"
	DefaultLogFormat      = "text"
	DefaultFamily         = "cm"
	DefaultSize           = 23
	DefaultCut            = 5.0
	DefaultSorting        = "row-norm"
	DefaultKernelRep      = "fchl"
	DefaultKernelLevel    = "local"
	DefaultKernelFamily   = "gaussian"
	DefaultAlchemy        = "periodic-table"
	DefaultOutputFormat   = "table"
	DefaultPrecision      = 6
	EnvPrefix             = "QMLKIT_"
	envNestingSeparator   = "__"
	defaultKeyDelimiter   = "."
	defaultWorkersUnbound = 0
)

func defaults() map[string]any {
	return map[string]any{
		"log.level":              DefaultLogLevel,
		"log.format":             DefaultLogFormat,
		"workers":                defaultWorkersUnbound,
		"representation.family":  DefaultFamily,
		"representation.size":    DefaultSize,
		"representation.cut":     DefaultCut,
		"representation.sorting": DefaultSorting,
		"kernel.representation":  DefaultKernelRep,
		"kernel.level":           DefaultKernelLevel,
		"kernel.family":          DefaultKernelFamily,
		"kernel.alchemy":         DefaultAlchemy,
		"output.format":          DefaultOutputFormat,
		"output.precision":       DefaultPrecision,
	}
}
