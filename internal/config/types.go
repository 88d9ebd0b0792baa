// Package config loads the qmlkit command configuration from defaults, an
// optional YAML file, QMLKIT_ environment variables and command flags.
package config

// Config is the resolved command configuration.
type Config struct {
	Log            LogConfig            `koanf:"log"`
	Workers        int                  `koanf:"workers"`
	Representation RepresentationConfig `koanf:"representation"`
	Kernel         KernelConfig         `koanf:"kernel"`
	Output         OutputConfig         `koanf:"output"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// RepresentationConfig drives the represent command and the descriptors the
// kernel command builds.
type RepresentationConfig struct {
	Family  string         `koanf:"family"`
	Size    int            `koanf:"size"`
	Cut     float64        `koanf:"cut"`
	Sorting string         `koanf:"sorting"`
	ASize   map[string]int `koanf:"asize"`
}

// KernelConfig drives the kernel command.
type KernelConfig struct {
	Representation string               `koanf:"representation"`
	Level          string               `koanf:"level"`
	Family         string               `koanf:"family"`
	Params         map[string][]float64 `koanf:"params"`
	Alchemy        string               `koanf:"alchemy"`
}

// OutputConfig selects how results are printed.
type OutputConfig struct {
	Format    string `koanf:"format"`
	Precision int    `koanf:"precision"`
}
