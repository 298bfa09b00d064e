package main

import (
	"github.com/tinytelemetry/lens/internal/model"
)

const (
	defaultLogBuffer     = model.DefaultLogBuffer
	defaultBindHost      = "127.0.0.1"
	defaultTCPPort       = 4000
	defaultAPIPort       = 3000
	defaultOTLPPort      = 4317
	defaultMuxBufferSize = DefaultMuxBuffer
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	LogBuffer     int    `mapstructure:"log-buffer" yaml:"log-buffer"`
	Host          string `mapstructure:"host" yaml:"host"`
	TCPEnabled    bool   `mapstructure:"tcp-enabled" yaml:"tcp-enabled"`
	TCPPort       int    `mapstructure:"tcp-port" yaml:"tcp-port"`
	TCPAddr       string `mapstructure:"tcp-addr" yaml:"tcp-addr"`
	MuxBufferSize int    `mapstructure:"mux-buffer-size" yaml:"mux-buffer-size"`
	APIEnabled    bool   `mapstructure:"api-enabled" yaml:"api-enabled"`
	APIPort       int    `mapstructure:"api-port" yaml:"api-port"`
	APIAddr       string `mapstructure:"api-addr" yaml:"api-addr"`
	OTLPEnabled   bool   `mapstructure:"otlp-enabled" yaml:"otlp-enabled"`
	OTLPPort      int    `mapstructure:"otlp-port" yaml:"otlp-port"`
	OTLPAddr      string `mapstructure:"otlp-addr" yaml:"otlp-addr"`
	ConfigPath    string `mapstructure:"-" yaml:"-"` // not from config file
}
