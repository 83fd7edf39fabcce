// Command lifx allows performing basic operations on LIFX devices over the
// LAN
package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ferristseng/go-lifx"
)

var (
	client *lifx.Client

	flagBind     string
	flagWait     time.Duration
	flagInterval time.Duration
	flagLogLevel string
	flagConfig   string

	logger = logrus.New()
	app    = &cobra.Command{
		Use: `lifx`,
	}
)

// config mirrors the optional YAML configuration file.  Flags given on the
// command line take precedence over file values.
type config struct {
	Bind              string `yaml:"bind"`
	DiscoveryInterval string `yaml:"discovery_interval"`
	LogLevel          string `yaml:"log_level"`
}

func init() {
	lifx.SetLogger(logger)

	app.PersistentPreRun = func(c *cobra.Command, args []string) {
		loadConfig()
		setLogger()
	}

	app.PersistentFlags().StringVarP(&flagBind, `bind`, `b`, `:56700`, `local address to bind`)
	app.PersistentFlags().DurationVarP(&flagWait, `wait`, `w`, 3*time.Second, `how long to wait for device responses`)
	app.PersistentFlags().DurationVarP(&flagInterval, `interval`, `i`, time.Second, `discovery broadcast interval`)
	app.PersistentFlags().StringVarP(&flagLogLevel, `log-level`, `L`, `info`, `log level, one of: [debug,info,warn,error]`)
	app.PersistentFlags().StringVarP(&flagConfig, `config`, `c`, ``, `path to a YAML config file`)

	app.AddCommand(cmdList)
	app.AddCommand(cmdOn)
	app.AddCommand(cmdOff)
	app.AddCommand(cmdColor)
}

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() {
	if flagConfig == `` {
		return
	}
	data, err := os.ReadFile(flagConfig)
	if err != nil {
		logger.WithFields(logrus.Fields{
			`filename`: flagConfig,
			`error`:    err,
		}).Fatalln(`Could not read config file`)
	}
	cfg := new(config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		logger.WithFields(logrus.Fields{
			`filename`: flagConfig,
			`error`:    err,
		}).Fatalln(`Could not parse config file`)
	}
	if cfg.Bind != `` && !app.PersistentFlags().Changed(`bind`) {
		flagBind = cfg.Bind
	}
	if cfg.LogLevel != `` && !app.PersistentFlags().Changed(`log-level`) {
		flagLogLevel = cfg.LogLevel
	}
	if cfg.DiscoveryInterval != `` && !app.PersistentFlags().Changed(`interval`) {
		interval, err := time.ParseDuration(cfg.DiscoveryInterval)
		if err != nil {
			logger.WithField(`error`, err).Fatalln(`Invalid discovery_interval in config file`)
		}
		flagInterval = interval
	}
}

func setupClient(c *cobra.Command, args []string) {
	var err error

	client, err = lifx.NewClient(flagBind)
	if err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed initializing client`)
	}
	client.Listen()
}

func closeClient(c *cobra.Command, args []string) {
	if err := client.Close(); err != nil {
		logger.WithField(`error`, err).Fatalln(`Failed closing client`)
	}
}

func setLogger() {
	switch flagLogLevel {
	case `debug`:
		logger.Level = logrus.DebugLevel
	case `info`:
		logger.Level = logrus.InfoLevel
	case `warn`:
		logger.Level = logrus.WarnLevel
	case `error`:
		logger.Level = logrus.ErrorLevel
	default:
		logger.Level = logrus.InfoLevel
	}
}
