package config

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tellerbot/teller/internal/domain"
)

// Config is the assistant's runtime configuration.
type Config struct {
	Addr           string
	BaseCurrency   string
	AmountKeywords map[string]string
	AuditDir       string
	Demo           bool
}

type configYaml struct {
	Addr           string            `yaml:"addr"`
	BaseCurrency   string            `yaml:"base_currency,omitempty"`
	AmountKeywords map[string]string `yaml:"amount_keywords,omitempty"`
	AuditDir       string            `yaml:"audit_dir,omitempty"`
}

// Default returns the stock configuration: listen on :5055 (the action
// server's conventional port), dollar amounts, and the standard keyword
// table mapping spoken amount keywords onto stored balance labels.
func Default() Config {
	return Config{
		Addr:         ":5055",
		BaseCurrency: "$",
		AmountKeywords: map[string]string{
			"minimum": domain.LabelMinimumBalance,
			"balance": domain.LabelCurrentBalance,
		},
		AuditDir: "./wal/audit",
	}
}

// Get builds the configuration from flags and an optional YAML file. Flag
// values override the file.
func Get() (Config, error) {
	configPath := flag.String("config", "", "path to yaml config")
	addr := flag.String("addr", "", "listen address override")
	demo := flag.Bool("demo", false, "run the interactive terminal console instead of the server")
	flag.Parse()

	cfg := Default()
	if *configPath != "" {
		var err error
		cfg, err = fromYaml(*configPath)
		if err != nil {
			return Config{}, err
		}
	}

	if *addr != "" {
		cfg.Addr = *addr
	}
	cfg.Demo = *demo

	return cfg, nil
}

func fromYaml(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}

	var raw configYaml
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, errors.Wrap(err, "parse config file")
	}

	cfg := Default()
	if raw.Addr != "" {
		cfg.Addr = raw.Addr
	}
	if raw.BaseCurrency != "" {
		cfg.BaseCurrency = raw.BaseCurrency
	}
	if len(raw.AmountKeywords) > 0 {
		cfg.AmountKeywords = raw.AmountKeywords
	}
	if raw.AuditDir != "" {
		cfg.AuditDir = raw.AuditDir
	}

	return cfg, nil
}
