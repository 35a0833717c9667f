package config

import (
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Environ returns the settings from the environment.
func Environ() (*Config, error) {
	cfg := Config{}
	err := envconfig.Process("", &cfg)
	defaults(&cfg)

	return &cfg, err
}

func defaults(c *Config) {
	if c.Github.ServerURL == "" {
		c.Github.ServerURL = "https://github.com"
	}
}

// String returns the configuration in string format.
func (c *Config) String() string {
	out, _ := yaml.Marshal(c)
	return string(out)
}

type Config struct {
	Logging Logging
	Github  Github
}

// Logging provides the logging configuration.
type Logging struct {
	Debug  bool `envconfig:"DEBUG"`
	Trace  bool `envconfig:"TRACE"`
	Color  bool `envconfig:"LOGS_COLOR"`
	Pretty bool `envconfig:"LOGS_PRETTY"`
	Text   bool `envconfig:"LOGS_TEXT"`
}

// Github is the workflow run context that GitHub Actions exposes to every step
type Github struct {
	EventPath  string `envconfig:"GITHUB_EVENT_PATH"`
	EventName  string `envconfig:"GITHUB_EVENT_NAME"`
	Workflow   string `envconfig:"GITHUB_WORKFLOW"`
	SHA        string `envconfig:"GITHUB_SHA"`
	Repository string `envconfig:"GITHUB_REPOSITORY"`
	ServerURL  string `envconfig:"GITHUB_SERVER_URL"`
}

