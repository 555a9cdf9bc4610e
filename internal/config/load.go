package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// UnmarshalFromYamlConfiguration reads a yaml configuration, failing on unknown keys so typos
// do not go unnoticed.
func UnmarshalFromYamlConfiguration(r io.Reader) (*Application, error) {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)

	conf := &Application{}
	if err := d.Decode(conf); err != nil {
		if errors.Is(err, io.EOF) {
			// empty file
			return conf, nil
		}
		return nil, err
	}

	return conf, nil
}

// LoadDotEnv puts the variables of a .env file into the process environment.
// Variables that are already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Load assembles the configuration. configPath may be empty, in which case only the
// environment and the overrides are used.
func Load(configPath string, overrides Overrides) (*Application, error) {
	conf := &Application{}

	if configPath != "" {
		file, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open configuration file %s: %w", configPath, err)
		}
		defer file.Close()

		conf, err = UnmarshalFromYamlConfiguration(file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %s: %w", configPath, err)
		}
	}

	if err := cleanenv.ReadEnv(conf); err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("failed to read environment: %w; %s", err, desc)
	}

	conf.applyOverrides(overrides)
	conf.applyDefaults()

	return conf, nil
}

// EnvironmentHelp lists the environment variables understood by Load.
func EnvironmentHelp() string {
	desc, err := cleanenv.GetDescription(&Application{}, nil)
	if err != nil {
		return ""
	}
	return desc
}
