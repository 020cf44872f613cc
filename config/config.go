package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/asaskevich/govalidator"
)

func init() {
	govalidator.SetFieldsRequiredByDefault(true)
}

var (
	DefaultLocation string = "./sigillum.conf" // Default location of the config file
	Settings        Config                     // Initialized once inside Read method Settings are stored in memory.
)

// Config is the root of the config. Its values are defaults for the
// command line flags of the same name.
//
//	keyFile = "/home/alice/.local/share/com.sigillum.app/keypair.json"
//	name    = "Alice"
//	extra   = "dept:legal"
type Config struct {
	KeyFile string `toml:"keyFile" valid:"optional"`
	Name    string `toml:"name" valid:"optional,stringlength(1|256)"`
	Extra   string `toml:"extra" valid:"optional,stringlength(1|256)"`
}

// ValidateFields validates all the fields of the config
func (c Config) ValidateFields() error {
	_, err := govalidator.ValidateStruct(c)
	if err != nil {
		return err
	}
	if strings.ContainsAny(c.Name, "\r\n") || strings.ContainsAny(c.Extra, "\r\n") {
		return errors.New("name and extra must fit on one line")
	}
	extra := strings.TrimSpace(c.Extra)
	if c.Extra != "" && extra == "" {
		return errors.New("extra must not be blank")
	}
	if strings.HasPrefix(extra, "Hash:") {
		return errors.New("extra must not start with \"Hash:\"")
	}
	return nil
}

// Read loads and validates configfile into Settings. A missing file at
// DefaultLocation leaves Settings empty; a missing file anywhere else is an
// error.
func Read(configfile string) error {
	if _, err := os.Stat(configfile); err != nil {
		if errors.Is(err, os.ErrNotExist) && configfile == DefaultLocation {
			Settings = Config{}
			return nil
		}
		return fmt.Errorf("config file is missing: %s", configfile)
	}

	var c Config
	md, err := toml.DecodeFile(configfile, &c)
	if err != nil {
		return fmt.Errorf("config is not valid TOML: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config keys: %v", undecoded)
	}

	if err := c.ValidateFields(); err != nil {
		return fmt.Errorf("config is not valid: %w", err)
	}

	Settings = c
	return nil
}
