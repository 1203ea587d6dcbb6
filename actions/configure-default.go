package actions

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/August-Icekimo/DEV-DB-Cloner/config"
	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
)

type DefaultAddConfig struct {
	ConfigFile ConfigGetterSetter `errorTxt:"config-file" mandatory:"yes"`
	Key        string             `errorTxt:"key" mandatory:"yes"`
	Value      string             `errorTxt:"value" mandatory:"yes"`
	Force      bool
	Out        io.Writer
}

type DefaultRemoveConfig struct {
	ConfigFile ConfigGetterSetter `errorTxt:"config-file" mandatory:"yes"`
	Key        string             `errorTxt:"key" mandatory:"yes"`
	Out        io.Writer
}

type DefaultListConfig struct {
	ConfigFile  ConfigGetterSetter `errorTxt:"config-file" mandatory:"yes"`
	ShowSecrets bool
	Out         io.Writer
}

// RunDefaultAdd adds key+value to the given config file.
// If cfg.Force is not set then it return an error when the key exists.
func RunDefaultAdd(cfg *DefaultAddConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	var val string
	if err := cfg.ConfigFile.Get(cfg.Key, &val); err == nil && !cfg.Force { // if key exists and we're not allowed to overwrite...
		return fmt.Errorf("key %q exists, use force to update the value or remove it first", cfg.Key)
	} else if err != nil && !errors.As(err, &config.KeyNotFoundError{}) { // else there is an unexpected error...
		return err
	}
	if err := cfg.ConfigFile.Set(cfg.Key, cfg.Value); err != nil {
		return fmt.Errorf("error writing config file after adding: %w", err)
	}
	_, _ = fmt.Fprintf(writerOrStdout(cfg.Out), "Key %q added\n", cfg.Key)
	return nil
}

// RunDefaultRemove removes a key from the given config file.
func RunDefaultRemove(cfg *DefaultRemoveConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	if err := cfg.ConfigFile.Delete(cfg.Key); err != nil {
		return fmt.Errorf("unable to delete key %q from config: %w", cfg.Key, err)
	}
	_, _ = fmt.Fprintf(writerOrStdout(cfg.Out), "Key %q removed\n", cfg.Key)
	return nil
}

// RunDefaultList prints every key=value pair. Password values are masked unless ShowSecrets is set.
func RunDefaultList(cfg *DefaultListConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	keys, err := cfg.ConfigFile.GetAllKeys()
	if err != nil {
		return err
	}
	out := writerOrStdout(cfg.Out)
	for _, k := range keys { // for each key...
		var val string
		if err := cfg.ConfigFile.Get(k, &val); err != nil {
			return err
		}
		if IsSecretKey(k) && !cfg.ShowSecrets && val != "" {
			val = "********"
		}
		_, _ = fmt.Fprintf(out, "%v=%v\n", k, val)
	}
	return nil
}

func writerOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
