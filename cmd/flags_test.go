package cmd

import (
	"os"
	"testing"

	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/August-Icekimo/DEV-DB-Cloner/config"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/spf13/cobra"
)

func TestGetCliFlag(t *testing.T) {
	fnGetConfig := func(key string, out interface{}) error {
		return config.KeyNotFoundError{}
	}
	flagName := "mock"
	mockEnvVar := flagNameToEnvVar(flagName)
	expected := "envTest"
	d := "myDefault"
	_ = os.Unsetenv(mockEnvVar)
	// Test 1 - test default value applied to mock CLI flag.
	got := switches.getCliFlag(flagName, d, fnGetConfig)
	if got.val != d { // if no default was applied...
		t.Fatalf("test 1 failed: expected default value %v to be applied to mock CLI flag; got %v", d, got.val)
	}
	// Test 2 - a stored default beats the built-in default.
	fnGetStored := func(key string, out interface{}) error {
		*out.(*string) = "stored"
		return nil
	}
	got = switches.getCliFlag(flagName, d, fnGetStored)
	if got.val != "stored" {
		t.Fatalf("test 2 failed: expected the stored value to be applied to mock CLI flag; got %v", got.val)
	}
	// Test 3 - the environment beats the stored default.
	t.Setenv(mockEnvVar, expected)
	got = switches.getCliFlag(flagName, d, fnGetStored)
	if got.val != expected {
		t.Fatalf("test 3 failed: expected value (%v) to be applied to mock CLI flag (%v) fetched from environment variable (%v); got: %v", expected, flagName, mockEnvVar, got.val)
	}
}

func TestGetCliFlagUsesFlagEnvVar(t *testing.T) {
	fnGetConfig := func(key string, out interface{}) error {
		return config.KeyNotFoundError{}
	}
	t.Setenv(constants.EnvVarSrcServer, "db01")
	got := switches.getCliFlag("src-server", constants.DefaultServer, fnGetConfig)
	if got.val != "db01" {
		t.Fatalf("expected %v to be read for src-server; got %v", constants.EnvVarSrcServer, got.val)
	}
	t.Setenv(constants.EnvVarSrcServer, "")
	got = switches.getCliFlag("src-server", constants.DefaultServer, fnGetConfig)
	if got.val != constants.DefaultServer {
		t.Fatalf("expected the default server when %v is empty; got %v", constants.EnvVarSrcServer, got.val)
	}
}

func TestFlagNameToEnvVar(t *testing.T) {
	cases := map[string]string{
		"log-level":       "DBC_LOG_LEVEL",
		"config-db":       constants.EnvVarConfigDb,
		"demo-on-failure": "DBC_DEMO_ON_FAILURE",
	}
	for name, expected := range cases {
		if got := flagNameToEnvVar(name); got != expected {
			t.Fatalf("expected %v for flag %v; got %v", expected, name, got)
		}
	}
}

func TestAddConnectionFlags(t *testing.T) {
	t.Setenv(constants.EnvVarSrcPassword, "s3cret")
	t.Setenv(constants.EnvVarTgtServer, "devdb")
	cfg := actions.ConnectionsConfig{}
	c := &cobra.Command{Use: "test"}
	addConnectionFlags(c, &cfg, true)
	// Environment values become the flag defaults.
	if cfg.Source.Password != "s3cret" || cfg.Target.Server != "devdb" {
		t.Fatalf("expected values from the environment; got %+v", cfg)
	}
	// Passwords are not printed in help output.
	if d := c.Flags().Lookup("src-pwd").DefValue; d != "" {
		t.Fatalf("expected the src-pwd default to be hidden; got %q", d)
	}
	// The command line beats the environment.
	if err := c.ParseFlags([]string{"--tgt-server", "cli-host", "--demo"}); err != nil {
		t.Fatal(err)
	}
	if cfg.Target.Server != "cli-host" || !cfg.Demo {
		t.Fatalf("expected command line values to win; got %+v", cfg)
	}
}

func TestAddFlagStringSlice(t *testing.T) {
	t.Setenv(flagNameToEnvVar("tables"), "EMP_DATA, DEPT")
	var tables []string
	c := &cobra.Command{Use: "test"}
	switches.addFlag(c, &tables, "tables", "", false, "")
	if len(tables) != 2 || tables[0] != "EMP_DATA" || tables[1] != "DEPT" {
		t.Fatalf("expected tables from the environment; got %v", tables)
	}
}

func TestGetProjectNameArgsFunc(t *testing.T) {
	var name string
	fn := getProjectNameArgsFunc(&name)
	if err := fn(nil, []string{}); err == nil {
		t.Fatal("expected error when no project name is given")
	}
	if err := fn(nil, []string{"hr"}); err != nil || name != "hr" {
		t.Fatalf("expected project name hr; got %q, %v", name, err)
	}
}

func TestChangedFlag(t *testing.T) {
	var v string
	c := &cobra.Command{Use: "test"}
	c.Flags().StringVar(&v, "description", "", "")
	if got := changedFlag(c, "description", v); got != nil {
		t.Fatalf("expected nil for a flag that was not given; got %v", *got)
	}
	if err := c.ParseFlags([]string{"--description", ""}); err != nil {
		t.Fatal(err)
	}
	if got := changedFlag(c, "description", v); got == nil || *got != "" {
		t.Fatal("expected an empty value for a flag given as empty")
	}
}
