package actions

import (
	"context"
	"io"
	"os"

	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/August-Icekimo/DEV-DB-Cloner/projects"
)

// StoreConfig locates the project store. It is embedded in the config of every action that reads projects.
type StoreConfig struct {
	Log      logger.FieldLogger `errorTxt:"logger" mandatory:"yes"`
	ConfigDb string             // store DSN or sqlite file, defaults to constants.ConfigDbDefault
	WorkDir  string             // directory searched for legacy JSON files and used for exports
	Out      io.Writer          // defaults to os.Stdout
}

func (c *StoreConfig) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *StoreConfig) workDir() string {
	if c.WorkDir == "" {
		return "."
	}
	return c.WorkDir
}

// openStore opens the project store and creates the Default project on first use.
func openStore(ctx context.Context, cfg *StoreConfig) (*projects.Store, error) {
	s, err := projects.Open(cfg.Log, cfg.ConfigDb)
	if err != nil {
		return nil, err
	}
	created, err := s.MigrateLegacyIfNeeded(ctx, cfg.workDir())
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	if created {
		cfg.Log.Debug("first use of config store ", cfg.ConfigDb)
	}
	return s, nil
}

// withProject opens the store, finds the named project and calls fn.
func withProject(ctx context.Context, cfg *StoreConfig, name string, fn func(s *projects.Store, p projects.Project) error) error {
	s, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = s.Close()
	}()
	p, err := s.GetProjectByName(ctx, name)
	if err != nil {
		return err
	}
	return fn(s, p)
}
