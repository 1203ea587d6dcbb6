package actions

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/corpus"
	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/projects"
)

type CorpusExportConfig struct {
	StoreConfig
	ConnectionsConfig
	Project string // name source to use, defaults to the built-in pool when empty
	Output  string // defaults to OBFUSCATE_NAME.json in the working directory
}

// RunCorpusExport resolves the project's name corpus and saves it so later runs can use it as a cache.
// The source database is only opened when the project takes names from it.
func RunCorpusExport(ctx context.Context, cfg *CorpusExportConfig) error {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return err
	}
	src := corpus.NameSource{Type: constants.NameSourceDefault}
	if cfg.Project != "" {
		err := withProject(ctx, &cfg.StoreConfig, cfg.Project, func(s *projects.Store, p projects.Project) error {
			pc, err := s.GetProjectConfig(ctx, p.ID)
			src = pc.NameSource
			return err
		})
		if err != nil {
			return err
		}
	}
	output := cfg.Output
	if output == "" {
		output = filepath.Join(cfg.workDir(), constants.ObfuscateNameFile)
	}
	p := &corpus.Provider{Log: cfg.Log, CachePath: output}
	if t, _ := corpus.NormaliseSourceType(src.Type); t == constants.NameSourceDatabase {
		ep, err := openEndpoints(cfg.Log, cfg.ConnectionsConfig, false)
		if err != nil {
			return err
		}
		defer ep.Close()
		p.Distinct = ep.distinctValuer()
	}
	c := p.Resolve(ctx, src)
	if err := corpus.SaveFile(output, c, time.Now()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cfg.out(), "Saved %v surnames and %v given names from %v to %v\n",
		c.NumSurnames(), c.NumGivenNames(), c.Source(), output)
	return nil
}
