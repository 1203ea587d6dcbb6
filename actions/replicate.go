package actions

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/anonymize"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/corpus"
	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/August-Icekimo/DEV-DB-Cloner/projects"
	"github.com/August-Icekimo/DEV-DB-Cloner/rdbms"
	"github.com/August-Icekimo/DEV-DB-Cloner/rdbms/shared"
	"github.com/August-Icekimo/DEV-DB-Cloner/replicate"
	"github.com/August-Icekimo/DEV-DB-Cloner/stats"
)

// demoChunkDelay slows demo mode down enough to watch the progress output.
const demoChunkDelay = 100 * time.Millisecond

// ConnectionsConfig holds the source and target databases and what to do when they cannot be reached.
type ConnectionsConfig struct {
	Source        shared.ConnectionDetails
	Target        shared.ConnectionDetails
	Demo          bool // use synthetic data instead of connecting
	DemoOnFailure bool // switch to demo mode if a connection fails
}

type ReplicationConfig struct {
	StoreConfig
	ConnectionsConfig
	Project   string    `errorTxt:"project" mandatory:"yes"`
	Tables    []string  // overrides the project's table selection
	ChunkSize int       // rows per chunk
	Progress  io.Writer // progress lines, defaults to os.Stderr
	// Confirm is asked before any data is copied. The run is abandoned if it returns false.
	Confirm func(message string) bool
	Now     func() time.Time // clock used for the daily salt
}

// endpoints are the opened source and target of a run.
type endpoints struct {
	source  replicate.Source
	target  replicate.Target
	srcConn *rdbms.Connection // nil in demo mode
	demo    bool
	closers []func() error
}

func (e *endpoints) Close() {
	for _, fn := range e.closers {
		_ = fn()
	}
}

// distinctValuer returns the source connection for building a name corpus, or nil in demo mode.
func (e *endpoints) distinctValuer() corpus.DistinctValuer {
	if e.srcConn == nil {
		return nil
	}
	return e.srcConn
}

func demoEndpoints() *endpoints {
	return &endpoints{source: &replicate.DemoSource{Delay: demoChunkDelay}, target: replicate.DemoTarget{}, demo: true}
}

// openEndpoints connects to the source and target databases.
func openEndpoints(log logger.Logger, cfg ConnectionsConfig, needTarget bool) (*endpoints, error) {
	if cfg.Demo {
		log.Info("running in demo mode")
		return demoEndpoints(), nil
	}
	e := &endpoints{}
	src, err := rdbms.OpenDbConnection(log, cfg.Source)
	if err == nil {
		e.source, e.srcConn = src, src
		e.closers = append(e.closers, src.Close)
		if needTarget {
			var tgt *rdbms.Connection
			if tgt, err = rdbms.OpenDbConnection(log, cfg.Target); err == nil {
				e.target = tgt
				e.closers = append(e.closers, tgt.Close)
			}
		}
	}
	if err != nil {
		e.Close()
		if cfg.DemoOnFailure {
			log.Warn("unable to open a valid connection, switching to demo mode: ", err)
			return demoEndpoints(), nil
		}
		return nil, err
	}
	return e, nil
}

// RunReplication copies the project's selected tables from the source to the target database.
func RunReplication(ctx context.Context, cfg *ReplicationConfig) (replicate.Summary, error) {
	if err := helper.ValidateStructIsPopulated(cfg); err != nil { // if the basics were not supplied...
		return replicate.Summary{}, err
	}
	log := cfg.Log
	var pc projects.ProjectConfig
	err := withProject(ctx, &cfg.StoreConfig, cfg.Project, func(s *projects.Store, p projects.Project) (err error) {
		pc, err = s.GetProjectConfig(ctx, p.ID)
		return
	})
	if err != nil {
		return replicate.Summary{}, err
	}
	tables := cfg.Tables
	if len(tables) == 0 {
		tables = pc.Selected
	}
	if len(tables) == 0 {
		return replicate.Summary{}, fmt.Errorf("no tables selected for project %q: use 'project select' or --tables", cfg.Project)
	}
	ep, err := openEndpoints(log, cfg.ConnectionsConfig, true)
	if err != nil {
		return replicate.Summary{}, err
	}
	defer ep.Close()
	// Resolve the rules against the name corpus before touching any data.
	p := &corpus.Provider{
		Log:       log,
		CachePath: filepath.Join(cfg.workDir(), constants.ObfuscateNameFile),
		Distinct:  ep.distinctValuer(),
	}
	plan, err := anonymize.NewPlan(pc.Rules, anonymize.NewRegistry(p.Resolve(ctx, pc.NameSource)))
	if err != nil {
		return replicate.Summary{}, err
	}
	if cfg.Confirm != nil && !cfg.Confirm(fmt.Sprintf("Copy %v tables of project %q?", len(tables), cfg.Project)) {
		log.Info("no tables copied")
		return replicate.Summary{NotStarted: tables}, nil
	}
	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	progressOut := cfg.Progress
	if progressOut == nil {
		progressOut = os.Stderr
	}
	// First interrupt: finish the current table then stop. Second interrupt: abort the current table too.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	var stopRequested helper.AtomBool
	chanQuit := make(chan os.Signal, 2)
	signal.Notify(chanQuit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(chanQuit)
	go func() {
		for {
			select {
			case <-chanQuit:
				if stopRequested.Get() {
					log.Warn("user abort, cancelling the current table...")
					cancel()
					return
				}
				log.Warn("user abort, stopping after the current table (interrupt again to cancel it)")
				stopRequested.Set(true)
			case <-ctx.Done():
				return
			}
		}
	}()
	e := &replicate.Engine{
		Log:       log,
		Source:    ep.source,
		Target:    ep.target,
		Plan:      plan,
		Salt:      anonymize.DailySalt(now()),
		ChunkSize: cfg.ChunkSize,
		Progress:  stats.NewRunStats(log, progressOut),
		Continue:  func() bool { return !stopRequested.Get() },
	}
	summary := e.Run(ctx, tables, pc.Filters)
	summary.Log(log)
	return summary, nil
}
