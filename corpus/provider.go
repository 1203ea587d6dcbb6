package corpus

import (
	"context"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
)

// NameSource is a project's choice of where name fragments come from.
// Type is one of constants.NameSourceDefault, NameSourceDatabase or NameSourceFile.
// Value is a file path for FILE or a "Table.Column" reference for DB.
type NameSource struct {
	Type  string
	Value string
}

// NormaliseSourceType maps user input onto a stored name source type.
// ok is false for unknown types.
func NormaliseSourceType(t string) (retval string, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "", constants.NameSourceDefault:
		return constants.NameSourceDefault, true
	case constants.NameSourceDatabase, "DATABASE":
		return constants.NameSourceDatabase, true
	case constants.NameSourceFile:
		return constants.NameSourceFile, true
	}
	return "", false
}

// Provider resolves a NameSource into a Corpus.
type Provider struct {
	Log       logger.Logger
	CachePath string         // previously exported corpus file; defaults to constants.ObfuscateNameFile
	Distinct  DistinctValuer // may be nil when no source database is available
}

// Resolve tries the configured source, then the cached file, then the built-in pool.
// It never fails: each failing tier is logged as a warning and the next one is tried.
func (p *Provider) Resolve(ctx context.Context, src NameSource) *Corpus {
	cachePath := p.CachePath
	if cachePath == "" {
		cachePath = constants.ObfuscateNameFile
	}
	srcType, _ := NormaliseSourceType(src.Type)
	switch srcType {
	case constants.NameSourceFile:
		path := src.Value
		if path == "" {
			path = cachePath
		}
		if c, err := LoadFile(path); err == nil {
			return p.adopt(c)
		} else {
			p.Log.Warn("name corpus file unavailable, trying the next source: ", err)
		}
	case constants.NameSourceDatabase:
		if c, err := FromDatabase(ctx, p.Distinct, src.Value); err == nil {
			return p.adopt(c)
		} else {
			p.Log.Warn("name corpus database source unavailable, trying the next source: ", err)
		}
	}
	if c, err := LoadFile(cachePath); err == nil {
		return p.adopt(c)
	} else {
		p.Log.Debug("no cached name corpus: ", err)
	}
	return p.adopt(Builtin())
}

func (p *Provider) adopt(c *Corpus) *Corpus {
	p.Log.Info("using name corpus from ", c.Source(), " with ", c.NumSurnames(), " surnames and ", c.NumGivenNames(), " given names")
	return c
}
