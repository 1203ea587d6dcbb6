// Package projects persists replication profiles: which tables a project copies, how each table is filtered and
// which columns are masked.
//
// Projects, table configs and column rules are three flat record sets. Children refer to their owner by id only,
// and every Store method runs in a single transaction that is rolled back on any error.
package projects

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/anonymize"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/corpus"
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ProjectConfig is everything the replicator needs from a project.
type ProjectConfig struct {
	Selected   []string          // selected tables in alphabetical order
	Filters    map[string]string // table -> filter clause
	Rules      anonymize.Rules
	NameSource corpus.NameSource
}

// ProjectSettings are the editable project attributes.
type ProjectSettings struct {
	Name        string
	Description string
	NameSource  corpus.NameSource
}

// Store reads and writes projects.
type Store struct {
	db  *gorm.DB
	log logger.Logger
}

// gormWriter sends GORM's own log lines to our logger.
type gormWriter struct {
	log logger.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug(fmt.Sprintf(format, args...))
}

// Open connects to the store at dsn and migrates the schema.
// A postgres:// or postgresql:// DSN uses PostgreSQL, anything else is treated as a SQLite file name or URI.
func Open(log logger.Logger, dsn string) (*Store, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = constants.ConfigDbDefault
	}
	cfg := &gorm.Config{
		Logger: gormlogger.New(gormWriter{log: log}, gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
	var db *gorm.DB
	var err error
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
		if err == nil {
			// SQLite allows one writer; a single connection also keeps :memory: databases alive.
			if sqlDB, errDB := db.DB(); errDB == nil {
				sqlDB.SetMaxOpenConns(1)
			}
		}
	}
	if err != nil {
		return nil, errors.Wrap(err, "error opening project store")
	}
	return NewStore(log, db)
}

// NewStore wraps an open GORM connection and migrates the schema.
func NewStore(log logger.Logger, db *gorm.DB) (*Store, error) {
	if errMigrate := db.AutoMigrate(&Project{}, &TableConfig{}, &ColumnRule{}); errMigrate != nil {
		return nil, errors.Wrap(errMigrate, "error migrating project store")
	}
	return &Store{db: db, log: log}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(fn)
}

// CreateProject adds a new project.
func (s *Store) CreateProject(ctx context.Context, name string, description string, nameSourceType string, nameSourceValue string) (p Project, err error) {
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		p, err = createProject(tx, name, description, corpus.NameSource{Type: nameSourceType, Value: nameSourceValue})
		return err
	})
	if err == nil {
		s.log.Info("created project ", p.Name, " with id ", p.ID)
	}
	return
}

func createProject(tx *gorm.DB, name string, description string, src corpus.NameSource) (Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Project{}, ValidationError{Message: "project name must not be empty"}
	}
	srcType, ok := corpus.NormaliseSourceType(src.Type)
	if !ok {
		return Project{}, ValidationError{Message: fmt.Sprintf("unknown name source type %q", src.Type)}
	}
	if err := checkNameIsFree(tx, name, 0); err != nil {
		return Project{}, err
	}
	p := Project{
		Name:            name,
		Description:     description,
		NameSourceType:  srcType,
		NameSourceValue: stringPtrOrNil(src.Value),
	}
	if err := tx.Create(&p).Error; err != nil {
		return Project{}, errors.Wrapf(err, "error creating project %q", name)
	}
	return p, nil
}

// checkNameIsFree returns DuplicateNameError if a project other than exceptID is called name.
func checkNameIsFree(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	q := tx.Model(&Project{}).Where("name = ?", name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return errors.Wrap(err, "error checking project name")
	}
	if count > 0 {
		return DuplicateNameError{Name: name}
	}
	return nil
}

func findProject(tx *gorm.DB, id uint) (Project, error) {
	var p Project
	err := tx.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ProjectNotFoundError{ID: id}
	}
	if err != nil {
		return p, errors.Wrapf(err, "error reading project %v", id)
	}
	return p, nil
}

// GetProject returns the project with the given id.
func (s *Store) GetProject(ctx context.Context, id uint) (p Project, err error) {
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		p, err = findProject(tx, id)
		return err
	})
	return
}

// GetProjectByName returns the project called name.
func (s *Store) GetProjectByName(ctx context.Context, name string) (p Project, err error) {
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		errFirst := tx.Where("name = ?", strings.TrimSpace(name)).First(&p).Error
		if errors.Is(errFirst, gorm.ErrRecordNotFound) {
			return ProjectNotFoundError{Name: name}
		}
		return errFirst
	})
	return
}

// ListProjects returns all projects ordered by name.
func (s *Store) ListProjects(ctx context.Context) (retval []Project, err error) {
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		return tx.Order("name").Find(&retval).Error
	})
	return
}

// UpdateProjectSettings renames a project and changes its description and name source.
func (s *Store) UpdateProjectSettings(ctx context.Context, id uint, settings ProjectSettings) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := findProject(tx, id); err != nil {
			return err
		}
		name := strings.TrimSpace(settings.Name)
		if name == "" {
			return ValidationError{Message: "project name must not be empty"}
		}
		srcType, ok := corpus.NormaliseSourceType(settings.NameSource.Type)
		if !ok {
			return ValidationError{Message: fmt.Sprintf("unknown name source type %q", settings.NameSource.Type)}
		}
		if err := checkNameIsFree(tx, name, id); err != nil {
			return err
		}
		return tx.Model(&Project{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":              name,
			"description":       settings.Description,
			"name_source_type":  srcType,
			"name_source_value": stringPtrOrNil(settings.NameSource.Value),
			"updated_at":        time.Now(),
		}).Error
	})
}

// DeleteProject removes a project with all of its table configs and rules.
// Deleting a project that does not exist is not an error.
func (s *Store) DeleteProject(ctx context.Context, id uint) error {
	return s.transaction(ctx, func(tx *gorm.DB) error {
		var tableIDs []uint
		if err := tx.Model(&TableConfig{}).Where("project_id = ?", id).Pluck("id", &tableIDs).Error; err != nil {
			return err
		}
		if len(tableIDs) > 0 {
			if err := tx.Where("project_table_id IN ?", tableIDs).Delete(&ColumnRule{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&TableConfig{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&Project{}, id).Error
	})
}

// GetProjectConfig returns the selection, filters, rules and name source of a project.
// A project that does not exist yields an empty config and no error.
func (s *Store) GetProjectConfig(ctx context.Context, id uint) (cfg ProjectConfig, err error) {
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		cfg, err = getProjectConfig(tx, id)
		return err
	})
	return
}

func getProjectConfig(tx *gorm.DB, id uint) (ProjectConfig, error) {
	cfg := ProjectConfig{
		Selected:   make([]string, 0),
		Filters:    make(map[string]string),
		Rules:      make(anonymize.Rules),
		NameSource: corpus.NameSource{Type: constants.NameSourceDefault},
	}
	p, err := findProject(tx, id)
	if errors.As(err, &ProjectNotFoundError{}) {
		return cfg, nil
	} else if err != nil {
		return cfg, err
	}
	cfg.NameSource = corpus.NameSource{Type: p.NameSourceType, Value: stringOrEmpty(p.NameSourceValue)}
	tables, err := findTableConfigs(tx, id)
	if err != nil {
		return cfg, err
	}
	names := make(map[uint]string, len(tables))
	ids := make([]uint, 0, len(tables))
	for _, tc := range tables {
		names[tc.ID] = tc.Table
		ids = append(ids, tc.ID)
		if tc.IsSelected {
			cfg.Selected = append(cfg.Selected, tc.Table)
		}
		if f := stringOrEmpty(tc.FilterClause); f != "" {
			cfg.Filters[tc.Table] = f
		}
	}
	if len(ids) == 0 {
		return cfg, nil
	}
	var rules []ColumnRule
	if err = tx.Where("project_table_id IN ?", ids).Order("column_name").Find(&rules).Error; err != nil {
		return cfg, errors.Wrap(err, "error reading column rules")
	}
	for _, r := range rules {
		table := names[r.TableConfigID]
		if cfg.Rules[table] == nil {
			cfg.Rules[table] = make(map[string]anonymize.Rule)
		}
		cfg.Rules[table][r.ColumnName] = anonymize.Rule{Function: r.FunctionName, SeedColumn: stringOrEmpty(r.SeedColumn)}
	}
	return cfg, nil
}

func findTableConfigs(tx *gorm.DB, projectID uint) (retval []TableConfig, err error) {
	err = tx.Where("project_id = ?", projectID).Order("table_name").Find(&retval).Error
	if err != nil {
		err = errors.Wrapf(err, "error reading tables of project %v", projectID)
	}
	return
}

// SaveProjectState merges the full editable state of a project into the store.
// Every table named in selected, filters or rules is created if needed, gets its selection flag and filter
// overwritten and has its rules replaced. Tables the project already has that are not named anywhere are
// only deselected, keeping their filters and rules.
func (s *Store) SaveProjectState(ctx context.Context, id uint, selected []string, filters map[string]string, rules anonymize.Rules) error {
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		return saveProjectState(tx, id, selected, filters, rules)
	})
	if err == nil {
		s.log.Debug("saved state of project ", id)
	}
	return err
}

func saveProjectState(tx *gorm.DB, id uint, selected []string, filters map[string]string, rules anonymize.Rules) error {
	if _, err := findProject(tx, id); err != nil {
		return err
	}
	canonical, err := canonicalRules(rules)
	if err != nil {
		return err
	}
	isSelected := make(map[string]bool, len(selected))
	for _, t := range selected {
		isSelected[t] = true
	}
	involved := make(map[string]struct{})
	for _, t := range selected {
		involved[t] = struct{}{}
	}
	for t := range filters {
		involved[t] = struct{}{}
	}
	for t := range canonical {
		involved[t] = struct{}{}
	}
	existing, err := findTableConfigs(tx, id)
	if err != nil {
		return err
	}
	byName := make(map[string]TableConfig, len(existing))
	for _, tc := range existing {
		byName[tc.Table] = tc
	}
	for _, table := range sortedKeys(involved) {
		if strings.TrimSpace(table) == "" {
			return ValidationError{Message: "table name must not be empty"}
		}
		tc, ok := byName[table]
		filter := stringPtrOrNil(strings.TrimSpace(filters[table]))
		if !ok { // if the table is new to this project...
			tc = TableConfig{ProjectID: id, Table: table, IsSelected: isSelected[table], FilterClause: filter}
			if err := tx.Create(&tc).Error; err != nil {
				return errors.Wrapf(err, "error creating table config %v", table)
			}
		} else {
			err := tx.Model(&TableConfig{}).Where("id = ?", tc.ID).Updates(map[string]interface{}{
				"is_selected":   isSelected[table],
				"filter_clause": filter,
			}).Error
			if err != nil {
				return errors.Wrapf(err, "error updating table config %v", table)
			}
		}
		if err := replaceRules(tx, tc.ID, canonical[table]); err != nil {
			return errors.Wrapf(err, "error replacing rules of table %v", table)
		}
	}
	for _, tc := range existing {
		if _, ok := involved[tc.Table]; ok || !tc.IsSelected {
			continue
		}
		if err := tx.Model(&TableConfig{}).Where("id = ?", tc.ID).Update("is_selected", false).Error; err != nil {
			return errors.Wrapf(err, "error deselecting table config %v", tc.Table)
		}
	}
	return tx.Model(&Project{}).Where("id = ?", id).Update("updated_at", time.Now()).Error
}

// replaceRules deletes all rules of a table config and inserts rules in column order.
func replaceRules(tx *gorm.DB, tableConfigID uint, rules map[string]anonymize.Rule) error {
	if err := tx.Where("project_table_id = ?", tableConfigID).Delete(&ColumnRule{}).Error; err != nil {
		return err
	}
	cols := make([]string, 0, len(rules))
	for col := range rules {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		r := rules[col]
		cr := ColumnRule{
			TableConfigID: tableConfigID,
			ColumnName:    col,
			FunctionName:  r.Function,
			SeedColumn:    stringPtrOrNil(strings.TrimSpace(r.SeedColumn)),
		}
		if err := tx.Create(&cr).Error; err != nil {
			return err
		}
	}
	return nil
}

// canonicalRules checks every function name and returns a copy of rules using stored names.
func canonicalRules(rules anonymize.Rules) (anonymize.Rules, error) {
	retval := make(anonymize.Rules, len(rules))
	for _, table := range rules.Tables() {
		cols := make(map[string]anonymize.Rule, len(rules[table]))
		for col, r := range rules[table] {
			if strings.TrimSpace(col) == "" {
				return nil, ValidationError{Message: fmt.Sprintf("table %v has a rule without a column name", table)}
			}
			name, ok := anonymize.CanonicalName(r.Function)
			if !ok {
				return nil, UnknownFunctionError{Table: table, Column: col, Function: r.Function, Err: anonymize.UnknownFunctionError{Function: r.Function}}
			}
			cols[col] = anonymize.Rule{Function: name, SeedColumn: r.SeedColumn}
		}
		retval[table] = cols
	}
	return retval, nil
}

// CloneProject copies a project with all of its table configs and rules under a new name.
func (s *Store) CloneProject(ctx context.Context, sourceID uint, newName string) (p Project, err error) {
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		src, err := findProject(tx, sourceID)
		if err != nil {
			return err
		}
		p, err = createProject(tx, newName, fmt.Sprintf("Cloned from [%v]", src.Name),
			corpus.NameSource{Type: src.NameSourceType, Value: stringOrEmpty(src.NameSourceValue)})
		if err != nil {
			return err
		}
		tables, err := findTableConfigs(tx, sourceID)
		if err != nil {
			return err
		}
		for _, tc := range tables {
			clone := TableConfig{ProjectID: p.ID, Table: tc.Table, IsSelected: tc.IsSelected, FilterClause: copyStringPtr(tc.FilterClause)}
			if err := tx.Create(&clone).Error; err != nil {
				return errors.Wrapf(err, "error cloning table config %v", tc.Table)
			}
			var rules []ColumnRule
			if err := tx.Where("project_table_id = ?", tc.ID).Order("column_name").Find(&rules).Error; err != nil {
				return err
			}
			for _, r := range rules {
				cr := ColumnRule{
					TableConfigID: clone.ID,
					ColumnName:    r.ColumnName,
					FunctionName:  r.FunctionName,
					SeedColumn:    copyStringPtr(r.SeedColumn),
				}
				if err := tx.Create(&cr).Error; err != nil {
					return errors.Wrapf(err, "error cloning rule %v.%v", tc.Table, r.ColumnName)
				}
			}
		}
		return nil
	})
	if err == nil {
		s.log.Info("cloned project ", sourceID, " into ", p.Name, " with id ", p.ID)
	}
	return
}

func copyStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func sortedKeys(m map[string]struct{}) []string {
	retval := make([]string, 0, len(m))
	for k := range m {
		retval = append(retval, k)
	}
	sort.Strings(retval)
	return retval
}
