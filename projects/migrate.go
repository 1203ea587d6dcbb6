package projects

import (
	"context"
	"path/filepath"

	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/corpus"
	"gorm.io/gorm"
)

// MigrateLegacyIfNeeded makes sure the store holds at least one project.
// When it is empty, filters and rules are read from the legacy JSON files in dir and saved into a new
// Default project with nothing selected. Legacy files that cannot be read are logged and ignored.
func (s *Store) MigrateLegacyIfNeeded(ctx context.Context, dir string) (created bool, err error) {
	var count int64
	if err = s.db.WithContext(ctx).Model(&Project{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	s.log.Info("checking for legacy JSON files to migrate...")
	filters := FilterDocument{}
	rules := RuleDocument{}
	filtersPath := filepath.Join(dir, constants.LegacyFiltersFile)
	rulesPath := filepath.Join(dir, constants.LegacyRulesFile)
	if _, errRead := readDocument(filtersPath, &filters); errRead != nil {
		s.log.Warn("failed to load legacy filters: ", errRead)
		filters = FilterDocument{}
	}
	if _, errRead := readDocument(rulesPath, &rules); errRead != nil {
		s.log.Warn("failed to load legacy sensitive columns: ", errRead)
		rules = RuleDocument{}
	}
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		src := corpus.NameSource{Type: constants.NameSourceDefault}
		if len(filters) == 0 && len(rules) == 0 {
			_, errCreate := createProject(tx, constants.DefaultProjectName, "Default Project", src)
			return errCreate
		}
		p, errCreate := createProject(tx, constants.DefaultProjectName, "Migrated from legacy JSON files", src)
		if errCreate != nil {
			return errCreate
		}
		return saveProjectState(tx, p.ID, nil, filters, rules.ToRules())
	})
	if err != nil {
		return false, err
	}
	if len(filters) > 0 || len(rules) > 0 {
		s.log.Info("migrated legacy JSON config to project ", constants.DefaultProjectName)
	}
	return true, nil
}
