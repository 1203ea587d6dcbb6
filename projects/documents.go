package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/anonymize"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/helper"
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// FilterDocument maps table name -> filter clause.
type FilterDocument map[string]string

// RuleDocument maps table name -> column name -> rule.
type RuleDocument map[string]map[string]RuleEntry

// RuleEntry is written as the two element array ["function", "seedColumn" | null].
type RuleEntry struct {
	Function   string
	SeedColumn string
}

func (e RuleEntry) MarshalJSON() ([]byte, error) {
	var seed *string
	if e.SeedColumn != "" {
		seed = &e.SeedColumn
	}
	return json.Marshal([]interface{}{e.Function, seed})
}

func (e *RuleEntry) UnmarshalJSON(data []byte) error {
	var pair []*string
	if err := json.Unmarshal(data, &pair); err != nil {
		return errors.Wrap(err, "rule must be an array of [function, seed column]")
	}
	if len(pair) < 2 || pair[0] == nil {
		return fmt.Errorf("rule must be an array of [function, seed column]; got %v", string(data))
	}
	e.Function = *pair[0]
	e.SeedColumn = stringOrEmpty(pair[1])
	return nil
}

// ToRules converts the document to the rule set used by the store.
func (d RuleDocument) ToRules() anonymize.Rules {
	retval := make(anonymize.Rules, len(d))
	for table, cols := range d {
		m := make(map[string]anonymize.Rule, len(cols))
		for col, e := range cols {
			m[col] = anonymize.Rule{Function: e.Function, SeedColumn: e.SeedColumn}
		}
		retval[table] = m
	}
	return retval
}

// RuleDocumentFromRules converts a rule set to its document form.
func RuleDocumentFromRules(rules anonymize.Rules) RuleDocument {
	retval := make(RuleDocument, len(rules))
	for table, cols := range rules {
		if len(cols) == 0 {
			continue
		}
		m := make(map[string]RuleEntry, len(cols))
		for col, r := range cols {
			m[col] = RuleEntry{Function: r.Function, SeedColumn: r.SeedColumn}
		}
		retval[table] = m
	}
	return retval
}

// ExportConfig returns the non-empty filters and rules of a project.
func (s *Store) ExportConfig(ctx context.Context, id uint) (filters FilterDocument, rules RuleDocument, err error) {
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		if _, errFind := findProject(tx, id); errFind != nil {
			return errFind
		}
		cfg, errCfg := getProjectConfig(tx, id)
		if errCfg != nil {
			return errCfg
		}
		filters = FilterDocument(cfg.Filters)
		rules = RuleDocumentFromRules(cfg.Rules)
		return nil
	})
	return
}

// ImportConfig overlays the documents onto the project's current filters and rules, table by table, keeping the
// current selection. An imported table's rules replace all of that table's existing rules.
func (s *Store) ImportConfig(ctx context.Context, id uint, filters FilterDocument, rules RuleDocument) error {
	if len(filters) == 0 && len(rules) == 0 {
		return EmptyImportError{}
	}
	return s.transaction(ctx, func(tx *gorm.DB) error {
		if _, err := findProject(tx, id); err != nil {
			return err
		}
		cfg, err := getProjectConfig(tx, id)
		if err != nil {
			return err
		}
		for table, clause := range filters {
			cfg.Filters[table] = clause
		}
		for table, cols := range rules.ToRules() {
			cfg.Rules[table] = cols
		}
		return saveProjectState(tx, id, cfg.Selected, cfg.Filters, cfg.Rules)
	})
}

// ExportFileNames returns the filters and rules file paths for a project name or prefix in dir.
func ExportFileNames(dir string, name string) (filtersPath string, rulesPath string) {
	safe := helper.SafeFileName(name)
	return filepath.Join(dir, safe+constants.ExportFiltersSuffix), filepath.Join(dir, safe+constants.ExportRulesSuffix)
}

// WriteExportFiles writes both documents into dir and returns the paths written.
func WriteExportFiles(dir string, projectName string, filters FilterDocument, rules RuleDocument) (filtersPath string, rulesPath string, err error) {
	filtersPath, rulesPath = ExportFileNames(dir, projectName)
	if filters == nil {
		filters = FilterDocument{}
	}
	if rules == nil {
		rules = RuleDocument{}
	}
	if err = writeDocument(filtersPath, filters); err != nil {
		return
	}
	err = writeDocument(rulesPath, rules)
	return
}

// writeDocument writes v as JSON indented by two spaces, leaving non-ASCII text as is.
func writeDocument(path string, v interface{}) error {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrapf(err, "error encoding %v", path)
	}
	if err := ioutil.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "error writing %v", path)
	}
	return nil
}

// ReadImportFiles reads {prefix}_filters.json and {prefix}_sensitive_columns.json from dir.
// A missing file is logged and treated as empty. EmptyImportError is returned when both come back empty.
func ReadImportFiles(log logger.Logger, dir string, prefix string) (filters FilterDocument, rules RuleDocument, err error) {
	filtersPath, rulesPath := ExportFileNames(dir, prefix)
	filters = FilterDocument{}
	rules = RuleDocument{}
	found, err := readDocument(filtersPath, &filters)
	if err != nil {
		return nil, nil, err
	}
	if found {
		log.Info("loaded filters from ", filtersPath)
	} else {
		log.Warn("filters file not found: ", filtersPath)
	}
	found, err = readDocument(rulesPath, &rules)
	if err != nil {
		return nil, nil, err
	}
	if found {
		log.Info("loaded sensitive columns from ", rulesPath)
	} else {
		log.Warn("sensitive columns file not found: ", rulesPath)
	}
	if len(filters) == 0 && len(rules) == 0 {
		return nil, nil, EmptyImportError{Paths: []string{filtersPath, rulesPath}}
	}
	return
}

// readDocument unmarshals the JSON or YAML file at path into v.
// found is false when the file does not exist.
func readDocument(path string, v interface{}) (found bool, err error) {
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "error reading %v", path)
	}
	if strings.TrimSpace(string(data)) == "" {
		return true, nil
	}
	if err = yaml.Unmarshal(data, v); err != nil {
		return true, errors.Wrapf(err, "error parsing %v", path)
	}
	return true, nil
}
