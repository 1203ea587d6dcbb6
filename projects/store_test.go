package projects

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/August-Icekimo/DEV-DB-Cloner/anonymize"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(logger.NewLogger("projects-test", "error", false), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func createTestProject(t *testing.T, s *Store, name string) Project {
	t.Helper()
	p, err := s.CreateProject(context.Background(), name, "", "", "")
	require.NoError(t, err)
	return p
}

func TestCreateProjectRejectsDuplicateName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, s, "hr")
	assert.Equal(t, constants.NameSourceDefault, p.NameSourceType)
	assert.NotZero(t, p.ID)

	_, err := s.CreateProject(ctx, "hr", "again", "", "")
	var dup DuplicateNameError
	require.True(t, errors.As(err, &dup), "expected DuplicateNameError; got %v", err)
	assert.Equal(t, "hr", dup.Name)

	_, err = s.CreateProject(ctx, "  ", "", "", "")
	assert.True(t, errors.As(err, &ValidationError{}))

	_, err = s.CreateProject(ctx, "other", "", "SOMEWHERE", "")
	assert.True(t, errors.As(err, &ValidationError{}))

	p, err = s.CreateProject(ctx, "db names", "", "database", "EMP_DATA.emp_name")
	require.NoError(t, err)
	assert.Equal(t, constants.NameSourceDatabase, p.NameSourceType)
}

func TestGetProjectConfigOfAbsentProjectIsEmpty(t *testing.T) {
	s := openTestStore(t)
	cfg, err := s.GetProjectConfig(context.Background(), 42)
	require.NoError(t, err)
	assert.Empty(t, cfg.Selected)
	assert.Empty(t, cfg.Filters)
	assert.Empty(t, cfg.Rules)
	assert.Equal(t, constants.NameSourceDefault, cfg.NameSource.Type)

	_, err = s.GetProject(context.Background(), 42)
	assert.True(t, errors.As(err, &ProjectNotFoundError{}))
	_, err = s.GetProjectByName(context.Background(), "nope")
	assert.True(t, errors.As(err, &ProjectNotFoundError{}))
}

func TestSaveProjectStateRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, s, "hr")
	rules := anonymize.Rules{
		"EMP_DATA": {
			"emp_name":   {Function: "nameSynthesis", SeedColumn: "emp_no"},
			"license_id": {Function: anonymize.FuncAnonymizeId},
		},
	}
	filters := map[string]string{"EMP_DATA": "data_year = '114'", "SYSTEM_LOG": ""}
	require.NoError(t, s.SaveProjectState(ctx, p.ID, []string{"EMP_DATA", "DEPT"}, filters, rules))

	cfg, err := s.GetProjectConfig(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"DEPT", "EMP_DATA"}, cfg.Selected)
	assert.Equal(t, map[string]string{"EMP_DATA": "data_year = '114'"}, cfg.Filters)
	expected := anonymize.Rules{
		"EMP_DATA": {
			"emp_name":   {Function: anonymize.FuncObfuscateName, SeedColumn: "emp_no"},
			"license_id": {Function: anonymize.FuncAnonymizeId},
		},
	}
	assert.Equal(t, expected, cfg.Rules)

	// Saving the same state again changes nothing.
	var before int64
	require.NoError(t, s.db.Model(&TableConfig{}).Count(&before).Error)
	require.NoError(t, s.SaveProjectState(ctx, p.ID, cfg.Selected, cfg.Filters, cfg.Rules))
	again, err := s.GetProjectConfig(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
	var after int64
	require.NoError(t, s.db.Model(&TableConfig{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestSaveProjectStateDeselectKeepsRules(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, s, "hr")
	rules := anonymize.Rules{"EMP_DATA": {"tel": {Function: anonymize.FuncObfuscatePhone, SeedColumn: "emp_no"}}}
	filters := map[string]string{"EMP_DATA": "1 = 1"}
	require.NoError(t, s.SaveProjectState(ctx, p.ID, []string{"EMP_DATA"}, filters, rules))

	// A later save that does not mention EMP_DATA only deselects it.
	require.NoError(t, s.SaveProjectState(ctx, p.ID, []string{"DEPT"}, nil, nil))
	var tc TableConfig
	require.NoError(t, s.db.Where("project_id = ? AND table_name = ?", p.ID, "EMP_DATA").First(&tc).Error)
	assert.False(t, tc.IsSelected)
	assert.Equal(t, "1 = 1", stringOrEmpty(tc.FilterClause))

	cfg, err := s.GetProjectConfig(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"DEPT"}, cfg.Selected)
	assert.Equal(t, rules, cfg.Rules)
}

func TestSaveProjectStateRollsBackOnUnknownFunction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, s, "hr")
	require.NoError(t, s.SaveProjectState(ctx, p.ID, []string{"A"}, nil, nil))

	bad := anonymize.Rules{"B": {"col": {Function: "rot13"}}}
	err := s.SaveProjectState(ctx, p.ID, []string{"B"}, nil, bad)
	var unknown UnknownFunctionError
	require.True(t, errors.As(err, &unknown), "expected UnknownFunctionError; got %v", err)
	assert.Equal(t, "rot13", unknown.Function)
	assert.True(t, errors.As(err, &anonymize.UnknownFunctionError{}))

	cfg, err := s.GetProjectConfig(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, cfg.Selected)
	assert.Empty(t, cfg.Rules)

	err = s.SaveProjectState(ctx, 999, nil, nil, nil)
	assert.True(t, errors.As(err, &ProjectNotFoundError{}))
}

func TestCloneProjectIsIndependent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	src := createTestProject(t, s, "hr")
	require.NoError(t, s.SaveProjectState(ctx, src.ID, []string{"EMP_DATA"}, DefaultFilters(), DefaultRules()))

	clone, err := s.CloneProject(ctx, src.ID, "hr copy")
	require.NoError(t, err)
	assert.Equal(t, "Cloned from [hr]", clone.Description)

	srcCfg, err := s.GetProjectConfig(ctx, src.ID)
	require.NoError(t, err)
	cloneCfg, err := s.GetProjectConfig(ctx, clone.ID)
	require.NoError(t, err)
	assert.Equal(t, srcCfg, cloneCfg)

	require.NoError(t, s.SaveProjectState(ctx, clone.ID, nil, nil, anonymize.Rules{"EMP_DATA": {}}))
	srcAfter, err := s.GetProjectConfig(ctx, src.ID)
	require.NoError(t, err)
	assert.Equal(t, srcCfg, srcAfter)

	_, err = s.CloneProject(ctx, src.ID, "hr copy")
	assert.True(t, errors.As(err, &DuplicateNameError{}))
	_, err = s.CloneProject(ctx, 999, "x")
	assert.True(t, errors.As(err, &ProjectNotFoundError{}))
}

func TestDeleteProjectCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, s, "hr")
	keep := createTestProject(t, s, "keep")
	require.NoError(t, s.SaveProjectState(ctx, p.ID, []string{"EMP_DATA"}, DefaultFilters(), DefaultRules()))
	require.NoError(t, s.SaveProjectState(ctx, keep.ID, []string{"EMP_DATA"}, nil, DefaultRules()))

	require.NoError(t, s.DeleteProject(ctx, p.ID))
	require.NoError(t, s.DeleteProject(ctx, p.ID))

	var tables, rules int64
	require.NoError(t, s.db.Model(&TableConfig{}).Where("project_id = ?", p.ID).Count(&tables).Error)
	assert.Zero(t, tables)
	cfg, err := s.GetProjectConfig(ctx, keep.ID)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), cfg.Rules)
	require.NoError(t, s.db.Model(&ColumnRule{}).Count(&rules).Error)
	assert.EqualValues(t, 15, rules)

	list, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "keep", list[0].Name)
}

func TestUpdateProjectSettings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, s, "hr")
	createTestProject(t, s, "taken")

	err := s.UpdateProjectSettings(ctx, p.ID, ProjectSettings{Name: "taken"})
	assert.True(t, errors.As(err, &DuplicateNameError{}))

	settings := ProjectSettings{Name: "hr2", Description: "renamed"}
	settings.NameSource.Type = "FILE"
	settings.NameSource.Value = "names.json"
	require.NoError(t, s.UpdateProjectSettings(ctx, p.ID, settings))
	got, err := s.GetProjectByName(ctx, "hr2")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Description)
	assert.Equal(t, constants.NameSourceFile, got.NameSourceType)
	assert.Equal(t, "names.json", stringOrEmpty(got.NameSourceValue))

	err = s.UpdateProjectSettings(ctx, 999, settings)
	assert.True(t, errors.As(err, &ProjectNotFoundError{}))
}

func TestExportImportFiles(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	log := logger.NewLogger("projects-test", "error", false)
	dir, err := ioutil.TempDir("", "dbcloner-export")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	src := createTestProject(t, s, "my project")
	require.NoError(t, s.SaveProjectState(ctx, src.ID, []string{"EMP_DATA"}, DefaultFilters(), DefaultRules()))
	filters, rules, err := s.ExportConfig(ctx, src.ID)
	require.NoError(t, err)
	filtersPath, rulesPath, err := WriteExportFiles(dir, src.Name, filters, rules)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "my_project_filters.json"), filtersPath)
	assert.Equal(t, filepath.Join(dir, "my_project_sensitive_columns.json"), rulesPath)

	data, err := ioutil.ReadFile(rulesPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"emp_ename": [
      "clear_content",
      null
    ]`)

	dst := createTestProject(t, s, "target")
	require.NoError(t, s.SaveProjectState(ctx, dst.ID, []string{"DEPT"}, map[string]string{"DEPT": "x = 1"},
		anonymize.Rules{"EMP_DATA": {"old_col": {Function: anonymize.FuncClearContent}}}))
	inFilters, inRules, err := ReadImportFiles(log, dir, "my_project")
	require.NoError(t, err)
	require.NoError(t, s.ImportConfig(ctx, dst.ID, inFilters, inRules))

	cfg, err := s.GetProjectConfig(ctx, dst.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"DEPT"}, cfg.Selected)
	assert.Equal(t, "x = 1", cfg.Filters["DEPT"])
	assert.Equal(t, DefaultFilters()["SYSTEM_LOG"], cfg.Filters["SYSTEM_LOG"])
	// Imported tables replace the existing rules of that table.
	assert.Equal(t, DefaultRules(), cfg.Rules)

	_, _, err = ReadImportFiles(log, dir, "missing")
	assert.True(t, errors.As(err, &EmptyImportError{}))
	assert.True(t, errors.As(s.ImportConfig(ctx, dst.ID, nil, nil), &EmptyImportError{}))
	_, _, err = s.ExportConfig(ctx, 999)
	assert.True(t, errors.As(err, &ProjectNotFoundError{}))
}

func TestReadImportFilesAcceptsYaml(t *testing.T) {
	dir, err := ioutil.TempDir("", "dbcloner-import")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	doc := "EMP_DATA:\n  emp_name: [obfuscate_name, emp_no]\n  license_id: [anonymize_id, null]\n"
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "p"+constants.ExportRulesSuffix), []byte(doc), 0644))

	filters, rules, err := ReadImportFiles(logger.NewLogger("projects-test", "error", false), dir, "p")
	require.NoError(t, err)
	assert.Empty(t, filters)
	assert.Equal(t, RuleEntry{Function: "obfuscate_name", SeedColumn: "emp_no"}, rules["EMP_DATA"]["emp_name"])
	assert.Equal(t, RuleEntry{Function: "anonymize_id"}, rules["EMP_DATA"]["license_id"])
}

func TestRuleEntryRejectsMalformedRule(t *testing.T) {
	var e RuleEntry
	assert.Error(t, e.UnmarshalJSON([]byte(`"obfuscate_name"`)))
	assert.Error(t, e.UnmarshalJSON([]byte(`["obfuscate_name"]`)))
	assert.NoError(t, e.UnmarshalJSON([]byte(`["obfuscate_name", null]`)))
	assert.Equal(t, RuleEntry{Function: "obfuscate_name"}, e)
}

func TestMigrateLegacyIfNeeded(t *testing.T) {
	ctx := context.Background()
	dir, err := ioutil.TempDir("", "dbcloner-legacy")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	t.Run("no legacy files", func(t *testing.T) {
		s := openTestStore(t)
		created, err := s.MigrateLegacyIfNeeded(ctx, dir)
		require.NoError(t, err)
		assert.True(t, created)
		p, err := s.GetProjectByName(ctx, constants.DefaultProjectName)
		require.NoError(t, err)
		assert.Equal(t, "Default Project", p.Description)

		created, err = s.MigrateLegacyIfNeeded(ctx, dir)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("legacy files", func(t *testing.T) {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, constants.LegacyFiltersFile),
			[]byte(`{"SYSTEM_LOG": "log_year > '113'"}`), 0644))
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, constants.LegacyRulesFile),
			[]byte(`{"EMP_DATA": {"emp_name": ["obfuscate_name", "emp_no"]}}`), 0644))
		s := openTestStore(t)
		created, err := s.MigrateLegacyIfNeeded(ctx, dir)
		require.NoError(t, err)
		assert.True(t, created)
		p, err := s.GetProjectByName(ctx, constants.DefaultProjectName)
		require.NoError(t, err)
		assert.Equal(t, "Migrated from legacy JSON files", p.Description)
		cfg, err := s.GetProjectConfig(ctx, p.ID)
		require.NoError(t, err)
		assert.Empty(t, cfg.Selected)
		assert.Equal(t, "log_year > '113'", cfg.Filters["SYSTEM_LOG"])
		assert.Equal(t, anonymize.Rule{Function: anonymize.FuncObfuscateName, SeedColumn: "emp_no"}, cfg.Rules["EMP_DATA"]["emp_name"])
	})

	t.Run("unreadable legacy file", func(t *testing.T) {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, constants.LegacyFiltersFile), []byte(`{not json`), 0644))
		require.NoError(t, os.Remove(filepath.Join(dir, constants.LegacyRulesFile)))
		s := openTestStore(t)
		created, err := s.MigrateLegacyIfNeeded(ctx, dir)
		require.NoError(t, err)
		assert.True(t, created)
		p, err := s.GetProjectByName(ctx, constants.DefaultProjectName)
		require.NoError(t, err)
		assert.Equal(t, "Default Project", p.Description)
	})
}
