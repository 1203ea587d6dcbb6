package projects

import (
	"time"
)

// Project is a named replication profile.
type Project struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	Name            string `gorm:"uniqueIndex;not null"`
	Description     string
	NameSourceType  string `gorm:"not null;default:DEFAULT"`
	NameSourceValue *string
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Project) TableName() string {
	return "projects"
}

// TableConfig is a table referenced by a project. It belongs to the project given by ProjectID.
type TableConfig struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	ProjectID    uint   `gorm:"not null;uniqueIndex:uq_project_table"`
	Table        string `gorm:"column:table_name;not null;uniqueIndex:uq_project_table"`
	IsSelected   bool   `gorm:"not null;default:false"`
	FilterClause *string
}

func (TableConfig) TableName() string {
	return "project_tables"
}

// ColumnRule assigns a masking function to a column. It belongs to the table config given by TableConfigID.
type ColumnRule struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	TableConfigID uint   `gorm:"column:project_table_id;not null;uniqueIndex:uq_table_column"`
	ColumnName    string `gorm:"not null;uniqueIndex:uq_table_column"`
	FunctionName  string `gorm:"not null"`
	SeedColumn    *string
}

func (ColumnRule) TableName() string {
	return "sensitive_columns"
}

func stringPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
