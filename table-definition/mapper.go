package tabledefinition

import (
	"strconv"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/rdbms/shared"
	"github.com/August-Icekimo/DEV-DB-Cloner/stream"
)

// Mapper converts a source column into the column type used when creating the target table.
type Mapper interface {
	Map(col stream.Column) (output string)
	GetTypeClass(inputDataType string) TypeClass
}

// TypeClass groups data types by the kind of value they hold.
type TypeClass uint32

const (
	TypeClassUnclassified TypeClass = iota + 1
	TypeClassDateTime
	TypeClassNumber
	TypeClassText
	TypeClassBinary
)

// NewMapper returns the Mapper for tables created through dialect d.
func NewMapper(d shared.Dialect) Mapper {
	return newDataTypeMapper(d, DataTypeMapping)
}

// sanitiserFuncT converts data length, precision and scale into a string ready for use in CREATE TABLE DDL.
type sanitiserFuncT func(dataLen, dataPrecision, dataScale int) string

// dataTypeMap implements Mapper.
type dataTypeMap struct {
	dialect       shared.Dialect
	mapTypes      map[string]string
	mapSanitisers map[string]sanitiserFuncT
	mapClasses    map[string]TypeClass
}

// Map returns the target column type for col.
// Text columns always get the dialect's wide text type so masked values never overflow their column.
// Types that are not in the mapping are created as wide text too.
func (o dataTypeMap) Map(col stream.Column) (output string) {
	key := normaliseDataType(col.DatabaseType)
	if o.GetTypeClass(key) == TypeClassText {
		return o.dialect.WideTextType
	}
	v, ok := o.mapTypes[key]
	if !ok {
		return o.dialect.WideTextType
	}
	return v + o.mapSanitisers[key](int(col.Length), int(col.Precision), int(col.Scale))
}

// GetTypeClass returns the TypeClass of a source data type or TypeClassUnclassified if it is not known.
func (o dataTypeMap) GetTypeClass(inputDataType string) TypeClass {
	return getTypeClass(o.mapClasses, inputDataType)
}

func getTypeClass(classes map[string]TypeClass, inputDataType string) TypeClass {
	v, ok := classes[normaliseDataType(inputDataType)]
	if !ok {
		return TypeClassUnclassified
	}
	return v
}

// normaliseDataType lower cases a type name and drops any length suffix, so VARCHAR(20) becomes varchar.
func normaliseDataType(t string) string {
	if i := strings.Index(t, "("); i >= 0 {
		t = t[:i]
	}
	return strings.ToLower(strings.TrimSpace(t))
}

var typeClasses = newDataTypeMapper(shared.SqliteDialect, DataTypeMapping).mapClasses

// IsText reports whether values of the source data type should be handled as strings.
func IsText(inputDataType string) bool {
	return getTypeClass(typeClasses, inputDataType) == TypeClassText
}

// IsBinary reports whether values of the source data type are raw bytes.
func IsBinary(inputDataType string) bool {
	return getTypeClass(typeClasses, inputDataType) == TypeClassBinary
}

// dataTypeLink maps a driver's type name onto the type to create in each target dialect.
type dataTypeLink struct {
	SourceDataType string
	SqlServerType  string
	PostgresType   string
	SqliteType     string
	SanitiserFunc  sanitiserFuncT
	TypeClass      TypeClass
}

func (l dataTypeLink) target(d shared.Dialect) string {
	switch d.Name {
	case shared.PostgresDialect.Name:
		return l.PostgresType
	case shared.SqliteDialect.Name:
		return l.SqliteType
	}
	return l.SqlServerType
}

func newDataTypeMapper(d shared.Dialect, types []dataTypeLink) dataTypeMap {
	dtm := dataTypeMap{dialect: d}
	dtm.mapTypes = make(map[string]string)
	dtm.mapSanitisers = make(map[string]sanitiserFuncT)
	dtm.mapClasses = make(map[string]TypeClass)
	for _, row := range types { // for each data type link...
		// Save the src vs target mapping.
		dtm.mapTypes[row.SourceDataType] = row.target(d)
		dtm.mapSanitisers[row.SourceDataType] = row.SanitiserFunc
		dtm.mapClasses[row.SourceDataType] = row.TypeClass
	}
	if d.Name == shared.SqliteDialect.Name { // SQLite types carry no length or precision.
		for k := range dtm.mapSanitisers {
			dtm.mapSanitisers[k] = sanitiseBlank
		}
	}
	return dtm
}

// DataTypeMapping lists the type names reported by the SQL Server, PostgreSQL and SQLite drivers.
var DataTypeMapping = []dataTypeLink{
	// SQL Server.
	{SourceDataType: "bigint", SqlServerType: "bigint", PostgresType: "bigint", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "binary", SqlServerType: "varbinary(max)", PostgresType: "bytea", SqliteType: "blob", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassBinary},
	{SourceDataType: "bit", SqlServerType: "bit", PostgresType: "boolean", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "char", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	{SourceDataType: "date", SqlServerType: "date", PostgresType: "date", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassDateTime},
	{SourceDataType: "datetime", SqlServerType: "datetime", PostgresType: "timestamp", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassDateTime},
	{SourceDataType: "datetime2", SqlServerType: "datetime2", PostgresType: "timestamp", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassDateTime},
	{SourceDataType: "datetimeoffset", SqlServerType: "datetimeoffset", PostgresType: "timestamptz", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassDateTime},
	{SourceDataType: "decimal", SqlServerType: "decimal", PostgresType: "numeric", SqliteType: "numeric", SanitiserFunc: sanitisePrecisionScale, TypeClass: TypeClassNumber},
	{SourceDataType: "float", SqlServerType: "float", PostgresType: "double precision", SqliteType: "real", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "image", SqlServerType: "varbinary(max)", PostgresType: "bytea", SqliteType: "blob", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassBinary},
	{SourceDataType: "int", SqlServerType: "int", PostgresType: "integer", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "money", SqlServerType: "money", PostgresType: "numeric", SqliteType: "numeric", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "nchar", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	{SourceDataType: "ntext", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	{SourceDataType: "numeric", SqlServerType: "numeric", PostgresType: "numeric", SqliteType: "numeric", SanitiserFunc: sanitisePrecisionScale, TypeClass: TypeClassNumber},
	{SourceDataType: "nvarchar", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	{SourceDataType: "real", SqlServerType: "real", PostgresType: "real", SqliteType: "real", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "smalldatetime", SqlServerType: "smalldatetime", PostgresType: "timestamp", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassDateTime},
	{SourceDataType: "smallint", SqlServerType: "smallint", PostgresType: "smallint", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "smallmoney", SqlServerType: "smallmoney", PostgresType: "numeric", SqliteType: "numeric", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "text", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	{SourceDataType: "time", SqlServerType: "time", PostgresType: "time", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassDateTime},
	{SourceDataType: "tinyint", SqlServerType: "tinyint", PostgresType: "smallint", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "uniqueidentifier", SqlServerType: "uniqueidentifier", PostgresType: "uuid", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassUnclassified},
	{SourceDataType: "varbinary", SqlServerType: "varbinary(max)", PostgresType: "bytea", SqliteType: "blob", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassBinary},
	{SourceDataType: "varchar", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	{SourceDataType: "xml", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	// PostgreSQL (pgx).
	{SourceDataType: "bool", SqlServerType: "bit", PostgresType: "boolean", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "bpchar", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	{SourceDataType: "bytea", SqlServerType: "varbinary(max)", PostgresType: "bytea", SqliteType: "blob", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassBinary},
	{SourceDataType: "float4", SqlServerType: "real", PostgresType: "real", SqliteType: "real", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "float8", SqlServerType: "float", PostgresType: "double precision", SqliteType: "real", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "int2", SqlServerType: "smallint", PostgresType: "smallint", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "int4", SqlServerType: "int", PostgresType: "integer", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "int8", SqlServerType: "bigint", PostgresType: "bigint", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
	{SourceDataType: "json", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	{SourceDataType: "jsonb", SqlServerType: "nvarchar", PostgresType: "text", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassText},
	{SourceDataType: "timestamp", SqlServerType: "datetime2", PostgresType: "timestamp", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassDateTime},
	{SourceDataType: "timestamptz", SqlServerType: "datetimeoffset", PostgresType: "timestamptz", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassDateTime},
	{SourceDataType: "uuid", SqlServerType: "uniqueidentifier", PostgresType: "uuid", SqliteType: "text", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassUnclassified},
	// SQLite declared types.
	{SourceDataType: "blob", SqlServerType: "varbinary(max)", PostgresType: "bytea", SqliteType: "blob", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassBinary},
	{SourceDataType: "integer", SqlServerType: "bigint", PostgresType: "bigint", SqliteType: "integer", SanitiserFunc: sanitiseBlank, TypeClass: TypeClassNumber},
}

// SANITISER FUNCTIONS.

func sanitiseBlank(dataLen, dataPrecision, dataScale int) string {
	return ""
}

func sanitisePrecisionScale(dataLen, dataPrecision, dataScale int) string {
	return getDataPrecisionStr(dataPrecision) + getDataScaleStr(dataPrecision, dataScale)
}

// HELPER FUNCTIONS.

// getDataPrecisionStr returns "(<N>" if precision N exists or "" if it doesn't.
// You can't have a precision without a scale.
func getDataPrecisionStr(dataPrecision int) string {
	if dataPrecision > 0 { // if we have a useful Precision then we'll return it...
		return "(" + strconv.Itoa(dataPrecision)
	} else {
		return ""
	}
}

// getDataScaleStr return a suffix string for dataScale N: ",<N>)" if N exists or ")" if it doesn't.
func getDataScaleStr(dataPrecision int, dataScale int) string {
	if dataPrecision > 0 { // if we have a scale and useful precision...
		return "," + strconv.Itoa(dataScale) + ")"
	} else {
		return ""
	}
}
