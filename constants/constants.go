package constants

// General

const (
	AppName                      = "dbcloner"
	StatsCaptureFrequencySeconds = 5
	TimeFormatYearSeconds        = "20060102T150405" // used for human readable file names
	TimeFormatYearSecondsRegex   = "[0-9]{4}[0-9]{2}[0-9]{2}T[0-9]{6}"
	TimeFormatDailySalt          = "20060102" // seed salt and log file names rotate on this
	TimeFormatDailySaltRegex     = "^[0-9]{8}$"
	LogFileSuffix                = "_Clone.log"
	EmojiBang                    = "\U0001F4A5"
	EnvVarPrefix                 = "DBC" // prefix for environment variables that back CLI flags
	EnvVarConfigDb               = EnvVarPrefix + "_CONFIG_DB"
	EnvVarLogLevel               = EnvVarPrefix + "_LOG_LEVEL"
)

// Replication

const (
	ChunkSizeDefault       = 5000
	DemoRowsPerTable       = 15000
	DemoNumTables          = 250
	DemoTableNameFormat    = "TABLE_%03d"
	ConfigDbDefault        = "dbcloner.db"
	DefaultProjectName     = "Default"
	LegacyFiltersFile      = "large_table_filters.json"
	LegacyRulesFile        = "sensitive_columns.json"
	ExportFiltersSuffix    = "_filters.json"
	ExportRulesSuffix      = "_sensitive_columns.json"
	ObfuscateNameFile      = "OBFUSCATE_NAME.json"
	NameSourceDefaultTable = "EMP_DATA"
	NameSourceDefaultCol   = "emp_name"
	SpouseSeedOffset       = 139420
)

// Name source types stored against a project.

const (
	NameSourceDefault  = "DEFAULT"
	NameSourceDatabase = "DB"
	NameSourceFile     = "FILE"
)

// Connections

const (
	ConnectionTypeSqlServer = "sqlserver"
	ConnectionTypePostgres  = "postgres"
	ConnectionTypeSqlite    = "sqlite"
	SqlServerDefaultParams  = "TrustServerCertificate=true"
	EnvVarSrcServer         = "SRC_DB_SERVER"
	EnvVarSrcDatabase       = "SRC_DB_NAME"
	EnvVarSrcUser           = "SRC_DB_UID"
	EnvVarSrcPassword       = "SRC_DB_PWD"
	EnvVarTgtServer         = "TGT_DB_SERVER"
	EnvVarTgtDatabase       = "TGT_DB_NAME"
	EnvVarTgtUser           = "TGT_DB_UID"
	EnvVarTgtPassword       = "TGT_DB_PWD"
	DefaultServer           = "localhost"
	DefaultDatabase         = "hrm"
	DefaultUser             = "sa"
)
