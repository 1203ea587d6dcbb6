package cmd

import (
	"context"
	"os"
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/actions"
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/logger"
	"github.com/spf13/cobra"
)

const logFileMaxSizeMb = 50

var (
	// Default values may be set at compile time.
	version          = "0.1.0"
	buildDate        = "2026-10-18T00:00+0000"
	stackDumpOnPanic bool
	logLevel         string
	logFile          string
	configDb         string
	appLog           logger.FieldLogger = logger.NewLogger(constants.AppName, "info", false)
)

var rootCmd = &cobra.Command{
	Use: constants.AppName,
	Long: `
 ___  ___     ___ _                    
|   \| _ )   / __| |___ _ _  ___ _ _  
| |) | _ \  | (__| / _ \ ' \/ -_) '_| 
|___/|___/   \___|_\___/_||_\___|_|   

dbcloner copies tables from a production database into a development database,
masking sensitive columns on the way. Projects hold the tables to copy, a WHERE
filter per table and the masking rule for each sensitive column. Masked values are
stable for a day: the same row masks to the same output until midnight.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appLog = logger.NewFileLogger(constants.AppName, logLevel, stackDumpOnPanic, logFile, logFileMaxSizeMb)
		return nil
	},
}

func init() {
	// General setup.
	cobra.EnableCommandSorting = false
	// Global flags.
	switches.addPersistentFlag(rootCmd, &logLevel, "log-level", "info", "")
	switches.addPersistentFlag(rootCmd, &logFile, "log-file", time.Now().Format(constants.TimeFormatDailySalt)+constants.LogFileSuffix, "")
	switches.addPersistentFlag(rootCmd, &configDb, "config-db", constants.ConfigDbDefault, "")
	rootCmd.PersistentFlags().BoolVar(&stackDumpOnPanic, "print-stack", false, "Print a stack dump if there is a panic")
	_ = rootCmd.PersistentFlags().MarkHidden("print-stack")
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		// Execute() prints the error.
		os.Exit(1)
	}
}

// storeConfig returns the project store settings shared by all commands.
func storeConfig() actions.StoreConfig {
	return actions.StoreConfig{Log: appLog, ConfigDb: configDb, WorkDir: "."}
}

// commandContext returns the context given to Execute, or a background context when there is none.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
