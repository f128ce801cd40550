package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/glucodb/internal/database"
	"github.com/localnerve/glucodb/internal/logger"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openConfigured()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
	rootCmd.AddCommand(migrateCmd)

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the bundled flashcards, trivia and foods that are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openConfigured()
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			result, err := database.Seed(db)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	rootCmd.AddCommand(seedCmd)

	var memory bool
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the tables and columns the models migrate to",
		RunE: func(cmd *cobra.Command, args []string) error {
			var db *gorm.DB
			var err error
			if memory {
				db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
					Logger: gormlogger.Default.LogMode(gormlogger.Silent),
				})
				if err == nil {
					err = singleConnection(db)
				}
				if err == nil {
					err = database.AutoMigrate(db)
				}
			} else {
				db, err = openConfigured()
			}
			if err != nil {
				return err
			}
			defer database.Close(db)

			return printSchema(db, cmd.OutOrStdout())
		},
	}
	schemaCmd.Flags().BoolVarP(&memory, "memory", "m", false, "migrate into an in-memory SQLite database instead of the configured one")
	rootCmd.AddCommand(schemaCmd)
}

func openConfigured() (*gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := logger.NewWithWriter(os.Stderr, "glucoctl", cfg.LogLevel)
	return database.Connect(cfg, log)
}

// singleConnection keeps an in-memory database alive on one connection
func singleConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}

// printSchema writes every table with its columns, in name order
func printSchema(db *gorm.DB, w io.Writer) error {
	migrator := db.Migrator()

	tables, err := migrator.GetTables()
	if err != nil {
		return errors.Wrap(err, "failed to list tables")
	}
	sort.Strings(tables)

	for _, table := range tables {
		columns, err := migrator.ColumnTypes(table)
		if err != nil {
			return errors.Wrapf(err, "failed to read columns of %s", table)
		}

		_, _ = fmt.Fprintf(w, "\n=== Table: %s ===\n", table)
		for _, col := range columns {
			nullable := ""
			if ok, known := col.Nullable(); known && !ok {
				nullable = " NOT NULL"
			}
			key := ""
			if pk, known := col.PrimaryKey(); known && pk {
				key = " PRIMARY KEY"
			}
			_, _ = fmt.Fprintf(w, "  %-24s %s%s%s\n", col.Name(), col.DatabaseTypeName(), nullable, key)
		}
	}
	return nil
}
