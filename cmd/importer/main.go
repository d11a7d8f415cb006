package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"housing-prediction-api/internal/config"
	"housing-prediction-api/internal/demographics"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	csvFile    string
	configPath string
	tableName  string
)

var rootCmd = &cobra.Command{
	Use:   "importer",
	Short: "Import a zipcode demographics CSV into PostgreSQL",
	Long: `Reads a zipcode demographics CSV, creates the target table if needed
and replaces its contents with every row of the file. All columns are
stored as TEXT so zipcodes keep their leading zeros.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	rootCmd.Flags().StringVar(&csvFile, "file", "", "Path to the CSV file to import")
	rootCmd.Flags().StringVar(&configPath, "config", "configs", "Directory containing app.env")
	rootCmd.Flags().StringVar(&tableName, "table", "", "Target table (defaults to DEMOGRAPHICS_TABLE)")
	_ = rootCmd.MarkFlagRequired("file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	logger.Info().Str("file", csvFile).Msg("starting import")

	table, err := demographics.LoadFile(csvFile)
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}
	logger.Info().Int("rows", table.Len()).Int("duplicates", table.Duplicates()).Msg("parsed records")

	// Load config
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if tableName == "" {
		tableName = cfg.DemographicsTable
	}
	if cfg.DBSource == "" {
		return fmt.Errorf("DB_SOURCE is not set")
	}

	// Connect to DB
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer conn.Close(context.Background())

	n, err := importTable(ctx, conn, tableName, table)
	if err != nil {
		return err
	}

	logger.Info().Int64("rows", n).Str("table", tableName).Msg("import complete")
	return nil
}

// importTable replaces the contents of name with table in one transaction,
// so a rerun leaves exactly the rows of the latest CSV.
func importTable(ctx context.Context, conn *pgx.Conn, name string, table *demographics.Table) (int64, error) {
	if _, err := conn.Exec(ctx, createTableSQL(name, table.Columns())); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "TRUNCATE "+pgx.Identifier{name}.Sanitize()); err != nil {
		return 0, fmt.Errorf("truncate table: %w", err)
	}

	n, err := insertRecords(ctx, tx, name, table)
	if err != nil {
		return 0, fmt.Errorf("insert records: %w", err)
	}

	if err := verifyImport(ctx, tx, name, table.Len()); err != nil {
		return 0, fmt.Errorf("verify import: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}
	return n, nil
}

// createTableSQL builds an idempotent CREATE TABLE with one TEXT column per
// CSV header. The zipcode column is the primary key.
func createTableSQL(table string, columns []string) string {
	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		def := pgx.Identifier{col}.Sanitize() + " TEXT"
		if col == demographics.ZipcodeColumn {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		pgx.Identifier{table}.Sanitize(), strings.Join(defs, ", "))
}

// copyRows lays the table out in column order. Absent cells become NULL.
func copyRows(table *demographics.Table) [][]any {
	columns := table.Columns()
	rows := table.Rows()
	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		values := make([]any, len(columns))
		for i, col := range columns {
			if v, ok := row[col]; ok {
				values[i] = v
			}
		}
		out = append(out, values)
	}
	return out
}

func insertRecords(ctx context.Context, tx pgx.Tx, name string, table *demographics.Table) (int64, error) {
	// Use CopyFrom for bulk insert
	return tx.CopyFrom(
		ctx,
		pgx.Identifier{name},
		table.Columns(),
		pgx.CopyFromRows(copyRows(table)),
	)
}

func verifyImport(ctx context.Context, tx pgx.Tx, name string, expectedCount int) error {
	var count int
	query := "SELECT COUNT(*) FROM " + pgx.Identifier{name}.Sanitize()
	if err := tx.QueryRow(ctx, query).Scan(&count); err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}
	return nil
}
