package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// Leading keywords of statements that return rows.
var rowKeywords = map[string]bool{
	"SELECT":   true,
	"SHOW":     true,
	"DESCRIBE": true,
	"DESC":     true,
	"EXPLAIN":  true,
	"WITH":     true,
	"VALUES":   true,
	"TABLE":    true,
}

// execute runs the query on MySQL. Statements that return rows are printed
// tab-separated with a header line; others print the affected row count.
func (a *app) execute(ctx context.Context, dsn, query string) error {
	conf, err := mysql.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("invalid DSN: %w", err)
	}

	connector, err := mysql.NewConnector(conf)
	if err != nil {
		return fmt.Errorf("failed to create connector: %w", err)
	}
	db := sql.OpenDB(connector)
	defer func() {
		if err := db.Close(); err != nil {
			a.logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if timeout := a.cfg.Database.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	a.logger.Debug("Executing query",
		zap.String("addr", conf.Addr),
		zap.String("database", conf.DBName))

	if returnsRows(query) {
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		defer rows.Close()
		return printRows(a.stdout, rows)
	}

	res, err := db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("exec failed: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	_, err = fmt.Fprintf(a.stdout, "affected rows: %d\n", affected)
	return err
}

func returnsRows(query string) bool {
	query = strings.TrimLeft(query, " \t\r\n(")
	end := strings.IndexAny(query, " \t\r\n(")
	if end >= 0 {
		query = query[:end]
	}
	return rowKeywords[strings.ToUpper(query)]
}

func printRows(out io.Writer, rows *sql.Rows) error {
	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to get columns: %w", err)
	}
	if err := writeRow(out, cols); err != nil {
		return err
	}

	vals := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for ind := range vals {
		dest[ind] = &vals[ind]
	}

	fields := make([]string, len(cols))
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}
		for ind, val := range vals {
			fields[ind] = formatField(val)
		}
		if err := writeRow(out, fields); err != nil {
			return err
		}
	}
	return rows.Err()
}

func formatField(val sql.NullString) string {
	if !val.Valid {
		return "NULL"
	}
	return val.String
}

func writeRow(out io.Writer, fields []string) error {
	_, err := fmt.Fprintln(out, strings.Join(fields, "\t"))
	return err
}
