package database

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
)

// TableStats is the row count of one table.
type TableStats struct {
	Name string
	Rows int64
}

// Stats describes the state of the connected database.
type Stats struct {
	Target    string
	Tables    []TableStats
	SizeBytes int64
}

// Stats connects, lists the tables and counts their rows.
func (m *Manager) Stats(ctx context.Context) (*Stats, error) {
	db := m.db.WithContext(ctx)

	names, err := db.Migrator().GetTables()
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	sort.Strings(names)

	tables := make([]TableStats, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, name := range names {
		g.Go(func() error {
			var rows int64
			if err := m.db.WithContext(gctx).Table(name).Count(&rows).Error; err != nil {
				return fmt.Errorf("failed to count %s: %w", name, err)
			}
			tables[i] = TableStats{Name: name, Rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var size int64
	sizeQuery := "SELECT pg_database_size(current_database())"
	if m.config.Driver == "sqlite" {
		sizeQuery = "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
	}
	if err := db.Raw(sizeQuery).Scan(&size).Error; err != nil {
		return nil, fmt.Errorf("failed to read database size: %w", err)
	}

	return &Stats{Target: m.config.Redacted(), Tables: tables, SizeBytes: size}, nil
}
