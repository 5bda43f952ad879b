// Package store persists extracted association records in a DuckDB
// database so that extracted regions can be queried with SQL afterwards.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/statgen/sumstats/internal/gwas"
)

// Store manages a DuckDB connection holding extracted association results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS association_results (
		dataset VARCHAR,
		trait VARCHAR,
		name VARCHAR,
		chrom VARCHAR,
		pos UINTEGER,
		allele_0 VARCHAR,
		allele_1 VARCHAR,
		coded_allele VARCHAR,
		effect FLOAT,
		se FLOAT,
		p FLOAT,
		PRIMARY KEY (dataset, trait, chrom, pos, allele_0, allele_1)
	)`)
	return err
}

// InsertBatch inserts extracted records for one component in a single
// transaction. Records already present (same dataset, trait and variant)
// cause the batch to fail; extractions are append-only.
func (s *Store) InsertBatch(dataset, trait string, stats []*gwas.AssociationStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO association_results
		(dataset, trait, name, chrom, pos, allele_0, allele_1, coded_allele, effect, se, p)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, stat := range stats {
		v := stat.Variant
		_, err := stmt.Exec(
			dataset,
			trait,
			v.Name,
			v.Chrom,
			v.Pos,
			v.Alleles[0],
			v.Alleles[1],
			stat.CodedAlleleString(),
			stat.Effect,
			stat.SE,
			stat.P,
		)
		if err != nil {
			return fmt.Errorf("insert record %s: %w", v, err)
		}
	}

	return tx.Commit()
}

// Count returns the total number of stored records.
func (s *Store) Count() (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM association_results`).Scan(&n)
	return n, err
}

// CountForRegion returns the number of stored records within a region.
func (s *Store) CountForRegion(chrom string, start, end uint32) (int64, error) {
	var n int64
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM association_results WHERE chrom = ? AND pos BETWEEN ? AND ?`,
		chrom, start, end,
	).Scan(&n)
	return n, err
}
