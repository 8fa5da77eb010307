package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

// Columns keep the source export's spelling so ad-hoc queries against the
// relational table read the same as the search index fields.
var actionColumns = []string{
	"ID", "Title", "BrowserFile", "Ordinal", "DateIssued", "Published",
	"DocumentTypes", "KeyFacts", "DocumentText", "Commentary",
	"NumberOfViolations", "SettlementAmount", "OfacPenalty", "AggregatePenalty",
	"BasePenalty", "StatutoryMaximum", "VSD", "Egregious", "WillfulOrReckless",
	"Criminal", "RegulatoryProvisions", "LegalIssues", "SanctionPrograms",
	"EnforcementCharacterizations", "Industries", "AggravatingFactors",
	"MitigatingFactors",
}

type ActionRepository struct {
	db        *sql.DB
	table     string
	insertSQL string
}

func NewActionRepository(db *sql.DB, table string) *ActionRepository {
	quoted := make([]string, len(actionColumns))
	params := make([]string, len(actionColumns))
	for i, col := range actionColumns {
		quoted[i] = pgx.Identifier{col}.Sanitize()
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return &ActionRepository{
		db:    db,
		table: table,
		insertSQL: fmt.Sprintf(
			"INSERT INTO %s (%s) VALUES (%s)",
			pgx.Identifier{table}.Sanitize(),
			strings.Join(quoted, ", "),
			strings.Join(params, ","),
		),
	}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// Reset creates the table when missing and empties it otherwise, so every
// import run is a full reload.
func (r *ActionRepository) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize concurrent import runs.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026061801)); err != nil {
		return fmt.Errorf("acquire import lock: %w", err)
	}

	table := pgx.Identifier{r.table}.Sanitize()
	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	"ID" INT PRIMARY KEY,
	"Title" TEXT,
	"BrowserFile" TEXT,
	"Ordinal" DOUBLE PRECISION,
	"DateIssued" TIMESTAMPTZ,
	"Published" BOOLEAN,
	"DocumentTypes" TEXT,
	"KeyFacts" TEXT,
	"DocumentText" TEXT,
	"Commentary" TEXT,
	"NumberOfViolations" INT,
	"SettlementAmount" DOUBLE PRECISION,
	"OfacPenalty" TEXT,
	"AggregatePenalty" TEXT,
	"BasePenalty" TEXT,
	"StatutoryMaximum" TEXT,
	"VSD" TEXT,
	"Egregious" TEXT,
	"WillfulOrReckless" TEXT,
	"Criminal" TEXT,
	"RegulatoryProvisions" TEXT,
	"LegalIssues" TEXT,
	"SanctionPrograms" TEXT,
	"EnforcementCharacterizations" TEXT,
	"Industries" TEXT,
	"AggravatingFactors" TEXT,
	"MitigatingFactors" TEXT
)`, table)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create actions table: %w", err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
		return fmt.Errorf("truncate actions table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset tx: %w", err)
	}
	return nil
}

// InsertBatch writes one batch atomically. A failed batch rolls back whole;
// the caller decides whether to continue with the next one.
func (r *ActionRepository) InsertBatch(ctx context.Context, actions []domain.EnforcementAction) error {
	if len(actions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, r.insertSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, a := range actions {
		if _, err := stmt.ExecContext(ctx,
			a.ID, nullString(a.Title), nullString(a.BrowserFile), a.Ordinal, a.DateIssued, a.Published,
			nullString(a.DocumentTypes), nullString(a.KeyFacts), nullString(a.DocumentText), nullString(a.Commentary),
			a.NumberOfViolations, a.SettlementAmount, nullString(a.OfacPenalty), nullString(a.AggregatePenalty),
			nullString(a.BasePenalty), nullString(a.StatutoryMaximum), nullString(a.VSD), nullString(a.Egregious),
			nullString(a.WillfulOrReckless), nullString(a.Criminal), nullString(a.RegulatoryProvisions),
			nullString(a.LegalIssues), nullString(a.SanctionPrograms), nullString(a.EnforcementCharacterizations),
			nullString(a.Industries), nullString(a.AggravatingFactors), nullString(a.MitigatingFactors),
		); err != nil {
			return fmt.Errorf("insert action %d: %w", a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch tx: %w", err)
	}
	return nil
}

// Count reports the loaded row count, used for post-import verification.
func (r *ActionRepository) Count(ctx context.Context) (int, error) {
	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", pgx.Identifier{r.table}.Sanitize())
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count actions: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
