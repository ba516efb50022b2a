package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lignee/internal/database/migrations"
	"lignee/internal/database/sqlc"
	"lignee/internal/lignee"
	"lignee/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the lignee.Database interface using SQLite.
type SQLiteDatabase struct {
	db      *sql.DB
	queries *sqlc.Queries
	path    string
}

// NewSQLiteDatabase creates a new SQLite database connection.
// path can be a file path or ":memory:" for in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    path,
	}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{
		db:      db,
		queries: sqlc.New(db),
		path:    "",
	}
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// This is exported for use in tools and tests that need a properly configured SQLite connection.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: an in-memory database exists per connection, and
	// PRAGMAs below are per connection too.
	db.SetMaxOpenConns(1)

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Graph reads

func (s *SQLiteDatabase) ListPersons() ([]model.Person, error) {
	rows, err := s.queries.ListPersons(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}

	persons := make([]model.Person, len(rows))
	for i := range rows {
		persons[i] = personFromRow(&rows[i])
	}
	return persons, nil
}

func (s *SQLiteDatabase) ListMarriages() ([]model.Marriage, error) {
	rows, err := s.queries.ListMarriages(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing marriages: %w", err)
	}

	marriages := make([]model.Marriage, len(rows))
	for i := range rows {
		marriages[i] = marriageFromRow(&rows[i])
	}
	return marriages, nil
}

func (s *SQLiteDatabase) ListParentRelations() ([]model.Relation, error) {
	rows, err := s.queries.ListParentRelations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing parent relations: %w", err)
	}
	return relationsFromRows(rows), nil
}

func (s *SQLiteDatabase) ListRelations() ([]model.Relation, error) {
	rows, err := s.queries.ListRelations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("listing relations: %w", err)
	}
	return relationsFromRows(rows), nil
}

func (s *SQLiteDatabase) Counts() (model.GraphCounts, error) {
	ctx := context.Background()
	var counts model.GraphCounts
	var err error

	if counts.Persons, err = s.queries.CountPersons(ctx); err != nil {
		return counts, fmt.Errorf("counting persons: %w", err)
	}
	if counts.Marriages, err = s.queries.CountMarriages(ctx); err != nil {
		return counts, fmt.Errorf("counting marriages: %w", err)
	}
	if counts.Relations, err = s.queries.CountRelations(ctx); err != nil {
		return counts, fmt.Errorf("counting relations: %w", err)
	}
	return counts, nil
}

// Graph writes

// ReplaceAll atomically swaps the stored graph for g:
//  1. Deletes relations, then marriages, then persons.
//  2. Inserts every person and maps its provisional id to the new id.
//  3. Inserts every marriage with remapped spouses and fresh ordinals.
//  4. Inserts every relation with remapped ends and marriage.
//
// Any failure rolls back the whole transaction.
func (s *SQLiteDatabase) ReplaceAll(g *model.Graph) (model.GraphCounts, error) {
	ctx := context.Background()
	var counts model.GraphCounts

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)

	if err := qtx.DeleteAllRelations(ctx); err != nil {
		return counts, fmt.Errorf("deleting relations: %w", err)
	}
	if err := qtx.DeleteAllMarriages(ctx); err != nil {
		return counts, fmt.Errorf("deleting marriages: %w", err)
	}
	if err := qtx.DeleteAllPersons(ctx); err != nil {
		return counts, fmt.Errorf("deleting persons: %w", err)
	}

	personIDs := make(map[int64]int64, len(g.Persons))
	for i := range g.Persons {
		p := &g.Persons[i]
		row, err := qtx.InsertPerson(ctx, personParams(p))
		if err != nil {
			return counts, fmt.Errorf("inserting person %d: %w", p.ID, err)
		}
		personIDs[p.ID] = row.ID
	}

	remap := func(ids map[int64]int64, id *int64, what string) (*int64, error) {
		if id == nil {
			return nil, nil
		}
		newID, ok := ids[*id]
		if !ok {
			return nil, fmt.Errorf("unknown %s %d", what, *id)
		}
		return &newID, nil
	}

	marriageIDs := make(map[int64]int64, len(g.Marriages))
	for i := range g.Marriages {
		m := g.Marriages[i]
		if m.HusbandID, err = remap(personIDs, m.HusbandID, "person"); err != nil {
			return counts, fmt.Errorf("marriage %d: %w", m.ID, err)
		}
		if m.WifeID, err = remap(personIDs, m.WifeID, "person"); err != nil {
			return counts, fmt.Errorf("marriage %d: %w", m.ID, err)
		}
		row, err := insertMarriage(ctx, qtx, &m)
		if err != nil {
			return counts, fmt.Errorf("inserting marriage %d: %w", m.ID, err)
		}
		marriageIDs[m.ID] = row.ID
	}

	for i := range g.Relations {
		r := g.Relations[i]
		person, err := remap(personIDs, &r.PersonID, "person")
		if err != nil {
			return counts, fmt.Errorf("relation %d: %w", i, err)
		}
		related, err := remap(personIDs, &r.RelatedID, "person")
		if err != nil {
			return counts, fmt.Errorf("relation %d: %w", i, err)
		}
		if r.MarriageID, err = remap(marriageIDs, r.MarriageID, "marriage"); err != nil {
			return counts, fmt.Errorf("relation %d: %w", i, err)
		}
		r.PersonID, r.RelatedID = *person, *related
		if _, err := insertRelation(ctx, qtx, &r); err != nil {
			return counts, fmt.Errorf("inserting relation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return counts, fmt.Errorf("committing transaction: %w", err)
	}

	counts.Persons = int64(len(personIDs))
	counts.Marriages = int64(len(marriageIDs))
	counts.Relations = int64(len(g.Relations))
	return counts, nil
}

func (s *SQLiteDatabase) CreatePerson(p *model.Person) (*model.Person, error) {
	row, err := s.queries.InsertPerson(context.Background(), personParams(p))
	if err != nil {
		return nil, fmt.Errorf("creating person: %w", err)
	}
	created := personFromRow(&row)
	return &created, nil
}

func (s *SQLiteDatabase) CreateMarriage(m *model.Marriage) (*model.Marriage, error) {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	row, err := insertMarriage(ctx, s.queries.WithTx(tx), m)
	if err != nil {
		return nil, fmt.Errorf("creating marriage: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	created := marriageFromRow(&row)
	return &created, nil
}

func (s *SQLiteDatabase) CreateParentRelation(childID, parentID int64, marriageID *int64) (*model.Relation, error) {
	r := model.NewParentRelation(childID, parentID, marriageID)
	row, err := insertRelation(context.Background(), s.queries, &r)
	if err != nil {
		return nil, fmt.Errorf("creating parent relation: %w", err)
	}
	created := relationFromRow(&row)
	return &created, nil
}

// CreateSiblingRelations inserts both directions of a sibling link in one
// transaction so a half-link can never be stored.
func (s *SQLiteDatabase) CreateSiblingRelations(a, b int64) error {
	ctx := context.Background()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := s.queries.WithTx(tx)
	for _, r := range model.NewSiblingRelations(a, b) {
		if _, err := insertRelation(ctx, qtx, &r); err != nil {
			return fmt.Errorf("creating sibling relation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// insertMarriage validates m and inserts it. Each spouse's ordinal is one more
// than the highest ordinal they already hold, as husband or as wife.
func insertMarriage(ctx context.Context, q *sqlc.Queries, m *model.Marriage) (sqlc.Marriage, error) {
	if err := m.Validate(); err != nil {
		return sqlc.Marriage{}, err
	}

	var husbandOrder, wifeOrder int64
	var err error
	if m.HusbandID != nil {
		if husbandOrder, err = q.GetNextMarriageOrder(ctx, nullInt64(m.HusbandID)); err != nil {
			return sqlc.Marriage{}, fmt.Errorf("computing husband ordinal: %w", err)
		}
	}
	if m.WifeID != nil {
		if wifeOrder, err = q.GetNextMarriageOrder(ctx, nullInt64(m.WifeID)); err != nil {
			return sqlc.Marriage{}, fmt.Errorf("computing wife ordinal: %w", err)
		}
	}

	return q.InsertMarriage(ctx, sqlc.InsertMarriageParams{
		HusbandID:     nullInt64(m.HusbandID),
		WifeID:        nullInt64(m.WifeID),
		MarriageDate:  nullString(m.MarriageDate),
		MarriagePlace: nullString(m.MarriagePlace),
		EndDate:       nullString(m.EndDate),
		EndType:       string(m.EndType),
		Notes:         nullString(m.Notes),
		HusbandOrder:  husbandOrder,
		WifeOrder:     wifeOrder,
	})
}

func insertRelation(ctx context.Context, q *sqlc.Queries, r *model.Relation) (sqlc.Relation, error) {
	if err := r.Validate(); err != nil {
		return sqlc.Relation{}, err
	}
	return q.InsertRelation(ctx, sqlc.InsertRelationParams{
		PersonID:   r.PersonID,
		RelatedID:  r.RelatedID,
		MarriageID: nullInt64(r.MarriageID),
		Type:       string(r.Type),
	})
}

// Operation tracking

func (s *SQLiteDatabase) CreateOperation(operation string, parameters string) (*sqlc.Operation, error) {
	ctx := context.Background()
	id, err := s.queries.InsertOperation(ctx, sqlc.InsertOperationParams{
		StartedAt:  time.Now().UTC(),
		Operation:  operation,
		Parameters: parameters,
	})
	if err != nil {
		return nil, fmt.Errorf("creating operation: %w", err)
	}

	op, err := s.queries.GetOperation(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reading operation %d: %w", id, err)
	}
	return &op, nil
}

func (s *SQLiteDatabase) FinishOperation(id int64, status string) error {
	err := s.queries.UpdateOperationFinished(context.Background(), sqlc.UpdateOperationFinishedParams{
		FinishedAt: sql.NullTime{Time: time.Now().UTC(), Valid: true},
		Status:     status,
		ID:         id,
	})
	if err != nil {
		return fmt.Errorf("finishing operation: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) ListOperations(limit int) ([]*sqlc.Operation, error) {
	ops, err := s.queries.ListOperations(context.Background(), int64(limit))
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}

	result := make([]*sqlc.Operation, len(ops))
	for i := range ops {
		result[i] = &ops[i]
	}
	return result, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Migrate applies all pending migrations.
func (s *SQLiteDatabase) Migrate() error {
	return migrations.MigrateUp(s.db)
}

// BackupTo creates a complete copy of the database at destPath using VACUUM INTO.
func (s *SQLiteDatabase) BackupTo(destPath string) error {
	_, err := s.db.Exec("VACUUM INTO ?", destPath)
	if err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements lignee.Database interface
var _ lignee.Database = (*SQLiteDatabase)(nil)
