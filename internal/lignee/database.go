package lignee

import (
	"lignee/internal/database/sqlc"
	"lignee/internal/model"
)

// Database is the family graph repository.
// All methods should be implemented with appropriate transaction handling.
type Database interface {
	// Graph reads

	// ListPersons returns every person ordered by ascending id.
	ListPersons() ([]model.Person, error)

	// ListMarriages returns every marriage ordered by ascending id.
	ListMarriages() ([]model.Marriage, error)

	// ListParentRelations returns the parent edges ordered by child id.
	ListParentRelations() ([]model.Relation, error)

	// ListRelations returns every edge, parent and sibling, ordered by id.
	ListRelations() ([]model.Relation, error)

	// Counts returns the number of persons, marriages and relations.
	Counts() (model.GraphCounts, error)

	// Graph writes

	// ReplaceAll deletes the whole graph and inserts g in one transaction.
	// The ids in g are provisional and get remapped to new surrogate ids.
	// On error nothing changes.
	ReplaceAll(g *model.Graph) (model.GraphCounts, error)

	// CreatePerson inserts a person and returns it with its new id.
	CreatePerson(p *model.Person) (*model.Person, error)

	// CreateMarriage inserts a marriage, assigning each spouse's ordinal.
	CreateMarriage(m *model.Marriage) (*model.Marriage, error)

	// CreateParentRelation links a child to one parent, optionally under a marriage.
	CreateParentRelation(childID, parentID int64, marriageID *int64) (*model.Relation, error)

	// CreateSiblingRelations links two persons as siblings in both directions.
	CreateSiblingRelations(a, b int64) error

	// Operation tracking

	// CreateOperation records the start of a mutating command.
	CreateOperation(operation string, parameters string) (*sqlc.Operation, error)

	// FinishOperation marks an operation finished with the given status.
	FinishOperation(id int64, status string) error

	// ListOperations returns the most recent operations, newest first.
	ListOperations(limit int) ([]*sqlc.Operation, error)

	// Close closes the database connection.
	Close() error
}
