package model

import "errors"

var (
	// ErrNoSpouse is returned for a marriage that names neither a husband nor a wife.
	ErrNoSpouse = errors.New("marriage has no spouse")

	// ErrSelfRelation is returned for a relation whose two ends are the same person.
	ErrSelfRelation = errors.New("relation links a person to themselves")
)

// Sex is the recorded sex of a person. Values read from GEDCOM are kept verbatim,
// so anything other than the three constants below is possible.
type Sex string

const (
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
	SexUnknown Sex = "U"
)

// EndType records how a marriage ended.
type EndType string

const (
	EndNone      EndType = ""
	EndDivorce   EndType = "divorce"
	EndAnnulment EndType = "annulment"
	EndDeath     EndType = "death"
)

// RelationType distinguishes parent edges from sibling edges.
type RelationType string

const (
	RelationParent  RelationType = "parent"
	RelationSibling RelationType = "sibling"
)

// Person is an individual in the family graph.
// Optional text fields use the empty string for "absent". Dates are ISO
// strings (YYYY-MM-DD); partial values such as "1900" are kept verbatim.
type Person struct {
	ID          int64 // surrogate, assigned by the repository
	GivenNames  string
	Surname     string
	Nickname    string
	Sex         Sex
	BirthDate   string
	BirthPlace  string
	BirthSource string
	DeathDate   string
	DeathPlace  string
	DeathSource string
	Occupation  string
	Notes       string // may contain line breaks
}

// Marriage is a union between up to two persons.
type Marriage struct {
	ID            int64
	HusbandID     *int64
	WifeID        *int64
	MarriageDate  string
	MarriagePlace string
	EndDate       string
	EndType       EndType
	Notes         string
	HusbandOrder  int64 // Nth marriage of the husband
	WifeOrder     int64 // Nth marriage of the wife
}

// Validate checks the marriage invariants.
func (m *Marriage) Validate() error {
	if m.HusbandID == nil && m.WifeID == nil {
		return ErrNoSpouse
	}
	return nil
}

// Spouses returns the ids of the spouses that are present, husband first.
func (m *Marriage) Spouses() []int64 {
	var ids []int64
	if m.HusbandID != nil {
		ids = append(ids, *m.HusbandID)
	}
	if m.WifeID != nil {
		ids = append(ids, *m.WifeID)
	}
	return ids
}

// Relation is a directed, typed edge between two persons.
// For a parent edge PersonID is the child and RelatedID the parent.
// Sibling edges come in mirrored pairs, see NewSiblingRelations.
type Relation struct {
	ID         int64
	PersonID   int64
	RelatedID  int64
	MarriageID *int64 // owning marriage, parent edges only
	Type       RelationType
}

// Validate checks the relation invariants.
func (r *Relation) Validate() error {
	if r.PersonID == r.RelatedID {
		return ErrSelfRelation
	}
	return nil
}

// NewParentRelation builds a parent edge from child to parent.
func NewParentRelation(childID, parentID int64, marriageID *int64) Relation {
	return Relation{
		PersonID:   childID,
		RelatedID:  parentID,
		MarriageID: marriageID,
		Type:       RelationParent,
	}
}

// NewSiblingRelations builds both directions of a sibling link.
func NewSiblingRelations(a, b int64) [2]Relation {
	return [2]Relation{
		{PersonID: a, RelatedID: b, Type: RelationSibling},
		{PersonID: b, RelatedID: a, Type: RelationSibling},
	}
}

// Graph is a complete family graph snapshot.
//
// When a Graph is read from the repository its ids are surrogate ids. When a
// Graph is handed to a replace-all write its ids are provisional: the
// repository assigns new ids and remaps every reference.
type Graph struct {
	Persons   []Person
	Marriages []Marriage
	Relations []Relation
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 {
	return &v
}

// GraphCounts summarizes the size of a family graph.
type GraphCounts struct {
	Persons   int64
	Marriages int64
	Relations int64
}
