package lignee

import (
	"fmt"

	"lignee/internal/model"
)

// AddPerson stores a new person and returns it with its id. Partial dates
// are stored with zero components (see model.NormalizeDate).
func (s *LigneeService) AddPerson(p *model.Person) (*model.Person, error) {
	person := *p
	if err := person.NormalizeDates(); err != nil {
		return nil, err
	}
	created, err := s.database.CreatePerson(&person)
	if err != nil {
		return nil, err
	}
	s.logger.Info("person added", "id", created.ID, "surname", created.Surname)
	return created, nil
}

// AddMarriage stores a new marriage. Each spouse's ordinal is assigned by
// the repository.
func (s *LigneeService) AddMarriage(m *model.Marriage) (*model.Marriage, error) {
	marriage := *m
	if err := marriage.NormalizeDates(); err != nil {
		return nil, err
	}
	created, err := s.database.CreateMarriage(&marriage)
	if err != nil {
		return nil, err
	}
	s.logger.Info("marriage added", "id", created.ID,
		"husband_order", created.HusbandOrder, "wife_order", created.WifeOrder)
	return created, nil
}

// AddParent links childID to parentID. When marriageID is set, the parent
// must be one of that marriage's spouses.
func (s *LigneeService) AddParent(childID, parentID int64, marriageID *int64) (*model.Relation, error) {
	if marriageID != nil {
		if err := s.checkSpouse(*marriageID, parentID); err != nil {
			return nil, err
		}
	}

	rel, err := s.database.CreateParentRelation(childID, parentID, marriageID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("parent link added", "child", childID, "parent", parentID)
	return rel, nil
}

// AddSiblings links two persons as siblings in both directions.
func (s *LigneeService) AddSiblings(a, b int64) error {
	if err := s.database.CreateSiblingRelations(a, b); err != nil {
		return err
	}
	s.logger.Info("sibling link added", "a", a, "b", b)
	return nil
}

// ListPersons returns every stored person ordered by id.
func (s *LigneeService) ListPersons() ([]model.Person, error) {
	persons, err := s.database.ListPersons()
	if err != nil {
		return nil, fmt.Errorf("listing persons: %w", err)
	}
	return persons, nil
}

func (s *LigneeService) checkSpouse(marriageID, personID int64) error {
	marriages, err := s.database.ListMarriages()
	if err != nil {
		return fmt.Errorf("listing marriages: %w", err)
	}
	for i := range marriages {
		if marriages[i].ID != marriageID {
			continue
		}
		for _, id := range marriages[i].Spouses() {
			if id == personID {
				return nil
			}
		}
		return fmt.Errorf("person %d is not a spouse in marriage %d", personID, marriageID)
	}
	return fmt.Errorf("marriage %d not found", marriageID)
}
