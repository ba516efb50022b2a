package gedcom

import "lignee/internal/model"

// familyIndex holds the cross-references the encoder needs to emit FAMS, FAMC
// and CHIL tags. It is rebuilt for every encode.
type familyIndex struct {
	// children maps a marriage id to its distinct children, in first-seen order.
	children map[int64][]int64
	// spouseOf maps a person id to the marriages they are a spouse in, ascending.
	spouseOf map[int64][]int64
	// childOf maps a child id to its single family. When relation data puts a
	// child under several marriages the last marriage visited wins.
	childOf map[int64]int64
}

// buildFamilyIndex derives the index from marriages (ascending id) and parent
// relations. Relations without a marriage, or pointing at an unknown marriage,
// do not contribute.
func buildFamilyIndex(marriages []model.Marriage, relations []model.Relation) *familyIndex {
	idx := &familyIndex{
		children: make(map[int64][]int64, len(marriages)),
		spouseOf: make(map[int64][]int64),
		childOf:  make(map[int64]int64),
	}

	for _, m := range marriages {
		idx.children[m.ID] = nil
	}

	seen := make(map[[2]int64]bool)
	for _, r := range relations {
		if r.Type != model.RelationParent || r.MarriageID == nil {
			continue
		}
		mid := *r.MarriageID
		kids, ok := idx.children[mid]
		if !ok {
			continue
		}
		key := [2]int64{mid, r.PersonID}
		if seen[key] {
			continue
		}
		seen[key] = true
		idx.children[mid] = append(kids, r.PersonID)
	}

	for _, m := range marriages {
		for _, spouse := range m.Spouses() {
			idx.addSpouse(spouse, m.ID)
		}
		for _, child := range idx.children[m.ID] {
			idx.childOf[child] = m.ID
		}
	}

	return idx
}

func (idx *familyIndex) addSpouse(personID, marriageID int64) {
	fams := idx.spouseOf[personID]
	if n := len(fams); n > 0 && fams[n-1] == marriageID {
		return
	}
	idx.spouseOf[personID] = append(fams, marriageID)
}
