package gedcom

import "lignee/internal/model"

// buildGraph turns decoded records into a graph with provisional ids.
// Persons are numbered 1..n in document order; a repeated INDI xref shadows
// the earlier one for lookups. Families whose HUSB and WIFE both fail to
// resolve are dropped. Each resolvable CHIL yields one parent relation per
// resolved spouse.
func buildGraph(indis []*individualRecord, fams []*familyRecord, stats *DecodeStats) *model.Graph {
	g := &model.Graph{
		Persons: make([]model.Person, 0, len(indis)),
	}

	ids := make(map[string]int64, len(indis))
	for i, rec := range indis {
		id := int64(i + 1)
		ids[rec.id] = id
		g.Persons = append(g.Persons, rec.person(id))
	}

	resolve := func(xref string) *int64 {
		if xref == "" {
			return nil
		}
		if id, ok := ids[xref]; ok {
			return model.Int64(id)
		}
		return nil
	}

	var nextMarriage int64
	for _, rec := range fams {
		husband, wife := resolve(rec.husband), resolve(rec.wife)
		if husband == nil && wife == nil {
			stats.DroppedFamilies++
			continue
		}

		nextMarriage++
		m := rec.toMarriage(nextMarriage)
		m.HusbandID, m.WifeID = husband, wife
		g.Marriages = append(g.Marriages, m)

		for _, xref := range rec.children {
			child, ok := ids[xref]
			if !ok {
				continue
			}
			for _, parent := range m.Spouses() {
				if parent == child {
					stats.DroppedRelations++
					continue
				}
				g.Relations = append(g.Relations, model.NewParentRelation(child, parent, model.Int64(m.ID)))
			}
		}
	}

	return g
}

func (r *individualRecord) person(id int64) model.Person {
	p := model.Person{
		ID:          id,
		GivenNames:  r.given,
		Surname:     r.surname,
		Nickname:    r.nickname,
		Sex:         model.Sex(r.sex),
		BirthDate:   r.birth.date,
		BirthPlace:  r.birth.place,
		BirthSource: r.birth.source,
		DeathDate:   r.death.date,
		DeathPlace:  r.death.place,
		DeathSource: r.death.source,
		Occupation:  r.occupation,
	}
	if p.Sex == "" {
		p.Sex = model.SexUnknown
	}
	if r.note != nil {
		p.Notes = *r.note
	}
	return p
}

// toMarriage builds the marriage without spouses. A divorce date wins over an
// annulment date when both are present.
func (r *familyRecord) toMarriage(id int64) model.Marriage {
	m := model.Marriage{
		ID:            id,
		MarriageDate:  r.marriage.date,
		MarriagePlace: r.marriage.place,
	}
	switch {
	case r.divorce.date != "":
		m.EndType, m.EndDate = model.EndDivorce, r.divorce.date
	case r.annulment.date != "":
		m.EndType, m.EndDate = model.EndAnnulment, r.annulment.date
	}
	if r.note != nil {
		m.Notes = *r.note
	}
	return m
}
