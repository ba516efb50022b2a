package database

import (
	"database/sql"

	"lignee/internal/database/sqlc"
	"lignee/internal/model"
)

// nullString maps the empty string to NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return model.Int64(v.Int64)
}

func personParams(p *model.Person) sqlc.InsertPersonParams {
	sex := p.Sex
	if sex == "" {
		sex = model.SexUnknown
	}
	return sqlc.InsertPersonParams{
		GivenNames:  nullString(p.GivenNames),
		Surname:     nullString(p.Surname),
		Nickname:    nullString(p.Nickname),
		Sex:         string(sex),
		BirthDate:   nullString(p.BirthDate),
		BirthPlace:  nullString(p.BirthPlace),
		BirthSource: nullString(p.BirthSource),
		DeathDate:   nullString(p.DeathDate),
		DeathPlace:  nullString(p.DeathPlace),
		DeathSource: nullString(p.DeathSource),
		Occupation:  nullString(p.Occupation),
		Notes:       nullString(p.Notes),
	}
}

func personFromRow(row *sqlc.Person) model.Person {
	return model.Person{
		ID:          row.ID,
		GivenNames:  row.GivenNames.String,
		Surname:     row.Surname.String,
		Nickname:    row.Nickname.String,
		Sex:         model.Sex(row.Sex),
		BirthDate:   row.BirthDate.String,
		BirthPlace:  row.BirthPlace.String,
		BirthSource: row.BirthSource.String,
		DeathDate:   row.DeathDate.String,
		DeathPlace:  row.DeathPlace.String,
		DeathSource: row.DeathSource.String,
		Occupation:  row.Occupation.String,
		Notes:       row.Notes.String,
	}
}

func marriageFromRow(row *sqlc.Marriage) model.Marriage {
	return model.Marriage{
		ID:            row.ID,
		HusbandID:     int64Ptr(row.HusbandID),
		WifeID:        int64Ptr(row.WifeID),
		MarriageDate:  row.MarriageDate.String,
		MarriagePlace: row.MarriagePlace.String,
		EndDate:       row.EndDate.String,
		EndType:       model.EndType(row.EndType),
		Notes:         row.Notes.String,
		HusbandOrder:  row.HusbandOrder,
		WifeOrder:     row.WifeOrder,
	}
}

func relationFromRow(row *sqlc.Relation) model.Relation {
	return model.Relation{
		ID:         row.ID,
		PersonID:   row.PersonID,
		RelatedID:  row.RelatedID,
		MarriageID: int64Ptr(row.MarriageID),
		Type:       model.RelationType(row.Type),
	}
}

func relationsFromRows(rows []sqlc.Relation) []model.Relation {
	relations := make([]model.Relation, len(rows))
	for i := range rows {
		relations[i] = relationFromRow(&rows[i])
	}
	return relations
}
