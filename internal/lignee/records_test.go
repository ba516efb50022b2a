package lignee_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lignee/internal/model"
)

func TestLigneeService_AddRecords(t *testing.T) {
	svc, db, _ := newTestService(t, nil)

	henri, err := svc.AddPerson(&model.Person{GivenNames: "Henri", Surname: "Roux", Sex: model.SexMale})
	require.NoError(t, err)
	louise, err := svc.AddPerson(&model.Person{GivenNames: "Louise", Surname: "Blanc", Sex: model.SexFemale})
	require.NoError(t, err)
	anne, err := svc.AddPerson(&model.Person{GivenNames: "Anne", Surname: "Roux"})
	require.NoError(t, err)
	assert.Equal(t, model.SexUnknown, anne.Sex)

	m, err := svc.AddMarriage(&model.Marriage{HusbandID: &henri.ID, WifeID: &louise.ID, MarriageDate: "1950-09-02"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), m.HusbandOrder)
	assert.Equal(t, int64(1), m.WifeOrder)

	second, err := svc.AddMarriage(&model.Marriage{HusbandID: &henri.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.HusbandOrder)

	rel, err := svc.AddParent(anne.ID, louise.ID, &m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RelationParent, rel.Type)

	_, err = svc.AddParent(anne.ID, louise.ID, &second.ID)
	assert.ErrorContains(t, err, "not a spouse")

	_, err = svc.AddParent(anne.ID, henri.ID, model.Int64(999))
	assert.ErrorContains(t, err, "not found")

	_, err = svc.AddParent(anne.ID, henri.ID, nil)
	require.NoError(t, err)

	_, err = svc.AddParent(anne.ID, anne.ID, nil)
	assert.ErrorIs(t, err, model.ErrSelfRelation)

	_, err = svc.AddMarriage(&model.Marriage{})
	assert.ErrorIs(t, err, model.ErrNoSpouse)

	relations, err := db.ListParentRelations()
	require.NoError(t, err)
	assert.Len(t, relations, 2)
}

func TestLigneeService_AddRecordsPartialDates(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	jean, err := svc.AddPerson(&model.Person{GivenNames: "Jean", Surname: "Martin", BirthDate: "1900-05", DeathDate: "1971"})
	require.NoError(t, err)
	assert.Equal(t, "1900-05-00", jean.BirthDate)
	assert.Equal(t, "1971-00-00", jean.DeathDate)

	m, err := svc.AddMarriage(&model.Marriage{HusbandID: &jean.ID, MarriageDate: "1925"})
	require.NoError(t, err)
	assert.Equal(t, "1925-00-00", m.MarriageDate)

	var buf bytes.Buffer
	_, err = svc.ExportGEDCOM(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 DATE MAY 1900\n")
	assert.Contains(t, buf.String(), "2 DATE 1971\n")
	assert.Contains(t, buf.String(), "2 DATE 1925\n")

	_, err = svc.ImportGEDCOM(&buf)
	require.NoError(t, err)
	persons, err := svc.ListPersons()
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "1900-05-01", persons[0].BirthDate)
	assert.Equal(t, "1971-01-01", persons[0].DeathDate)

	_, err = svc.AddPerson(&model.Person{GivenNames: "Marie", BirthDate: "vers 1900"})
	assert.ErrorIs(t, err, model.ErrInvalidDate)
	_, err = svc.AddMarriage(&model.Marriage{HusbandID: &jean.ID, EndDate: "1940-13"})
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestLigneeService_AddSiblings(t *testing.T) {
	svc, db, _ := newTestService(t, nil)

	a, err := svc.AddPerson(&model.Person{GivenNames: "Anne"})
	require.NoError(t, err)
	b, err := svc.AddPerson(&model.Person{GivenNames: "Bruno"})
	require.NoError(t, err)

	require.NoError(t, svc.AddSiblings(a.ID, b.ID))
	assert.ErrorIs(t, svc.AddSiblings(a.ID, a.ID), model.ErrSelfRelation)

	relations, err := db.ListRelations()
	require.NoError(t, err)
	require.Len(t, relations, 2)
	assert.Equal(t, a.ID, relations[0].PersonID)
	assert.Equal(t, b.ID, relations[1].PersonID)
}

func TestLigneeService_History(t *testing.T) {
	svc, db, _ := newTestService(t, nil)

	for _, name := range []string{"import", "backup", "restore"} {
		_, err := db.CreateOperation(name, "")
		require.NoError(t, err)
	}

	ops, err := svc.GetHistory(2)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "restore", ops[0].Operation)
	assert.Equal(t, "backup", ops[1].Operation)
}
