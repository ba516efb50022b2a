package main

import (
	"fmt"
	"strconv"

	"lignee/internal/model"

	"github.com/spf13/cobra"
)

// persons command
var personsCmd = &cobra.Command{
	Use:   "persons",
	Short: "List stored persons",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListPersons")
		if err != nil {
			return err
		}
		defer a.Close()

		persons, err := a.ListPersons()
		if err != nil {
			return err
		}

		if len(persons) == 0 {
			fmt.Println("No persons recorded.")
			return nil
		}

		for _, p := range persons {
			fmt.Printf("%5d  %-1s  %-30s  %-10s  %s\n",
				p.ID, p.Sex, p.GivenNames+" "+p.Surname, p.BirthDate, p.DeathDate)
		}
		return nil
	},
}

// add command
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record persons, marriages and links by hand",
}

var addPersonCmd = &cobra.Command{
	Use:   "person",
	Short: "Add a person",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		p := &model.Person{}
		p.GivenNames, _ = f.GetString("given")
		p.Surname, _ = f.GetString("surname")
		p.Nickname, _ = f.GetString("nickname")
		sex, _ := f.GetString("sex")
		p.Sex = model.Sex(sex)
		p.BirthDate, _ = f.GetString("birth-date")
		p.BirthPlace, _ = f.GetString("birth-place")
		p.DeathDate, _ = f.GetString("death-date")
		p.DeathPlace, _ = f.GetString("death-place")
		p.Occupation, _ = f.GetString("occupation")
		p.Notes, _ = f.GetString("notes")

		a, err := newApp("add-person")
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.AddPerson(p)
		if err != nil {
			return err
		}
		fmt.Printf("Added person #%d\n", created.ID)
		return nil
	},
}

var addMarriageCmd = &cobra.Command{
	Use:   "marriage",
	Short: "Add a marriage between one or two persons",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		m := &model.Marriage{}
		if f.Changed("husband") {
			id, _ := f.GetInt64("husband")
			m.HusbandID = &id
		}
		if f.Changed("wife") {
			id, _ := f.GetInt64("wife")
			m.WifeID = &id
		}
		m.MarriageDate, _ = f.GetString("date")
		m.MarriagePlace, _ = f.GetString("place")
		m.EndDate, _ = f.GetString("end-date")
		endType, _ := f.GetString("end-type")
		m.EndType = model.EndType(endType)

		switch m.EndType {
		case model.EndNone, model.EndDivorce, model.EndAnnulment, model.EndDeath:
		default:
			return fmt.Errorf("unknown end type %q (want divorce, annulment or death)", endType)
		}

		a, err := newApp("add-marriage")
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.AddMarriage(m)
		if err != nil {
			return err
		}
		fmt.Printf("Added marriage #%d\n", created.ID)
		return nil
	},
}

var addParentCmd = &cobra.Command{
	Use:   "parent CHILD PARENT",
	Short: "Link a child to a parent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		var marriageID *int64
		if cmd.Flags().Changed("marriage") {
			id, _ := cmd.Flags().GetInt64("marriage")
			marriageID = &id
		}

		a, err := newApp("add-parent")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.AddParent(ids[0], ids[1], marriageID); err != nil {
			return err
		}
		fmt.Printf("Linked #%d to parent #%d\n", ids[0], ids[1])
		return nil
	},
}

var addSiblingCmd = &cobra.Command{
	Use:   "sibling A B",
	Short: "Link two persons as siblings",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}

		a, err := newApp("add-sibling")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.AddSiblings(ids[0], ids[1]); err != nil {
			return err
		}
		fmt.Printf("Linked #%d and #%d as siblings\n", ids[0], ids[1])
		return nil
	},
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, len(args))
	for i, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid person id %q", arg)
		}
		ids[i] = id
	}
	return ids, nil
}

func init() {
	pf := addPersonCmd.Flags()
	pf.String("given", "", "Given names")
	pf.String("surname", "", "Surname")
	pf.String("nickname", "", "Nickname")
	pf.String("sex", "U", "Sex: M, F or U")
	pf.String("birth-date", "", "Birth date (YYYY, YYYY-MM or YYYY-MM-DD)")
	pf.String("birth-place", "", "Birth place")
	pf.String("death-date", "", "Death date (YYYY, YYYY-MM or YYYY-MM-DD)")
	pf.String("death-place", "", "Death place")
	pf.String("occupation", "", "Occupation")
	pf.String("notes", "", "Free text notes")

	mf := addMarriageCmd.Flags()
	mf.Int64("husband", 0, "Person id of the husband")
	mf.Int64("wife", 0, "Person id of the wife")
	mf.String("date", "", "Marriage date (YYYY, YYYY-MM or YYYY-MM-DD)")
	mf.String("place", "", "Marriage place")
	mf.String("end-date", "", "Date the marriage ended (YYYY, YYYY-MM or YYYY-MM-DD)")
	mf.String("end-type", "", "How the marriage ended: divorce, annulment or death")

	addParentCmd.Flags().Int64("marriage", 0, "Marriage the child belongs to")

	addCmd.AddCommand(addPersonCmd)
	addCmd.AddCommand(addMarriageCmd)
	addCmd.AddCommand(addParentCmd)
	addCmd.AddCommand(addSiblingCmd)
}
