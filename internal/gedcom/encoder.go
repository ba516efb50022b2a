package gedcom

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"lignee/internal/model"
)

const (
	// Version is the GEDCOM version declared in the header.
	Version = "5.5.1"

	DefaultSourceName    = "Lignee"
	DefaultSourceVersion = "1.0"
)

// Encoder writes a family graph as a GEDCOM document.
type Encoder struct {
	SourceName    string
	SourceVersion string
}

// NewEncoder returns an Encoder that declares the given source in the header.
// Empty values fall back to the defaults.
func NewEncoder(sourceName, sourceVersion string) *Encoder {
	if sourceName == "" {
		sourceName = DefaultSourceName
	}
	if sourceVersion == "" {
		sourceVersion = DefaultSourceVersion
	}
	return &Encoder{SourceName: sourceName, SourceVersion: sourceVersion}
}

// Encode writes g to w. Persons and marriages are expected in ascending id
// order and relations may contain any type; only parent edges are used.
// Missing optional fields simply omit their tags. The only possible error comes
// from w.
func (e *Encoder) Encode(w io.Writer, g *model.Graph) error {
	idx := buildFamilyIndex(g.Marriages, g.Relations)
	lw := &lineWriter{w: bufio.NewWriter(w)}

	lw.line(0, "HEAD", "")
	lw.line(1, "SOUR", e.SourceName)
	lw.line(2, "VERS", e.SourceVersion)
	lw.line(1, "GEDC", "")
	lw.line(2, "VERS", Version)
	lw.line(1, "CHAR", "UTF-8")

	for i := range g.Persons {
		e.encodePerson(lw, &g.Persons[i], idx)
	}
	for i := range g.Marriages {
		e.encodeMarriage(lw, &g.Marriages[i], idx)
	}

	lw.line(0, "TRLR", "")
	return lw.flush()
}

func (e *Encoder) encodePerson(lw *lineWriter, p *model.Person, idx *familyIndex) {
	lw.line(0, personXref(p.ID), "INDI")

	if p.GivenNames != "" || p.Surname != "" {
		name := "/" + p.Surname + "/"
		if p.GivenNames != "" {
			name = p.GivenNames + " " + name
		}
		lw.line(1, "NAME", name)
		if p.Surname != "" {
			lw.line(2, "SURN", p.Surname)
		}
		if p.GivenNames != "" {
			lw.line(2, "GIVN", p.GivenNames)
		}
		if p.Nickname != "" {
			lw.line(2, "NICK", p.Nickname)
		}
	}

	if p.Sex == model.SexMale || p.Sex == model.SexFemale {
		lw.line(1, "SEX", string(p.Sex))
	}

	lw.event("BIRT", p.BirthPlace, p.BirthDate, p.BirthSource)
	lw.event("DEAT", p.DeathPlace, p.DeathDate, p.DeathSource)

	if p.Occupation != "" {
		lw.line(1, "OCCU", p.Occupation)
	}
	if p.Notes != "" {
		lw.line(1, "NOTE", flattenNote(p.Notes))
	}

	for _, fam := range idx.spouseOf[p.ID] {
		lw.line(1, "FAMS", familyXref(fam))
	}
	if fam, ok := idx.childOf[p.ID]; ok {
		lw.line(1, "FAMC", familyXref(fam))
	}
}

func (e *Encoder) encodeMarriage(lw *lineWriter, m *model.Marriage, idx *familyIndex) {
	lw.line(0, familyXref(m.ID), "FAM")

	if m.HusbandID != nil {
		lw.line(1, "HUSB", personXref(*m.HusbandID))
	}
	if m.WifeID != nil {
		lw.line(1, "WIFE", personXref(*m.WifeID))
	}

	lw.event("MARR", m.MarriagePlace, m.MarriageDate, "")

	// Annulment and death endings have no GEDCOM block here.
	if m.EndType == model.EndDivorce && m.EndDate != "" {
		lw.line(1, "DIV", "")
		lw.line(2, "DATE", ToGedcomDate(m.EndDate))
	}

	if m.Notes != "" {
		lw.line(1, "NOTE", flattenNote(m.Notes))
	}

	for _, child := range idx.children[m.ID] {
		lw.line(1, "CHIL", personXref(child))
	}
}

func personXref(id int64) string { return fmt.Sprintf("@I%d@", id) }
func familyXref(id int64) string { return fmt.Sprintf("@F%d@", id) }

var noteReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// flattenNote collapses every line break to a single space. CONT is never emitted.
func flattenNote(s string) string {
	return noteReplacer.Replace(strings.TrimSpace(s))
}

// lineWriter writes GEDCOM lines and remembers the first write error.
type lineWriter struct {
	w   *bufio.Writer
	err error
}

func (lw *lineWriter) line(level int, tag, value string) {
	if lw.err != nil {
		return
	}
	if value == "" {
		_, lw.err = fmt.Fprintf(lw.w, "%d %s\n", level, tag)
		return
	}
	_, lw.err = fmt.Fprintf(lw.w, "%d %s %s\n", level, tag, value)
}

// event writes a level-1 event block with PLAC, DATE and SOUR sub-lines, or
// nothing at all when every part is empty.
func (lw *lineWriter) event(tag, place, date, source string) {
	if place == "" && date == "" && source == "" {
		return
	}
	lw.line(1, tag, "")
	if place != "" {
		lw.line(2, "PLAC", place)
	}
	if date != "" {
		lw.line(2, "DATE", ToGedcomDate(date))
	}
	if source != "" {
		lw.line(2, "SOUR", flattenNote(source))
	}
}

func (lw *lineWriter) flush() error {
	if lw.err != nil {
		return lw.err
	}
	return lw.w.Flush()
}
