package gedcom

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lignee/internal/model"
)

// maxLineLength bounds a single GEDCOM line; long flattened notes are the usual
// culprit. A longer line is skipped like any other malformed line.
const maxLineLength = 4 * 1024 * 1024

// DecodeStats reports what a decode pass kept and what it dropped.
type DecodeStats struct {
	Lines            int  // non-blank lines read
	Ignored          int  // malformed, unknown or out-of-context lines
	Individuals      int  // INDI records finalized
	Families         int  // FAM records finalized
	DroppedFamilies  int  // families where neither spouse resolved
	DroppedRelations int  // CHIL links that pointed back at a spouse
	Unterminated     bool // the last record was never closed and was lost
}

// Decode reads a GEDCOM document and rebuilds the family graph it describes.
//
// The returned graph carries provisional ids (persons and marriages numbered
// from 1 in document order) and is meant to be applied with a replace-all
// write. Malformed or unknown lines are skipped, never fatal. A record is only
// kept once the next level-0 line closes it, so a document that ends without a
// closing line (normally TRLR) loses its last record.
//
// The only error is a read error from r.
func Decode(r io.Reader) (*model.Graph, DecodeStats, error) {
	var stats DecodeStats
	var indis []*individualRecord
	var fams []*familyRecord

	br := bufio.NewReader(r)

	var st decodeState
	first := true
	for {
		raw, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading gedcom: %w", err)
		}
		if first {
			raw = strings.TrimPrefix(raw, "\ufeff")
			first = false
		}
		if tooLong {
			stats.Lines++
			stats.Ignored++
			continue
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		stats.Lines++

		l, ok := parseLine(raw)
		if !ok {
			stats.Ignored++
			continue
		}

		next, done, consumed := st.step(l)
		if !consumed {
			stats.Ignored++
		}
		switch rec := done.(type) {
		case *individualRecord:
			indis = append(indis, rec)
		case *familyRecord:
			fams = append(fams, rec)
		}
		st = next
	}

	stats.Unterminated = st.open != nil
	stats.Individuals = len(indis)
	stats.Families = len(fams)

	g := buildGraph(indis, fams, &stats)
	return g, stats, nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineLength is drained and reported with tooLong set. io.EOF is only
// returned once no data is left.
func readLine(br *bufio.Reader) (string, bool, error) {
	var sb strings.Builder
	tooLong := false
	read := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && read {
				return sb.String(), tooLong, nil
			}
			return "", false, err
		}
		read = true
		if !tooLong {
			if sb.Len()+len(chunk) > maxLineLength {
				tooLong = true
				sb.Reset()
			} else {
				sb.Write(chunk)
			}
		}
		if !isPrefix {
			return sb.String(), tooLong, nil
		}
	}
}

// line is one parsed "LEVEL TAG [VALUE]" line.
type line struct {
	level int
	tag   string
	value string
}

// parseLine splits a trimmed, non-blank line. It fails when the level is not a
// number or the tag is missing.
func parseLine(raw string) (line, bool) {
	parts := strings.SplitN(raw, " ", 3)
	if len(parts) < 2 || parts[1] == "" {
		return line{}, false
	}
	level, err := strconv.Atoi(parts[0])
	if err != nil || level < 0 {
		return line{}, false
	}
	l := line{level: level, tag: parts[1]}
	if len(parts) == 3 {
		l.value = parts[2]
	}
	return l, true
}

// pointer extracts the xref from "@I12@", or "" when s holds no pointer.
func pointer(s string) string {
	start := strings.IndexByte(s, '@')
	if start < 0 {
		return ""
	}
	end := strings.IndexByte(s[start+1:], '@')
	if end <= 0 {
		return ""
	}
	return s[start+1 : start+1+end]
}

type eventTag int

const (
	noEvent eventTag = iota
	eventBirth
	eventDeath
	eventMarriage
	eventDivorce
	eventAnnulment
)

// eventFields holds the sub-fields of one event block.
type eventFields struct {
	date   string
	place  string
	source string
}

// record is an open INDI or FAM buffer.
type record interface {
	xref() string
}

type individualRecord struct {
	id         string
	given      string
	surname    string
	nickname   string
	sex        string
	birth      eventFields
	death      eventFields
	occupation string
	note       *string
}

func (r *individualRecord) xref() string { return r.id }

func (r *individualRecord) event(e eventTag) *eventFields {
	switch e {
	case eventBirth:
		return &r.birth
	case eventDeath:
		return &r.death
	}
	return nil
}

type familyRecord struct {
	id        string
	husband   string
	wife      string
	children  []string
	marriage  eventFields
	divorce   eventFields
	annulment eventFields
	note      *string
}

func (r *familyRecord) xref() string { return r.id }

func (r *familyRecord) event(e eventTag) *eventFields {
	switch e {
	case eventMarriage:
		return &r.marriage
	case eventDivorce:
		return &r.divorce
	case eventAnnulment:
		return &r.annulment
	}
	return nil
}

// decodeState is the whole state of the line-by-line pass: the open record
// (nil, *individualRecord or *familyRecord) and the event its sub-lines
// currently belong to. Only an event tag or a new record changes the event.
type decodeState struct {
	open  record
	event eventTag
}

// step applies one line. It returns the next state, the record this line
// closed (if any), and whether the line was used.
func (s decodeState) step(l line) (decodeState, record, bool) {
	switch l.level {
	case 0:
		return openRecord(l), s.open, true
	case 1:
		switch rec := s.open.(type) {
		case *individualRecord:
			ev, used := rec.applyLevel1(l, s.event)
			return decodeState{open: rec, event: ev}, nil, used
		case *familyRecord:
			ev, used := rec.applyLevel1(l, s.event)
			return decodeState{open: rec, event: ev}, nil, used
		}
	case 2:
		switch rec := s.open.(type) {
		case *individualRecord:
			return s, nil, rec.applyLevel2(l, s.event)
		case *familyRecord:
			return s, nil, rec.applyLevel2(l, s.event)
		}
	}
	return s, nil, false
}

// openRecord starts the record named by a level-0 line. Lines that are not
// INDI or FAM records (HEAD, TRLR, SUBM, ...) open nothing.
func openRecord(l line) decodeState {
	id := pointer(l.tag)
	if id == "" {
		return decodeState{}
	}
	switch l.value {
	case "INDI":
		return decodeState{open: &individualRecord{id: id}}
	case "FAM":
		return decodeState{open: &familyRecord{id: id}}
	}
	return decodeState{}
}

// applyLevel1 handles a level-1 line inside an INDI record and returns the
// event that following sub-lines belong to, which stays ev unless l opens one.
func (r *individualRecord) applyLevel1(l line, ev eventTag) (eventTag, bool) {
	switch l.tag {
	case "NAME":
		if given, surname, ok := splitName(l.value); ok {
			r.given, r.surname = given, surname
		}
	case "SEX":
		r.sex = l.value
	case "BIRT":
		return eventBirth, true
	case "DEAT":
		return eventDeath, true
	case "OCCU":
		r.occupation = l.value
	case "NOTE":
		note := l.value
		r.note = &note
	default:
		return ev, false
	}
	return ev, true
}

func (r *individualRecord) applyLevel2(l line, ev eventTag) bool {
	switch l.tag {
	case "GIVN":
		r.given = l.value
	case "SURN":
		r.surname = l.value
	case "NICK":
		r.nickname = l.value
	case "CONT", "CONC":
		return continueNote(r.note, l)
	default:
		return applyEventLine(r.event(ev), l)
	}
	return true
}

// applyLevel1 handles a level-1 line inside a FAM record.
func (r *familyRecord) applyLevel1(l line, ev eventTag) (eventTag, bool) {
	switch l.tag {
	case "HUSB":
		id := pointer(l.value)
		if id == "" {
			return ev, false
		}
		r.husband = id
	case "WIFE":
		id := pointer(l.value)
		if id == "" {
			return ev, false
		}
		r.wife = id
	case "CHIL":
		// Duplicates are kept on purpose: each CHIL line yields its own relations.
		id := pointer(l.value)
		if id == "" {
			return ev, false
		}
		r.children = append(r.children, id)
	case "MARR":
		return eventMarriage, true
	case "DIV":
		return eventDivorce, true
	case "ANUL":
		return eventAnnulment, true
	case "NOTE":
		note := l.value
		r.note = &note
	default:
		return ev, false
	}
	return ev, true
}

func (r *familyRecord) applyLevel2(l line, ev eventTag) bool {
	switch l.tag {
	case "CONT", "CONC":
		return continueNote(r.note, l)
	default:
		return applyEventLine(r.event(ev), l)
	}
}

// applyEventLine stores DATE, PLAC or SOUR into the active event. With no
// active event the line is dropped.
func applyEventLine(ev *eventFields, l line) bool {
	if ev == nil {
		return false
	}
	switch l.tag {
	case "DATE":
		ev.date = FromGedcomDate(l.value)
	case "PLAC":
		ev.place = l.value
	case "SOUR":
		ev.source = l.value
	default:
		return false
	}
	return true
}

// continueNote extends an existing NOTE: CONT starts a new line, CONC does not.
func continueNote(note *string, l line) bool {
	if note == nil {
		return false
	}
	if l.tag == "CONT" {
		*note += "\n"
	}
	*note += l.value
	return true
}

// splitName parses "given /surname/". Both parts must be non-empty before
// trimming, so "/Martin/" alone does not match.
func splitName(v string) (given, surname string, ok bool) {
	open := strings.IndexByte(v, '/')
	if open < 1 {
		return "", "", false
	}
	rest := v[open+1:]
	end := strings.IndexByte(rest, '/')
	if end < 1 {
		return "", "", false
	}
	return strings.TrimSpace(v[:open]), strings.TrimSpace(rest[:end]), true
}
