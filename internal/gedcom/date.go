package gedcom

import "strings"

var monthNames = map[string]string{
	"01": "JAN", "02": "FEB", "03": "MAR", "04": "APR",
	"05": "MAY", "06": "JUN", "07": "JUL", "08": "AUG",
	"09": "SEP", "10": "OCT", "11": "NOV", "12": "DEC",
}

var monthNumbers = map[string]string{
	"JAN": "01", "FEB": "02", "MAR": "03", "APR": "04",
	"MAY": "05", "JUN": "06", "JUL": "07", "AUG": "08",
	"SEP": "09", "OCT": "10", "NOV": "11", "DEC": "12",
}

// ToGedcomDate converts an ISO date (YYYY-MM-DD) to the GEDCOM form "D MMM YYYY".
// Zero components mark a partial date: "1900-05-00" gives "MAY 1900" and
// "1900-00-00" gives "1900". Anything that does not split into exactly three
// hyphen-separated parts, or whose month is not 00..12, is returned unchanged.
func ToGedcomDate(iso string) string {
	if iso == "" {
		return ""
	}

	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	if parts[1] == "00" {
		return parts[0]
	}

	month, ok := monthNames[parts[1]]
	if !ok {
		return iso
	}

	day := strings.TrimLeft(parts[2], "0")
	if day == "" {
		return month + " " + parts[0]
	}
	return day + " " + month + " " + parts[0]
}

// FromGedcomDate converts a GEDCOM date back to ISO form.
//
//	"3 MAY 1900" -> "1900-05-03"
//	"MAY 1900"   -> "1900-05-01"
//	"1900"       -> "1900-01-01"
//
// Unknown month abbreviations map to 01. An empty value, or one with more than
// three tokens (qualifiers such as "ABT 3 MAY 1900"), yields "" (no date).
func FromGedcomDate(text string) string {
	parts := strings.Fields(text)

	switch len(parts) {
	case 3:
		day := parts[0]
		if len(day) < 2 {
			day = "0" + day
		}
		return parts[2] + "-" + monthNumber(parts[1]) + "-" + day
	case 2:
		return parts[1] + "-" + monthNumber(parts[0]) + "-01"
	case 1:
		return parts[0] + "-01-01"
	default:
		return ""
	}
}

func monthNumber(abbr string) string {
	if n, ok := monthNumbers[strings.ToUpper(abbr)]; ok {
		return n
	}
	return "01"
}
