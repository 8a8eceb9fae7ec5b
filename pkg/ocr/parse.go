package ocr

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// SheetRow is one soldier's line parsed off a scanned IPPT result sheet.
type SheetRow struct {
	Serial         int
	ServiceNumber  string
	Name           string
	SitupReps      int
	PushupReps     int
	RunTimeSeconds int
}

// Column roles recognised in the header row.
const (
	colSerial = iota
	colServiceNumber
	colName
	colSitup
	colPushup
	colRun
	colUnknown
)

var (
	runTimeRe   = regexp.MustCompile(`^(\d{1,2}):([0-5]\d)$`)
	serviceNoRe = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)

	// Rank prefixes appear glued to names on the sheets.
	rankPrefixes = []string{
		"REC", "PTE", "LCP", "CPL", "CFC", "3SG", "2SG", "1SG", "SSG", "MSG",
		"3WO", "2WO", "1WO", "MWO", "SWO", "2LT", "LTA", "CPT", "MAJ", "LTC",
	}
)

// ParseSheet groups layout cells into rows and extracts one SheetRow per
// soldier line. The header row (when present) fixes column roles; otherwise
// the conventional column order applies.
func ParseSheet(cells []Cell) []SheetRow {
	if len(cells) == 0 {
		return nil
	}

	byRow := make(map[int][]Cell)
	for _, cell := range cells {
		byRow[cell.RowIndex] = append(byRow[cell.RowIndex], cell)
	}

	rowIndexes := make([]int, 0, len(byRow))
	for idx := range byRow {
		sort.Slice(byRow[idx], func(a, b int) bool {
			return byRow[idx][a].ColumnIndex < byRow[idx][b].ColumnIndex
		})
		rowIndexes = append(rowIndexes, idx)
	}
	sort.Ints(rowIndexes)

	roles := detectColumns(byRow[rowIndexes[0]])
	if roles != nil {
		// The header row itself is not a soldier line.
		rowIndexes = rowIndexes[1:]
	}

	var rows []SheetRow
	for _, idx := range rowIndexes {
		row, ok := parseRow(byRow[idx], roles)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	return rows
}

// detectColumns maps column index to role from the header row; an empty map
// means no header was recognised.
func detectColumns(header []Cell) map[int]int {
	roles := make(map[int]int)

	for _, cell := range header {
		switch classifyHeader(cell.Content) {
		case colUnknown:
		default:
			roles[cell.ColumnIndex] = classifyHeader(cell.Content)
		}
	}

	// Require at least the three station columns to trust the header.
	found := make(map[int]bool)
	for _, role := range roles {
		found[role] = true
	}
	if !found[colSitup] || !found[colPushup] || !found[colRun] {
		return nil
	}

	return roles
}

func classifyHeader(content string) int {
	h := strings.ToLower(strings.TrimSpace(content))
	h = strings.ReplaceAll(h, "-", "")
	h = strings.ReplaceAll(h, " ", "")

	switch {
	case h == "s/n" || h == "sn" || h == "serial" || h == "no":
		return colSerial
	case strings.Contains(h, "service") || strings.Contains(h, "nric"):
		return colServiceNumber
	case strings.Contains(h, "name"):
		return colName
	case strings.Contains(h, "situp"):
		return colSitup
	case strings.Contains(h, "pushup"):
		return colPushup
	case strings.Contains(h, "run") || strings.Contains(h, "2.4"):
		return colRun
	default:
		return colUnknown
	}
}

// defaultRoles is the conventional sheet layout when no header row parsed.
var defaultRoles = map[int]int{
	0: colSerial,
	1: colServiceNumber,
	2: colName,
	3: colSitup,
	4: colPushup,
	5: colRun,
}

func parseRow(cells []Cell, roles map[int]int) (SheetRow, bool) {
	if roles == nil {
		roles = defaultRoles
	}

	var row SheetRow
	for _, cell := range cells {
		content := strings.TrimSpace(cell.Content)
		switch roles[cell.ColumnIndex] {
		case colSerial:
			row.Serial, _ = strconv.Atoi(content)
		case colServiceNumber:
			sn := strings.ToUpper(strings.ReplaceAll(content, " ", ""))
			if serviceNoRe.MatchString(sn) {
				row.ServiceNumber = sn
			}
		case colName:
			row.Name = StripRank(content)
		case colSitup:
			row.SitupReps = parseReps(content)
		case colPushup:
			row.PushupReps = parseReps(content)
		case colRun:
			row.RunTimeSeconds = ParseRunTime(content)
		}
	}

	// Header rows and blank lines carry no usable data.
	if row.Serial == 0 && row.ServiceNumber == "" {
		return SheetRow{}, false
	}
	if row.Name == "" && row.SitupReps == 0 && row.PushupReps == 0 && row.RunTimeSeconds == 0 {
		return SheetRow{}, false
	}

	return row, true
}

// parseReps tolerates OCR noise around the digits; unreadable cells become 0
// so the commander can correct the draft row.
func parseReps(content string) int {
	digits := strings.TrimFunc(content, func(r rune) bool {
		return r < '0' || r > '9'
	})
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > 200 {
		return 0
	}
	return n
}

// ParseRunTime converts "MM:SS" to seconds, 0 when unreadable.
func ParseRunTime(content string) int {
	m := runTimeRe.FindStringSubmatch(strings.TrimSpace(content))
	if m == nil {
		return 0
	}
	minutes, _ := strconv.Atoi(m[1])
	seconds, _ := strconv.Atoi(m[2])
	return minutes*60 + seconds
}

// StripRank removes a leading rank abbreviation from a sheet name.
func StripRank(name string) string {
	trimmed := strings.TrimSpace(name)
	upper := strings.ToUpper(trimmed)

	for _, rank := range rankPrefixes {
		if strings.HasPrefix(upper, rank+" ") {
			return strings.TrimSpace(trimmed[len(rank):])
		}
	}

	return trimmed
}
