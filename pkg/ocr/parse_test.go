package ocr

import (
	"reflect"
	"testing"
)

func headerRow() []Cell {
	return []Cell{
		{0, 0, "S/N"}, {0, 1, "Service No"}, {0, 2, "Name"},
		{0, 3, "Sit-Up"}, {0, 4, "Push-Up"}, {0, 5, "2.4km Run"},
	}
}

func TestParseSheetWithHeader(t *testing.T) {
	cells := append(headerRow(),
		Cell{1, 0, "1"}, Cell{1, 1, "T0012345A"}, Cell{1, 2, "PTE TAN WEI MING"},
		Cell{1, 3, "42"}, Cell{1, 4, "35"}, Cell{1, 5, "10:30"},
		Cell{2, 0, "2"}, Cell{2, 1, "T0054321B"}, Cell{2, 2, "CPL LIM JUN JIE"},
		Cell{2, 3, "38"}, Cell{2, 4, "30"}, Cell{2, 5, "11:15"},
	)

	rows := ParseSheet(cells)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	want := SheetRow{
		Serial:         1,
		ServiceNumber:  "T0012345A",
		Name:           "TAN WEI MING",
		SitupReps:      42,
		PushupReps:     35,
		RunTimeSeconds: 630,
	}
	if !reflect.DeepEqual(rows[0], want) {
		t.Errorf("row 0 = %+v, want %+v", rows[0], want)
	}

	if rows[1].Name != "LIM JUN JIE" {
		t.Errorf("rank prefix not stripped: %q", rows[1].Name)
	}
	if rows[1].RunTimeSeconds != 675 {
		t.Errorf("run time = %d, want 675", rows[1].RunTimeSeconds)
	}
}

// Header labels must never surface as a soldier row: "Service No" normalizes
// to a string that matches the service-number pattern.
func TestParseSheetHeaderNeverASoldierRow(t *testing.T) {
	cells := append(headerRow(),
		Cell{1, 0, "1"}, Cell{1, 1, "T0012345A"}, Cell{1, 2, "PTE TAN WEI MING"},
		Cell{1, 3, "42"}, Cell{1, 4, "35"}, Cell{1, 5, "10:30"},
	)

	rows := ParseSheet(cells)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	for _, row := range rows {
		if row.ServiceNumber == "SERVICENO" || row.Name == "Name" {
			t.Errorf("header leaked into rows: %+v", row)
		}
	}
}

func TestParseSheetWithoutHeader(t *testing.T) {
	cells := []Cell{
		{0, 0, "1"}, {0, 1, "T0099999C"}, {0, 2, "REC ONG KAI"},
		{0, 3, "25"}, {0, 4, "20"}, {0, 5, "13:05"},
	}

	rows := ParseSheet(cells)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].ServiceNumber != "T0099999C" {
		t.Errorf("service number = %q", rows[0].ServiceNumber)
	}
	if rows[0].Name != "ONG KAI" {
		t.Errorf("name = %q", rows[0].Name)
	}
}

func TestParseSheetSkipsEmptyAndHeaderRows(t *testing.T) {
	cells := append(headerRow(),
		Cell{1, 0, ""}, Cell{1, 1, ""}, Cell{1, 2, ""},
		Cell{1, 3, ""}, Cell{1, 4, ""}, Cell{1, 5, ""},
		Cell{2, 0, "1"}, Cell{2, 1, "T0012345A"}, Cell{2, 2, "TAN AH KOW"},
		Cell{2, 3, "42"}, Cell{2, 4, "35"}, Cell{2, 5, "10:30"},
	)

	rows := ParseSheet(cells)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
}

func TestParseSheetNoiseTolerance(t *testing.T) {
	cells := append(headerRow(),
		Cell{1, 0, "1"}, Cell{1, 1, "t 0012345a"}, Cell{1, 2, "LCP GOH SENG"},
		Cell{1, 3, " 42."}, Cell{1, 4, "x"}, Cell{1, 5, "banana"},
	)

	rows := ParseSheet(cells)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}

	row := rows[0]
	if row.ServiceNumber != "T0012345A" {
		t.Errorf("service number = %q, want normalized T0012345A", row.ServiceNumber)
	}
	if row.SitupReps != 42 {
		t.Errorf("situps = %d, want digits extracted", row.SitupReps)
	}
	if row.PushupReps != 0 || row.RunTimeSeconds != 0 {
		t.Errorf("unreadable cells should parse to 0, got %d / %d", row.PushupReps, row.RunTimeSeconds)
	}
}

func TestParseRunTime(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"10:30", 630},
		{"9:00", 540},
		{" 11:15 ", 675},
		{"10:75", 0},
		{"1030", 0},
		{"", 0},
	}

	for _, tt := range tests {
		if got := ParseRunTime(tt.in); got != tt.want {
			t.Errorf("ParseRunTime(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStripRank(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PTE TAN WEI MING", "TAN WEI MING"},
		{"3SG LEE HSIEN", "LEE HSIEN"},
		{"TAN WEI MING", "TAN WEI MING"},
		{"PRIVATE TAN", "PRIVATE TAN"}, // only abbreviations are stripped
	}

	for _, tt := range tests {
		if got := StripRank(tt.in); got != tt.want {
			t.Errorf("StripRank(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
