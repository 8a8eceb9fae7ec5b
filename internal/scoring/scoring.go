// Package scoring computes IPPT station scores and award tiers from the
// age-bracketed scoring table. It is pure: the table rows come from the
// caller, usually fetched from the database and cached.
package scoring

import (
	"sort"
	"time"
)

type Station string

const (
	StationSitUp  Station = "sit_up"
	StationPushUp Station = "push_up"
	StationRun    Station = "run"
)

type Result string

const (
	ResultGold   Result = "gold"
	ResultSilver Result = "silver"
	ResultPass   Result = "pass"
	ResultFail   Result = "fail"
)

// Award cutoffs over the total score. These are the single canonical set.
const (
	GoldMin   = 85
	SilverMin = 75
	PassMin   = 61
)

// Band maps a threshold to points. For rep stations the threshold is a rep
// count (minimum reps to earn the points); for the run it is a time in
// seconds (maximum time to earn the points).
type Band struct {
	Threshold int
	Points    int
}

// Table holds one age group's bands, each slice sorted ascending by threshold.
type Table struct {
	AgeGroup string
	SitUp    []Band
	PushUp   []Band
	Run      []Band
}

// Row is a raw scoring table entry, the shape stored in the database.
type Row struct {
	Station   Station
	Threshold int
	Points    int
}

// BuildTable assembles a Table from raw rows, sorting each station's bands.
func BuildTable(ageGroup string, rows []Row) *Table {
	t := &Table{AgeGroup: ageGroup}
	for _, r := range rows {
		b := Band{Threshold: r.Threshold, Points: r.Points}
		switch r.Station {
		case StationSitUp:
			t.SitUp = append(t.SitUp, b)
		case StationPushUp:
			t.PushUp = append(t.PushUp, b)
		case StationRun:
			t.Run = append(t.Run, b)
		}
	}
	sortBands(t.SitUp)
	sortBands(t.PushUp)
	sortBands(t.Run)
	return t
}

func sortBands(bands []Band) {
	sort.Slice(bands, func(i, j int) bool { return bands[i].Threshold < bands[j].Threshold })
}

// RepsPoints returns the points of the highest band whose threshold is at
// most reps, or 0 when reps fall below every band.
func RepsPoints(bands []Band, reps int) int {
	points := 0
	for _, b := range bands {
		if b.Threshold > reps {
			break
		}
		points = b.Points
	}
	return points
}

// RunPoints returns the points of the lowest band whose threshold is at least
// seconds, or 0 when the run is slower than every band.
func RunPoints(bands []Band, seconds int) int {
	for _, b := range bands {
		if b.Threshold >= seconds {
			return b.Points
		}
	}
	return 0
}

// Scorecard is one attempt's computed scores.
type Scorecard struct {
	SitupScore  int
	PushupScore int
	RunScore    int
	TotalScore  int
	Result      Result
}

// Score computes the three station scores, their sum and the award tier.
func (t *Table) Score(situpReps, pushupReps, runSeconds int) Scorecard {
	sc := Scorecard{
		SitupScore:  RepsPoints(t.SitUp, situpReps),
		PushupScore: RepsPoints(t.PushUp, pushupReps),
		RunScore:    RunPoints(t.Run, runSeconds),
	}
	sc.TotalScore = sc.SitupScore + sc.PushupScore + sc.RunScore
	sc.Result = Classify(sc.TotalScore)
	return sc
}

// Classify maps a total score to its award tier.
func Classify(total int) Result {
	switch {
	case total >= GoldMin:
		return ResultGold
	case total >= SilverMin:
		return ResultSilver
	case total >= PassMin:
		return ResultPass
	default:
		return ResultFail
	}
}

// ageGroups in ascending order of lower bound.
var ageGroups = []struct {
	min   int
	label string
}{
	{0, "18-21"},
	{22, "22-24"},
	{25, "25-29"},
	{30, "30-34"},
	{35, "35-39"},
	{40, "40-44"},
	{45, "45-49"},
	{50, "50-54"},
	{55, "55-59"},
	{60, "60+"},
}

// AgeGroupFor returns the scoring age group for a date of birth as of a date.
func AgeGroupFor(dob, on time.Time) string {
	age := on.Year() - dob.Year()
	if on.YearDay() < dob.YearDay() {
		age--
	}

	label := ageGroups[0].label
	for _, g := range ageGroups {
		if age >= g.min {
			label = g.label
		}
	}
	return label
}

// AgeGroups lists every known age group label.
func AgeGroups() []string {
	out := make([]string, 0, len(ageGroups))
	for _, g := range ageGroups {
		out = append(out, g.label)
	}
	return out
}

// ValidAgeGroup reports whether label names a known age group.
func ValidAgeGroup(label string) bool {
	for _, g := range ageGroups {
		if g.label == label {
			return true
		}
	}
	return false
}
