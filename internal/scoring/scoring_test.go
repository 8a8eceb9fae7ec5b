package scoring

import (
	"testing"
	"time"
)

// table25to29 is a trimmed scoring table for the 25-29 age group.
func table25to29() *Table {
	rows := []Row{
		{StationSitUp, 10, 5},
		{StationSitUp, 20, 12},
		{StationSitUp, 30, 18},
		{StationSitUp, 40, 25},
		{StationSitUp, 48, 30},

		{StationPushUp, 10, 5},
		{StationPushUp, 20, 12},
		{StationPushUp, 30, 20},
		{StationPushUp, 42, 30},

		// run thresholds are seconds (upper bounds), lowest qualifying wins
		{StationRun, 550, 40},
		{StationRun, 610, 32},
		{StationRun, 670, 25},
		{StationRun, 730, 15},
		{StationRun, 840, 5},
	}
	return BuildTable("25-29", rows)
}

func TestScoreSumsStationLookups(t *testing.T) {
	tbl := table25to29()

	sc := tbl.Score(40, 30, 630) // run time 10:30

	if sc.SitupScore != 25 {
		t.Fatalf("situp score: got %d, want 25", sc.SitupScore)
	}
	if sc.PushupScore != 20 {
		t.Fatalf("pushup score: got %d, want 20", sc.PushupScore)
	}
	if sc.RunScore != 25 {
		t.Fatalf("run score: got %d, want 25", sc.RunScore)
	}
	if want := sc.SitupScore + sc.PushupScore + sc.RunScore; sc.TotalScore != want {
		t.Fatalf("total: got %d, want %d", sc.TotalScore, want)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	tbl := table25to29()

	first := tbl.Score(40, 30, 630)
	for i := 0; i < 5; i++ {
		if got := tbl.Score(40, 30, 630); got != first {
			t.Fatalf("score changed between computations: %+v vs %+v", got, first)
		}
	}
}

func TestRepsPointsHighestBandAtMostReps(t *testing.T) {
	bands := table25to29().SitUp

	cases := []struct {
		reps int
		want int
	}{
		{0, 0},
		{9, 0},
		{10, 5},  // exactly on a threshold
		{29, 12}, // one rep short of the next band
		{30, 18},
		{100, 30}, // above the top band caps at the top band
	}
	for _, c := range cases {
		if got := RepsPoints(bands, c.reps); got != c.want {
			t.Errorf("RepsPoints(%d): got %d, want %d", c.reps, got, c.want)
		}
	}
}

func TestRunPointsLowestBandAtLeastSeconds(t *testing.T) {
	bands := table25to29().Run

	cases := []struct {
		seconds int
		want    int
	}{
		{500, 40},
		{550, 40}, // exactly on the fastest threshold
		{551, 32},
		{840, 5},
		{841, 0}, // slower than every band
	}
	for _, c := range cases {
		if got := RunPoints(bands, c.seconds); got != c.want {
			t.Errorf("RunPoints(%d): got %d, want %d", c.seconds, got, c.want)
		}
	}
}

func TestClassifyCutoffs(t *testing.T) {
	cases := []struct {
		total int
		want  Result
	}{
		{100, ResultGold},
		{85, ResultGold},
		{84, ResultSilver},
		{75, ResultSilver},
		{74, ResultPass},
		{61, ResultPass},
		{60, ResultFail},
		{0, ResultFail},
	}
	for _, c := range cases {
		if got := Classify(c.total); got != c.want {
			t.Errorf("Classify(%d): got %s, want %s", c.total, got, c.want)
		}
	}
}

func TestAgeGroupFor(t *testing.T) {
	on := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		dob  time.Time
		want string
	}{
		{time.Date(2007, 1, 1, 0, 0, 0, 0, time.UTC), "18-21"},
		{time.Date(2001, 5, 31, 0, 0, 0, 0, time.UTC), "25-29"},
		{time.Date(2001, 6, 2, 0, 0, 0, 0, time.UTC), "22-24"}, // birthday not reached yet
		{time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), "35-39"},
		{time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC), "60+"},
	}
	for _, c := range cases {
		if got := AgeGroupFor(c.dob, on); got != c.want {
			t.Errorf("AgeGroupFor(%s): got %s, want %s", c.dob.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestBuildTableSortsUnorderedRows(t *testing.T) {
	rows := []Row{
		{StationSitUp, 30, 18},
		{StationSitUp, 10, 5},
		{StationSitUp, 20, 12},
	}
	tbl := BuildTable("30-34", rows)

	if got := RepsPoints(tbl.SitUp, 25); got != 12 {
		t.Fatalf("RepsPoints over unordered rows: got %d, want 12", got)
	}
}
