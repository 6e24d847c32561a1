package tabular

import "testing"

func TestBatteryColumnsByBus(t *testing.T) {
	cols := []string{"Gen 4 #BT MW", "gen 4 #bt2 MW", "Gen 5 #BT MW", "Meter MW"}
	byBus := BatteryColumnsByBus(cols)

	if len(byBus) != 2 {
		t.Fatalf("buses = %d, want 2", len(byBus))
	}
	if len(byBus[4]) != 2 || byBus[4][0] != "Gen 4 #BT MW" || byBus[4][1] != "gen 4 #bt2 MW" {
		t.Fatalf("bus 4 columns = %v", byBus[4])
	}
	if len(byBus[5]) != 1 {
		t.Fatalf("bus 5 columns = %v", byBus[5])
	}

	if got := SortedBuses(byBus); got[0] != 4 || got[1] != 5 {
		t.Fatalf("SortedBuses = %v", got)
	}
}

func TestLoadColumnsByBus(t *testing.T) {
	f, err := Parse("Date\tTime\tBus 3 #EV MW\tBus 3 #EV Mvar\tbus 4 #ev mw\tBus 12 Other\n" +
		"1/1/2024\t1:00 AM\t1\t0.1\t2\t9\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	byBus := LoadColumnsByBus(f)

	if len(byBus) != 2 {
		t.Fatalf("buses = %v", byBus)
	}
	if byBus[3].MWCol != "Bus 3 #EV MW" || byBus[3].MVarCol != "Bus 3 #EV Mvar" {
		t.Fatalf("bus 3 = %+v", byBus[3])
	}
	if byBus[4].MWCol != "bus 4 #ev mw" || byBus[4].MVarCol != "" {
		t.Fatalf("bus 4 = %+v", byBus[4])
	}
}

func TestBranchName(t *testing.T) {
	cases := []struct{ col, want string }{
		{"1 (Slack) TO 2 (Community) Ckt 1 % of MVA Limit", "1-2"},
		{"3 TO 6 % of MVA Limit", "3-6"},
		{"1 (Slack) to 2 (Community)", "1 (Slack) to 2 (Community)"}, // lowercase "to" is no branch
		{"Skip", "Skip"},
	}
	for _, c := range cases {
		if got := BranchName(c.col); got != c.want {
			t.Fatalf("BranchName(%q) = %q, want %q", c.col, got, c.want)
		}
	}
}

func TestVoltageBus(t *testing.T) {
	if bus, ok := VoltageBus("3 PU Volt"); !ok || bus != "3" {
		t.Fatalf("VoltageBus = %q, %v", bus, ok)
	}
	if _, ok := VoltageBus("Bus PU Volt"); ok {
		t.Fatalf("header without leading number must not match")
	}
}
