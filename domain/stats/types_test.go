package stats

import "testing"

func TestParseAlternative(t *testing.T) {
	cases := []struct {
		input string
		want  Alternative
		ok    bool
	}{
		{"", TwoSided, true},
		{"two-sided", TwoSided, true},
		{"greater", Greater, true},
		{"larger", Greater, true},
		{"less", Less, true},
		{"smaller", Less, true},
		{" Greater ", Greater, true},
		{"both", "", false},
		{"one-sided", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAlternative(tc.input)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseAlternative(%q) = %v, %v; want %v", tc.input, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseAlternative(%q) should fail", tc.input)
		}
	}
}

func TestTestConfiguration_Validate(t *testing.T) {
	cfg := DefaultConfiguration()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}

	cfg = DefaultConfiguration()
	cfg.ConfidenceLevel = 1
	if err := cfg.Validate(); err == nil {
		t.Error("Confidence level 1 should fail")
	}

	cfg = DefaultConfiguration()
	cfg.Alpha = 1.2
	if err := cfg.Validate(); err == nil {
		t.Error("Alpha above 1 should fail")
	}

	cfg = DefaultConfiguration()
	cfg.Alternative = "sideways"
	if err := cfg.Validate(); err == nil {
		t.Error("Unknown alternative should fail")
	}
}

func TestGroupHasRaw(t *testing.T) {
	if (Group{Summary: &SummaryStatistic{Size: 5, Mean: 1, SD: 1}}).HasRaw() {
		t.Error("Summary-only group has no raw data")
	}
	if !(Group{Sample: Sample{1, 2}}).HasRaw() {
		t.Error("Group with observations has raw data")
	}
}
