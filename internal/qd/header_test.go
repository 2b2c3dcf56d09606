package qd

import (
	"testing"
	"time"
)

func TestParseFileOpenTime(t *testing.T) {
	tests := []struct {
		name string
		line string
		want time.Time
	}{
		{
			"24h with day name",
			"FILEOPENTIME,3700245654.00, Wednesday, 4/14/2021 15:20:54",
			time.Date(2021, 4, 14, 15, 20, 54, 0, time.UTC),
		},
		{
			"dashed date with split time",
			"FILEOPENTIME,3700245654.00, 4-14-2021, 3:20 PM",
			time.Date(2021, 4, 14, 15, 20, 0, 0, time.UTC),
		},
		{
			"iso date",
			"FILEOPENTIME,3700245654.00, Wednesday, 2021-04-14 15:20:54",
			time.Date(2021, 4, 14, 15, 20, 54, 0, time.UTC),
		},
		{
			"12h with seconds",
			"FILEOPENTIME,3700245654.00, Wednesday, 4/14/2021 3:20:54 PM",
			time.Date(2021, 4, 14, 15, 20, 54, 0, time.UTC),
		},
		{
			"12h split across fields",
			"FILEOPENTIME,3700245654.00, 4/14/2021, 3:20 PM",
			time.Date(2021, 4, 14, 15, 20, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFileOpenTime(tt.line)
			if !ok {
				t.Fatalf("ParseFileOpenTime(%q) not understood", tt.line)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseFileOpenTime(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestParseFileOpenTime_Unparseable(t *testing.T) {
	lines := []string{
		"FILEOPENTIME",
		"FILEOPENTIME,3700245654.00",
		"FILEOPENTIME,3700245654.00, garbage, more garbage",
	}
	for _, line := range lines {
		if _, ok := ParseFileOpenTime(line); ok {
			t.Errorf("ParseFileOpenTime(%q) = ok, want not understood", line)
		}
	}
}

func TestParseHeader(t *testing.T) {
	lines := []string{
		"; this line is ignored",
		"FILEOPENTIME,3700245654.00, Wednesday, 4/14/2021 15:20:54",
		"BYAPP, Electrical Transport Option, Release 1.2.3",
		"TEMPERATURETOLERANCE, 0.15",
		"FIELDTOLERANCE, 8.5",
		"INFO,Nb3Sn film,SAMPLE1_NAME",
		"INFO,thin film,SAMPLE1_TYPE",
		"INFO,grown at 700C, annealed,SAMPLE1_COMMENT",
		"INFO,YBCO crystal,SAMPLE2_NAME",
		"INFO,Cu-O,SAMPLE2_MATERIAL",
	}

	h := ParseHeader(lines)

	if h.OpenTime == nil {
		t.Fatal("open time not parsed")
	}
	want := time.Date(2021, 4, 14, 15, 20, 54, 0, time.UTC)
	if !h.OpenTime.Equal(want) {
		t.Errorf("open time = %v, want %v", h.OpenTime, want)
	}
	if h.Software != "Electrical Transport Option, Release 1.2.3" {
		t.Errorf("software = %q", h.Software)
	}
	if !h.TemperatureTolerance.Valid || h.TemperatureTolerance.Value != 0.15 {
		t.Errorf("temperature tolerance = %+v, want 0.15", h.TemperatureTolerance)
	}
	if !h.FieldTolerance.Valid || h.FieldTolerance.Value != 8.5 {
		t.Errorf("field tolerance = %+v, want 8.5", h.FieldTolerance)
	}
	if len(h.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", h.Warnings)
	}

	if len(h.Samples) != 2 {
		t.Fatalf("expected 2 samples, got %d: %+v", len(h.Samples), h.Samples)
	}
	s1 := h.Samples[0]
	if s1.Name != "Nb3Sn film" || s1.Type != "thin film" {
		t.Errorf("sample 1 = %+v", s1)
	}
	if s1.Comment != "grown at 700C, annealed" {
		t.Errorf("sample 1 comment = %q, embedded commas must survive", s1.Comment)
	}
	s2 := h.Samples[1]
	if s2.Name != "YBCO crystal" || s2.Material != "Cu-O" {
		t.Errorf("sample 2 = %+v", s2)
	}
}

func TestParseHeader_BadOpenTimeWarns(t *testing.T) {
	h := ParseHeader([]string{
		"FILEOPENTIME,not,a,timestamp",
		"BYAPP, ACMS",
	})
	if h.OpenTime != nil {
		t.Errorf("open time = %v, want nil", h.OpenTime)
	}
	if len(h.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(h.Warnings), h.Warnings)
	}
	if h.Warnings[0].Reason != "FILEOPENTIME not understood" {
		t.Errorf("warning reason = %q", h.Warnings[0].Reason)
	}
	if h.Software != "ACMS" {
		t.Errorf("software = %q, want ACMS", h.Software)
	}
}

func TestParseHeader_MissingTolerances(t *testing.T) {
	h := ParseHeader([]string{"BYAPP, MPMS MultiVu"})
	if h.TemperatureTolerance.Valid || h.FieldTolerance.Valid {
		t.Errorf("tolerances = %+v / %+v, want both invalid", h.TemperatureTolerance, h.FieldTolerance)
	}
	if len(h.Samples) != 0 {
		t.Errorf("samples = %+v, want none", h.Samples)
	}
}

func TestFamilyForApp(t *testing.T) {
	tests := []struct {
		byapp string
		want  string
		ok    bool
	}{
		{"Electrical Transport Option", "ETO", true},
		{"ETO, Release 1.0", "ETO", true},
		{"ACMS II", "ACMS", true},
		{"MPMS MultiVu", "MPMS", true},
		{"SQUID VSM", "MPMS", true},
		{"Resistivity Option", "Resistivity", true},
		{"ACT Transport", "ACT", true},
		{"Heat Capacity", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.byapp, func(t *testing.T) {
			fam, ok := FamilyForApp(tt.byapp)
			if ok != tt.ok {
				t.Fatalf("FamilyForApp(%q) ok = %v, want %v", tt.byapp, ok, tt.ok)
			}
			if ok && fam.Name != tt.want {
				t.Errorf("FamilyForApp(%q) = %s, want %s", tt.byapp, fam.Name, tt.want)
			}
		})
	}
}
