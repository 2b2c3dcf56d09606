package qd

import (
	"testing"

	"github.com/lab-visualizer/backend/internal/models"
)

func etoTestRecord() *models.ETORecord {
	rec := &models.ETORecord{}
	rec.Name = "Field sweep at 300 K."
	rec.MeasurementType = models.SweepField
	rec.Temperature = models.Series{models.SomeFloat(300), models.SomeFloat(300)}
	rec.MagneticField = models.Series{models.SomeFloat(200), models.SomeFloat(100)}

	ch1 := rec.AddChannel("Channel 1").(*models.ETOChannel)
	ch1.Resistance = models.Series{models.SomeFloat(1.1), models.SomeFloat(1.2)}
	ch2 := rec.AddChannel("Channel 2").(*models.ETOChannel)
	ch2.Resistance = models.Series{models.SomeFloat(2.1), models.SomeFloat(2.2)}
	return rec
}

func TestMakeResults_ETO(t *testing.T) {
	fam := Families["ETO"]
	rec := etoTestRecord()

	results := MakeResults(fam, fam.ResultPaths, []models.DataRecord{rec})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res, ok := results[0].(*models.ETOResult)
	if !ok {
		t.Fatalf("result is %T, want *models.ETOResult", results[0])
	}

	if res.Name != "Field sweep at 300 K." {
		t.Errorf("result name = %q", res.Name)
	}
	if res.MeasurementType != models.SweepField {
		t.Errorf("result measurement type = %s", res.MeasurementType)
	}
	if len(res.Temperature) != 2 || res.Temperature[0].Value != 300 {
		t.Errorf("temperature = %+v", res.Temperature)
	}
	if len(res.MagneticField) != 2 || res.MagneticField[1].Value != 100 {
		t.Errorf("magnetic field = %+v", res.MagneticField)
	}
	if len(res.Resistance0) != 2 || res.Resistance0[0].Value != 1.1 {
		t.Errorf("resistance0 = %+v", res.Resistance0)
	}
	if len(res.Resistance1) != 2 || res.Resistance1[1].Value != 2.2 {
		t.Errorf("resistance1 = %+v", res.Resistance1)
	}
}

func TestMakeResults_MissingPathLeavesFieldUnset(t *testing.T) {
	fam := Families["ETO"]
	rec := &models.ETORecord{}
	rec.Name = "Measurement run."
	rec.MeasurementType = models.SweepUndefined
	rec.Temperature = models.Series{models.SomeFloat(4.2)}
	// no channels: the channel paths cannot resolve

	results := MakeResults(fam, fam.ResultPaths, []models.DataRecord{rec})
	res := results[0].(*models.ETOResult)

	if res.Name != "Measurement run." {
		t.Errorf("identity must be projected even when paths fail, got name %q", res.Name)
	}
	if len(res.Temperature) != 1 {
		t.Errorf("temperature = %+v", res.Temperature)
	}
	if res.Resistance0 != nil || res.Resistance1 != nil {
		t.Errorf("channel fields = %+v / %+v, want unset", res.Resistance0, res.Resistance1)
	}
}

func TestMakeResults_CustomPaths(t *testing.T) {
	fam := Families["ETO"]
	rec := etoTestRecord()

	// an override table can rewire which channel feeds which result field
	paths := map[string]string{
		"channels[1].resistance": "resistance0",
		"temperature":            "temperature",
	}
	results := MakeResults(fam, paths, []models.DataRecord{rec})
	res := results[0].(*models.ETOResult)

	if len(res.Resistance0) != 2 || res.Resistance0[0].Value != 2.1 {
		t.Errorf("resistance0 = %+v, want channel 2 data", res.Resistance0)
	}
	if res.Resistance1 != nil {
		t.Errorf("resistance1 = %+v, want unset", res.Resistance1)
	}
}

func TestResolvePath(t *testing.T) {
	rec := etoTestRecord()

	tests := []struct {
		path  string
		ok    bool
		first float64
	}{
		{"temperature", true, 300},
		{"channels[0].resistance", true, 1.1},
		{"channels[1].resistance", true, 2.1},
		{"channels.resistance", true, 1.1}, // no bracket defaults to element 0
		{"channels[2].resistance", false, 0},
		{"channels[0].nonexistent", false, 0},
		{"widgets[0].resistance", false, 0},
		{"channels[x].resistance", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			series, ok := resolvePath(rec, tt.path)
			if ok != tt.ok {
				t.Fatalf("resolvePath(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if ok && series[0].Value != tt.first {
				t.Errorf("resolvePath(%q)[0] = %v, want %v", tt.path, series[0].Value, tt.first)
			}
		})
	}
}

func TestResultIdentityAccessor(t *testing.T) {
	fam := Families["ETO"]
	rec := etoTestRecord()

	results := MakeResults(fam, fam.ResultPaths, []models.DataRecord{rec})
	name, sweep := results[0].Identity()
	if name != "Field sweep at 300 K." {
		t.Errorf("identity name = %q", name)
	}
	if sweep != models.SweepField {
		t.Errorf("identity sweep type = %s", sweep)
	}
}
