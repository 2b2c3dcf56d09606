package qd

import (
	"strings"
	"testing"

	"github.com/lab-visualizer/backend/internal/models"
)

func etoTestTable() *models.Table {
	return models.NewTable([]*models.Column{
		numCol(ColTemperature, 300, 300, 300, 300),
		numCol(ColMagneticField, 400, 300, 200, 100),
		numCol("Sample Position (deg)", 10, 10, 10, 10),
		numCol("Resistance Ch1 (Ohms)", 1.1, 1.2, 1.3, 1.4),
		numCol("Phase Angle Ch1 (deg)", 0.1, 0.2, 0.3, 0.4),
		numCol("Resistance Ch2 (Ohms)", 2.1, 2.2, 2.3, 2.4),
		numCol("ETO Channel 1 (code)", 7, 7, 7, 7),
	})
}

func TestSplitRuns_ETORecord(t *testing.T) {
	table := etoTestTable()
	run := models.Run{
		Type:  models.SweepField,
		Start: 0,
		End:   4,
		Value: models.SomeFloat(300),
	}

	records, warnings := SplitRuns(table, []models.Run{run}, Families["ETO"])
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	rec, ok := records[0].(*models.ETORecord)
	if !ok {
		t.Fatalf("record is %T, want *models.ETORecord", records[0])
	}
	if rec.Name != "Field sweep at 300 K." {
		t.Errorf("record name = %q", rec.Name)
	}
	if rec.MeasurementType != models.SweepField {
		t.Errorf("measurement type = %s, want field", rec.MeasurementType)
	}

	if len(rec.Temperature) != 4 || rec.Temperature[0].Value != 300 {
		t.Errorf("temperature series = %+v", rec.Temperature)
	}
	if len(rec.SamplePosition) != 4 || rec.SamplePosition[2].Value != 10 {
		t.Errorf("sample position series = %+v", rec.SamplePosition)
	}

	if len(rec.Channels) != 2 {
		t.Fatalf("expected 2 channels, got %d", len(rec.Channels))
	}
	ch1, ch2 := rec.Channels[0], rec.Channels[1]
	if ch1.Name != "Channel 1" || ch2.Name != "Channel 2" {
		t.Errorf("channel names = %q, %q", ch1.Name, ch2.Name)
	}
	if len(ch1.Resistance) != 4 || ch1.Resistance[0].Value != 1.1 {
		t.Errorf("channel 1 resistance = %+v", ch1.Resistance)
	}
	if len(ch1.PhaseAngle) != 4 || ch1.PhaseAngle[3].Value != 0.4 {
		t.Errorf("channel 1 phase angle = %+v", ch1.PhaseAngle)
	}
	if len(ch2.Resistance) != 4 || ch2.Resistance[1].Value != 2.2 {
		t.Errorf("channel 2 resistance = %+v", ch2.Resistance)
	}
	if len(ch2.PhaseAngle) != 0 {
		t.Errorf("channel 2 phase angle = %+v, want empty", ch2.PhaseAngle)
	}

	if len(rec.Maps) != 1 {
		t.Fatalf("expected 1 map sub-record, got %d", len(rec.Maps))
	}
	if rec.Maps[0].Name != "ETO Channel 1 (code)" {
		t.Errorf("map name = %q, want the raw header", rec.Maps[0].Name)
	}
	if len(rec.Maps[0].Data) != 4 || rec.Maps[0].Data[0].Value != 7 {
		t.Errorf("map data = %+v", rec.Maps[0].Data)
	}
}

func TestSplitRuns_SlicesToRunRange(t *testing.T) {
	table := etoTestTable()
	run := models.Run{
		Type:  models.SweepField,
		Start: 1,
		End:   3,
		Value: models.SomeFloat(300),
	}

	records, _ := SplitRuns(table, []models.Run{run}, Families["ETO"])
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0].(*models.ETORecord)

	if len(rec.Temperature) != 2 {
		t.Fatalf("temperature series length = %d, want 2", len(rec.Temperature))
	}
	if got := rec.Channels[0].Resistance; len(got) != 2 || got[0].Value != 1.2 || got[1].Value != 1.3 {
		t.Errorf("channel 1 resistance = %+v, want rows 1 and 2", got)
	}
}

func TestSplitRuns_WarnsWhenChannelsMissing(t *testing.T) {
	// An ETO record expects channel columns; a block without any usually
	// means the identifying column disappeared mid-file.
	table := models.NewTable([]*models.Column{
		numCol(ColTemperature, 300, 300, 300),
		numCol(ColMagneticField, 300, 200, 100),
	})
	run := models.Run{Type: models.SweepField, Start: 0, End: 3, Value: models.SomeFloat(300)}

	records, warnings := SplitRuns(table, []models.Run{run}, Families["ETO"])
	if len(records) != 1 {
		t.Fatalf("expected the record to survive the warning, got %d records", len(records))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0].Reason, "no channel columns found") {
		t.Errorf("warning reason = %q", warnings[0].Reason)
	}
	if !strings.Contains(warnings[0].Reason, "run 0") {
		t.Errorf("warning reason %q does not name the run", warnings[0].Reason)
	}
}

func TestSplitRuns_UndeclaredColumnsDropped(t *testing.T) {
	table := models.NewTable([]*models.Column{
		numCol(ColTemperature, 300, 300),
		numCol("Firmware Surprise (x)", 1, 2),
		numCol("Resistance Ch1 (Ohms)", 1.1, 1.2),
	})
	run := models.Run{Type: models.SweepUndefined, Start: 0, End: 2}

	records, _ := SplitRuns(table, []models.Run{run}, Families["ETO"])
	rec := records[0].(*models.ETORecord)
	if len(rec.Temperature) != 2 {
		t.Errorf("temperature series = %+v", rec.Temperature)
	}
	// the undeclared column must not leak into any declared field
	for key, series := range rec.Fields() {
		if key == "temperature" {
			continue
		}
		if len(*series) != 0 {
			t.Errorf("field %q unexpectedly populated: %+v", key, *series)
		}
	}
}
