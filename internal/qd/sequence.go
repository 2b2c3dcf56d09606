package qd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lab-visualizer/backend/internal/models"
)

// Lookup tables for small-integer coded fields of the sequence language.
var (
	waitOnError     = []string{"No Action", "Abort", "Shutdown"}
	positionModes   = []string{"Move to position", "Move to index and define", "Redefine present position"}
	tempModes       = []string{"Fast Settle", "No Overshoot"}
	fieldApproaches = []string{"Linear", "No Overshoot", "Oscillate"}
	fieldEndModes   = []string{"Persistent", "Driven"}
	scanFieldSpacing    = []string{"Uniform", "H*H", "H^1/2", "1/H", "log(H)"}
	scanFieldApproaches = []string{"Linear", "No Overshoot", "Oscillate", "Sweep"}
	scanTempSpacing     = []string{"Uniform", "1/T", "log(T)"}
	scanTempApproaches  = []string{"Fast", "No Overshoot", "Sweep"}
	actAutorange = []string{"Fixed Gain", "Always Autorange", "Sticky Autorange"}
	etoModes     = []string{
		"Do Nothing", "Start Excitation", "Start Continuous Measure",
		"Perform N Measurements", "Stop Measurement", "Stop Excitation",
	}
	etoWiring = []string{"4-wire", "2-wire"}

	// actFixedGain maps the ACTR gain code to the preamp range in volts.
	actFixedGain = []float64{
		5, 1, 0.5, 0.2, 0.1, 0.05, 0.04, 0.02, 0.01,
		0.005, 0.004, 0.002, 0.001, 0.0004, 0.0002, 0.00004,
	}
)

// ParseSequence tokenizes the lines of a command-sequence file into a step
// list. Administrative keywords (SHT, CHN) and comment lines are skipped;
// unrecognized keywords are reported as warnings; malformed numeric fields
// abort the whole file.
func ParseSequence(lines []string) ([]models.Step, []models.ParseError, error) {
	var steps []models.Step
	var warnings []models.ParseError

	for n, raw := range lines {
		line := strings.TrimRight(raw, "\r\n")
		lineNo := n + 1
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "!") {
			continue
		}

		dec := &lineDecoder{fields: strings.Fields(line), line: line, lineNo: lineNo}

		var step models.Step
		switch {
		case strings.HasPrefix(line, "REM "):
			text := line[4:]
			step = &models.RemarkStep{
				StepMeta: models.StepMeta{Kind: models.StepRemark, Name: "Remark: " + text},
				Remark:   text,
			}
		case strings.HasPrefix(line, "WAI "):
			step = &models.WaitStep{
				StepMeta: models.StepMeta{
					Kind: models.StepWait,
					Name: "Wait for " + dec.raw(2) + " s.",
				},
				DelaySeconds:         dec.float(2),
				ConditionTemperature: dec.boolean(3),
				ConditionField:       dec.boolean(4),
				ConditionPosition:    dec.boolean(5),
				ConditionChamber:     dec.boolean(6),
				OnError:              dec.lookup(7, waitOnError),
			}
		case strings.HasPrefix(line, "MVP"):
			step = &models.SetPositionStep{
				StepMeta: models.StepMeta{
					Kind: models.StepSetPosition,
					Name: "Move sample to position " + dec.raw(2) + ".",
				},
				Position: dec.float(2),
				Mode:     dec.lookup(3, positionModes),
				Rate:     dec.quotedFloat(5),
			}
		case strings.HasPrefix(line, "TMP"):
			step = &models.SetTemperatureStep{
				StepMeta: models.StepMeta{
					Kind: models.StepSetTemperature,
					Name: "Set temperature to " + dec.raw(2) + " K with " + dec.raw(3) + " K/min.",
				},
				Setpoint: dec.float(2),
				Rate:     dec.float(3) / 60.0, // file records K/min
				Mode:     dec.lookup(4, tempModes),
			}
		case strings.HasPrefix(line, "FLD"):
			step = &models.SetMagneticFieldStep{
				StepMeta: models.StepMeta{
					Kind: models.StepSetMagneticField,
					Name: "Set field to " + dec.raw(2) + " Oe with " + dec.raw(3) + " Oe/min.",
				},
				Setpoint: dec.float(2),
				Rate:     dec.float(3),
				Approach: dec.lookup(4, fieldApproaches),
				EndMode:  dec.lookup(5, fieldEndModes),
			}
		case strings.HasPrefix(line, "LPB"):
			step = &models.ScanFieldStep{
				StepMeta: models.StepMeta{
					Kind: models.StepScanField,
					Name: "Scan field from " + dec.raw(2) + " Oe to " + dec.raw(3) + " Oe.",
				},
				InitialField:  dec.float(2),
				FinalField:    dec.float(3),
				Rate:          dec.float(4),
				NumberOfSteps: dec.integer(5),
				SpacingCode:   dec.lookup(6, scanFieldSpacing),
				Approach:      dec.lookup(7, scanFieldApproaches),
				EndMode:       dec.lookup(8, fieldEndModes),
			}
		case strings.HasPrefix(line, "ENB"):
			step = &models.ScanFieldEndStep{
				StepMeta: models.StepMeta{Kind: models.StepScanFieldEnd, Name: "End Field Scan."},
			}
		case strings.HasPrefix(line, "LPT"):
			step = &models.ScanTempStep{
				StepMeta: models.StepMeta{
					Kind: models.StepScanTemp,
					Name: "Scan temperature from " + dec.raw(2) + " K to " + dec.raw(3) + " K.",
				},
				InitialTemp:   dec.float(2),
				FinalTemp:     dec.float(3),
				Rate:          dec.float(4) / 60.0,
				NumberOfSteps: dec.integer(5),
				SpacingCode:   dec.lookup(6, scanTempSpacing),
				Approach:      dec.lookup(7, scanTempApproaches),
			}
		case strings.HasPrefix(line, "ENT"):
			step = &models.ScanTempEndStep{
				StepMeta: models.StepMeta{Kind: models.StepScanTempEnd, Name: "End Temperature Scan."},
			}
		case strings.HasPrefix(line, "ACTR"):
			step = decodeACTR(dec)
		case strings.HasPrefix(line, "ETOR"):
			step = decodeETOR(dec)
		case strings.HasPrefix(line, "SHT"), strings.HasPrefix(line, "CHN"):
			continue
		default:
			kw := line
			if len(kw) > 4 {
				kw = kw[:4]
			}
			warnings = append(warnings, models.ParseError{
				Line:    lineNo,
				Content: line,
				Reason:  "unknown sequence keyword " + strings.TrimSpace(kw),
			})
			continue
		}
		if dec.err != nil {
			return nil, warnings, dec.err
		}
		steps = append(steps, step)
	}
	return steps, warnings, nil
}

// decodeACTR decodes the fixed-width two-channel AC Transport
// configuration line.
func decodeACTR(dec *lineDecoder) models.Step {
	return &models.ACTResistanceStep{
		StepMeta: models.StepMeta{
			Kind: models.StepACTResistance,
			Name: "AC Transport Resistance measurement.",
		},
		MeasurementActive: [2]bool{dec.boolean(4), dec.boolean(12)},
		// excitation is recorded in mA
		Excitation:          [2]float64{dec.float(5) / 1000, dec.float(13) / 1000},
		Frequency:           [2]float64{dec.float(6), dec.float(14)},
		Duration:            [2]float64{dec.float(7), dec.float(15)},
		ConstantCurrentMode: [2]bool{dec.boolean(8), dec.boolean(16)},
		LowResistanceMode:   [2]bool{dec.boolean(11), dec.boolean(19)},
		Autorange:           [2]string{dec.lookup(9, actAutorange), dec.lookup(17, actAutorange)},
		FixedGain:           [2]float64{dec.lookupFloat(10, actFixedGain), dec.lookupFloat(18, actFixedGain)},
	}
}

// decodeETOR decodes the variable-width two-channel ETO configuration
// line. Each channel's sub-field layout depends on its leading mode code:
// modes 0/4/5 consume one field, modes 1/2 a fixed 10-field block, mode 3
// one extra count field plus the same block. A running shift tracks how
// many fields each branch consumed.
func decodeETOR(dec *lineDecoder) models.Step {
	var (
		shift int
		name  string
		step  = &models.ETOResistanceStep{
			StepMeta: models.StepMeta{Kind: models.StepETOResistance},
		}
	)
	for ch := 0; ch < 2; ch++ {
		mode := dec.integer(3 + shift)
		if dec.err != nil {
			return step
		}
		if mode < 0 || mode >= len(etoModes) {
			dec.fail(fmt.Sprintf("ETO mode code %d out of range", mode))
			return step
		}
		switch mode {
		case 0, 4, 5:
			shift++
		case 1, 2, 3:
			if mode == 3 {
				step.NumberOfMeasurements[ch] = dec.integer(4 + shift)
				shift++
			}
			step.ExcitationAmplitude[ch] = dec.float(5+shift) / 1000.0
			step.ExcitationFrequency[ch] = dec.float(6 + shift)
			step.AveragingTime[ch] = dec.float(7 + shift)
			step.PreampAutorange[ch] = dec.boolean(8 + shift)
			step.SampleWiring[ch] = dec.lookup(12+shift, etoWiring)
			shift += 10
		}
		if step.SampleWiring[ch] == "" {
			step.SampleWiring[ch] = etoWiring[0]
		}
		step.Mode[ch] = etoModes[mode]
		name += fmt.Sprintf("Channel %d: %s", ch+1, etoModes[mode])
		if ch == 0 {
			name += "; "
		}
	}
	step.Name = name
	return step
}

// lineDecoder positionally decodes the whitespace-separated fields of one
// sequence line, latching the first error.
type lineDecoder struct {
	fields []string
	line   string
	lineNo int
	err    error
}

func (d *lineDecoder) fail(reason string) {
	if d.err == nil {
		d.err = fmt.Errorf("sequence line %d: %s: %q", d.lineNo, reason, d.line)
	}
}

func (d *lineDecoder) raw(i int) string {
	if i >= len(d.fields) {
		d.fail(fmt.Sprintf("missing field %d", i))
		return ""
	}
	return d.fields[i]
}

func (d *lineDecoder) float(i int) float64 {
	s := d.raw(i)
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		d.fail(fmt.Sprintf("malformed numeric field %d", i))
		return 0
	}
	return v
}

// quotedFloat parses a numeric field that some sequence writers wrap in
// double quotes.
func (d *lineDecoder) quotedFloat(i int) float64 {
	s := strings.Trim(d.raw(i), `"`)
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		d.fail(fmt.Sprintf("malformed numeric field %d", i))
		return 0
	}
	return v
}

func (d *lineDecoder) integer(i int) int {
	s := d.raw(i)
	if d.err != nil {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		d.fail(fmt.Sprintf("malformed integer field %d", i))
		return 0
	}
	return v
}

func (d *lineDecoder) boolean(i int) bool {
	return d.integer(i) != 0
}

func (d *lineDecoder) lookup(i int, table []string) string {
	v := d.integer(i)
	if d.err != nil {
		return ""
	}
	if v < 0 || v >= len(table) {
		d.fail(fmt.Sprintf("code %d out of range in field %d", v, i))
		return ""
	}
	return table[v]
}

func (d *lineDecoder) lookupFloat(i int, table []float64) float64 {
	v := d.integer(i)
	if d.err != nil {
		return 0
	}
	if v < 0 || v >= len(table) {
		d.fail(fmt.Sprintf("code %d out of range in field %d", v, i))
		return 0
	}
	return table[v]
}
