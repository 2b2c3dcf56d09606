package qd

import "testing"

func TestCleanChannelKey(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Resistance Ch1 (Ohms)", "resistance"},
		{"Resistance Ch2 (Ohms)", "resistance"},
		{"Resistance Ch1 Std. Dev. (Ohms)", "resistance std dev"},
		{"Phase Angle Ch2 (deg)", "phase angle"},
		{"I-V Current Ch1 (mA)", "i v current"},
		{"I-V Voltage Ch1 (mV)", "i v voltage"},
		{"In Phase Current Ch1 (mA)", "in phase current"},
		{"Quadrature Current Ch2 (mA)", "quadrature current"},
		{"2nd Harm. Ch1 (dB)", "second harmonic"},
		{"3rd Harm. Ch1 (dB)", "third harmonic"},
		{"M-DC (emu)", "moment dc"},
		{"M' (emu/Oe)", "moment derivative"},
		{"M'' (emu/Oe)", "moment second derivative"},
		{"M. Std. Err. (emu)", "moment std err"},
		{"M-Std.Err. (emu)", "moment std err"},
		{"M. Quad. Signal (emu)", "moment quad signal"},
		{"Calcoil' (emu/Oe)", "calcoil derivative"},
		{"Calcoil'' (emu/Oe)", "calcoil second derivative"},
		{"Signal' (V)", "signal derivative"},
		{"Min. Temp. (K)", "min temperature"},
		{"Max. Temp. (K)", "max temperature"},
		{"Crit.Cur. Ch1 (mA)", "crit cur"},
		{"C.Cur. Ch2 (mA)", "crit cur"},
		{"Quad.Error Ch1 (mA)", "quad error"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got := CleanChannelKey(tt.header)
			if got != tt.want {
				t.Errorf("CleanChannelKey(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

// Channel keys must survive a second pass unchanged, since run mapping may
// see headers that were already normalized upstream.
func TestCleanChannelKeyIdempotent(t *testing.T) {
	headers := []string{
		"Resistance Ch1 Std. Dev. (Ohms)",
		"M'' (emu/Oe)",
		"M-DC (emu)",
		"2nd Harm. Ch1 (dB)",
		"Min. Temp. (K)",
		"Phase Angle Ch2 (deg)",
	}
	for _, h := range headers {
		once := CleanChannelKey(h)
		twice := CleanChannelKey(once)
		if once != twice {
			t.Errorf("CleanChannelKey not idempotent for %q: %q -> %q", h, once, twice)
		}
	}
}

func TestCleanScalarKey(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Temperature (K)", "temperature"},
		{"Magnetic Field (Oe)", "magnetic_field"},
		{"Time Stamp (sec)", "time_stamp"},
		{"Sample Position (deg)", "sample_position"},
		{"Chamber Pressure (Torr)", "chamber_pressure"},
		{"ETO Status Code", "eto_status_code"},
		{"Frequency (Hz)", "frequency"},
		{"Bridge 1 Resistivity (Ohm-cm)", "bridge_1_resistivity"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got := CleanScalarKey(tt.header)
			if got != tt.want {
				t.Errorf("CleanScalarKey(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
