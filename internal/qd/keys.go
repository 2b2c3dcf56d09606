// Package qd implements the measurement-run segmentation and
// step-reconstruction engine for Quantum Design (PPMS, DynaCool, MPMS)
// instrument files: sequence tokenizing, tolerance-based run detection,
// per-run record mapping and result projection.
package qd

import "strings"

// channelKeyReplacer maps instrument column shorthand to field names.
// Order matters: later replacements depend on earlier ones having
// normalized case and spacing, and longer patterns must run before their
// prefixes (e.g. M'' before M').
var channelKeyReplacer = strings.NewReplacer(
	"M. Std. Err.", "moment std err",
	"M-Std.Err.", "moment std err",
	"M-DC", "moment dc",
	"M''", "moment second derivative",
	"M'", "moment derivative",
	"Calcoil''", "calcoil second derivative",
	"Calcoil'", "calcoil derivative",
	"Signal'", "Signal Derivative",
	"M. Quad. Signal", "moment quad signal",
	"Std. Dev.", "std dev",
	"Std.Dev.", "std dev",
	"Res.", "resistivity",
	"Crit.Cur.", "crit cur",
	"C.Cur.", "crit cur",
	"Quad.Error", "quad error",
	"Harm.", "harmonic",
	"Min.", "min ",
	"Max.", "max ",
	"Temp.", "temperature",
	"-", " ",
	"Field (Oe)", "Magnetic Field (Oe)",
)

// CleanChannelKey normalizes a channel column header into a declared-field
// key. It is a projection: applying it twice yields the same key.
func CleanChannelKey(key string) string {
	k := strings.SplitN(key, "(", 2)[0]
	k = channelKeyReplacer.Replace(k)
	k = strings.ToLower(k)
	k = strings.ReplaceAll(k, "ch1", "")
	k = strings.ReplaceAll(k, "ch2", "")
	k = strings.TrimSpace(k)
	k = strings.ReplaceAll(k, "3rd", "third")
	k = strings.ReplaceAll(k, "2nd", "second")
	return collapseSpaces(k)
}

// CleanScalarKey normalizes a plain column header into a declared-field
// key: the parenthesized unit suffix is stripped, spaces become
// underscores and the result is lowercased.
func CleanScalarKey(key string) string {
	k := strings.SplitN(key, "(", 2)[0]
	k = strings.TrimSpace(k)
	k = strings.ReplaceAll(k, " ", "_")
	return strings.ToLower(k)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
