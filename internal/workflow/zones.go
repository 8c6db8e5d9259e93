// Package workflow implements the postback-driven session workflow engine.
//
// This file holds the closed timezone table shared by the reminder and
// timezone-conversion workflows. Both resolve zone names through this one
// table so their shift semantics cannot drift apart.
package workflow

// Zone is one entry of the recognized timezone table.
type Zone struct {
	Key   string // value carried in postback params
	Label string // human-readable name used in replies
	Hours int    // signed UTC offset
}

// zones is the closed set of recognized zones. Offsets are fixed; there is no
// DST handling.
var zones = []Zone{
	{Key: "taipei", Label: "台北", Hours: 8},
	{Key: "los_angeles", Label: "洛杉磯", Hours: -7},
	{Key: "osaka", Label: "大阪", Hours: 9},
}

// LookupZone resolves a zone by its postback key or its label. The second
// return value is false for an unrecognized name.
func LookupZone(name string) (Zone, bool) {
	for _, z := range zones {
		if z.Key == name || z.Label == name {
			return z, true
		}
	}
	return Zone{}, false
}

// ZoneByOffset resolves a zone by its hour offset. Offsets are unique within
// the table.
func ZoneByOffset(hours int) (Zone, bool) {
	for _, z := range zones {
		if z.Hours == hours {
			return z, true
		}
	}
	return Zone{}, false
}

// Zones returns the recognized zone table in declaration order.
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}
