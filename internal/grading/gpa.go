package grading

// gpaBand maps a minimum percentage (inclusive) to a grade-point value.
type gpaBand struct {
	minPercentage float64
	gpa           float64
}

// gpaTable is the fixed percentage→GPA lookup table printed on generated
// markscards. It is a step function, monotonically non-decreasing in
// percentage, evaluated top-down: the first band whose threshold the
// percentage meets wins. Below the last threshold the GPA floors at 0.0.
//
// The decade thresholds pin the table to the classification bands: 90→3.8
// (A+/Distinction), 80→3.5 (A/First Class), 70→3.0 (B+/Second Class),
// 60→2.5 (B/Second Class), 50→2.0 (C/Pass), so Classify over a GPA from
// this table reproduces exactly the percentage bands the portal displays.
// Treat it as data, not a formula: the values are externally visible and
// must not drift.
var gpaTable = []gpaBand{
	{97, 4.0},
	{93, 3.9},
	{90, 3.8},
	{87, 3.7},
	{84, 3.6},
	{80, 3.5},
	{78, 3.4},
	{76, 3.3},
	{74, 3.2},
	{72, 3.1},
	{70, 3.0},
	{68, 2.9},
	{66, 2.8},
	{64, 2.7},
	{62, 2.6},
	{60, 2.5},
	{58, 2.4},
	{56, 2.3},
	{54, 2.2},
	{52, 2.1},
	{50, 2.0},
	{48, 1.9},
	{46, 1.8},
	{44, 1.7},
	{42, 1.6},
	{40, 1.5},
	{38, 1.4},
	{36, 1.3},
	{34, 1.2},
	{32, 1.1},
	{30, 1.0},
	{28, 0.9},
	{26, 0.8},
	{24, 0.7},
	{22, 0.6},
	{20, 0.5},
	{18, 0.4},
	{16, 0.3},
	{15, 0.2},
}

// GPA converts a percentage to the 4.0-scale grade-point value via the
// lookup table.
func GPA(percentage float64) float64 {
	for _, band := range gpaTable {
		if percentage >= band.minPercentage {
			return band.gpa
		}
	}
	return 0.0
}
