package domain

import "time"

// nowFunc is the package clock. Tests override it to exercise
// date-dependent behavior (overdue detection, late fees).
var nowFunc = time.Now
