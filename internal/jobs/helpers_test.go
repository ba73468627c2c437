package jobs_test

import "time"

var testTime = time.Date(2026, 4, 2, 8, 30, 0, 0, time.UTC)
