// File: utils/constants.go
package utils

import "time"

// DateLayout is the calendar date format used for booking dates and daily periods.
const DateLayout = "2006-01-02"

// TokenTTL is how long issued access tokens stay valid.
const TokenTTL = 24 * time.Hour

// StatsCachePrefix prefixes every cached statistics report key.
const StatsCachePrefix = "stats:"
