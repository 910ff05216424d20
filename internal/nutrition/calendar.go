package nutrition

import "time"

// Location is the fixed operating timezone. Every date key in the system
// is a calendar day in this zone, independent of the host clock.
var Location = time.FixedZone("UTC+7", 7*60*60)

const DateLayout = "2006-01-02"

// DateKey formats t as a UTC+7 calendar day.
func DateKey(t time.Time) string {
	return t.In(Location).Format(DateLayout)
}

// DateKeyDaysAgo returns the UTC+7 calendar day n days before t.
func DateKeyDaysAgo(t time.Time, n int) string {
	return t.In(Location).AddDate(0, 0, -n).Format(DateLayout)
}
