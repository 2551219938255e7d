package utils

import "time"

// Coach deployments run on Berlin time (CET/CEST); the time-of-day framing in
// the system prompt follows the user's local morning/evening, not UTC.
var coachLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Europe/Berlin"); err == nil {
		return loc
	}
	return time.FixedZone("CET", 1*3600)
}()

// CoachHour returns the current hour of day (0-23) in the coach timezone.
func CoachHour() int {
	return time.Now().In(coachLoc).Hour()
}

// DayPart buckets an hour into the four framing phases used by the prompt
// builder. Boundaries: [5,12) morning, [12,18) afternoon, [18,23) evening,
// the rest night.
func DayPart(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 18:
		return "afternoon"
	case hour >= 18 && hour < 23:
		return "evening"
	default:
		return "night"
	}
}

func NowUnixSeconds() int64 { return time.Now().Unix() }
