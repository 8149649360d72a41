package compatibility

import "time"

// AgeAt returns whole calendar years between dob and now, one less if
// this year's birthday hasn't come yet.
func AgeAt(dob, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}
