package entity

// Attendance maps a YYYYMMDD date key to the delivery persons present that day.
type Attendance map[string]map[string]bool

// Clone returns a deep copy of the attendance map.
func (a Attendance) Clone() Attendance {
	out := make(Attendance, len(a))
	for dateKey, users := range a {
		inner := make(map[string]bool, len(users))
		for userID, present := range users {
			inner[userID] = present
		}
		out[dateKey] = inner
	}

	return out
}
