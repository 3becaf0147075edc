package entities

import "time"

// RecentHospital is one entry of the recently-viewed list.
type RecentHospital struct {
	Ykiho    string    `json:"ykiho"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	ViewedAt time.Time `json:"viewed_at"`
}

// RecentList is the bounded recently-viewed list, newest first.
type RecentList []RecentHospital

// Push returns the list with entry at the front, de-duplicated by ykiho and
// capped at max entries. Re-adding a present hospital moves it to the front
// without growing the list.
func (l RecentList) Push(entry RecentHospital, max int) RecentList {
	if max <= 0 || entry.Ykiho == "" {
		return l
	}
	out := make(RecentList, 0, len(l)+1)
	out = append(out, entry)
	for _, existing := range l {
		if existing.Ykiho == entry.Ykiho {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}
