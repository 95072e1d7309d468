package domain

import "strings"

// ParticipantList is the detail view of one activity's registrations.
type ParticipantList struct {
	ActivityName      string   `json:"activity_name"`
	Participants      []string `json:"participants"`
	TotalParticipants int      `json:"total_participants"`
	AvailableSpots    int      `json:"available_spots"`
}

// Capacity is the activity's maximum size as implied by the summary.
func (p ParticipantList) Capacity() int {
	return p.TotalParticipants + p.AvailableSpots
}

// Joined returns the emails separated by ", ", or "" when empty.
func (p ParticipantList) Joined() string {
	return strings.Join(p.Participants, ", ")
}
