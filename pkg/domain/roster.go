package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Roster is the full activity collection in the order the server sent it.
// On the wire it is a JSON object keyed by activity name; Go maps would lose
// that order, so Roster decodes the object token by token.
type Roster struct {
	Activities []Activity
}

// Names returns the activity names in roster order.
func (r Roster) Names() []string {
	names := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		names = append(names, a.Name)
	}
	return names
}

// Find returns the activity with the given name.
func (r Roster) Find(name string) (Activity, bool) {
	for _, a := range r.Activities {
		if a.Name == name {
			return a, true
		}
	}
	return Activity{}, false
}

// Len returns the number of activities.
func (r Roster) Len() int {
	return len(r.Activities)
}

// UnmarshalJSON decodes a name -> activity object, keeping key order.
// A repeated key keeps its first position and takes the last value.
func (r *Roster) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("roster: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("roster: expected object, got %v", tok)
	}

	var activities []Activity
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("roster: expected activity name, got %v", tok)
		}
		var a Activity
		if err := dec.Decode(&a); err != nil {
			return fmt.Errorf("roster: activity %q: %w", name, err)
		}
		a.Name = name
		if i, seen := index[name]; seen {
			activities[i] = a
			continue
		}
		index[name] = len(activities)
		activities = append(activities, a)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("roster: %w", err)
	}

	r.Activities = activities
	return nil
}

// MarshalJSON encodes the roster as a name -> activity object in roster order.
func (r Roster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range r.Activities {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		// Encode an empty list as [] rather than null.
		if a.Participants == nil {
			a.Participants = []string{}
		}
		val, err := json.Marshal(a)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
