// Package devserver is an in-memory implementation of the activities API.
// It backs "roster demo" and serves as the collaborator in client tests.
package devserver

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/naveenspark/roster/pkg/domain"
)

// Sentinel errors mapped to HTTP statuses by the handler. Their texts are
// the API's detail strings, hence the capitalization.
//
//nolint:staticcheck // ST1005
var (
	ErrActivityNotFound = errors.New("Activity not found")
	ErrAlreadySignedUp  = errors.New("Student already signed up for this activity")
	ErrActivityFull     = errors.New("Activity is full. No more spots available")
	ErrNotSignedUp      = errors.New("Student is not signed up for this activity")
	ErrForeignEmail     = errors.New("Only Mergington High School students can sign up")
)

// Store holds the roster. Safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	emailDomain string
	order       []string
	activities  map[string]*domain.Activity
}

// NewStore creates a store seeded with activities, kept in the given order.
// Sign-ups are restricted to addresses ending in "@"+emailDomain; an empty
// emailDomain accepts any address.
func NewStore(emailDomain string, activities []domain.Activity) *Store {
	s := &Store{
		emailDomain: emailDomain,
		activities:  make(map[string]*domain.Activity, len(activities)),
	}
	for _, a := range activities {
		a := a
		a.Participants = append([]string(nil), a.Participants...)
		if _, dup := s.activities[a.Name]; !dup {
			s.order = append(s.order, a.Name)
		}
		s.activities[a.Name] = &a
	}
	return s
}

// Roster returns a copy of every activity in seed order.
func (s *Store) Roster() domain.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := domain.Roster{Activities: make([]domain.Activity, 0, len(s.order))}
	for _, name := range s.order {
		a := *s.activities[name]
		a.Participants = append([]string{}, a.Participants...)
		r.Activities = append(r.Activities, a)
	}
	return r
}

// Signup adds email to the named activity.
func (s *Store) Signup(name, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return "", ErrActivityNotFound
	}
	if s.emailDomain != "" && !strings.HasSuffix(strings.ToLower(email), "@"+s.emailDomain) {
		return "", ErrForeignEmail
	}
	if a.HasParticipant(email) {
		return "", ErrAlreadySignedUp
	}
	if a.IsFull() {
		return "", ErrActivityFull
	}
	a.Participants = append(a.Participants, email)
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Cancel removes email from the named activity.
func (s *Store) Cancel(name, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return "", ErrActivityNotFound
	}
	for i, p := range a.Participants {
		if p == email {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			return fmt.Sprintf("Cancelled %s's signup for %s", email, name), nil
		}
	}
	return "", ErrNotSignedUp
}

// Participants returns the detail view of one activity.
func (s *Store) Participants(name string) (domain.ParticipantList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return domain.ParticipantList{}, ErrActivityNotFound
	}
	return domain.ParticipantList{
		ActivityName:      name,
		Participants:      append([]string{}, a.Participants...),
		TotalParticipants: len(a.Participants),
		AvailableSpots:    a.SpotsLeft(),
	}, nil
}
