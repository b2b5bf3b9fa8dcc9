package types

import (
	"strings"

	"github.com/google/uuid"
)

// StudentID is the stable identifier session rosters use to refer to a
// student in the master list.
type StudentID string

// NewStudentID returns a fresh random identifier.
func NewStudentID() StudentID {
	return StudentID(uuid.New().String())
}

// Student is one entry of the master list. Identity for equality is name plus
// phone; ID is assigned by the model and never shown to the user.
type Student struct {
	ID          StudentID `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Phone       string    `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email       string    `json:"email,omitempty" yaml:"email,omitempty"`
	Address     string    `json:"address,omitempty" yaml:"address,omitempty"`
	Tags        []string  `json:"tags,omitempty" yaml:"tags,omitempty"`
	Performance int       `json:"performance" yaml:"performance"`
}

// NewStudent validates the attribute values and returns a student with a
// performance score of zero. Tags are deduplicated keeping first occurrence.
func NewStudent(name, phone, email, address string, tags []string) (Student, error) {
	s := Student{
		Name:    strings.TrimSpace(name),
		Phone:   strings.TrimSpace(phone),
		Email:   strings.TrimSpace(email),
		Address: strings.TrimSpace(address),
		Tags:    dedupeTags(tags),
	}
	if err := s.Validate(); err != nil {
		return Student{}, err
	}
	return s, nil
}

// SetPerformance replaces the performance score.
func (s *Student) SetPerformance(n int) {
	s.Performance = n
}

// PerformanceValue returns the current performance score.
func (s Student) PerformanceValue() int {
	return s.Performance
}

// Equals compares the identity attributes (name and phone).
func (s Student) Equals(other Student) bool {
	return s.Key() == other.Key()
}

// Key is the identity string; two students have the same Key iff Equals
// reports true.
func (s Student) Key() string {
	return s.Name + "\x00" + s.Phone
}

// Clone returns a copy that shares no slices with s.
func (s Student) Clone() Student {
	c := s
	if s.Tags != nil {
		c.Tags = append([]string(nil), s.Tags...)
	}
	return c
}

func (s Student) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if s.Phone != "" {
		b.WriteString("; Phone: " + s.Phone)
	}
	if s.Email != "" {
		b.WriteString("; Email: " + s.Email)
	}
	if s.Address != "" {
		b.WriteString("; Address: " + s.Address)
	}
	if len(s.Tags) > 0 {
		b.WriteString("; Tags: [" + strings.Join(s.Tags, ", ") + "]")
	}
	return b.String()
}

func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
