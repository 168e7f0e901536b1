package domain

import (
	"errors"
	"net"
	"net/url"
	"strings"
)

// Species enumerates the animals the agency accepts for adoption.
type Species string

const (
	SpeciesCat       Species = "cat"
	SpeciesDog       Species = "dog"
	SpeciesPorcupine Species = "porcupine"
)

// Age bounds, inclusive.
const (
	MinAge = 0
	MaxAge = 30
)

// AllSpecies lists the accepted species in display order.
func AllSpecies() []Species {
	return []Species{SpeciesCat, SpeciesDog, SpeciesPorcupine}
}

// Valid reports whether s is one of the accepted species.
func (s Species) Valid() bool {
	switch s {
	case SpeciesCat, SpeciesDog, SpeciesPorcupine:
		return true
	default:
		return false
	}
}

// Pet represents an adoptable animal listed by the agency.
type Pet struct {
	ID        int64
	Name      string
	Species   Species
	PhotoURL  string
	Age       *int
	Notes     string
	Available bool
}

var (
	ErrEmptyName       = errors.New("pet name is required")
	ErrUnknownSpecies  = errors.New("species must be one of cat, dog, porcupine")
	ErrInvalidPhotoURL = errors.New("photo url must be a valid url")
	ErrAgeOutOfRange   = errors.New("age must be between 0 and 30")
)

// NewPet validates the invariants and builds a new listing. New pets are always available.
// The identifier is assigned by storage on insert.
func NewPet(name string, species Species, photoURL string, age *int, notes string) (*Pet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if !species.Valid() {
		return nil, ErrUnknownSpecies
	}
	if err := validatePhotoURL(photoURL); err != nil {
		return nil, err
	}
	if age != nil && (*age < MinAge || *age > MaxAge) {
		return nil, ErrAgeOutOfRange
	}
	p := &Pet{
		Name:      name,
		Species:   species,
		PhotoURL:  strings.TrimSpace(photoURL),
		Notes:     notes,
		Available: true,
	}
	if age != nil {
		v := *age
		p.Age = &v
	}
	return p, nil
}

// EditListing replaces the fields staff may change after intake.
// Name, species and age are fixed once the pet is listed.
func (p *Pet) EditListing(photoURL, notes string, available bool) error {
	if err := validatePhotoURL(photoURL); err != nil {
		return err
	}
	p.PhotoURL = strings.TrimSpace(photoURL)
	p.Notes = notes
	p.Available = available
	return nil
}

// HasAge reports whether an age was recorded at intake.
func (p *Pet) HasAge() bool {
	return p.Age != nil
}

func validatePhotoURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if !ValidPhotoURL(raw) {
		return ErrInvalidPhotoURL
	}
	return nil
}

// ValidPhotoURL reports whether raw is an absolute URL of the form
// scheme://host[/path], where host is an IP address or a dotted name ending
// in a top-level domain. Opaque URLs such as mailto: and bare hosts such as
// localhost are rejected.
func ValidPhotoURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Opaque != "" || u.Host == "" || !isLetters(u.Scheme) {
		return false
	}
	host := u.Hostname()
	if net.ParseIP(host) != nil {
		return true
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if !validHostLabel(label) {
			return false
		}
	}
	tld := strings.ToLower(labels[len(labels)-1])
	return strings.HasPrefix(tld, "xn--") || (len(tld) >= 2 && isLetters(tld))
}

func validHostLabel(label string) bool {
	if label == "" || label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
