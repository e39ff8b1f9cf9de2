// Package clients is the read-only client registry the creation wizard
// draws names from.
package clients

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/agnivade/levenshtein"
)

// Status of a client account.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Client is one registry row.
type Client struct {
	ID            string `toml:"id"`
	Name          string `toml:"name"`
	ContactPerson string `toml:"contact_person"`
	Email         string `toml:"email"`
	Phone         string `toml:"phone"`
	Status        Status `toml:"status"`
}

// Validate applies the registry form rules.
func (c Client) Validate() error {
	var errs []error
	if len([]rune(strings.TrimSpace(c.Name))) < 2 {
		errs = append(errs, errors.New("client name must be at least 2 characters"))
	}
	if len([]rune(strings.TrimSpace(c.ContactPerson))) < 2 {
		errs = append(errs, errors.New("contact person must be at least 2 characters"))
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		errs = append(errs, errors.New("please enter a valid email address"))
	}
	digits := 0
	for _, r := range c.Phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	if digits < 10 {
		errs = append(errs, errors.New("phone number must be at least 10 digits"))
	}
	switch c.Status {
	case StatusActive, StatusInactive, "":
	default:
		errs = append(errs, fmt.Errorf("unknown status %q", c.Status))
	}
	return errors.Join(errs...)
}

// maxSuggestDistance is the largest edit distance Suggest will bridge.
const maxSuggestDistance = 3

// Registry holds the known clients in display order.
type Registry struct {
	clients []Client
}

// NewRegistry builds a registry, skipping rows without a name.
func NewRegistry(list []Client) *Registry {
	r := &Registry{}
	for _, c := range list {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		if c.Status == "" {
			c.Status = StatusActive
		}
		r.clients = append(r.clients, c)
	}
	return r
}

// Defaults is the placeholder registry shipped with the dashboard.
func Defaults() []Client {
	return []Client{
		{ID: "CLI-001", Name: "Innovate Corp", ContactPerson: "Alice Johnson", Email: "alice.j@innovate.com", Phone: "123-456-7890", Status: StatusActive},
		{ID: "CLI-002", Name: "Solutions Ltd.", ContactPerson: "Bob Williams", Email: "bob.w@solutions.com", Phone: "234-567-8901", Status: StatusActive},
		{ID: "CLI-003", Name: "Global Tech", ContactPerson: "Charlie Brown", Email: "charlie.b@globaltech.com", Phone: "345-678-9012", Status: StatusInactive},
		{ID: "CLI-004", Name: "Pioneer Industries", ContactPerson: "Diana Miller", Email: "diana.m@pioneer.com", Phone: "456-789-0123", Status: StatusActive},
	}
}

type registryFile struct {
	Version int      `toml:"version"`
	Clients []Client `toml:"client"`
}

// LoadFile reads a TOML registry ([[client]] tables). A blank path or a
// missing file yields the defaults.
func LoadFile(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return NewRegistry(Defaults()), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewRegistry(Defaults()), nil
		}
		return nil, fmt.Errorf("read clients: %w", err)
	}
	var f registryFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("parse clients %s: %w", path, err)
	}
	for i, c := range f.Clients {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("client %d (%s): %w", i, c.Name, err)
		}
	}
	return NewRegistry(f.Clients), nil
}

// All returns every client.
func (r *Registry) All() []Client {
	return slices.Clone(r.clients)
}

// Names lists active client names.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.clients))
	for _, c := range r.clients {
		if c.Status == StatusActive {
			out = append(out, c.Name)
		}
	}
	return out
}

// Lookup finds a client by name, ignoring case and surrounding space.
func (r *Registry) Lookup(name string) (Client, bool) {
	key := normalize(name)
	for _, c := range r.clients {
		if normalize(c.Name) == key {
			return c, true
		}
	}
	return Client{}, false
}

// Suggest returns the closest known name to a misspelt one. An exact match
// or nothing close enough reports false.
func (r *Registry) Suggest(name string) (string, bool) {
	key := normalize(name)
	if key == "" {
		return "", false
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, c := range r.clients {
		candidate := normalize(c.Name)
		if candidate == key {
			return "", false
		}
		if d := levenshtein.ComputeDistance(key, candidate); d < bestDist {
			best, bestDist = c.Name, d
		}
	}
	return best, best != ""
}

// Hint is a wizard-friendly message for names that look like typos or
// belong to an inactive account.
func (r *Registry) Hint(name string) string {
	if c, ok := r.Lookup(name); ok {
		if c.Status == StatusInactive {
			return fmt.Sprintf("%s is marked inactive", c.Name)
		}
		return ""
	}
	if s, ok := r.Suggest(name); ok {
		return fmt.Sprintf("did you mean %s?", s)
	}
	return ""
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
