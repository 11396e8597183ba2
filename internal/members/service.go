package members

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tripsplit-dev/tripsplit/internal/model"
)

// ErrDuplicateMember is returned when adding an ID that is already on the roster.
var ErrDuplicateMember = errors.New("member already exists")

const (
	dir  = "members"
	file = "members.csv"
)

// Service provides in-memory lookup over the trip roster.
type Service struct {
	members []model.Member
	byID    map[string]model.Member
}

// NewService creates a Service from a slice of members.
func NewService(members []model.Member) *Service {
	byID := make(map[string]model.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	return &Service{members: members, byID: byID}
}

// Load reads members/members.csv from a repo root and returns a Service.
func Load(repoRoot string) (*Service, error) {
	path := filepath.Join(repoRoot, dir, file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster: %w", err)
	}
	defer f.Close()

	ms, err := ReadMembers(f)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return NewService(ms), nil
}

// ValidateID checks that id can be used inside ledger split columns.
func ValidateID(id string) error {
	if id == "" {
		return errors.New("member ID must not be empty")
	}
	if strings.ContainsAny(id, " \t\n=;,:\"") {
		return fmt.Errorf("member ID %q must not contain whitespace or any of =;,:\"", id)
	}
	return nil
}

// All returns all members in roster order.
func (s *Service) All() []model.Member {
	return s.members
}

// IDs returns all member IDs in roster order.
func (s *Service) IDs() []string {
	ids := make([]string, len(s.members))
	for i, m := range s.members {
		ids[i] = m.ID
	}
	return ids
}

// Get returns a member by ID.
func (s *Service) Get(id string) (model.Member, bool) {
	m, ok := s.byID[id]
	return m, ok
}

// Exists reports whether a member ID is on the roster.
func (s *Service) Exists(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// Resolve maps an ID or display name, compared case-insensitively, to a member ID.
func (s *Service) Resolve(nameOrID string) (string, bool) {
	if s.Exists(nameOrID) {
		return nameOrID, true
	}
	want := strings.TrimSpace(nameOrID)
	for _, m := range s.members {
		if strings.EqualFold(m.ID, want) || (m.Name != "" && strings.EqualFold(m.Name, want)) {
			return m.ID, true
		}
	}
	return "", false
}

// Add appends a member to the roster.
func (s *Service) Add(m model.Member) error {
	if err := ValidateID(m.ID); err != nil {
		return err
	}
	if s.Exists(m.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateMember, m.ID)
	}
	s.members = append(s.members, m)
	s.byID[m.ID] = m
	return nil
}

// Save writes the roster to members/members.csv.
func (s *Service) Save(repoRoot string) error {
	d := filepath.Join(repoRoot, dir)
	if err := os.MkdirAll(d, 0o755); err != nil {
		return fmt.Errorf("creating members dir: %w", err)
	}

	path := filepath.Join(d, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating roster file: %w", err)
	}
	defer f.Close()

	if err := WriteMembers(f, s.members); err != nil {
		return fmt.Errorf("writing roster: %w", err)
	}
	return nil
}
