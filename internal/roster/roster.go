package roster

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/saravenpi/chatflow/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed roster.yml
var builtin []byte

type file struct {
	Members []models.Member `yaml:"members"`
}

// Roster is the member directory behind the info panel and sender names.
type Roster struct {
	members []models.Member
	lookup  map[string]int
}

var (
	defaultRoster    *Roster
	defaultRosterErr error
	defaultOnce      sync.Once
)

// Default returns the built-in roster, parsed once.
func Default() (*Roster, error) {
	defaultOnce.Do(func() {
		defaultRoster, defaultRosterErr = Parse(builtin)
	})
	return defaultRoster, defaultRosterErr
}

// Load reads a roster YAML file, or returns the built-in roster when path is empty.
func Load(path string) (*Roster, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("roster file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	return Parse(data)
}

// Parse decodes a roster document. Every member needs an id and a name, and
// ids and aliases must be unique.
func Parse(data []byte) (*Roster, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	r := &Roster{lookup: make(map[string]int)}
	for _, m := range f.Members {
		m.ID = strings.TrimSpace(m.ID)
		m.Name = strings.TrimSpace(m.Name)
		if m.ID == "" || m.Name == "" {
			return nil, fmt.Errorf("roster member needs an id and a name")
		}
		if m.Status == "" {
			m.Status = models.StatusOffline
		}
		if m.Role == "" {
			m.Role = models.RoleMember
		}

		index := len(r.members)
		for _, key := range append([]string{m.ID}, m.Aliases...) {
			key = normalizeIdentifier(key)
			if _, dup := r.lookup[key]; dup {
				return nil, fmt.Errorf("duplicate roster identifier: %s", key)
			}
			r.lookup[key] = index
		}
		r.members = append(r.members, m)
	}

	return r, nil
}

func (r *Roster) Members() []models.Member {
	return append([]models.Member(nil), r.members...)
}

// Find looks a member up by id or alias.
func (r *Roster) Find(identifier string) (models.Member, bool) {
	i, ok := r.lookup[normalizeIdentifier(identifier)]
	if !ok {
		return models.Member{}, false
	}
	return r.members[i], true
}

// Name returns the member's display name, or "" when unknown.
func (r *Roster) Name(identifier string) string {
	m, ok := r.Find(identifier)
	if !ok {
		return ""
	}
	return m.Name
}

// CountByStatus reports how many members have the given status.
func (r *Roster) CountByStatus(status models.MemberStatus) int {
	n := 0
	for _, m := range r.members {
		if m.Status == status {
			n++
		}
	}
	return n
}

func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AvatarURL appends seed=<id> to the avatar endpoint. An explicit avatar on
// the sender wins.
func AvatarURL(endpoint string, sender models.Sender) string {
	if sender.Avatar != "" {
		return sender.Avatar
	}

	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
		if strings.HasSuffix(endpoint, "?") || strings.HasSuffix(endpoint, "&") {
			sep = ""
		}
	}
	return endpoint + sep + "seed=" + url.QueryEscape(sender.ID)
}
