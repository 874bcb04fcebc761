package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive keeps a copy of every body that was sent, one file per recipient
type Archive struct {
	dir string
}

func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

// SafeEmail lowercases an address and replaces '@' and '.' with '_'
func SafeEmail(email string) string {
	s := strings.ToLower(strings.TrimSpace(email))
	return strings.NewReplacer("@", "_", ".", "_").Replace(s)
}

// Path is where the body sent to email for campaignID is stored
func (a *Archive) Path(campaignID, email string) string {
	return filepath.Join(a.dir, fmt.Sprintf("%s_%s.html", campaignID, SafeEmail(email)))
}

func (a *Archive) Save(campaignID, email, body string) error {
	if err := os.MkdirAll(a.dir, 0755); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}
	return os.WriteFile(a.Path(campaignID, email), []byte(body), 0644)
}

func (a *Archive) Read(campaignID, email string) ([]byte, error) {
	return os.ReadFile(a.Path(campaignID, email))
}
