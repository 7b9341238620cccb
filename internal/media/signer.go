// AngelaMos | 2026
// signer.go

package media

import (
	"crypto/sha1" //nolint:gosec // G505: Cloudinary's API signature scheme requires SHA-1
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/smartcityfix/api/internal/config"
)

// Signer produces Cloudinary API signatures: the request parameters
// sorted by key, joined as a query string, with the API secret appended
// and the whole thing SHA-1 hashed.
type Signer struct {
	cfg config.CloudinaryConfig
}

func NewSigner(cfg config.CloudinaryConfig) *Signer {
	return &Signer{cfg: cfg}
}

func (s *Signer) Configured() bool {
	return s.cfg.Configured()
}

func (s *Signer) CloudName() string {
	return s.cfg.CloudName
}

func (s *Signer) APIKey() string {
	return s.cfg.APIKey
}

func (s *Signer) Folder() string {
	return s.cfg.Folder
}

func (s *Signer) Sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params[k]))
	}

	payload := strings.Join(pairs, "&") + s.cfg.APISecret

	//nolint:gosec // G401: SHA-1 is what the upstream API verifies
	sum := sha1.Sum([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// SignUpload covers the parameters the browser widget and the proxy
// upload both send.
func (s *Signer) SignUpload(timestamp int64, folder string) string {
	return s.Sign(map[string]string{
		"timestamp": fmt.Sprintf("%d", timestamp),
		"folder":    folder,
	})
}
