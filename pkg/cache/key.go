package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// NamespacePlan is the namespace of plan keys.
const NamespacePlan = "plan"

// PlanKeyOpts lists the options that change a plan for a given request.
type PlanKeyOpts struct {
	MaxWeight  float64  `json:"max_weight"`
	Ceiling    int      `json:"ceiling"`
	StageOrder []string `json:"stage_order"`
	Packer     string   `json:"packer,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// PlanKey returns the key of the plan for a request whose encoding
	// hashes to requestHash (see [RequestHash]).
	PlanKey(requestHash string, opts PlanKeyOpts) string
}

// DefaultKeyer produces "plan:<digest>" keys, where the digest covers the
// request hash and the plan-affecting options.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// PlanKey implements [Keyer].
func (DefaultKeyer) PlanKey(requestHash string, opts PlanKeyOpts) string {
	data, _ := json.Marshal(struct {
		Request string      `json:"request"`
		Options PlanKeyOpts `json:"options"`
	}{requestHash, opts})
	return NamespacePlan + ":" + digest(data)
}

// RequestHash returns the SHA-256 digest of an encoded request as 64 hex
// characters.
func RequestHash(request []byte) string {
	return digest(request)
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// splitKey separates a key into its colon-separated namespaces and the
// trailing digest. Keys not ending in a digest are hashed whole, so every
// key maps to a digest.
//
//	"site:lisbon:plan:<digest>" -> [site lisbon plan], <digest>
func splitKey(key string) ([]string, string) {
	parts := strings.Split(key, ":")
	last := parts[len(parts)-1]
	if !isDigest(last) {
		return parts[:len(parts)-1], digest([]byte(key))
	}
	return parts[:len(parts)-1], last
}

func isDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
