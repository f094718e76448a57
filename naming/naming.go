// Package naming tracks the stack of human-readable name fragments the
// fold.Folder gathers from surrounding syntactic landmarks, and synthesizes
// deterministic, collision-free hook symbol names from it.
//
// The hashing scheme is a direct Go port of register_context_name in
// original_source/.../transform.rs, substituting github.com/minio/highwayhash
// (the teacher's own hash dependency, see inspector/graph/hash.go) for Rust's
// DefaultHasher, and base64.RawURLEncoding for base64::URL_SAFE_NO_PAD.
package naming

import (
	"encoding/base64"
	"encoding/binary"
	"strings"

	"github.com/minio/highwayhash"
)

// hashKey mirrors inspector/graph/hash.go's fixed 32-byte key: this package
// computes a different quantity (a symbol hash, not a content hash) but
// reuses the same keying convention for consistency across the module.
var hashKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// Context is the naming stack plus the per-module collision counter
// (`hooks_names` in spec.md §4.3).
type Context struct {
	stack  []string
	counts map[string]int
}

// New creates an empty naming Context.
func New() *Context {
	return &Context{counts: make(map[string]int)}
}

// Push adds a name fragment to the stack, typically on entry to a named
// var binding, JSX element/attribute, property key, or marker call.
func (c *Context) Push(fragment string) {
	c.stack = append(c.stack, fragment)
}

// Pop removes the most recently pushed fragment. Pop is a no-op on an empty
// stack so callers that conditionally pushed can unconditionally pop.
func (c *Context) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.stack = c.stack[:len(c.stack)-1]
}

// Snapshot returns a copy of the current stack, for passing to an
// EntryPolicy collaborator.
func (c *Context) Snapshot() []string {
	out := make([]string, len(c.stack))
	copy(out, c.stack)
	return out
}

// displayBase joins the stack with "_", falling back to "s_" when empty,
// then escapes characters outside [A-Za-z0-9_] to "_" while dropping the
// sigil character entirely.
func displayBase(stack []string, sigil byte) string {
	base := strings.Join(stack, "_")
	if base == "" {
		base = "s_"
	}
	return escapeSym(base, sigil)
}

func escapeSym(s string, sigil byte) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == sigil:
			// dropped
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Register computes the (symbol_name, display_name, hash_str, hash_u64)
// tuple for a hook about to be extracted at the current stack position,
// deduplicating display names per spec.md §4.3: the first occurrence of a
// base keeps the bare base; the Nth occurrence (N>=1) appends "_N".
func (c *Context) Register(origin string, dev bool, sigil byte) (symbolName, displayName, hashStr string, hashU64 uint64) {
	base := displayBase(c.stack, sigil)

	index, seen := c.counts[base]
	if !seen {
		c.counts[base] = 0
	} else {
		index++
		c.counts[base] = index
	}
	displayName = base
	if seen {
		displayName = base + "_" + itoa(index)
	}

	hashU64 = Hash64(origin, displayName)
	hashStr = base64Symbol(hashU64)

	if dev {
		symbolName = displayName + "_" + hashStr
	} else {
		symbolName = "s_" + hashStr
	}
	return symbolName, displayName, hashStr, hashU64
}

// Hash64 combines origin and displayName through a single highwayhash
// stream, mirroring the original implementation's sequential hasher.write
// calls over the same two byte slices.
func Hash64(origin, displayName string) uint64 {
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// hashKey is a fixed, valid 32-byte key; New64 only errors on bad
		// key length, which is a programming error, not a runtime one.
		panic(err)
	}
	_, _ = h.Write([]byte(origin))
	_, _ = h.Write([]byte(displayName))
	return h.Sum64()
}

// base64Symbol encodes the little-endian bytes of hash through URL-safe,
// unpadded base64, remaps '-' and '_' to '0' (spec.md §9(b): the collision
// between those two characters is inherent to the on-disk symbol format and
// must be preserved, not "fixed"), and truncates to the 10-character width
// the spec's symbol format uses.
func base64Symbol(hash uint64) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], hash)
	encoded := base64.RawURLEncoding.EncodeToString(buf[:])
	encoded = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return '0'
		}
		return r
	}, encoded)
	if len(encoded) > 10 {
		encoded = encoded[:10]
	}
	for len(encoded) < 10 {
		encoded += "0"
	}
	return encoded
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits [20]byte
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		digits[i] = '-'
	}
	return string(digits[i:])
}
