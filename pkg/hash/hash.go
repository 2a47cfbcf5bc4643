package hash

import (
	"sort"
	"strconv"
	"strings"
)

// Hash is a fast, non-cryptographic string hash: a DJB2-style fold
// rendered in base 36. Collisions are not a security concern here;
// anti-entropy correctness only requires that equal inputs yield
// equal outputs, which this trivially satisfies.
func Hash(s string) string {
	var h uint64 = 5381
	for i := 0; i < len(s); i++ {
		h = ((h << 5) + h) + uint64(s[i]) // h*33 + c
	}
	return strconv.FormatUint(h, 36)
}

// Combine folds two hashes into one in a non-commutative way: order
// encodes position, so Combine(a, b) != Combine(b, a) in general.
func Combine(a, b string) string {
	return Hash(a + ":" + b)
}

// Accumulate left-folds Combine over an ordered sequence of hashes,
// starting from the empty string. The empty slice maps to "".
func Accumulate(hashes []string) string {
	acc := ""
	for _, h := range hashes {
		acc = Combine(acc, h)
	}
	return acc
}

// Bucket partitions an ordered sequence of hashes into chunks of
// bucketSize and returns the accumulated hash of each chunk, keyed by
// chunk index. A bucketSize <= 0 is treated as 1 to avoid an infinite
// loop on malformed input.
func Bucket(hashes []string, bucketSize int) map[int]string {
	if bucketSize <= 0 {
		bucketSize = 1
	}
	buckets := make(map[int]string)
	for i := 0; i < len(hashes); i += bucketSize {
		end := i + bucketSize
		if end > len(hashes) {
			end = len(hashes)
		}
		buckets[i/bucketSize] = Accumulate(hashes[i:end])
	}
	return buckets
}

// Object canonicalizes a JSON-shaped value tree (sorting map keys at
// every level, recursing into slices and maps) and hashes the
// resulting deterministic serialization. Two values that are
// structurally equal but were built with different key-insertion
// order, or different map iteration order, hash identically. Accepted
// leaf types are the ones encoding/json produces when unmarshaling
// into interface{}: nil, bool, string, float64, plus []interface{}
// and map[string]interface{} for composites. int/int64 are accepted
// as a convenience for values built directly in Go.
func Object(v interface{}) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return Hash(b.String())
}

func writeCanonical(b *strings.Builder, v interface{}) {
	switch val := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case string:
		b.WriteByte('"')
		b.WriteString(escapeString(val))
		b.WriteByte('"')
	case float64:
		b.WriteString(strconv.FormatFloat(val, 'g', -1, 64))
	case int:
		b.WriteString(strconv.Itoa(val))
	case int64:
		b.WriteString(strconv.FormatInt(val, 10))
	case []interface{}:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, item)
		}
		b.WriteByte(']')
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(escapeString(k))
			b.WriteString("\":")
			writeCanonical(b, val[k])
		}
		b.WriteByte('}')
	default:
		// Unreachable for well-formed JSON-shaped input; fall back to
		// a quoted best-effort representation rather than panicking.
		b.WriteString(strconv.Quote(""))
	}
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
