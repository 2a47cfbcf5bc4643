package storage

import (
	"strings"

	"github.com/driftdb/driftdb/pkg/direrr"
)

// Normalize applies the path rules in spec §4.5: backslashes become
// forward slashes, leading/trailing/duplicate slashes collapse, "."
// and the empty string are the root, and any segment equal to ".." or
// any byte in the disallowed control-character set is rejected.
//
// Normalize does not itself forbid writes to the root; Write rejects
// those explicitly, since read/exists/list all have a legitimate
// meaning at the root but write does not.
func Normalize(path string) (string, error) {
	if err := checkControlBytes(path); err != nil {
		return "", err
	}

	cleaned := strings.ReplaceAll(path, "\\", "/")
	segments := strings.Split(cleaned, "/")

	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			return "", direrr.InvalidPath(path, "path segment '..' is not allowed")
		default:
			out = append(out, seg)
		}
	}
	return strings.Join(out, "/"), nil
}

func checkControlBytes(path string) error {
	for i := 0; i < len(path); i++ {
		b := path[i]
		if b == 0x00 {
			return direrr.InvalidPath(path, "path contains a NUL byte")
		}
		if b >= 0x01 && b <= 0x1F {
			if b == '\t' || b == '\n' || b == '\r' {
				continue
			}
			return direrr.InvalidPath(path, "path contains an ASCII control character")
		}
		if b == 0x7F {
			return direrr.InvalidPath(path, "path contains a DEL control character")
		}
	}
	return nil
}
