package storage

// Blob is the external storage contract the core depends on (spec
// §4.5): a path-keyed string blob store. Every implementation must
// run paths through Normalize and reject the ones that fail it.
//
// Read and Delete return a *direrr.NotFoundError when the path is
// absent; it is the Collection's job, not the adapter's, to translate
// that into a nil result for Get (spec §7, "Propagation policy").
// Exists reports an absent path as false with a nil error itself.
type Blob interface {
	Read(path string) (string, error)
	Write(path string, content string) error
	Delete(path string) error
	Exists(path string) (bool, error)
	// List returns the immediate children of dir: filenames for blobs,
	// directory names (with no further nesting shown) for nested
	// contents.
	List(dir string) ([]string, error)
	Close() error
}
