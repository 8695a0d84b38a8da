// Package naming assigns rotation-style file names to the files of a run.
//
// For n files written in order, the first gets the highest suffix and the
// last gets the bare base name:
//
//	access.log.2, access.log.1, access.log
package naming

import "strconv"

// DefaultBaseName is the name of the freshest file.
const DefaultBaseName = "access.log"

// Names returns the n names in emission order.
func Names(base string, n int) []string {
	if n <= 0 {
		return nil
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = NameFor(base, n-1-i)
	}
	return names
}

// NameFor returns the name carrying the given rotation suffix; suffix 0 is
// the bare base name.
func NameFor(base string, suffix int) string {
	if suffix <= 0 {
		return base
	}
	return base + "." + strconv.Itoa(suffix)
}

// Namer hands out a precomputed name sequence one name at a time.
type Namer struct {
	names []string
	next  int
}

// NewNamer creates a namer for n files.
func NewNamer(base string, n int) *Namer {
	return &Namer{names: Names(base, n)}
}

// Next returns the next name and false once all names have been handed out.
func (n *Namer) Next() (string, bool) {
	if n.next >= len(n.names) {
		return "", false
	}
	name := n.names[n.next]
	n.next++
	return name, true
}

// At returns the name of the i-th file in emission order.
func (n *Namer) At(i int) string {
	return n.names[i]
}

// Len reports how many names the sequence holds.
func (n *Namer) Len() int {
	return len(n.names)
}
