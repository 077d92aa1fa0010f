package value

import (
	"strconv"
	"strings"
)

// Key names one step from a container to a child: an array index or an
// object member name. A name that looks numeric is still a name.
type Key struct {
	isIndex bool
	name    string
	index   int
}

func IndexKey(i int) Key {
	return Key{isIndex: true, index: i}
}

func NameKey(name string) Key {
	return Key{name: name}
}

func (k Key) IsIndex() bool {
	return k.isIndex
}

func (k Key) Index() int {
	return k.index
}

func (k Key) Name() string {
	return k.name
}

// String renders the key as used in JSON object output.
func (k Key) String() string {
	if k.isIndex {
		return strconv.Itoa(k.index)
	}
	return k.name
}

// Location is the sequence of keys from the root to a node. The root has an
// empty location.
type Location []Key

// Key returns the last step, or the zero Key for the root.
func (l Location) Key() Key {
	if len(l) == 0 {
		return Key{}
	}
	return l[len(l)-1]
}

// Child returns a new location extended by k.
func (l Location) Child(k Key) Location {
	out := make(Location, len(l), len(l)+1)
	copy(out, l)
	return append(out, k)
}

// HasPrefix reports whether p is a proper ancestor of l or l itself.
func (l Location) HasPrefix(p Location) bool {
	if len(p) > len(l) {
		return false
	}
	for i := range p {
		if l[i] != p[i] {
			return false
		}
	}
	return true
}

// String renders the location as a normalized path such as $.store.book[0].
// Names that are not plain identifiers use the bracket form $['a b'].
func (l Location) String() string {
	var b strings.Builder
	b.WriteByte('$')
	for _, k := range l {
		if k.isIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(k.index))
			b.WriteByte(']')
			continue
		}
		if isPlainName(k.name) {
			b.WriteByte('.')
			b.WriteString(k.name)
			continue
		}
		b.WriteString("['")
		b.WriteString(strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(k.name))
		b.WriteString("']")
	}
	return b.String()
}

// Pointer renders the location as an RFC 6901 JSON Pointer.
func (l Location) Pointer() string {
	var b strings.Builder
	for _, k := range l {
		b.WriteByte('/')
		if k.isIndex {
			b.WriteString(strconv.Itoa(k.index))
			continue
		}
		b.WriteString(strings.NewReplacer("~", "~0", "/", "~1").Replace(k.name))
	}
	return b.String()
}

func isPlainName(name string) bool {
	if name == "" {
		return false
	}
	allDigits := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c < '0' || c > '9' {
			allDigits = false
		}
		if !IsNameByte(c) {
			return false
		}
	}
	return !allDigits
}

// IsNameByte reports whether c may appear in an unquoted member name.
func IsNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '-' || c >= 0x80
}

// Node is a value together with where it sits in its document.
type Node struct {
	Location Location
	Value    Value
}

func (n Node) Key() Key {
	return n.Location.Key()
}

func (n Node) Path() string {
	return n.Location.String()
}
