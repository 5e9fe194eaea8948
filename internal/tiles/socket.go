// Package tiles describes the tile variants a map can be built from.
package tiles

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Socket is a symbolic edge label. Sockets only compare for equality.
type Socket int

const (
	SocketNone Socket = iota
	SocketRoadHorizontal
	SocketRoadVertical
	SocketGrass
	SocketConnector
	SocketCrossing
)

var socketNames = map[Socket]string{
	SocketNone:           "none",
	SocketRoadHorizontal: "road_horizontal",
	SocketRoadVertical:   "road_vertical",
	SocketGrass:          "grass",
	SocketConnector:      "connector",
	SocketCrossing:       "crossing",
}

// String returns the socket's catalog name.
func (s Socket) String() string {
	if name, ok := socketNames[s]; ok {
		return name
	}
	return "unknown"
}

// ParseSocket maps a catalog name back to a Socket.
func ParseSocket(name string) (Socket, error) {
	for s, n := range socketNames {
		if n == name {
			return s, nil
		}
	}
	return SocketNone, fmt.Errorf("unknown socket %q", name)
}

// MarshalJSON encodes the socket by name.
func (s Socket) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a socket name.
func (s *Socket) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseSocket(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SocketSet is an unordered set of sockets describing one tile edge.
// The zero value is an empty edge.
type SocketSet struct {
	set mapset.Set[Socket]
}

// NewSocketSet builds a set from the given labels. Duplicates collapse.
func NewSocketSet(sockets ...Socket) SocketSet {
	set := mapset.New[Socket]()
	for _, s := range sockets {
		set.Put(s)
	}
	return SocketSet{set: set}
}

// Len returns the number of distinct labels.
func (s SocketSet) Len() int {
	return s.set.Size()
}

// Has reports whether the label is part of the edge.
func (s SocketSet) Has(socket Socket) bool {
	return s.set.Has(socket)
}

// Equal reports exact set equality: same cardinality, same labels.
func (s SocketSet) Equal(other SocketSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	equal := true
	s.set.Each(func(socket Socket) {
		if !other.Has(socket) {
			equal = false
		}
	})
	return equal
}

// Sockets returns the labels in ascending order.
func (s SocketSet) Sockets() []Socket {
	out := make([]Socket, 0, s.Len())
	s.set.Each(func(socket Socket) {
		out = append(out, socket)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String renders the set as "{a,b}".
func (s SocketSet) String() string {
	names := make([]string, 0, s.Len())
	for _, socket := range s.Sockets() {
		names = append(names, socket.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// MarshalJSON encodes the set as a sorted list of names.
func (s SocketSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sockets())
}

// UnmarshalJSON decodes a list of socket names. A JSON null is an empty edge.
func (s *SocketSet) UnmarshalJSON(data []byte) error {
	var sockets []Socket
	if err := json.Unmarshal(data, &sockets); err != nil {
		return err
	}
	*s = NewSocketSet(sockets...)
	return nil
}
