package tika

import "strings"

// MetadataSink collects extracted metadata fields. Add appends: a field set
// twice keeps both values.
type MetadataSink interface {
	Add(name, value string)
	Values(name string) []string
	Names() []string
}

// RecordType selects the MetadataSink implementation attached to documents.
type RecordType string

const (
	// RecordGeneric preserves every occurrence of a field as a separate value.
	RecordGeneric RecordType = "generic"
	// RecordJoined stores every occurrence but reads back repeated fields as
	// a single comma-joined value, for flat consumers.
	RecordJoined RecordType = "joined"
)

// NewSink returns the sink implementation for a record type.
// Unknown types fall back to RecordGeneric.
func NewSink(t RecordType) MetadataSink {
	if t == RecordJoined {
		return &JoinedMetadata{Metadata: *NewMetadata()}
	}
	return NewMetadata()
}

// Metadata is a multi-valued, order-preserving name-to-values mapping.
type Metadata struct {
	names  []string
	values map[string][]string
}

func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string][]string)}
}

// Add appends value under name. Repeated names accumulate.
func (m *Metadata) Add(name, value string) {
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = append(m.values[name], value)
}

// Values returns all values recorded for name, in insertion order.
func (m *Metadata) Values(name string) []string {
	return m.values[name]
}

// Names returns field names in first-seen order.
func (m *Metadata) Names() []string {
	return m.names
}

// All returns the whole mapping. The returned map shares storage with the
// Metadata; callers must not mutate it.
func (m *Metadata) All() map[string][]string {
	return m.values
}

// JoinedMetadata stores multi-valued fields but reads them back joined.
type JoinedMetadata struct {
	Metadata
}

// Values returns the values for name collapsed to one comma-joined string.
func (m *JoinedMetadata) Values(name string) []string {
	vs := m.Metadata.Values(name)
	if len(vs) <= 1 {
		return vs
	}
	return []string{strings.Join(vs, ", ")}
}
