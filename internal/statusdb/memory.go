package statusdb

import "github.com/papapumpkin/shipwright/internal/portspec"

// MemoryStatusDatabase is a slice-backed StatusDatabase for tests and
// synthetic inputs. Records are returned in insertion order.
type MemoryStatusDatabase struct {
	records []InstalledRecord
}

// NewMemoryStatusDatabase builds a MemoryStatusDatabase from the given
// records.
func NewMemoryStatusDatabase(records ...InstalledRecord) *MemoryStatusDatabase {
	return &MemoryStatusDatabase{records: records}
}

func (m *MemoryStatusDatabase) All() []InstalledRecord {
	out := make([]InstalledRecord, len(m.records))
	copy(out, m.records)
	return out
}

func (m *MemoryStatusDatabase) FindInstalled(spec portspec.PackageSpec) []InstalledRecord {
	var out []InstalledRecord
	for _, r := range m.records {
		if r.Spec == spec {
			out = append(out, r)
		}
	}
	return out
}
