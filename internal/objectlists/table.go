package objectlists

// TableKind selects how a table is emitted.
type TableKind int

const (
	// KeyValueTable maps ids to values: { "id":value, ... }.
	KeyValueTable TableKind = iota
	// KeySetTable lists ids only: [ "id", ... ].
	KeySetTable
)

func (k TableKind) String() string {
	switch k {
	case KeyValueTable:
		return "map"
	case KeySetTable:
		return "set"
	default:
		return "unknown"
	}
}

func (k TableKind) delimiters() (string, string) {
	if k == KeySetTable {
		return "[", "]"
	}
	return "{", "}"
}

// Entry is one row of a table.
type Entry struct {
	ID    string
	Value Value
}

// Table is an id-keyed collection kept in insertion order.
type Table struct {
	Name string
	Type string
	Kind TableKind

	entries []Entry
	index   map[string]int
}

// NewTable returns an empty table.
func NewTable(name, typ string, kind TableKind) *Table {
	return &Table{
		Name:  name,
		Type:  typ,
		Kind:  kind,
		index: make(map[string]int),
	}
}

// Put stores v under id. A repeated id replaces the value but keeps the
// position of the first insertion.
func (t *Table) Put(id string, v Value) {
	if i, ok := t.index[id]; ok {
		t.entries[i].Value = v
		return
	}
	t.index[id] = len(t.entries)
	t.entries = append(t.entries, Entry{ID: id, Value: v})
}

// Get returns the value stored under id.
func (t *Table) Get(id string) (Value, bool) {
	i, ok := t.index[id]
	if !ok {
		return Value{}, false
	}
	return t.entries[i].Value, true
}

// Entries returns the rows in insertion order.
func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// IDs returns the keys in insertion order.
func (t *Table) IDs() []string {
	ids := make([]string, len(t.entries))
	for i, e := range t.entries {
		ids[i] = e.ID
	}
	return ids
}

func (t *Table) Len() int { return len(t.entries) }
