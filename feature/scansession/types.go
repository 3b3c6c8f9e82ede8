package scansession

// ReferenceTable maps column labels to their ordered cell values. Labels
// preserves the column order of the source file so a token present in several
// columns always resolves to the first-loaded one.
type ReferenceTable struct {
	// Labels holds the column labels in source order.
	Labels []string

	// Cells holds the cell values of each column. Column lengths need not
	// match; empty cells are skipped at load time.
	Cells map[string][]string
}

// NewReferenceTable creates an empty reference table.
func NewReferenceTable() *ReferenceTable {
	return &ReferenceTable{Cells: make(map[string][]string)}
}

// AddColumn registers a column label if it is not already present.
func (t *ReferenceTable) AddColumn(label string) {
	if _, ok := t.Cells[label]; ok {
		return
	}
	t.Labels = append(t.Labels, label)
	t.Cells[label] = nil
}

// Append adds cell values to a column, registering the column if needed.
func (t *ReferenceTable) Append(label string, values ...string) {
	t.AddColumn(label)
	t.Cells[label] = append(t.Cells[label], values...)
}

// Match is the outcome of a reference item lookup. Ambiguous is set when the
// token matched reference items in more than one row; the returned item is
// then the first by insertion order.
type Match struct {
	// ItemID is the matched reference item's id.
	ItemID uint

	// Column is the matched reference item's column label.
	Column string

	// Ambiguous indicates the token matched more than one reference row.
	Ambiguous bool
}

// MatchResult describes how one scanned token resolved against the session's
// reference items. An absent ItemID means the token matched nothing; callers
// must branch on Matched, never on string emptiness.
type MatchResult struct {
	// ItemID is the matched reference item id, or nil when unmatched.
	ItemID *uint `json:"item_id"`

	// Token is the trimmed scanned token.
	Token string `json:"token"`

	// Column is the matched column label, or nil when unmatched.
	Column *string `json:"column"`

	// Ambiguous indicates the token was present in more than one
	// reference row; the recorded match is the first-inserted one.
	Ambiguous bool `json:"ambiguous"`
}

// Matched reports whether the token resolved to a reference item.
func (r MatchResult) Matched() bool {
	return r.ItemID != nil
}

// ScanOutcome bundles a match result with the session progress recomputed
// after the scan event was recorded.
type ScanOutcome struct {
	// Result is the match outcome for the scanned token.
	Result MatchResult `json:"result"`

	// Scanned is the number of distinct matched (token, column) pairs
	// recorded so far.
	Scanned int64 `json:"scanned"`

	// Total is the number of reference items loaded for the session.
	Total int64 `json:"total"`

	// Completed is true once Scanned equals Total. Scanning past
	// completion is legitimate and keeps Completed true.
	Completed bool `json:"completed"`
}

// ScannedEvent is one recorded scan joined to its reference item's column.
// Column is nil for scans that matched nothing.
type ScannedEvent struct {
	// ScannedDatetime is the timestamp of the scan in DatetimeFormat.
	ScannedDatetime string `json:"scanned_datetime"`

	// Item is the raw scanned token.
	Item string `json:"item"`

	// Column is the matched column label, or nil for unmatched scans.
	Column *string `json:"column"`
}

// UnscannedItem is a distinct (token, column) reference pair whose token
// never appeared among the session's scan events.
type UnscannedItem struct {
	// Item is the reference item token.
	Item string `json:"item"`

	// Column is the reference item's column label.
	Column string `json:"column"`
}

// PositionalScan is one record from a position-aware scan source, e.g. a
// FluidX rack scanner export. Position metadata is carried for logging only;
// the matcher never sees it.
type PositionalScan struct {
	// Position is the slot position within the container.
	Position string `json:"position"`

	// Token is the scanned barcode.
	Token string `json:"token"`

	// ContainerID identifies the rack or box the record came from.
	ContainerID string `json:"container_id"`
}

// PositionalResult pairs a positional record with its match outcome.
type PositionalResult struct {
	// Position is the slot position copied from the input record.
	Position string `json:"position"`

	// ContainerID is the container id copied from the input record.
	ContainerID string `json:"container_id"`

	// Result is the match outcome for the record's token.
	Result MatchResult `json:"result"`
}
