// =============================================================================
// passwd2json - Shared Types
// =============================================================================
//
// This package contains the record types shared by the pipeline stages so
// that none of them has to import another:
//   - accounts   (builds the record set)
//   - groups     (derives a merged record set)
//   - render     (serializes the record set)
//   - xlsxreport (writes the record set to a spreadsheet)
//
// =============================================================================

package types

// =============================================================================
// ACCOUNT RECORD
// =============================================================================

// AccountRecord is the merged view of one user account.
type AccountRecord struct {
	// Username is the unique key of the record (passwd field 0).
	Username string

	// UID is kept as text so the original formatting survives (passwd field 2).
	UID string

	// FullName is the GECOS field (passwd field 4). It may be empty.
	FullName string

	// Groups lists supplementary group names in the order the group table
	// names them. It is never nil, so an account without groups renders as [].
	Groups []string
}

// clone returns a copy whose Groups slice does not alias the original.
func (r AccountRecord) clone() AccountRecord {
	groups := make([]string, len(r.Groups))
	copy(groups, r.Groups)
	r.Groups = groups
	return r
}

// =============================================================================
// RECORD SET
// =============================================================================

// RecordSet maps usernames to account records and remembers the order in
// which usernames were first seen. The zero value is not usable; call
// NewRecordSet.
type RecordSet struct {
	order   []string
	records map[string]*AccountRecord
}

// NewRecordSet returns an empty record set.
func NewRecordSet() *RecordSet {
	return &RecordSet{
		records: make(map[string]*AccountRecord),
	}
}

// Put stores a record under its username. If the username is already present
// the stored record is replaced entirely (last write wins) but the key keeps
// its original position. Put reports whether a record was replaced.
func (s *RecordSet) Put(record AccountRecord) bool {
	record = record.clone()

	if existing, ok := s.records[record.Username]; ok {
		*existing = record
		return true
	}

	s.order = append(s.order, record.Username)
	s.records[record.Username] = &record
	return false
}

// Get returns a copy of the record stored under username.
func (s *RecordSet) Get(username string) (AccountRecord, bool) {
	record, ok := s.records[username]
	if !ok {
		return AccountRecord{}, false
	}
	return record.clone(), true
}

// AppendGroup adds a group name to the record stored under username.
// It reports false when the username is unknown.
func (s *RecordSet) AppendGroup(username, group string) bool {
	record, ok := s.records[username]
	if !ok {
		return false
	}
	record.Groups = append(record.Groups, group)
	return true
}

// Len returns the number of distinct usernames.
func (s *RecordSet) Len() int {
	return len(s.order)
}

// Usernames returns the usernames in first-seen order.
func (s *RecordSet) Usernames() []string {
	usernames := make([]string, len(s.order))
	copy(usernames, s.order)
	return usernames
}

// Records returns copies of all records in first-seen order.
func (s *RecordSet) Records() []AccountRecord {
	records := make([]AccountRecord, 0, len(s.order))
	for _, username := range s.order {
		records = append(records, s.records[username].clone())
	}
	return records
}

// Clone returns a deep copy of the set.
func (s *RecordSet) Clone() *RecordSet {
	out := &RecordSet{
		order:   make([]string, len(s.order)),
		records: make(map[string]*AccountRecord, len(s.records)),
	}
	copy(out.order, s.order)

	for username, record := range s.records {
		c := record.clone()
		out.records[username] = &c
	}

	return out
}
