// pkg/api/sequences_v1.go
package api

// SequenceV1 is the stable JSON schema for a fetched sequence or range.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type SequenceV1 struct {
	Accession string `json:"accession"`
	Primary   string `json:"primary"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	Length    int    `json:"length"`
	Reverse   bool   `json:"reverse,omitempty"`
	Seq       string `json:"seq"`
	Source    string `json:"source_file,omitempty"`
}

// LocationV1 is one file holding an accession.
type LocationV1 struct {
	Accession string `json:"accession"`
	Path      string `json:"path"`
}

// ReferenceV1 is one stored sequence of the store, in registration order.
type ReferenceV1 struct {
	Accession string `json:"accession"`
	Length    int    `json:"length"`
	Path      string `json:"path,omitempty"`
}

// IndexSummaryV1 reports the state of an opened store.
type IndexSummaryV1 struct {
	Files      int             `json:"files"`
	References int             `json:"references"`
	Accessions int             `json:"accessions"`
	Collisions int             `json:"collisions"`
	MetaIndex  bool            `json:"meta_index"`
	PerFile    []FileSummaryV1 `json:"per_file,omitempty"`
}

// FileSummaryV1 is one file of an IndexSummaryV1.
type FileSummaryV1 struct {
	Path       string `json:"path"`
	Sequences  int    `json:"sequences"`
	Compressed bool   `json:"compressed,omitempty"`
}
