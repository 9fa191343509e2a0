// Package diskjson translates a developer-friendly JSON description of a
// card's filesystem into the in-memory fs.Disk the engine serves, the same
// boundary role ETSI TS 102 221-style test tooling plays for authoring
// filesystem images by hand: a forest of trees (MF first, then zero or
// more ADFs), each tree's nested DFs/EFs, and each file's headers and
// content, described once in JSON instead of assembled byte by byte.
//
// diskjson.Decode(r) output and fs.Load(diskjson output saved via
// fs.Disk.Save) are equivalent: both walk the same NodeSpec shape through
// fs.BuildTree.
package diskjson

// Doc is the top-level JSON document: a forest of trees, root-first. The
// first tree must be an MF; every subsequent tree must be an ADF, matching
// fs.Disk's forest-of-trees invariant.
type Doc struct {
	Trees []Node `json:"trees"`
}

// Node describes one filesystem item and, for folders, its children.
//
// Type selects which other fields apply:
//   - "mf", "df": Name
//   - "adf": AID
//   - "ef_linear_fixed", "ef_cyclic": RecordSize, plus Data or Records
//   - "ef_transparent", "hex": Data
//   - "ascii": Text (or Data)
//   - "data_object_bertlv": Tags
//
// ID and SID are hex strings ("3F00", "02"); omit either to leave the file
// unaddressable by that index, matching fs.IDMissing/fs.SIDMissing.
type Node struct {
	Type string `json:"type"`
	LCS  string `json:"lcs,omitempty"`
	ID   string `json:"id,omitempty"`
	SID  string `json:"sid,omitempty"`

	Name string `json:"name,omitempty"`
	AID  string `json:"aid,omitempty"`

	RecordSize uint8    `json:"record_size,omitempty"`
	Records    []string `json:"records,omitempty"`

	Data string `json:"data,omitempty"`
	Text string `json:"text,omitempty"`
	Tags []Tag  `json:"tags,omitempty"`

	Children []Node `json:"children,omitempty"`
}

// Tag describes one BER-TLV object inside a data_object_bertlv item,
// either a primitive (Value set) or constructed (Tags set) object.
type Tag struct {
	Class       string `json:"class"`
	Constructed bool   `json:"constructed,omitempty"`
	Number      uint32 `json:"number"`

	Value string `json:"value,omitempty"`
	Tags  []Tag  `json:"tags,omitempty"`
}
