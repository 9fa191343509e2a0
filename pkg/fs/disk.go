package fs

import (
	"bytes"
	"io"

	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// MagicLen is the length of the disk file's endianness-disambiguating
// magic header.
const MagicLen = 16

// MagicLE and MagicBE are the two recognized magic headers, differing only
// in their last two bytes. This implementation always stores multi-byte
// integers big-endian regardless of host, so Save always writes MagicBE;
// Load accepts either on read for compatibility with disk images produced
// by a little-endian-native implementation of the same format, provided
// their multi-byte fields also happen to be big-endian (true for any disk
// this engine ever produces).
var (
	MagicLE = [MagicLen]byte{0x00, 's', 'w', 'I', 'C', 'C', 0x91, 0xCC, '.', '.', '.', '.', 'F', 'S', 0xF0, 0x0F}
	MagicBE = [MagicLen]byte{0x00, 's', 'w', 'I', 'C', 'C', 0x91, 0xCC, '.', '.', '.', '.', 'F', 'S', 0x0F, 0xF0}
)

// idEntry is the value side of the disk-wide ID LUT: which tree a file
// lives in, and its offset within that tree.
type idEntry struct {
	treeIdx    int
	offsetTrel uint32
}

// Disk is the full in-memory filesystem: a forest of trees (the first
// being the MF, every subsequent one an ADF) plus one lookup table mapping
// IDs to (tree, offset) disk-wide.
type Disk struct {
	Root  *Tree
	lutid *lut[uint16, idEntry]
}

// NewDisk wraps an already-built forest of trees (root first) as a Disk
// with an empty ID LUT; call RebuildLUTID before any ID lookups.
func NewDisk(root *Tree) *Disk {
	return &Disk{Root: root, lutid: newLUT[uint16, idEntry]()}
}

// RebuildLUTID walks every tree in the forest and repopulates the
// disk-wide ID LUT. Files with ID == IDMissing are not indexed.
func (d *Disk) RebuildLUTID() error {
	d.lutid.reset()
	it := NewTreeIter(d.Root)
	for treeIdx := 0; ; treeIdx++ {
		tree, err := it.Next()
		if err != nil {
			break
		}
		root, err := tree.RootFile()
		if err != nil {
			return err
		}
		if err := tree.Foreach(root, true, func(f File) error {
			if f.ID != IDMissing {
				d.lutid.insert(f.ID, idEntry{treeIdx: treeIdx, offsetTrel: f.OffsetTrel})
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// RebuildLUTSIDAll rebuilds the per-tree SID LUT for every tree in the
// forest. Convenience wrapper over Tree.RebuildLUTSID.
func (d *Disk) RebuildLUTSIDAll() error {
	for tree := d.Root; tree != nil; tree = tree.Next {
		if err := tree.RebuildLUTSID(); err != nil {
			return err
		}
	}
	return nil
}

// LookupByID resolves id disk-wide, returning the tree it lives in and the
// parsed file.
func (d *Disk) LookupByID(id uint16) (*Tree, File, error) {
	entry, ok := d.lutid.lookup(id)
	if !ok {
		return nil, File{}, swiccerr.New(swiccerr.FsNotFound)
	}
	it := NewTreeIter(d.Root)
	tree, err := it.ByIndex(entry.treeIdx)
	if err != nil {
		return nil, File{}, err
	}
	f, err := tree.FileAt(entry.offsetTrel)
	if err != nil {
		return nil, File{}, err
	}
	return tree, f, nil
}

// TreeAt returns the tree at treeIdx (0 = MF tree).
func (d *Disk) TreeAt(treeIdx int) (*Tree, error) {
	it := NewTreeIter(d.Root)
	return it.ByIndex(treeIdx)
}

// Save writes the disk's magic header followed by each tree's buffer, in
// forest order, with no length prefix: each tree is self-delimiting
// because its root item header's Size field gives the tree's total length.
func (d *Disk) Save(w io.Writer) error {
	if _, err := w.Write(MagicBE[:]); err != nil {
		return err
	}
	for tree := d.Root; tree != nil; tree = tree.Next {
		if _, err := w.Write(tree.Buf); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a disk image produced by Save: a magic header followed by a
// sequence of self-delimited tree buffers. LUTs are rebuilt, never read
// from the file.
func Load(r io.Reader) (*Disk, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(raw) < MagicLen {
		return nil, swiccerr.New(swiccerr.BufferTooShort)
	}
	magic := raw[:MagicLen]
	if !bytes.Equal(magic, MagicBE[:]) && !bytes.Equal(magic, MagicLE[:]) {
		return nil, swiccerr.Newf(swiccerr.Error, "unrecognized disk magic header")
	}

	body := raw[MagicLen:]
	var head, tail *Tree
	offset := 0
	for offset < len(body) {
		item, err := decodeItemHeader(body[offset:])
		if err != nil {
			return nil, err
		}
		if item.Size == 0 || offset+int(item.Size) > len(body) {
			return nil, swiccerr.Newf(swiccerr.Error, "tree at offset %d declares invalid size %d", offset, item.Size)
		}
		tree := NewTree(body[offset : offset+int(item.Size)])
		if head == nil {
			head = tree
		} else {
			tail.Next = tree
		}
		tail = tree
		offset += int(item.Size)
	}
	if head == nil {
		return nil, swiccerr.Newf(swiccerr.Error, "disk image contains no trees")
	}

	disk := NewDisk(head)
	if err := disk.RebuildLUTID(); err != nil {
		return nil, err
	}
	if err := disk.RebuildLUTSIDAll(); err != nil {
		return nil, err
	}
	return disk, nil
}
