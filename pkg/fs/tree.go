package fs

import "github.com/swiccgo/swicc/pkg/swiccerr"

// DepthMax is the maximum nesting depth of a tree: root (MF/ADF) → DF → EF.
const DepthMax = 3

// Tree is one contiguous, depth-first-serialized region: either the MF
// (always the first tree in a Disk's forest) or an ADF (every subsequent
// tree). Buf holds the whole tree including every descendant; files inside
// it are addressed by offset, never by pointer, so Buf can be saved and
// reloaded without any pointer fix-up.
type Tree struct {
	Next   *Tree
	Buf    []byte
	lutsid *lut[uint8, uint32] // sid -> offsetTrel, this tree only
}

// NewTree wraps buf (the fully-built serialized region for one root item
// and its descendants) as a Tree, with an empty SID LUT that must be built
// with RebuildLUTSID before any SID lookups.
func NewTree(buf []byte) *Tree {
	return &Tree{Buf: buf, lutsid: newLUT[uint8, uint32]()}
}

// RootFile parses and returns this tree's root item (an MF or ADF).
func (t *Tree) RootFile() (File, error) {
	f, err := parseFile(t.Buf, 0)
	if err != nil {
		return File{}, err
	}
	if f.Item.Type != ItemTypeMF && f.Item.Type != ItemTypeADF {
		return File{}, swiccerr.Newf(swiccerr.Error, "tree root has unexpected type %d", f.Item.Type)
	}
	return f, nil
}

// ParentFile returns the parent of file within this tree. Returns
// FsNotFound if file is the tree root (it has no parent).
func (t *Tree) ParentFile(file File) (File, error) {
	if file.Item.OffsetPrel == 0 {
		return File{}, swiccerr.New(swiccerr.FsNotFound)
	}
	return parseFile(t.Buf, file.OffsetTrel-file.Item.OffsetPrel)
}

// FileAt parses and returns the file at the given tree-relative offset.
func (t *Tree) FileAt(offsetTrel uint32) (File, error) {
	return parseFile(t.Buf, offsetTrel)
}

// Foreach walks start and its descendants depth-first. start is always
// visited. If start is not a folder, nothing further happens. If start is a
// folder, every direct child is visited; when recurse is true, child
// folders are walked recursively instead of merely visited.
func (t *Tree) Foreach(start File, recurse bool, cb func(File) error) error {
	if err := cb(start); err != nil {
		return err
	}
	if !start.Item.Type.IsFolder() {
		return nil
	}

	childOffset := start.OffsetTrel + HeaderSize(start.Item.Type)
	end := start.OffsetTrel + start.Item.Size
	for childOffset < end {
		child, err := parseFile(t.Buf, childOffset)
		if err != nil {
			return err
		}
		if recurse && child.Item.Type.IsFolder() {
			if err := t.Foreach(child, true, cb); err != nil {
				return err
			}
		} else {
			if err := cb(child); err != nil {
				return err
			}
		}
		childOffset += child.Item.Size
	}
	return nil
}

// DirectChildren returns parent's immediate children, without descending
// into grandchildren. parent must be a folder.
func (t *Tree) DirectChildren(parent File) ([]File, error) {
	if !parent.Item.Type.IsFolder() {
		return nil, swiccerr.Newf(swiccerr.ParamBad, "file is not a folder")
	}
	var children []File
	childOffset := parent.OffsetTrel + HeaderSize(parent.Item.Type)
	end := parent.OffsetTrel + parent.Item.Size
	for childOffset < end {
		child, err := parseFile(t.Buf, childOffset)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		childOffset += child.Item.Size
	}
	return children, nil
}

// RebuildLUTSID walks the whole tree and repopulates the per-tree SID LUT.
// Files with SID == SIDMissing are not indexed.
func (t *Tree) RebuildLUTSID() error {
	t.lutsid.reset()
	root, err := t.RootFile()
	if err != nil {
		return err
	}
	return t.Foreach(root, true, func(f File) error {
		if f.SID != SIDMissing {
			t.lutsid.insert(f.SID, f.OffsetTrel)
		}
		return nil
	})
}

// LookupBySID resolves sid to a file in this tree via the SID LUT.
func (t *Tree) LookupBySID(sid uint8) (File, error) {
	offset, ok := t.lutsid.lookup(sid)
	if !ok {
		return File{}, swiccerr.New(swiccerr.FsNotFound)
	}
	return t.FileAt(offset)
}

// TreeIter iterates the singly-linked forest of trees, forward only.
type TreeIter struct {
	idx  int
	tree *Tree
}

// NewTreeIter returns an iterator positioned before the first tree.
func NewTreeIter(root *Tree) *TreeIter {
	return &TreeIter{idx: -1, tree: &Tree{Next: root}}
}

// Next advances the iterator and returns the next tree, or FsNotFound at
// the end of the forest.
func (it *TreeIter) Next() (*Tree, error) {
	if it.tree.Next == nil {
		return nil, swiccerr.New(swiccerr.FsNotFound)
	}
	it.tree = it.tree.Next
	it.idx++
	return it.tree, nil
}

// ByIndex advances the iterator until it reaches treeIdx, returning that
// tree. The iterator cannot rewind: if treeIdx is behind the iterator's
// current position, or past the end of the forest, it is left at the
// furthest tree it reached and FsNotFound is returned.
func (it *TreeIter) ByIndex(treeIdx int) (*Tree, error) {
	for it.idx < treeIdx {
		if _, err := it.Next(); err != nil {
			return nil, err
		}
	}
	if it.idx != treeIdx {
		return nil, swiccerr.New(swiccerr.FsNotFound)
	}
	return it.tree, nil
}
