package fs

import (
	"bytes"

	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// PathType selects whether a path's IDs are resolved relative to the MF or
// to the current DF.
type PathType int

const (
	PathTypeMF PathType = iota
	PathTypeDF
)

// Path is a sequence of file IDs to walk, relative to either the MF or the
// current DF.
type Path struct {
	Type PathType
	IDs  []uint16
}

// ValidityArea (VA) tracks the result of every successful file selection on
// a logical channel: current tree, current ADF/DF/EF, and current record.
// ISO/IEC 7816-4:2020 p.22 §7.2.1. All selection methods leave the VA
// unchanged on error.
type ValidityArea struct {
	CurTree *Tree

	CurADF File
	hasADF bool

	CurDF File
	hasDF bool

	CurEF File
	hasEF bool

	CurRcrdIdx uint8
	hasRcrd    bool
}

// HasADF, HasEF and HasRecord report whether the corresponding field holds
// a valid selection.
func (va *ValidityArea) HasADF() bool    { return va.hasADF }
func (va *ValidityArea) HasEF() bool     { return va.hasEF }
func (va *ValidityArea) HasRecord() bool { return va.hasRcrd }

// setTree installs tree as current and derives the ADF slot: a tree rooted
// in an ADF makes that ADF current, a tree rooted in an MF clears it.
func (va *ValidityArea) setTree(tree *Tree, root File) {
	va.CurTree = tree
	if root.Item.Type == ItemTypeADF {
		va.CurADF = root
		va.hasADF = true
	} else {
		va.hasADF = false
	}
}

// Reset puts the VA in the state expected right after a card reset: the
// first tree's root (the MF, ID 0x3F00) selected as current DF, nothing
// else selected.
func (va *ValidityArea) Reset(disk *Disk) error {
	tree, err := disk.TreeAt(0)
	if err != nil {
		return err
	}
	mf, err := tree.RootFile()
	if err != nil {
		return err
	}
	va.setTree(tree, mf)
	va.CurDF = mf
	va.hasDF = true
	va.hasEF = false
	va.hasRcrd = false
	return nil
}

// SelectADF selects the first tree whose root is an ADF with a matching
// AID: RID must match exactly, and the first pixLen bytes of PIX must
// match aid[ADFAIDRIDLen:ADFAIDRIDLen+pixLen] (a right-truncated AID
// selects by prefix).
func (va *ValidityArea) SelectADF(disk *Disk, aid []byte, pixLen uint32) error {
	if uint32(len(aid)) < ADFAIDRIDLen+pixLen {
		return swiccerr.New(swiccerr.ParamBad)
	}
	rid := aid[:ADFAIDRIDLen]
	pix := aid[ADFAIDRIDLen : ADFAIDRIDLen+pixLen]

	it := NewTreeIter(disk.Root)
	for tree := disk.Root; tree != nil; {
		root, err := tree.RootFile()
		if err == nil && root.Item.Type == ItemTypeADF &&
			bytes.Equal(root.AID.RID[:], rid) &&
			bytes.Equal(root.AID.PIX[:pixLen], pix) {
			va.setTree(tree, root)
			va.CurDF = root
			va.hasDF = true
			va.hasEF = false
			return nil
		}
		next, nerr := it.Next()
		if nerr != nil {
			break
		}
		tree = next
	}
	return swiccerr.New(swiccerr.FsNotFound)
}

// SelectByID resolves fid disk-wide. Per ISO/IEC 7816-4:2020 §7.2.2: if the
// resolved file is a folder, it becomes the current DF and the current EF
// is cleared; if it is an EF, its parent becomes the current DF and it
// becomes the current EF.
func (va *ValidityArea) SelectByID(disk *Disk, fid uint16) error {
	tree, file, err := disk.LookupByID(fid)
	if err != nil {
		return err
	}
	root, err := tree.RootFile()
	if err != nil {
		return err
	}

	if file.Item.Type.IsFolder() {
		va.setTree(tree, root)
		va.CurDF = file
		va.hasDF = true
		va.hasEF = false
		return nil
	}

	parent, err := tree.ParentFile(file)
	if err != nil {
		return err
	}
	va.setTree(tree, root)
	va.CurDF = parent
	va.hasDF = true
	va.CurEF = file
	va.hasEF = true
	return nil
}

// SelectBySID resolves sid in the current tree's SID LUT. Only the current
// EF changes; the result is always an EF by construction of the SID LUT.
func (va *ValidityArea) SelectBySID(sid uint8) error {
	if va.CurTree == nil {
		return swiccerr.New(swiccerr.FsNotFound)
	}
	file, err := va.CurTree.LookupBySID(sid)
	if err != nil {
		return err
	}
	va.CurEF = file
	va.hasEF = true
	return nil
}

// SelectByPath walks path.IDs as a chain of direct-child lookups, starting
// from the MF (path.Type == PathTypeMF) or the current DF (PathTypeDF). The
// final resolved file becomes the current DF (if a folder) or the current
// EF with its parent as current DF (if an EF), as in SelectByID.
func (va *ValidityArea) SelectByPath(disk *Disk, path Path) error {
	var tree *Tree
	var cur File
	var err error

	if path.Type == PathTypeMF {
		tree, err = disk.TreeAt(0)
		if err != nil {
			return err
		}
		cur, err = tree.RootFile()
		if err != nil {
			return err
		}
	} else {
		if !va.hasDF || va.CurTree == nil {
			return swiccerr.New(swiccerr.FsNotFound)
		}
		tree = va.CurTree
		cur = va.CurDF
	}

	parent := cur
	for i, id := range path.IDs {
		child, found, ferr := findChildByID(tree, parent, id)
		if ferr != nil {
			return ferr
		}
		if !found {
			return swiccerr.New(swiccerr.FsNotFound)
		}
		if i == len(path.IDs)-1 {
			root, rerr := tree.RootFile()
			if rerr != nil {
				return rerr
			}
			if child.Item.Type.IsFolder() {
				va.setTree(tree, root)
				va.CurDF = child
				va.hasDF = true
				va.hasEF = false
			} else {
				va.setTree(tree, root)
				va.CurDF = parent
				va.hasDF = true
				va.CurEF = child
				va.hasEF = true
			}
		}
		parent = child
	}
	if len(path.IDs) == 0 {
		return swiccerr.New(swiccerr.ParamBad)
	}
	return nil
}

// SelectRecordByIndex selects record idx of the current EF, which must be
// record-structured (linear-fixed or cyclic) and must contain at least
// idx+1 records.
func (va *ValidityArea) SelectRecordByIndex(idx uint8) error {
	if !va.hasEF {
		return swiccerr.New(swiccerr.FsNotFound)
	}
	count, err := RecordCount(va.CurEF)
	if err != nil {
		return err
	}
	if uint32(idx) >= count {
		return swiccerr.New(swiccerr.FsNotFound)
	}
	va.CurRcrdIdx = idx
	va.hasRcrd = true
	return nil
}

func findChildByID(tree *Tree, parent File, id uint16) (File, bool, error) {
	children, err := tree.DirectChildren(parent)
	if err != nil {
		return File{}, false, err
	}
	for _, c := range children {
		if c.ID == id {
			return c, true, nil
		}
	}
	return File{}, false, nil
}
