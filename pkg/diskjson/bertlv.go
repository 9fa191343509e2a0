package diskjson

import (
	"encoding/hex"

	"github.com/swiccgo/swicc/pkg/bertlv"
	"github.com/swiccgo/swicc/pkg/swiccerr"
)

// encodeMax bounds the dry-run size measurement for a data_object_bertlv
// item's content. Disk authoring has no wire-size constraint, so this is
// generous rather than tied to any APDU length limit.
const encodeMax = 1 << 20

// encodeTags serializes tags as a flat sequence of sibling BER-TLV objects,
// the same dry-run-then-encode pattern pkg/apduh uses to build FCP/FMD/FCI
// templates.
func encodeTags(tags []Tag) ([]byte, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	dry := bertlv.NewEncoder(nil, encodeMax)
	if err := encodeTagList(dry, tags); err != nil {
		return nil, err
	}
	n := dry.Size()

	buf := make([]byte, n)
	enc := bertlv.NewEncoder(buf, n)
	if err := encodeTagList(enc, tags); err != nil {
		return nil, err
	}
	return buf, nil
}

// encodeTagList writes tags as siblings in the given forward order. The
// encoder fills its buffer from the end backward, so each object must be
// emitted before the ones preceding it in tags; the loop below walks tags
// in reverse to compensate.
func encodeTagList(enc *bertlv.Encoder, tags []Tag) error {
	for i := len(tags) - 1; i >= 0; i-- {
		if err := encodeTag(enc, tags[i]); err != nil {
			return err
		}
	}
	return nil
}

func encodeTag(enc *bertlv.Encoder, t Tag) error {
	class, err := parseTagClass(t.Class)
	if err != nil {
		return err
	}

	if len(t.Tags) > 0 {
		child, err := enc.NestedStart()
		if err != nil {
			return err
		}
		if err := encodeTagList(child, t.Tags); err != nil {
			return err
		}
		if err := enc.NestedEnd(child); err != nil {
			return err
		}
	} else {
		value, err := hex.DecodeString(t.Value)
		if err != nil {
			return swiccerr.Newf(swiccerr.ParamBad, "tag %d value: %v", t.Number, err)
		}
		if err := enc.Data(value); err != nil {
			return err
		}
	}

	tag := bertlv.NewTag(class, len(t.Tags) > 0 || t.Constructed, t.Number)
	return enc.Header(tag)
}

func parseTagClass(s string) (bertlv.TagClass, error) {
	switch s {
	case "", "context":
		return bertlv.TagClassContext, nil
	case "universal":
		return bertlv.TagClassUniversal, nil
	case "application":
		return bertlv.TagClassApplication, nil
	case "private":
		return bertlv.TagClassPrivate, nil
	default:
		return bertlv.TagClassInvalid, swiccerr.Newf(swiccerr.ParamBad, "unknown tag class %q", s)
	}
}
