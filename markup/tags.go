package markup

import "fmt"

type tagID uint8

const (
	tagUnknown tagID = iota
	tagBold
	tagItalic
	tagUnderline
	tagStrikethrough
	tagMark
	tagSubscript
	tagSuperscript
	tagColor
	tagAlpha
	tagSize
	tagFont
	tagMaterial
	tagSprite
	tagPos
	tagSpace
	tagIndent
	tagLineIndent
	tagMargin
	tagMarginLeft
	tagMarginRight
	tagAlign
	tagUppercase
	tagAllCaps
	tagLowercase
	tagSmallCaps
	tagCSpace
	tagMSpace
	tagVOffset
	tagLineHeight
	tagNoBreak
	tagNoParse
	tagPage
	tagRotate
	tagScale
	tagWidth
	tagGradient
	tagLink
	tagAction
	tagFontWeight
	tagStyle
	tagBreak
	tagNBSP
	tagZWSP
	tagZWJ
	tagSHY
)

// tagNames is the supported tag vocabulary.
var tagNames = map[tagID]string{
	tagBold:          "b",
	tagItalic:        "i",
	tagUnderline:     "u",
	tagStrikethrough: "s",
	tagMark:          "mark",
	tagSubscript:     "sub",
	tagSuperscript:   "sup",
	tagColor:         "color",
	tagAlpha:         "alpha",
	tagSize:          "size",
	tagFont:          "font",
	tagMaterial:      "material",
	tagSprite:        "sprite",
	tagPos:           "pos",
	tagSpace:         "space",
	tagIndent:        "indent",
	tagLineIndent:    "line-indent",
	tagMargin:        "margin",
	tagMarginLeft:    "margin-left",
	tagMarginRight:   "margin-right",
	tagAlign:         "align",
	tagUppercase:     "uppercase",
	tagAllCaps:       "allcaps",
	tagLowercase:     "lowercase",
	tagSmallCaps:     "smallcaps",
	tagCSpace:        "cspace",
	tagMSpace:        "mspace",
	tagVOffset:       "voffset",
	tagLineHeight:    "line-height",
	tagNoBreak:       "nobr",
	tagNoParse:       "noparse",
	tagPage:          "page",
	tagRotate:        "rotate",
	tagScale:         "scale",
	tagWidth:         "width",
	tagGradient:      "gradient",
	tagLink:          "link",
	tagAction:        "action",
	tagFontWeight:    "font-weight",
	tagStyle:         "style",
	tagBreak:         "br",
	tagNBSP:          "nbsp",
	tagZWSP:          "zwsp",
	tagZWJ:           "zwj",
	tagSHY:           "shy",
}

// Attribute and keyword hashes.
var (
	attrColor    = Hash("color")
	attrMaterial = Hash("material")
	attrName     = Hash("name")
	attrIndex    = Hash("index")
	attrTint     = Hash("tint")

	valueDefault = Hash("default")
)

// tagIDs maps name hashes to tags. Built at init; a collision is a
// programming error.
var tagIDs = buildTagIDs()

func buildTagIDs() map[uint32]tagID {
	m := make(map[uint32]tagID, len(tagNames))
	for id, name := range tagNames {
		h := Hash(name)
		if other, dup := m[h]; dup {
			panic(fmt.Sprintf("markup: tag hash collision between %q and %q", name, tagNames[other]))
		}
		m[h] = id
	}
	return m
}

func (id tagID) String() string {
	if name, ok := tagNames[id]; ok {
		return name
	}
	return "unknown"
}
