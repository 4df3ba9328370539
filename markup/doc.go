// Package markup implements the inline rich-text tag interpreter.
//
// Tags have the form
//
//	<name[=value][ attr=value ...]>   </name>
//
// Names and attribute names are dispatched through a case-insensitive
// rolling hash ([Hash]) computed while the tag is scanned, so recognizing
// a tag costs one map lookup and no string comparison. A tag body that is
// exactly a hex color (<#RGB>, <#RRGGBBAA>, ...) is an implicit color tag.
//
// Every opening tag pushes one frame on the stack(s) it affects in
// [InterpreterState]; the matching closing tag pops it. Closing tags with
// nothing to pop are consumed without effect. Unknown tags, and tags
// naming a font, material, sprite or gradient the [fontasset.Resolver]
// cannot supply, are not consumed: the caller lays them out as literal
// text.
//
// Before interpretation, [Expand] rewrites style references
// (<style=Name>), substitution tags (<br>, <nbsp>, <zwsp>, <zwj>, <shy>)
// and optional backslash escapes, keeping the source index of every
// resulting rune.
package markup
