package ucd

// This file stands in for the table cmd/ucdgen (run by the go:generate
// directive in api.go) would produce from the Unicode Character Database text
// files (PropertyValueAliases.txt, UnicodeData.txt, Scripts.txt,
// PropList.txt). Those files are fetched from unicode.org at generation time
// and are not vendored here, so this hand-authored table covers a reduced
// subset: the ASCII and Latin-1 Supplement ranges for the General_Category
// values Lu, Ll, Nd and Zs, plus three scripts (Latin, Greek, Cyrillic) given
// as whole Basic Multilingual Plane blocks, which also take in the few Common,
// Inherited and Coptic code points inside those blocks. Lt, Lm, Lo and the
// composite values L and N are listed in generalCategoryValueAbbs but have no
// ranges here, so looking them up fails. Regenerate this file with real UCD
// data before relying on properties or scripts outside that coverage.

var generalCategoryValueAbbs = map[string]string{
	"lu": "lu", "uppercaseletter": "lu",
	"ll": "ll", "lowercaseletter": "ll",
	"lt": "lt", "titlecaseletter": "lt",
	"lm": "lm", "modifierletter": "lm",
	"lo": "lo", "otherletter": "lo",
	"nd": "nd", "decimalnumber": "nd",
	"zs": "zs", "spaceseparator": "zs",
	"l": "l", "letter": "l",
	"n": "n", "number": "n",
}

const generalCategoryDefaultValue = "cn"

var generalCategoryDefaultRange = &CodePointRange{From: 0, To: 0x10FFFF}

var generalCategoryCodePoints = map[string][]*CodePointRange{
	"lu": {
		{From: 'A', To: 'Z'},
		{From: 0x00C0, To: 0x00D6},
		{From: 0x00D8, To: 0x00DE},
	},
	"ll": {
		{From: 'a', To: 'z'},
		{From: 0x00B5, To: 0x00B5},
		{From: 0x00DF, To: 0x00F6},
		{From: 0x00F8, To: 0x00FF},
	},
	"nd": {
		{From: '0', To: '9'},
	},
	"zs": {
		{From: 0x0020, To: 0x0020},
		{From: 0x00A0, To: 0x00A0},
	},
}

var scriptValueAbbs = map[string]string{
	"latn": "latn", "latin": "latn",
	"grek": "grek", "greek": "grek",
	"cyrl": "cyrl", "cyrillic": "cyrl",
}

const scriptDefaultValue = "zzzz"

var scriptDefaultRange = &CodePointRange{From: 0, To: 0x10FFFF}

var scriptCodepoints = map[string][]*CodePointRange{
	"latn": {
		{From: 'A', To: 'Z'},
		{From: 'a', To: 'z'},
		{From: 0x00C0, To: 0x024F},
	},
	"grek": {
		{From: 0x0370, To: 0x03FF},
	},
	"cyrl": {
		{From: 0x0400, To: 0x04FF},
	},
}

var otherAlphabeticCodePoints = []*CodePointRange{
	{From: 0x00AA, To: 0x00AA},
	{From: 0x00B5, To: 0x00B5},
	{From: 0x00BA, To: 0x00BA},
}

var otherLowercaseCodePoints = []*CodePointRange{
	{From: 0x00AA, To: 0x00AA},
	{From: 0x00BA, To: 0x00BA},
}

var otherUppercaseCodePoints []*CodePointRange

var whiteSpaceCodePoints = []*CodePointRange{
	{From: 0x0009, To: 0x000D},
	{From: 0x0020, To: 0x0020},
	{From: 0x0085, To: 0x0085},
	{From: 0x00A0, To: 0x00A0},
}
