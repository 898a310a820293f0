package postscript

// pendingAccent tracks an accent mark waiting for the letter it
// modifies. Octal escapes set it; the next literal character consumes
// it, accented or not.
type pendingAccent int

const (
	accentNone pendingAccent = iota
	accentUmlaut
	accentGrave
	accentAcute
)

// Escape values that set a pending accent instead of emitting output.
const (
	codeGrave  = 18
	codeAcute  = 19
	codeUmlaut = 127
)

// ligatures maps the value of a multi-digit octal escape to its
// replacement text. The slots follow the TeX text font layout found in
// dvips output; values not present here emit their literal character
// code.
var ligatures = map[int]string{
	0:  "-", // hyphen substitute
	3:  "*",
	11: "ff",
	12: "fi",
	13: "fl",
	14: "ffi",
	15: "ffl",
	21: "*",
	23: "v",
	24: "Σ",
	26: "nae",
	27: "oe",
	28: "fi",
}

// umlautAccents maps vowels to their dieresis forms.
var umlautAccents = map[rune]rune{
	'A': 'Ä', 'a': 'ä',
	'E': 'Ë', 'e': 'ë',
	'I': 'Ï', 'i': 'ï',
	'O': 'Ö', 'o': 'ö',
	'U': 'Ü', 'u': 'ü',
}

// graveAccents maps vowels to their grave forms.
var graveAccents = map[rune]rune{
	'A': 'À', 'a': 'à',
	'E': 'È', 'e': 'è',
	'I': 'Ì', 'i': 'ì',
	'O': 'Ò', 'o': 'ò',
	'U': 'Ù', 'u': 'ù',
}

// acuteAccents maps vowels to their acute forms.
var acuteAccents = map[rune]rune{
	'A': 'Á', 'a': 'á',
	'E': 'É', 'e': 'é',
	'I': 'Í', 'i': 'í',
	'O': 'Ó', 'o': 'ó',
	'U': 'Ú', 'u': 'ú',
}
