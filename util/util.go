package util

func IsNumber(b byte) bool {
	return b >= '0' && b <= '9'
}

func IsUnderScore(b byte) bool {
	return b == '_'
}

func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func IsLetterOrUnderscore(b byte) bool {
	return IsLetter(b) || IsUnderScore(b)
}

func IsLetterOrUnderscoreOrNumber(b byte) bool {
	return IsLetter(b) || IsUnderScore(b) || IsNumber(b)
}

// IsOperatorStart reports whether b can begin an operator, including the
// halves of && and || which are not operators on their own.
func IsOperatorStart(b byte) bool {
	switch b {
	case '+', '-', '*', '/', '=', '!', '<', '>', '&', '|':
		return true
	}
	return false
}

func IsDelimiter(b byte) bool {
	switch b {
	case '(', ')', '{', '}', ',', ';':
		return true
	}
	return false
}

// IsIdentifier reports whether s is a well formed identifier.
func IsIdentifier(s string) bool {
	if len(s) == 0 || !IsLetterOrUnderscore(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !IsLetterOrUnderscoreOrNumber(s[i]) {
			return false
		}
	}
	return true
}
