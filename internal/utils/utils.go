package utils

import "regexp"

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsEmailValid does a cheap syntactic check; deliverability is proven by the
// verification mail, not here.
func IsEmailValid(e string) bool {
	return emailRe.MatchString(e)
}

// IsPasswordValid enforces password policy (≥8 chars, ≥1 special char)
func IsPasswordValid(p string) bool {
	if len(p) < 8 {
		return false
	}
	// regex: at least one non-alphanumeric character
	re := regexp.MustCompile(`[!@#\$%\^&\*\(\)\-_=\+\[\]\{\}\\|;:'",<>\./\?]`)
	return re.MatchString(p)
}

// IsPseudoValid keeps pseudos URL-safe: 3-30 chars of letters, digits,
// underscore or dash.
func IsPseudoValid(p string) bool {
	return regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`).MatchString(p)
}
