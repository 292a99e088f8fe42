package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for form fields.
const (
	maxTitleLen    = 256
	maxBodyLen     = 100_000
	maxCommentLen  = 10_000
	maxUsernameLen = 150
	maxNameLen     = 150
	maxBioLen      = 5_000
	minPasswordLen = 8
)

// validatePost checks post form inputs and returns the first error found.
func validatePost(title, text string) string {
	if strings.TrimSpace(title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 256 characters)."
	}
	if strings.TrimSpace(text) == "" {
		return "Text is required."
	}
	if utf8.RuneCountInString(text) > maxBodyLen {
		return "Text is too long (max 100,000 characters)."
	}
	return ""
}

// validateComment checks a comment body.
func validateComment(text string) string {
	if strings.TrimSpace(text) == "" {
		return "Comment text is required."
	}
	if utf8.RuneCountInString(text) > maxCommentLen {
		return "Comment is too long (max 10,000 characters)."
	}
	return ""
}

// validateUsername checks a registration username. The allowed characters
// match the usual letters, digits and @/./+/-/_ convention.
func validateUsername(username string) string {
	if username == "" {
		return "Username is required."
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "Username is too long (max 150 characters)."
	}
	for _, r := range username {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '@', r == '.', r == '+', r == '-', r == '_':
		default:
			return "Username may contain only letters, digits and @/./+/-/_ characters."
		}
	}
	return ""
}

// validateEmail does a minimal shape check; real validation happens when
// mail bounces.
func validateEmail(email string) string {
	if email == "" {
		return "Email is required."
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return "Enter a valid email address."
	}
	return ""
}

// validatePassword checks password strength and confirmation.
func validatePassword(password, confirm string) string {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	if password != confirm {
		return "Passwords do not match."
	}
	return ""
}

// validateProfile checks the editable profile fields.
func validateProfile(firstName, lastName, email, bio string) string {
	if utf8.RuneCountInString(firstName) > maxNameLen {
		return "First name is too long (max 150 characters)."
	}
	if utf8.RuneCountInString(lastName) > maxNameLen {
		return "Last name is too long (max 150 characters)."
	}
	if msg := validateEmail(email); msg != "" {
		return msg
	}
	if utf8.RuneCountInString(bio) > maxBioLen {
		return "Bio is too long (max 5,000 characters)."
	}
	return ""
}
