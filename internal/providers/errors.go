package providers

import "strings"

// botChallengeMarkers are substrings of the upstream error text that signal
// a sign-in/verification challenge. The extractor exposes no structured code
// for this condition, so classification is by message matching; fragile to
// upstream wording changes, but the only signal available.
var botChallengeMarkers = []string{
	"sign in to confirm",
	"not a bot",
	"confirm your identity",
	"captcha",
}

// IsBotChallenge reports whether an extraction error is a bot-detection
// challenge, which callers answer with one degraded retry instead of
// failing outright.
func IsBotChallenge(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range botChallengeMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
