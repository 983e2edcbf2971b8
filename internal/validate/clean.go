package validate

import "strings"

// Default denylist, matched case-insensitively as substrings. Deployments
// with stricter policies inject their own CleanFunc.
var denylist = []string{
	"fuck",
	"shit",
	"bitch",
	"bastard",
	"asshole",
}

func DefaultClean(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range denylist {
		if strings.Contains(lowered, term) {
			return false
		}
	}
	return true
}
