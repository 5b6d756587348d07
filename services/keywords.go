package services

import "strings"

// emergencyKeywords is the fixed trigger list. Matching is plain
// case-insensitive substring search: over-sensitive on purpose, and
// paraphrases are a known miss.
var emergencyKeywords = []string{
	"chest pain",
	"difficulty breathing",
	"trouble breathing",
	"shortness of breath",
	"suicidal",
	"suicide",
	"fainting",
	"severe bleeding",
}

// ContainsEmergencyKeywords reports whether the message mentions any of
// the emergency trigger phrases.
func ContainsEmergencyKeywords(message string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range emergencyKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
