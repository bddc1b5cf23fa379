package whois_tools

import (
	"regexp"
	"strings"
)

// Status is the interpreted registration state of a domain.
type Status string

const (
	StatusRegistered Status = "registered"
	StatusFree       Status = "free"
	StatusUnknown    Status = "unknown"
	StatusInvalid    Status = "invalid"
	StatusError      Status = "error"
)

// availableMarkers are substrings that indicate a domain is not registered.
// Matched against the lowercased response.
var availableMarkers = []string{
	"no match", "not found", "no entries found", "no data found",
	"status: available", "status: free", "domain not found", "no object found",
	"no such domain", "not registered", "object does not exist",
	// Non-English registries (ru, su and friends).
	"не найден", "свободен", "нет данных",
}

var (
	reDomainName   = regexp.MustCompile(`(?im)^domain name:\s*\S+`)
	reActiveStatus = regexp.MustCompile(`(?im)^status:\s*(ok|client|server|active|registered)`)
	reRegistration = regexp.MustCompile(`(?i)registrant|registry expiry date|created:`)
)

// classifyRule is one step of the classification chain: a named predicate and
// the status it yields when it matches.
type classifyRule struct {
	name    string
	matches func(raw, lower string) bool
	status  Status
}

// classifyRules is evaluated in order with first-match-wins semantics.
// Availability markers come first on purpose: several registries mention
// "registered" inside legal boilerplate even for free domains, so negative
// evidence has to win over the looser positive heuristics below it.
var classifyRules = []classifyRule{
	{
		name: "availability marker",
		matches: func(_, lower string) bool {
			for _, marker := range availableMarkers {
				if strings.Contains(lower, marker) {
					return true
				}
			}
			return false
		},
		status: StatusFree,
	},
	{
		name: "domain name field",
		matches: func(raw, _ string) bool {
			return reDomainName.MatchString(raw)
		},
		status: StatusRegistered,
	},
	{
		name: "active status field",
		matches: func(raw, _ string) bool {
			return reActiveStatus.MatchString(raw)
		},
		status: StatusRegistered,
	},
	{
		name: "registration metadata",
		matches: func(raw, _ string) bool {
			return reRegistration.MatchString(raw)
		},
		status: StatusRegistered,
	},
}

// Classify function is used to interpret a raw WHOIS response and decide
// whether the domain is registered, free, or undeterminable. It is a pure
// function of the response text: identical input always yields the same
// status.
func Classify(raw string) Status {
	lower := strings.ToLower(raw)
	for _, rule := range classifyRules {
		if rule.matches(raw, lower) {
			return rule.status
		}
	}
	return StatusUnknown
}
