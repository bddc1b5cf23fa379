package whois_tools

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected Status
	}{
		{
			name:     "no match marker",
			response: "No match for domain \"EXAMPLE12345.COM\".\n>>> Last update of whois database <<<",
			expected: StatusFree,
		},
		{
			name:     "not found marker",
			response: "Domain not found.",
			expected: StatusFree,
		},
		{
			name:     "status available marker",
			response: "domain: example.de\nstatus: available\n",
			expected: StatusFree,
		},
		{
			name:     "russian not found marker",
			response: "Домен не найден\n",
			expected: StatusFree,
		},
		{
			name:     "domain name field",
			response: "Domain Name: EXAMPLE.COM\nRegistry Domain ID: 2336799_DOMAIN_COM-VRSN\n",
			expected: StatusRegistered,
		},
		{
			name:     "active status field",
			response: "status: ACTIVE\nnserver: ns1.example.net\n",
			expected: StatusRegistered,
		},
		{
			name:     "client status field",
			response: "Status: clientTransferProhibited\n",
			expected: StatusRegistered,
		},
		{
			name:     "registrant metadata only",
			response: "some header\nRegistrant Organization: Example LLC\n",
			expected: StatusRegistered,
		},
		{
			name:     "created field",
			response: "domain: example.ru\ncreated: 1997-03-20T00:00:00Z\n",
			expected: StatusRegistered,
		},
		{
			name:     "no recognizable content",
			response: "%% This is a rate limited response, try again later\n",
			expected: StatusUnknown,
		},
		{
			name:     "empty response",
			response: "",
			expected: StatusUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.response)
			if result != tt.expected {
				t.Errorf("Classify(%q) = %q; want %q", tt.response, result, tt.expected)
			}
		})
	}
}

// Some registries embed the word "registered" in legal boilerplate even when
// the queried domain is free, so negative evidence has to win.
func TestClassifyAvailabilityMarkersTakePriority(t *testing.T) {
	response := "No match for domain \"FOO.COM\".\n" +
		"NOTICE: Access to this data is provided to determine whether a domain is registered.\n" +
		"Registrant data may be subject to restrictions.\n"

	if result := Classify(response); result != StatusFree {
		t.Errorf("Classify = %q; want %q when an availability marker is present", result, StatusFree)
	}
}

func TestClassifyDomainNameFieldMustStartLine(t *testing.T) {
	// "domain name:" inside a sentence is not the registry field.
	response := "The domain name: syntax is described elsewhere\n"
	if result := Classify(response); result != StatusUnknown {
		t.Errorf("Classify = %q; want %q for mid-line mention", result, StatusUnknown)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	response := "Domain Name: EXAMPLE.COM\n"
	first := Classify(response)
	for i := 0; i < 10; i++ {
		if got := Classify(response); got != first {
			t.Fatalf("Classify is not deterministic: %q then %q", first, got)
		}
	}
}
