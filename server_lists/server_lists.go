// Package server_lists carries the static seed of well-known TLD to WHOIS
// server mappings. Zones missing here are resolved dynamically through the
// IANA root directory and cached for the rest of the run.
package server_lists

// TLDToWhoisServer maps a top-level zone to its authoritative WHOIS server.
// The list is intentionally short: only high-traffic zones whose servers are
// stable enough to hardcode. Everything else goes through a referral lookup.
var TLDToWhoisServer = map[string]string{
	"com":      "whois.verisign-grs.com",
	"net":      "whois.verisign-grs.com",
	"org":      "whois.publicinterestregistry.org",
	"info":     "whois.nic.info",
	"biz":      "whois.nic.biz",
	"io":       "whois.nic.io",
	"dev":      "whois.nic.google",
	"app":      "whois.nic.google",
	"ru":       "whois.tcinet.ru",
	"su":       "whois.tcinet.ru",
	"xn--p1ai": "whois.tcinet.ru",
	"de":       "whois.denic.de",
	"uk":       "whois.nic.uk",
	"fr":       "whois.nic.fr",
	"nl":       "whois.domain-registry.nl",
	"eu":       "whois.eu",
	"cn":       "whois.cnnic.cn",
	"jp":       "whois.jprs.jp",
	"br":       "whois.registro.br",
	"co":       "whois.nic.co",
	"me":       "whois.nic.me",
	"xyz":      "whois.nic.xyz",
}
