// Package leads enriches captured leads with company domain information.
package leads

import (
	"strings"

	"golang.org/x/net/publicsuffix"
)

// DomainInfo describes the domain of an email address
type DomainInfo struct {
	// Domain is the full host part of the address
	Domain string `json:"domain"`
	// Registrable is the effective TLD plus one, e.g. example.co.uk
	Registrable string `json:"registrable"`
	// TLD is the public suffix
	TLD string `json:"tld"`
	// FreeMail is true for consumer mailbox providers
	FreeMail bool `json:"freeMail"`
}

// freeMailDomains are consumer mailbox providers that say nothing about the employer
var freeMailDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"outlook.com":    {},
	"hotmail.com":    {},
	"live.com":       {},
	"yahoo.com":      {},
	"icloud.com":     {},
	"me.com":         {},
	"gmx.at":         {},
	"gmx.de":         {},
	"gmx.net":        {},
	"web.de":         {},
	"aon.at":         {},
	"t-online.de":    {},
	"proton.me":      {},
	"protonmail.com": {},
}

// ParseEmail extracts the domain information of an email address
func ParseEmail(email string) (DomainInfo, error) {
	parts := strings.Split(strings.TrimSpace(email), "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return DomainInfo{}, ErrInvalidEmailFormat
	}

	host := strings.TrimSuffix(strings.ToLower(parts[1]), ".")
	if !strings.Contains(host, ".") {
		return DomainInfo{}, ErrInvalidDomainFormat
	}

	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return DomainInfo{}, ErrInvalidDomainFormat
	}

	tld, _ := publicsuffix.PublicSuffix(host)
	_, free := freeMailDomains[etld1]

	return DomainInfo{
		Domain:      host,
		Registrable: etld1,
		TLD:         tld,
		FreeMail:    free,
	}, nil
}

// CompanyDomain returns the registrable domain of a business address, empty
// for free mail providers
func (d DomainInfo) CompanyDomain() string {
	if d.FreeMail {
		return ""
	}

	return d.Registrable
}
