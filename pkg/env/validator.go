package env

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	ethAddressPattern = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")
	privateKeyPattern = regexp.MustCompile("^[0-9a-fA-F]{64}$")
)

func IsEmpty(value string) bool {
	return value == ""
}

// Ethereum Address
func IsValidEthAddress(address string) bool {
	return ethAddressPattern.MatchString(address)
}

// ECDSA private key, hex, with or without 0x
func IsValidPrivateKey(privateKey string) bool {
	return privateKeyPattern.MatchString(strings.TrimPrefix(privateKey, "0x"))
}

// URL with http or https scheme and a host
func IsValidURL(rawURL string) bool {
	if rawURL == "" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host != ""
}
