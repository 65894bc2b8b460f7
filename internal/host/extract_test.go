package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"url", "https://example.com/path?q=1", "example.com"},
		{"url with www", "http://www.example.com/", "example.com"},
		{"url upper scheme and www", "HTTPS://WWW.Example.COM/x", "example.com"},
		{"url with port", "https://api.example.com:8443/v1", "api.example.com"},
		{"ipv4 alone", "10.1.2.3", "10.1.2.3"},
		{"ipv4 wins over domain", "host example.com at 192.168.0.10 today", "192.168.0.10"},
		{"ipv4 glued to text ignored", "x10.1.2.3y", ""},
		{"domain in prose", "check out sub.Example.org for details", "sub.Example.org"},
		{"www domain", "www.example.net", "example.net"},
		{"trimmed", "   example.io  ", "example.io"},
		{"numeric tld rejected", "version 1.2", ""},
		{"empty", "", ""},
		{"no host", "nothing to see here", ""},
		{"malformed url", "http://[::1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.in))
		})
	}
}

func TestSplit(t *testing.T) {
	h := Split("sub.sub2.example.co.uk")
	assert.Equal(t, "sub.sub2.example.co.uk", h.Full)
	assert.Equal(t, "co", h.ShortLabel)
	assert.Equal(t, "co.uk", h.Apex)

	h = Split("api.example.com")
	assert.Equal(t, "example", h.ShortLabel)
	assert.Equal(t, "example.com", h.Apex)

	h = Split("localhost")
	assert.Equal(t, "localhost", h.ShortLabel)
	assert.Equal(t, "localhost", h.Apex)
}

func TestParse(t *testing.T) {
	h, ok := Parse("https://www.shop.example.com/cart")
	assert.True(t, ok)
	assert.Equal(t, Host{Full: "shop.example.com", ShortLabel: "example", Apex: "example.com"}, h)

	_, ok = Parse("   ")
	assert.False(t, ok)
}
