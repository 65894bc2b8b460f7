package inspect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"osint-pivot/internal/models"
)

func TestParseOTXURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want PageRef
		ok   bool
	}{
		{
			name: "hostname with page",
			in:   "https://otx.alienvault.com/api/v1/indicator/hostname/api.example.com/url_list?limit=500&page=3",
			want: PageRef{Kind: models.KindHostname, Host: "api.example.com", Page: 3},
			ok:   true,
		},
		{
			name: "domain default page",
			in:   "https://otx.alienvault.com/api/v1/indicator/domain/example.com/url_list?limit=500",
			want: PageRef{Kind: models.KindDomain, Host: "example.com", Page: 1},
			ok:   true,
		},
		{
			name: "encoded host",
			in:   "https://otx.alienvault.com/api/v1/indicator/domain/ex%41mple.com/url_list",
			want: PageRef{Kind: models.KindDomain, Host: "exAmple.com", Page: 1},
			ok:   true,
		},
		{name: "other origin", in: "https://example.com/api/v1/indicator/domain/example.com/url_list"},
		{name: "other path", in: "https://otx.alienvault.com/api/v1/indicator/domain/example.com/general"},
		{name: "bad page", in: "https://otx.alienvault.com/api/v1/indicator/domain/example.com/url_list?page=x"},
		{name: "garbage", in: "::not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseOTXURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasNext(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantValue bool
		wantFound bool
	}{
		{"json true", `{"url_list": [], "has_next": true, "page_num": 1}`, true, true},
		{"json false", `{"has_next": false}`, false, true},
		{"json without flag", `{"url_list": []}`, false, false},
		{"json non bool flag", `{"has_next": "yes"}`, false, false},
		{"json array", `[{"has_next": false}]`, false, false},
		{"json string", `"\"has_next\": true"`, false, false},
		{"json null", `null`, false, false},
		{"html wrapped json", `<html><head></head><body><pre>{"has_next": false, "limit": 500}</pre></body></html>`, false, true},
		{"truncated json", `{"url_list": [{"url": "x"}], "has_next" : TRUE, `, true, true},
		{"truncated both", `"has_next": true ... "has_next": false`, false, true},
		{"no signal", `rate limited, try again later`, false, false},
		{"empty", ``, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, found := HasNext(tt.body)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, v)
		})
	}
}

func TestPageText(t *testing.T) {
	text, err := PageText(`<html><body><p>hello</p> <p>world</p></body></html>`)
	assert.NoError(t, err)
	assert.Equal(t, "hello world", text)

	text, err = PageText("  plain  ")
	assert.NoError(t, err)
	assert.Equal(t, "plain", text)
}
