package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImageURL(t *testing.T) {
	cases := map[string]string{
		"":                            "",
		"   ":                         "",
		"tee.png":                     "/images/tee.png",
		" tee.png ":                   "/images/tee.png",
		"/static/tee.png":             "/static/tee.png",
		"https://cdn.example/tee.png": "https://cdn.example/tee.png",
		"http://cdn.example/tee.png":  "http://cdn.example/tee.png",
	}

	for in, want := range cases {
		assert.Equal(t, want, NormalizeImageURL(in), "input %q", in)
	}
}
