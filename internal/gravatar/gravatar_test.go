package gravatar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURL(t *testing.T) {
	got := URL("alice@example.com", 200)
	assert.Equal(t, "https://www.gravatar.com/avatar/c160f8cc69a4f0bf2b0362752353d060?s=200&r=pg&d=mm", got)
}

func TestURLNormalizesCaseAndWhitespace(t *testing.T) {
	assert.Equal(t, URL("alice@example.com", 200), URL("  Alice@Example.COM ", 200))
}
