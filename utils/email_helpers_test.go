package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "slug@ucsc.edu", NormalizeEmail("  Slug@UCSC.edu "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestPairKeyIsOrderIndependent(t *testing.T) {
	assert.Equal(t, PairKey("a@ucsc.edu", "b@ucsc.edu"), PairKey("b@ucsc.edu", "a@ucsc.edu"))
	assert.NotEqual(t, PairKey("a@ucsc.edu", "b@ucsc.edu"), PairKey("a@ucsc.edu", "c@ucsc.edu"))
}
