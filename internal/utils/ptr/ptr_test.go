package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	v := 0
	p := To(v)
	assert.Equal(t, 0, *p)
	assert.NotSame(t, &v, p)

	assert.True(t, *To(true))
	assert.Equal(t, "x", *To("x"))
}
