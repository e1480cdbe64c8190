package migrations

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSource_Versions(t *testing.T) {
	src, err := newSource()
	assert.NoError(t, err)
	defer src.Close()

	first, err := src.First()
	assert.NoError(t, err)
	assert.Equal(t, uint(1), first)

	next, err := src.Next(first)
	assert.NoError(t, err)
	assert.Equal(t, uint(2), next)

	up, identifier, err := src.ReadUp(next)
	assert.NoError(t, err)
	assert.Equal(t, "create_orders", identifier)
	body, err := io.ReadAll(up)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS order_items")
	_ = up.Close()

	last, err := src.Next(next)
	assert.NoError(t, err)
	assert.Equal(t, uint(3), last)

	up, identifier, err = src.ReadUp(last)
	assert.NoError(t, err)
	assert.Equal(t, "widen_columns", identifier)
	body, err = io.ReadAll(up)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "MODIFY margin DECIMAL(24, 4)")
	_ = up.Close()
}
