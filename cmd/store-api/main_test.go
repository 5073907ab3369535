package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { category = "" })
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCatalogCommand(t *testing.T) {
	out := run(t, "catalog", "--category", "Audio")
	assert.Contains(t, out, "Wireless Headphones")
	assert.Contains(t, out, "$89.50")
	assert.NotContains(t, out, "4K Monitor")
}

func TestCouponsCommand(t *testing.T) {
	out := run(t, "coupons")
	assert.Contains(t, out, "FREESHIP")
	assert.Contains(t, out, "WELCOME10")
	assert.Contains(t, out, "percentage")
}
