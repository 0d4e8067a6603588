package csvmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindColumn(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		h, ok := FindColumn([]string{"Company", "Amount"}, []string{"Company"})
		assert.True(t, ok)
		assert.Equal(t, "Company", h)
	})

	t.Run("case insensitive", func(t *testing.T) {
		h, ok := FindColumn([]string{"COMPANY"}, []string{"Company"})
		assert.True(t, ok)
		assert.Equal(t, "COMPANY", h)
	})

	t.Run("whitespace kept in result", func(t *testing.T) {
		h, ok := FindColumn([]string{"  Company "}, []string{"Company"})
		assert.True(t, ok)
		assert.Equal(t, "  Company ", h)
	})

	t.Run("bom stripped for comparison", func(t *testing.T) {
		h, ok := FindColumn([]string{"\ufeffCompany"}, []string{"Company"})
		assert.True(t, ok)
		assert.Equal(t, "\ufeffCompany", h)
	})

	t.Run("alias priority beats header order", func(t *testing.T) {
		headers := []string{"Legal Entity", "Company"}
		h, ok := FindColumn(headers, []string{"Company", "Legal Entity"})
		assert.True(t, ok)
		assert.Equal(t, "Company", h)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := FindColumn([]string{"Foo", "Bar"}, []string{"Company"})
		assert.False(t, ok)
	})
}
