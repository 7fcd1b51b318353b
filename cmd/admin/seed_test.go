package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinTemplates(t *testing.T) {
	templates := builtinTemplates()
	assert.Len(t, templates, 6)

	seen := map[string]bool{}
	for i, tpl := range templates {
		assert.False(t, seen[tpl.Slug], "duplicate slug %s", tpl.Slug)
		seen[tpl.Slug] = true
		assert.Equal(t, i+1, tpl.SortOrder)
		assert.True(t, tpl.IsActive)
		assert.NotEmpty(t, tpl.PreviewData.Data().Personal.Name)
		assert.Equal(t, "/templates/"+tpl.Slug+".svg", tpl.Thumbnail)
	}
	assert.Equal(t, "#06b6d4", templates[4].Styles.Data().AccentColor)
}
