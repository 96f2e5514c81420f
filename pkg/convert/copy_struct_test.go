package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inner struct {
	Name string `json:"name"`
}

type outer struct {
	Title  string   `json:"title"`
	Tags   []string `json:"tags"`
	Inner  *inner   `json:"inner"`
	Items  []inner  `json:"items"`
	Active bool     `json:"active"`
}

func TestDeepCopy(t *testing.T) {
	src := &outer{
		Title: "a",
		Tags:  []string{"x"},
		Inner: &inner{Name: "n"},
		Items: []inner{{Name: "i"}},
	}

	dst, err := DeepCopy(src)
	require.NoError(t, err)
	assert.Equal(t, src, dst)

	src.Tags[0] = "changed"
	src.Inner.Name = "changed"
	src.Items[0].Name = "changed"

	assert.Equal(t, "x", dst.Tags[0])
	assert.Equal(t, "n", dst.Inner.Name)
	assert.Equal(t, "i", dst.Items[0].Name)
}

func TestDeepCopy_Nil(t *testing.T) {
	dst, err := DeepCopy[outer](nil)
	require.NoError(t, err)
	assert.Nil(t, dst)
}

func TestStructToMapAndBack(t *testing.T) {
	m, err := StructToMap(outer{Title: "a", Active: true})
	require.NoError(t, err)
	assert.Equal(t, "a", m["title"])
	assert.Equal(t, true, m["active"])

	dst := outer{Title: "keep", Tags: []string{"keep"}}
	require.NoError(t, MapToStruct(map[string]any{"active": true}, &dst))
	assert.Equal(t, "keep", dst.Title)
	assert.Equal(t, []string{"keep"}, dst.Tags)
	assert.True(t, dst.Active)
}
