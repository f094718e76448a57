package ident_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/viant/qwikfold/ident"
)

func TestIdentityEquality(t *testing.T) {
	a := ident.New("count", 1)
	b := ident.New("count", 1)
	c := ident.New("count", 2)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestIdentityOrdering(t *testing.T) {
	idents := []ident.Identity{
		ident.New("b", 1),
		ident.New("a", 2),
		ident.New("a", 1),
	}
	sort.Slice(idents, func(i, j int) bool { return idents[i].Less(idents[j]) })

	assert.Equal(t, []ident.Identity{
		ident.New("a", 1),
		ident.New("a", 2),
		ident.New("b", 1),
	}, idents)
}
