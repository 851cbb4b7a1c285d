package valchain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vc "github.com/reoring/valchain"
)

func sampleTree() []vc.Violation {
	return []vc.Violation{
		vc.FromErrors("age", []string{"must be adult"}),
		vc.FromViolations("address", []vc.Violation{
			vc.FromErrors("city", []string{"may not be null"}),
			vc.FromViolations("geo", []vc.Violation{
				vc.FromErrors("lat", []string{"out of range", "not a number"}),
			}),
		}),
		vc.FromViolations("items", []vc.Violation{
			vc.FromIndexedErrors("items", 2, []string{"must be odd"}),
		}),
	}
}

func TestViolation_Shape(t *testing.T) {
	leaf := vc.FromErrors("age", []string{"bad"})
	assert.True(t, leaf.IsLeaf())
	assert.False(t, leaf.IsBranch())
	_, indexed := leaf.Index()
	assert.False(t, indexed)
	assert.Nil(t, leaf.Violations())

	branch := vc.FromViolations("address", []vc.Violation{leaf})
	assert.True(t, branch.IsBranch())
	assert.False(t, branch.IsLeaf())
	assert.Nil(t, branch.Errors())

	idx := vc.FromIndexedViolations("items", 4, []vc.Violation{leaf})
	i, ok := idx.Index()
	assert.True(t, ok)
	assert.Equal(t, 4, i)
	assert.Equal(t, "items#4{age[bad]}", idx.String())
}

func TestViolation_EmptyInputIsZero(t *testing.T) {
	assert.True(t, vc.FromErrors("x", nil).IsZero())
	assert.True(t, vc.FromViolations("x", []vc.Violation{}).IsZero())
	assert.True(t, vc.FromIndexedErrors("x", 3, nil).IsZero())
}

func TestViolation_EmptyFieldPanics(t *testing.T) {
	leaf := vc.FromErrors("age", []string{"bad"})

	assert.Panics(t, func() { vc.FromErrors("", []string{"x"}) })
	assert.Panics(t, func() { vc.FromViolations("", []vc.Violation{leaf}) })
	assert.Panics(t, func() { vc.FromIndexedErrors("", 0, []string{"x"}) })
	assert.NotPanics(t, func() { vc.FromErrors("", nil) })
}

func TestViolation_Immutable(t *testing.T) {
	msgs := []string{"a"}
	v := vc.FromErrors("f", msgs)
	msgs[0] = "changed"
	assert.Equal(t, []string{"a"}, v.Errors())

	got := v.Errors()
	got[0] = "changed"
	assert.Equal(t, []string{"a"}, v.Errors())
}

func TestViolation_Equal(t *testing.T) {
	a := sampleTree()
	b := sampleTree()
	assert.True(t, vc.EqualViolations(a, b))

	b[1] = vc.FromViolations("address", []vc.Violation{vc.FromErrors("city", []string{"other"})})
	assert.False(t, vc.EqualViolations(a, b))

	assert.False(t, vc.FromErrors("a", []string{"x"}).Equal(vc.FromIndexedErrors("a", 0, []string{"x"})))
	assert.False(t, vc.FromErrors("a", []string{"x"}).Equal(vc.FromViolations("a", []vc.Violation{vc.FromErrors("a", []string{"x"})})))
}

func TestWalk(t *testing.T) {
	var visited []string
	vc.Walk(sampleTree(), func(parents []vc.Violation, v vc.Violation) bool {
		path := ""
		for _, p := range parents {
			path += p.Field() + "."
		}
		visited = append(visited, path+v.Field())
		return v.Field() != "geo"
	})

	assert.Equal(t, []string{"age", "address", "address.city", "address.geo", "items", "items.items"}, visited)
}

func TestFlatten(t *testing.T) {
	iss := vc.Flatten(sampleTree())

	require.Len(t, iss, 5)
	assert.Equal(t, vc.Issues{
		{Path: "/age", Message: "must be adult"},
		{Path: "/address/city", Message: "may not be null"},
		{Path: "/address/geo/lat", Message: "out of range"},
		{Path: "/address/geo/lat", Message: "not a number"},
		{Path: "/items/2", Message: "must be odd"},
	}, iss)
	assert.Equal(t, []string{"/age", "/address/city", "/address/geo/lat", "/items/2"}, iss.Paths())
	assert.Equal(t, []string{"out of range", "not a number"}, iss.Get("/address/geo/lat"))
	assert.Equal(t, "/age: must be adult; /address/city: may not be null; /address/geo/lat: out of range; ... (total 5)", iss.Error())
}

func TestFlatten_EscapesPointerSegments(t *testing.T) {
	iss := vc.Flatten([]vc.Violation{vc.FromErrors("a/b~c", []string{"bad"})})
	assert.Equal(t, "/a~1b~0c", iss[0].Path)
}

func TestPathRef(t *testing.T) {
	assert.Equal(t, "/", vc.Root().Pointer())
	assert.Equal(t, "/items/0/name", vc.Root().Field("items").Index(0).Field("name").Pointer())
	assert.Equal(t, "/a/b", vc.At("/a/b").Pointer())
	assert.Equal(t, "/", vc.At("").Pointer())
	assert.Equal(t, vc.Issue{Path: "/a/b/c", Message: "m"}, vc.At("/a/b").Field("c").Issue("m"))
}

func TestValidationError(t *testing.T) {
	err := &vc.ValidationError{Violations: sampleTree()}
	assert.Equal(t, "validation failed: age[must be adult]; address{city[may not be null], geo{lat[out of range; not a number]}}; items{items#2[must be odd]}", err.Error())
	assert.ErrorIs(t, err, vc.ErrValidation)
	assert.Len(t, err.Issues(), 5)

	many := &vc.ValidationError{Violations: append(sampleTree(), vc.FromErrors("x", []string{"y"}))}
	assert.Contains(t, many.Error(), "; ... (total 4)")

	_, ok := vc.AsValidationError(nil)
	assert.False(t, ok)
}
