package rules_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vc "github.com/reoring/valchain"
	"github.com/reoring/valchain/i18n"
	"github.com/reoring/valchain/rules"
)

func TestNumeric(t *testing.T) {
	assert.Empty(t, rules.Min(18).Errors(18))
	assert.Equal(t, []string{"must be larger than or equal to 18"}, rules.Min(18).Errors(17))
	assert.Equal(t, []string{"must be less than or equal to 1.5"}, rules.Max(1.5).Errors(2.0))
	assert.Equal(t, []string{"must be between 1 and 3"}, rules.Between(1, 3).Errors(0))
	assert.Empty(t, rules.Between(uint8(1), 3).Errors(3))
	assert.Equal(t, []string{"too young"}, rules.Min(18, "too young").Errors(1))
}

func TestLengths(t *testing.T) {
	assert.Empty(t, rules.MinLen(2).Errors("日本"))
	assert.Equal(t, []string{"length must be larger than or equal to 3"}, rules.MinLen(3).Errors("日本"))
	assert.Equal(t, []string{"length must be less than or equal to 1"}, rules.MaxLen(1).Errors("ab"))
	assert.Equal(t, []string{"size must be between 1 and 2"}, rules.Size(1, 2).Errors(""))

	assert.Empty(t, rules.SizeSlice[int](1, 2).Errors([]int{1}))
	assert.NotEmpty(t, rules.SizeSlice[int](1, 2).Errors(nil))
	assert.NotEmpty(t, rules.SizeMap[string, int](0, 1).Errors(map[string]int{"a": 1, "b": 2}))
	assert.NotEmpty(t, rules.MinItems[string](1).Errors(nil))
	assert.NotEmpty(t, rules.MaxItems[string](1).Errors([]string{"a", "b"}))
}

func TestStrings(t *testing.T) {
	assert.Equal(t, []string{"may not be empty"}, rules.NotEmpty().Errors(""))
	assert.Empty(t, rules.NotEmpty().Errors(" "))
	assert.Equal(t, []string{"may not be blank"}, rules.NotBlank().Errors(" \t"))

	re := regexp.MustCompile(`^[a-z]+$`)
	assert.Empty(t, rules.Pattern(re).Errors("abc"))
	assert.Equal(t, []string{"must match ^[a-z]+$"}, rules.Pattern(re).Errors("ABC"))

	assert.Empty(t, rules.OneOf([]string{"a", "b"}).Errors("a"))
	assert.Equal(t, []string{"must be one of 1, 2"}, rules.OneOf([]int{1, 2}).Errors(3))
}

func TestOneOf_CopiesAllowed(t *testing.T) {
	allowed := []string{"a"}
	r := rules.OneOf(allowed)
	allowed[0] = "z"
	assert.Empty(t, r.Errors("a"))
}

func TestNullness(t *testing.T) {
	var p *int
	assert.Equal(t, []string{"may not be null"}, rules.NotNull(p))
	assert.Equal(t, []string{"custom"}, rules.NotNull(p, "custom"))
	assert.Nil(t, rules.NotNull(3))

	assert.Nil(t, rules.IsNull(p))
	assert.Equal(t, []string{"must be null"}, rules.IsNull(3))
}

func TestCombinators(t *testing.T) {
	and := rules.And(rules.Min(10), rules.Max(20), rules.Between(0, 5))
	assert.Equal(t, []string{"must be less than or equal to 20", "must be between 0 and 5"}, and(30))

	or := rules.Or(rules.Max(5), rules.Min(100))
	assert.Nil(t, or(3))
	assert.Nil(t, or(200))
	assert.Equal(t, []string{"must be less than or equal to 5"}, or(50))

	when := rules.When(func(s string) bool { return s != "" }, rules.MinLen(3))
	assert.Nil(t, when(""))
	assert.NotEmpty(t, when("ab"))
}

func TestRules_InValidatorChain(t *testing.T) {
	type signup struct {
		Name string
		Age  int
		Tags []string
	}
	name := vc.Field("name", func(s signup) string { return s.Name })
	age := vc.Field("age", func(s signup) int { return s.Age })
	tags := vc.Field("tags", func(s signup) []string { return s.Tags })

	vs := vc.Of(signup{Name: " ", Age: 12, Tags: []string{"ok", ""}}).
		ValidateField(name.Satisfies(rules.NotBlank(), rules.MaxLen(64))).
		ValidateField(age.Errors(rules.And(rules.Min(18)))).
		ValidateList(vc.Each(tags, func(c *vc.Constraints[string]) { c.Use(rules.NotEmpty()) })).
		Violations()

	require.Len(t, vs, 3)
	assert.Equal(t, "name[may not be blank]", vs[0].String())
	assert.Equal(t, "age[must be larger than or equal to 18]", vs[1].String())
	assert.Equal(t, "tags[may not be empty]", vs[2].String())
}

func TestMessages_FollowLanguage(t *testing.T) {
	i18n.SetLanguage("ja")
	t.Cleanup(func() { i18n.SetLanguage("en") })

	assert.Equal(t, []string{"18 以上である必要があります"}, rules.Min(18).Errors(1))
	assert.Equal(t, []string{"必須です"}, rules.NotNull[*int](nil))
}
