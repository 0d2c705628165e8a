package web_test

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionlab/core/sanitizer"
	"github.com/dmitrymomot/sessionlab/core/validator"
	"github.com/dmitrymomot/sessionlab/internal/web"
)

func intPtr(n int) *int { return &n }

func TestItemForms_TotalPrice(t *testing.T) {
	t.Parallel()

	assert.NoError(t, web.ItemSaveForm{Price: intPtr(1000), Quantity: intPtr(10)}.Validate())
	assert.NoError(t, web.ItemSaveForm{Price: nil, Quantity: intPtr(1)}.Validate(), "incomplete input is left to field rules")

	err := web.ItemUpdateForm{Price: intPtr(1000), Quantity: intPtr(9)}.Validate()
	require.Error(t, err)

	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Empty(t, errs[0].Field)
	assert.Equal(t, "totalPriceMin", errs[0].TranslationKey)
	assert.Equal(t, 9000, errs[0].TranslationValues["current"])
	assert.Equal(t, web.MinTotalPrice, errs[0].TranslationValues["min"])
}

func TestItemForms_FieldRules(t *testing.T) {
	t.Parallel()

	errs := validator.ExtractValidationErrors(validator.ValidateStruct(&web.ItemSaveForm{
		Name:     "",
		Price:    intPtr(999),
		Quantity: intPtr(10000),
	}))
	assert.Equal(t, []string{"field is required"}, errs.Get("Name"))
	assert.Equal(t, []string{"must be between 1000 and 1000000"}, errs.Get("Price"))
	assert.Equal(t, []string{"must be at most 9999"}, errs.Get("Quantity"))

	assert.NoError(t, validator.ValidateStruct(&web.ItemUpdateForm{
		Name:     "x",
		Price:    intPtr(1000),
		Quantity: intPtr(10000),
	}))
}

func TestItemForms_TotalPriceOverflow(t *testing.T) {
	t.Parallel()

	assert.NoError(t, web.ItemUpdateForm{Price: intPtr(1000000), Quantity: intPtr(math.MaxInt / 1000)}.Validate(),
		"a product past the int range is above the minimum")

	err := web.ItemUpdateForm{Price: intPtr(1000000), Quantity: intPtr(math.MinInt / 1000)}.Validate()
	errs := validator.ExtractValidationErrors(err)
	require.Len(t, errs, 1)
	assert.Equal(t, "totalPriceMin", errs[0].TranslationKey)
}

func TestMemberForm_PasswordBytes(t *testing.T) {
	t.Parallel()

	ok := web.MemberForm{LoginID: "kim", Name: "Kim", Password: strings.Repeat("p", 72)}
	assert.NoError(t, validator.ValidateStruct(&ok))

	tests := map[string]string{
		"ascii":     strings.Repeat("p", 73),
		"multibyte": strings.Repeat("é", 40),
	}
	for name, pw := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			form := web.MemberForm{LoginID: "kim", Name: "Kim", Password: pw}
			errs := validator.ExtractValidationErrors(validator.ValidateStruct(&form))
			assert.Equal(t, []string{"must be at most 72 bytes long"}, errs.Get("Password"))
		})
	}
}

func TestForms_StripMarkup(t *testing.T) {
	t.Parallel()

	item := web.ItemSaveForm{Name: " <b>item</b>   A "}
	require.NoError(t, sanitizer.SanitizeStruct(&item))
	assert.Equal(t, "item A", item.Name)

	m := web.MemberForm{Name: "<script>x</script>Kim"}
	require.NoError(t, sanitizer.SanitizeStruct(&m))
	assert.Equal(t, "xKim", m.Name)
}
