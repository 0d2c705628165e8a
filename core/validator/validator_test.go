package validator_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionlab/core/validator"
)

func intPtr(v int) *int { return &v }

type itemForm struct {
	Name     string `validate:"required"`
	Price    *int   `validate:"required;between:1000,1000000"`
	Quantity *int   `validate:"required;max:9999"`
	Comment  string
	Skip     string `validate:"-"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  itemForm
		fields []string
	}{
		{
			name:  "valid",
			input: itemForm{Name: "itemA", Price: intPtr(10000), Quantity: intPtr(10)},
		},
		{
			name:   "all missing",
			input:  itemForm{Name: "   "},
			fields: []string{"Name", "Price", "Quantity"},
		},
		{
			name:   "price below range",
			input:  itemForm{Name: "itemA", Price: intPtr(999), Quantity: intPtr(10)},
			fields: []string{"Price"},
		},
		{
			name:   "price above range",
			input:  itemForm{Name: "itemA", Price: intPtr(1000001), Quantity: intPtr(10)},
			fields: []string{"Price"},
		},
		{
			name:   "quantity too large",
			input:  itemForm{Name: "itemA", Price: intPtr(1000), Quantity: intPtr(10000)},
			fields: []string{"Quantity"},
		},
		{
			name:  "bounds are inclusive",
			input: itemForm{Name: "itemA", Price: intPtr(1000000), Quantity: intPtr(9999)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validator.ValidateStruct(&tt.input)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			ve := validator.ExtractValidationErrors(err)
			require.NotNil(t, ve)
			for _, f := range tt.fields {
				assert.True(t, ve.Has(f), "expected error for %s", f)
			}
			assert.Len(t, ve, len(tt.fields))
		})
	}
}

func TestValidateStruct_Strings(t *testing.T) {
	t.Parallel()

	type memberForm struct {
		LoginID  string `validate:"required;min:3;max:20;alphanum"`
		Password string `validate:"required;between:4,64"`
		Code     string `validate:"len:2"`
	}

	err := validator.ValidateStruct(&memberForm{LoginID: "test", Password: "test!", Code: "ab"})
	require.NoError(t, err)

	err = validator.ValidateStruct(&memberForm{LoginID: "a-", Password: "abc", Code: "abc"})
	ve := validator.ExtractValidationErrors(err)
	require.NotNil(t, ve)
	assert.Len(t, ve.Get("LoginID"), 2)
	assert.Equal(t, []string{"must be between 4 and 64 characters long"}, ve.Get("Password"))
	assert.True(t, ve.Has("Code"))
}

func TestValidateStruct_Nested(t *testing.T) {
	t.Parallel()

	type address struct {
		City string `validate:"required"`
	}
	type profile struct {
		Name string `validate:"required"`
		Home address
		Work *address
	}

	err := validator.ValidateStruct(&profile{Name: "x", Work: &address{}})
	ve := validator.ExtractValidationErrors(err)
	require.NotNil(t, ve)
	assert.True(t, ve.Has("Home.City"))
	assert.True(t, ve.Has("Work.City"))
}

func TestValidateStruct_InvalidTarget(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, validator.ValidateStruct(itemForm{}), validator.ErrInvalidTarget)
	assert.ErrorIs(t, validator.ValidateStruct((*itemForm)(nil)), validator.ErrInvalidTarget)
	n := 1
	assert.ErrorIs(t, validator.ValidateStruct(&n), validator.ErrInvalidTarget)
}

func TestApplyAndMerge(t *testing.T) {
	t.Parallel()

	price, quantity := 1000, 9
	global := validator.Global(price*quantity >= 10000, "totalPriceMin",
		"price * quantity must be at least 10000", map[string]any{"min": 10000, "current": price * quantity})

	err := validator.Merge(
		validator.ValidateStruct(&itemForm{Name: "x", Price: &price, Quantity: &quantity}),
		validator.Apply(global),
	)
	require.Error(t, err)
	assert.True(t, validator.IsValidationError(err))

	ve := validator.ExtractValidationErrors(err)
	assert.Equal(t, []string{"price * quantity must be at least 10000"}, ve.Global())
	assert.Equal(t, "totalPriceMin", ve[0].TranslationKey)

	assert.NoError(t, validator.Merge(nil, validator.Apply(validator.MinInt("n", 5, 1))))

	boom := errors.New("boom")
	assert.Equal(t, boom, validator.Merge(boom))
	assert.False(t, validator.IsValidationError(fmt.Errorf("wrap: %w", boom)))
}

func TestRegisterValidator(t *testing.T) {
	t.Parallel()

	validator.RegisterValidator("even", func(field string, value reflect.Value, _ []string) validator.Rule {
		return validator.Rule{
			Check: func() bool { return value.Int()%2 == 0 },
			Error: validator.ValidationError{Field: field, Message: "must be even"},
		}
	})

	type s struct {
		N int `validate:"even"`
	}

	assert.NoError(t, validator.ValidateStruct(&s{N: 2}))
	ve := validator.ExtractValidationErrors(validator.ValidateStruct(&s{N: 3}))
	assert.Equal(t, []string{"must be even"}, ve.Get("N"))
}
