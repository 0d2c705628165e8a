package web

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/dmitrymomot/sessionlab/core/validator"
)

// MinTotalPrice is the smallest accepted price * quantity of an item.
const MinTotalPrice = 10000

func init() {
	validator.RegisterValidator("max_bytes", maxBytesValidator)
}

// maxBytesValidator limits the encoded length of a string, which is what
// bcrypt cares about for passwords.
func maxBytesValidator(field string, value reflect.Value, params []string) validator.Rule {
	if len(params) < 1 || value.Kind() != reflect.String {
		return validator.Rule{}
	}
	limit, err := strconv.Atoi(params[0])
	if err != nil {
		return validator.Rule{}
	}
	return validator.Rule{
		Check: func() bool { return len(value.String()) <= limit },
		Error: validator.ValidationError{
			Field:             field,
			Message:           fmt.Sprintf("must be at most %d bytes long", limit),
			TranslationKey:    "validation.max_bytes",
			TranslationValues: map[string]any{"field": field, "max": limit},
		},
	}
}

type MemberForm struct {
	LoginID  string `form:"loginId" sanitize:"trim,single_line" validate:"required"`
	Password string `form:"password" validate:"required;max_bytes:72"`
	Name     string `form:"name" sanitize:"strip_html,text,max:100" validate:"required"`
}

type LoginForm struct {
	LoginID  string `form:"loginId" sanitize:"trim,single_line" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// ItemSaveForm is submitted when an item is created.
type ItemSaveForm struct {
	Name     string `form:"itemName" sanitize:"strip_html,text" validate:"required"`
	Price    *int   `form:"price" validate:"required;between:1000,1000000"`
	Quantity *int   `form:"quantity" validate:"required;max:9999"`
}

func (f ItemSaveForm) Validate() error {
	return validator.Apply(totalPriceRule(f.Price, f.Quantity))
}

// ItemUpdateForm is submitted from the edit page. Quantity has no upper bound there.
type ItemUpdateForm struct {
	Name     string `form:"itemName" sanitize:"strip_html,text" validate:"required"`
	Price    *int   `form:"price" validate:"required;between:1000,1000000"`
	Quantity *int   `form:"quantity" validate:"required"`
}

func (f ItemUpdateForm) Validate() error {
	return validator.Apply(totalPriceRule(f.Price, f.Quantity))
}

// totalPriceRule is an object-level check; it only applies once both
// inputs are present.
func totalPriceRule(price, quantity *int) validator.Rule {
	if price == nil || quantity == nil {
		return validator.Global(true, "", "", nil)
	}
	total, ok := mulInt(*price, *quantity)
	if !ok {
		// Out of int range: far above the minimum, or far below it.
		return validator.Global((*price > 0) == (*quantity > 0), "totalPriceMin",
			fmt.Sprintf("price * quantity must be at least %d", MinTotalPrice),
			map[string]any{"min": MinTotalPrice},
		)
	}
	return validator.Global(total >= MinTotalPrice, "totalPriceMin",
		fmt.Sprintf("price * quantity must be at least %d, current value is %d", MinTotalPrice, total),
		map[string]any{"min": MinTotalPrice, "current": total},
	)
}

// mulInt multiplies a and b, reporting false when the product overflows int.
func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	return c, c/b == a
}
