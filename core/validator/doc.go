// Package validator checks structs against `validate` tags and composes
// programmatic rules for checks that span several fields.
//
//	type ItemForm struct {
//		Name  string `validate:"required"`
//		Price *int   `validate:"required;between:1000,1000000"`
//	}
//
//	err := validator.Merge(
//		validator.ValidateStruct(&f),
//		validator.Apply(validator.Global(total >= 10000, "totalPriceMin", "...", nil)),
//	)
//	if ve := validator.ExtractValidationErrors(err); ve != nil {
//		ve.Get("Price")
//		ve.Global()
//	}
package validator
