package web

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dmitrymomot/sessionlab/core/cookie"
	"github.com/dmitrymomot/sessionlab/core/handler"
	"github.com/dmitrymomot/sessionlab/core/logger"
	"github.com/dmitrymomot/sessionlab/core/response"
	"github.com/dmitrymomot/sessionlab/core/validator"
	"github.com/dmitrymomot/sessionlab/internal/item"
)

const flashStatus = "status"

func itemID(ctx *Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("itemId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, response.ErrNotFound
	}
	return id, nil
}

func findItem(ctx *Context, items *item.Repository) (item.Item, error) {
	id, err := itemID(ctx)
	if err != nil {
		return item.Item{}, err
	}
	it, err := items.FindByID(ctx, id)
	if errors.Is(err, item.ErrNotFound) {
		return item.Item{}, response.ErrNotFound.WithMessage("Item not found")
	}
	return it, err
}

func itemsHandler(v views, items *item.Repository) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return v.render(viewItems, page{Title: "Items", Items: items.FindAll(ctx)})
	}
}

func itemHandler(v views, items *item.Repository, cookies *cookie.Manager) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		it, err := findItem(ctx, items)
		if err != nil {
			return response.Error(err)
		}

		var flash string
		_ = cookies.GetFlash(ctx.ResponseWriter(), ctx.Request(), flashStatus, &flash)

		return v.render(viewItem, page{Title: "Item", Item: it, Flash: flash})
	}
}

func addItemPage(v views) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return v.render(viewItemForm, addItemPageData(ItemSaveForm{}, nil))
	}
}

func addItemPageData(form ItemSaveForm, errs validator.ValidationErrors) page {
	return page{Title: "Add item", Form: form, Errors: errs, Action: "/items/add", Cancel: "/items"}
}

func addItemHandler(v views, items *item.Repository, cookies *cookie.Manager, log *slog.Logger) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		var form ItemSaveForm
		if err := ctx.Bind(&form); err != nil {
			errs := validator.ExtractValidationErrors(err)
			if errs == nil {
				return response.Error(response.ErrBadRequest.WithError(err))
			}
			log.DebugContext(ctx, "item form rejected", logger.Count("errors", len(errs)))
			return v.render(viewItemForm, addItemPageData(form, errs))
		}

		saved := items.Save(ctx, item.Item{Name: form.Name, Price: *form.Price, Quantity: *form.Quantity})
		if err := cookies.SetFlash(ctx.ResponseWriter(), flashStatus, "saved"); err != nil {
			log.WarnContext(ctx, "set flash", logger.Error(err))
		}

		return response.RedirectSeeOther(fmt.Sprintf("/items/%d", saved.ID))
	}
}

func editItemPageData(id int64, form ItemUpdateForm, errs validator.ValidationErrors) page {
	return page{
		Title:  "Edit item",
		Form:   form,
		Errors: errs,
		Action: fmt.Sprintf("/items/%d/edit", id),
		Cancel: fmt.Sprintf("/items/%d", id),
	}
}

func editItemPage(v views, items *item.Repository) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		it, err := findItem(ctx, items)
		if err != nil {
			return response.Error(err)
		}
		form := ItemUpdateForm{Name: it.Name, Price: &it.Price, Quantity: &it.Quantity}
		return v.render(viewItemForm, editItemPageData(it.ID, form, nil))
	}
}

func editItemHandler(v views, items *item.Repository) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		it, err := findItem(ctx, items)
		if err != nil {
			return response.Error(err)
		}

		var form ItemUpdateForm
		if err := ctx.Bind(&form); err != nil {
			errs := validator.ExtractValidationErrors(err)
			if errs == nil {
				return response.Error(response.ErrBadRequest.WithError(err))
			}
			return v.render(viewItemForm, editItemPageData(it.ID, form, errs))
		}

		if err := items.Update(ctx, it.ID, item.Item{Name: form.Name, Price: *form.Price, Quantity: *form.Quantity}); err != nil {
			return response.Error(err)
		}
		return response.RedirectSeeOther(fmt.Sprintf("/items/%d", it.ID))
	}
}
