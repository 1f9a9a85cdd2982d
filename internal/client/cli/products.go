package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/client/catalog"
)

// AddProduct prompts for a product and creates it.
func (a *App) AddProduct(ctx context.Context) error {
	form, err := a.readProductForm()
	if err != nil {
		return err
	}

	p, err := a.products.Create(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Created product %s\n", p.ID)
	return nil
}

// EditProduct prompts for a product ID and new values and updates it.
func (a *App) EditProduct(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Product ID", a.out)
	if err != nil {
		return err
	}
	form, err := a.readProductForm()
	if err != nil {
		return err
	}

	p, err := a.products.Update(ctx, id, form)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated product %s\n", p.ID)
	return nil
}

// Statuses lists the order statuses.
func (a *App) Statuses(ctx context.Context) error {
	for _, st := range catalog.OrderStatuses {
		fmt.Fprintln(a.out, st)
	}
	return nil
}

func (a *App) readProductForm() (catalog.ProductForm, error) {
	var f catalog.ProductForm
	var err error

	if f.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
		return f, err
	}
	if f.Price, err = getSimpleText(a.reader, "Price (e.g. 9.99)", a.out); err != nil {
		return f, err
	}
	if f.ImageURL, err = getSimpleText(a.reader, "Image URL", a.out); err != nil {
		return f, err
	}
	return f, nil
}
