package testutil

import (
	"github.com/target/shop-admin/internal/domain/model"
)

// ProductBuilder provides a fluent interface for building Product fixtures.
type ProductBuilder struct {
	p model.Product
}

// NewProduct creates a ProductBuilder with sensible defaults.
func NewProduct(id string) *ProductBuilder {
	return &ProductBuilder{
		p: model.Product{
			Ref:         model.Ref{ID: id},
			Name:        "محصول " + id,
			Price:       100000,
			Unit:        "کیلو",
			Stock:       10,
			Tags:        []string{"تازه"},
			IsAvailable: true,
		},
	}
}

// WithName sets the product name.
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.p.Name = name
	return b
}

// WithPrice sets the product price.
func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.p.Price = model.Number(price)
	return b
}

// WithStock sets the stock level.
func (b *ProductBuilder) WithStock(stock float64) *ProductBuilder {
	b.p.Stock = model.Number(stock)
	return b
}

// WithLegacyID moves the identifier to the legacy _id alias.
func (b *ProductBuilder) WithLegacyID() *ProductBuilder {
	b.p.LegacyID, b.p.ID = b.p.ID, ""
	return b
}

// Build returns the product.
func (b *ProductBuilder) Build() model.Product {
	return b.p
}

// NewOrder returns an order fixture with the given total and status.
func NewOrder(id string, total float64, status string) model.Order {
	return model.Order{
		Ref:       model.Ref{ID: id},
		Customer:  model.NamedRef{Ref: model.Ref{ID: "u-" + id}, Name: "مشتری " + id},
		Items:     []model.OrderItem{{Quantity: 1, Price: model.Number(total)}},
		Total:     model.Number(total),
		Status:    status,
		CreatedAt: TestTime(),
	}
}
