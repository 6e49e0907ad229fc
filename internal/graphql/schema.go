package graphql

import (
	apperrors "ecommerce-admin/internal/errors"
	"ecommerce-admin/internal/model"
	"ecommerce-admin/internal/repository"
	"ecommerce-admin/internal/service"

	"github.com/google/uuid"
	gql "github.com/graphql-go/graphql"
)

// NewSchema builds the product schema:
//
//	query    { getProduct(productId: ID!): ProductType  products: [ProductType!]! }
//	mutation { createProduct(createProduct: CreateProductInput!): ProductType! }
func NewSchema(products service.ProductService, ledger service.LedgerService) (gql.Schema, error) {
	saleType := gql.NewObject(gql.ObjectConfig{
		Name: "SaleType",
		Fields: gql.Fields{
			"id":            &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"productId":     &gql.Field{Type: gql.ID},
			"quantity":      &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"mediumOfSales": &gql.Field{Type: gql.NewNonNull(gql.String)},
			"totalPrice":    &gql.Field{Type: gql.Float},
			"createdAt":     &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
		},
	})

	inventoryLogType := gql.NewObject(gql.ObjectConfig{
		Name: "InventoryLogType",
		Fields: gql.Fields{
			"id":            &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"productId":     &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"previousStock": &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"newStock":      &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"createdAt":     &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
		},
	})

	productType := gql.NewObject(gql.ObjectConfig{
		Name: "ProductType",
		Fields: gql.Fields{
			"id":        &gql.Field{Type: gql.NewNonNull(gql.ID)},
			"name":      &gql.Field{Type: gql.NewNonNull(gql.String)},
			"stock":     &gql.Field{Type: gql.NewNonNull(gql.Int)},
			"category":  &gql.Field{Type: gql.String},
			"price":     &gql.Field{Type: gql.Float},
			"createdAt": &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
			"updatedAt": &gql.Field{Type: gql.NewNonNull(gql.DateTime)},
			"sales": &gql.Field{
				Type: gql.NewList(gql.NewNonNull(saleType)),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id := sourceID(p)
					sales, err := ledger.ListSales(p.Context, repository.SaleFilter{ProductID: &id})
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, 0, len(sales))
					for i := range sales {
						out = append(out, saleSource(&sales[i]))
					}
					return out, nil
				},
			},
			"inventoryLogs": &gql.Field{
				Type: gql.NewList(gql.NewNonNull(inventoryLogType)),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id := sourceID(p)
					logs, err := ledger.ListInventoryLogs(p.Context, &id)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, 0, len(logs))
					for i := range logs {
						out = append(out, inventoryLogSource(&logs[i]))
					}
					return out, nil
				},
			},
		},
	})

	createProductInput := gql.NewInputObject(gql.InputObjectConfig{
		Name: "CreateProductInput",
		Fields: gql.InputObjectConfigFieldMap{
			"name":     &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.String)},
			"stock":    &gql.InputObjectFieldConfig{Type: gql.NewNonNull(gql.Int)},
			"category": &gql.InputObjectFieldConfig{Type: gql.String},
			"price":    &gql.InputObjectFieldConfig{Type: gql.Float},
		},
	})

	query := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"getProduct": &gql.Field{
				Type: productType,
				Args: gql.FieldConfigArgument{
					"productId": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.ID)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id, err := uuid.Parse(p.Args["productId"].(string))
					if err != nil {
						return nil, apperrors.NewValidationError("productId must be a UUID")
					}
					product, err := products.GetProduct(p.Context, id)
					if _, ok := apperrors.IsNotFoundError(err); ok {
						return nil, nil
					}
					if err != nil {
						return nil, err
					}
					return productSource(product), nil
				},
			},
			"products": &gql.Field{
				Type: gql.NewNonNull(gql.NewList(gql.NewNonNull(productType))),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					list, err := products.ListProducts(p.Context)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, 0, len(list))
					for i := range list {
						out = append(out, productSource(&list[i]))
					}
					return out, nil
				},
			},
		},
	})

	mutation := gql.NewObject(gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"createProduct": &gql.Field{
				Type: gql.NewNonNull(productType),
				Args: gql.FieldConfigArgument{
					"createProduct": &gql.ArgumentConfig{Type: gql.NewNonNull(createProductInput)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					input := p.Args["createProduct"].(map[string]interface{})
					req := &service.CreateProductRequest{
						Name:  input["name"].(string),
						Stock: input["stock"].(int),
					}
					if v, ok := input["category"].(string); ok {
						req.Category = &v
					}
					if v, ok := input["price"].(float64); ok {
						req.Price = &v
					}

					product, err := products.CreateProduct(p.Context, req)
					if err != nil {
						return nil, err
					}
					return productSource(product), nil
				},
			},
		},
	})

	return gql.NewSchema(gql.SchemaConfig{Query: query, Mutation: mutation})
}

func productSource(p *model.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":        p.ID.String(),
		"uuid":      p.ID,
		"name":      p.Name,
		"stock":     p.Stock,
		"category":  optionalString(p.Category),
		"price":     optionalFloat(p.Price),
		"createdAt": p.CreatedAt.UTC(),
		"updatedAt": p.UpdatedAt.UTC(),
	}
}

// sourceID returns the product UUID carried alongside the rendered fields.
func sourceID(p gql.ResolveParams) uuid.UUID {
	return p.Source.(map[string]interface{})["uuid"].(uuid.UUID)
}

func saleSource(s *model.Sale) map[string]interface{} {
	return map[string]interface{}{
		"id":            s.ID.String(),
		"productId":     s.ProductID.String(),
		"quantity":      s.Quantity,
		"mediumOfSales": s.MediumOfSales,
		"totalPrice":    optionalFloat(s.TotalPrice),
		"createdAt":     s.CreatedAt.UTC(),
	}
}

func inventoryLogSource(l *model.InventoryLog) map[string]interface{} {
	return map[string]interface{}{
		"id":            l.ID.String(),
		"productId":     l.ProductID.String(),
		"previousStock": l.PreviousStock,
		"newStock":      l.NewStock,
		"createdAt":     l.CreatedAt.UTC(),
	}
}

// optionalString and optionalFloat return an untyped nil for a missing value so the
// field serialises as null.
func optionalString(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func optionalFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
