package graphql

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	gql "github.com/graphql-go/graphql"
)

type request struct {
	Query         string                 `json:"query" query:"query"`
	OperationName string                 `json:"operationName" query:"operationName"`
	Variables     map[string]interface{} `json:"variables" query:"-"`
}

// Handler serves GraphQL over GET (query string) and POST (JSON body).
type Handler struct {
	schema gql.Schema
}

func NewHandler(schema gql.Schema) *Handler {
	return &Handler{schema: schema}
}

func (h *Handler) Serve(c *fiber.Ctx) error {
	var req request

	if c.Method() == fiber.MethodGet {
		req.Query = c.Query("query")
		req.OperationName = c.Query("operationName")
		if raw := c.Query("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": []fiber.Map{{"message": "variables must be a JSON object"}}})
			}
		}
	} else if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": []fiber.Map{{"message": "Invalid JSON"}}})
	}

	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": []fiber.Map{{"message": "query is required"}}})
	}

	result := gql.Do(gql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.UserContext(),
	})

	return c.JSON(result)
}
