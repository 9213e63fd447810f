package transport

import (
	"fmt"

	"github.com/Skotchmaster/product_catalog/internal/models"
	"github.com/Skotchmaster/product_catalog/internal/validation"
)

const MaxCreatePrice = 1000

type Credentials struct {
	Username string
	Password string
}

type PermissionChange struct {
	Username   string
	Permission models.Permission
}

type CreateProductRequest struct {
	Name        string
	Category    string
	Description string
	Price       float64
	Stock       float64
	Image       *string
}

// PatchProductRequest carries only the fields present in the request body.
type PatchProductRequest struct {
	Name        *string
	Category    *string
	Description *string
	Price       *float64
	Stock       *float64
	Image       *string
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", validation.ErrInvalid, reason)
}

func DecodeCredentials(body []byte) (Credentials, error) {
	obj, err := validation.ParseObject(body)
	if err != nil {
		return Credentials{}, err
	}
	if !validation.HasExactKeys(obj, "username", "password") {
		return Credentials{}, invalid("expected exactly username and password")
	}
	username, ok := validation.NonEmptyString(obj["username"])
	if !ok {
		return Credentials{}, invalid("username must be a non-empty string")
	}
	password, ok := validation.NonEmptyString(obj["password"])
	if !ok {
		return Credentials{}, invalid("password must be a non-empty string")
	}
	return Credentials{Username: username, Password: password}, nil
}

// DecodePermissionChange only allows W and M; admin can not be granted over the API.
func DecodePermissionChange(body []byte) (PermissionChange, error) {
	obj, err := validation.ParseObject(body)
	if err != nil {
		return PermissionChange{}, err
	}
	if !validation.HasExactKeys(obj, "username", "permission") {
		return PermissionChange{}, invalid("expected exactly username and permission")
	}
	username, ok := validation.String(obj["username"])
	if !ok {
		return PermissionChange{}, invalid("username must be a string")
	}
	permission, ok := validation.String(obj["permission"])
	if !ok {
		return PermissionChange{}, invalid("permission must be a string")
	}
	switch models.Permission(permission) {
	case models.PermissionWorker, models.PermissionManager:
	default:
		return PermissionChange{}, invalid("permission must be W or M")
	}
	return PermissionChange{Username: username, Permission: models.Permission(permission)}, nil
}

// DecodeCreateProduct ignores unknown keys except id, which the server assigns.
func DecodeCreateProduct(body []byte) (CreateProductRequest, error) {
	obj, err := validation.ParseObject(body)
	if err != nil {
		return CreateProductRequest{}, err
	}
	if _, ok := obj["id"]; ok {
		return CreateProductRequest{}, invalid("id is assigned by the server")
	}

	price, ok := validation.Integer(obj["price"])
	if !ok || price < 0 || price > MaxCreatePrice {
		return CreateProductRequest{}, invalid("price must be an integer in [0, 1000]")
	}
	stock, ok := validation.Integer(obj["stock"])
	if !ok || stock < 0 {
		return CreateProductRequest{}, invalid("stock must be a non-negative integer")
	}

	req := CreateProductRequest{Price: price, Stock: stock}
	if req.Name, ok = validation.NonEmptyString(obj["name"]); !ok {
		return CreateProductRequest{}, invalid("name is required")
	}
	if req.Category, ok = validation.String(obj["category"]); !ok || !models.IsCategory(req.Category) {
		return CreateProductRequest{}, invalid("category is not known")
	}
	if req.Description, ok = validation.NonEmptyString(obj["description"]); !ok {
		return CreateProductRequest{}, invalid("description is required")
	}
	if v, present := obj["image"]; present && v != nil {
		image, ok := validation.String(v)
		if !ok {
			return CreateProductRequest{}, invalid("image must be a string")
		}
		req.Image = &image
	}
	return req, nil
}

// DecodePatchProduct rejects the whole body on any unknown key. The create-time
// price ceiling is not applied here.
func DecodePatchProduct(body []byte) (PatchProductRequest, error) {
	obj, err := validation.ParseObject(body)
	if err != nil {
		return PatchProductRequest{}, err
	}
	if len(obj) == 0 {
		return PatchProductRequest{}, invalid("nothing to update")
	}
	if !validation.OnlyKeys(obj, models.ProductFields) {
		return PatchProductRequest{}, invalid("unknown product field")
	}

	var req PatchProductRequest
	for key, v := range obj {
		switch key {
		case "name", "description":
			s, ok := validation.NonEmptyString(v)
			if !ok {
				return PatchProductRequest{}, invalid(key + " must be a non-empty string")
			}
			if key == "name" {
				req.Name = &s
			} else {
				req.Description = &s
			}
		case "category":
			s, ok := validation.String(v)
			if !ok || !models.IsCategory(s) {
				return PatchProductRequest{}, invalid("category is not known")
			}
			req.Category = &s
		case "price", "stock":
			n, ok := validation.Number(v)
			if !ok || n < 0 {
				return PatchProductRequest{}, invalid(key + " must be a non-negative number")
			}
			if key == "price" {
				req.Price = &n
			} else {
				req.Stock = &n
			}
		case "image":
			s, ok := validation.String(v)
			if !ok {
				return PatchProductRequest{}, invalid("image must be a string")
			}
			req.Image = &s
		}
	}
	return req, nil
}

// Columns maps the present fields to their storage column names.
func (r PatchProductRequest) Columns() map[string]any {
	cols := make(map[string]any, 6)
	if r.Name != nil {
		cols["name"] = *r.Name
	}
	if r.Category != nil {
		cols["category"] = *r.Category
	}
	if r.Description != nil {
		cols["description"] = *r.Description
	}
	if r.Price != nil {
		cols["price"] = *r.Price
	}
	if r.Stock != nil {
		cols["stock"] = *r.Stock
	}
	if r.Image != nil {
		cols["image"] = *r.Image
	}
	return cols
}

// RequireEmptyBody is used by routes that take all input from the path.
func RequireEmptyBody(body []byte) error {
	if !validation.IsEmptyBody(body) {
		return invalid("request body must be empty")
	}
	return nil
}
