package entity

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dmitrymomot/httpkit/handler"
	"github.com/dmitrymomot/httpkit/pkg/negotiate"
)

// CreateRequest is the payload of POST /entities, sent as JSON or as a form.
type CreateRequest struct {
	Name     string
	Category string
	Country  string
	Budget   decimal.Decimal
	Tags     []string

	// Format is the request body format; html means a form post.
	Format negotiate.Format
}

// errInvalid is the client facing error for payloads that fail validation.
var errInvalid = handler.NewHTTPError(http.StatusUnprocessableEntity, "invalid_entity")

// BindCreate fills a *CreateRequest from a JSON or form body.
func BindCreate(r *http.Request, v any) error {
	req, ok := v.(*CreateRequest)
	if !ok {
		return handler.ErrBindingSkipped
	}

	content, err := negotiate.RequestContent(r)
	if err != nil {
		return err
	}
	req.Format = content.Format

	if content.Format == negotiate.FormatJSON {
		obj, ok := content.JSON.(map[string]any)
		if !ok {
			return errors.Join(errInvalid, ErrInvalidData, errors.New("body must be a JSON object"))
		}
		err = req.fromJSON(obj)
	} else {
		err = req.fromForm(content.Form)
	}
	if err != nil {
		return errors.Join(errInvalid, ErrInvalidData, err)
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return errors.Join(errInvalid, ErrInvalidData, errors.New("name is required"))
	}
	return nil
}

func (req *CreateRequest) fromJSON(obj map[string]any) error {
	req.Name, _ = obj["name"].(string)
	req.Category, _ = obj["category"].(string)
	req.Country, _ = obj["country"].(string)

	switch b := obj["budget"].(type) {
	case nil:
	case float64:
		req.Budget = decimal.NewFromFloat(b)
	case string:
		d, err := decimal.NewFromString(b)
		if err != nil {
			return fmt.Errorf("budget: %w", err)
		}
		req.Budget = d
	default:
		return fmt.Errorf("budget: unsupported type %T", b)
	}

	if tags, ok := obj["tags"].([]any); ok {
		for _, t := range tags {
			s, ok := t.(string)
			if !ok {
				return fmt.Errorf("tags: unsupported element %T", t)
			}
			req.Tags = append(req.Tags, s)
		}
	}
	return nil
}

func (req *CreateRequest) fromForm(form url.Values) error {
	req.Name = form.Get("name")
	req.Category = form.Get("category")
	req.Country = form.Get("country")
	if b := form.Get("budget"); b != "" {
		d, err := decimal.NewFromString(b)
		if err != nil {
			return fmt.Errorf("budget: %w", err)
		}
		req.Budget = d
	}
	req.Tags = form["tags"]
	return nil
}

func (req CreateRequest) entity() Entity {
	return Entity{
		Name:     req.Name,
		Category: req.Category,
		Country:  req.Country,
		Budget:   req.Budget,
		Tags:     req.Tags,
	}
}
