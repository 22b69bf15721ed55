package entity

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/httpkit/handler"
)

const dateLayout = "2006-01-02 15:04"

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s</title></head><body>",
			templ.EscapeString(title)); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// ListPage renders the entity listing with links to the other formats.
func ListPage(entities []Entity) templ.Component {
	return layout("Entities", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<h1>Entities</h1><p><a href="/entities.json">JSON</a> | <a href="/entities.csv">CSV</a></p><ul>`); err != nil {
			return err
		}
		for _, e := range entities {
			id := strconv.FormatInt(e.ID, 10)
			if _, err := fmt.Fprintf(w, `<li><a href="/entities/%s">%s</a> <small>%s</small></li>`,
				id, templ.EscapeString(e.Name), e.UpdatedAt.Format(dateLayout)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	}))
}

// DetailPage renders a single entity.
func DetailPage(e Entity) templ.Component {
	return layout(e.Name, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<h1>%s</h1><dl><dt>Category</dt><dd>%s</dd><dt>Country</dt><dd>%s</dd><dt>Budget</dt><dd>%s</dd><dt>Updated</dt><dd>%s</dd></dl>`,
			templ.EscapeString(e.Name),
			templ.EscapeString(e.Category),
			templ.EscapeString(e.Country),
			e.Budget.StringFixed(2),
			e.UpdatedAt.Format(dateLayout),
		)
		return err
	}))
}

// ErrorPage renders errors for HTML clients.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return layout("Error", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<h1>%d</h1><p>%s</p><p><small>%s</small></p><a href="%s">Retry</a>`,
			p.StatusCode,
			templ.EscapeString(p.Error),
			templ.EscapeString(p.RequestID),
			templ.EscapeString(p.RetryURL),
		)
		return err
	}))
}
