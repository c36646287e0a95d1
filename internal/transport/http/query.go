package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apierrors "shoplens/internal/errors"
	"shoplens/internal/services"
)

var validate = validator.New()

// dateLayout is the format of the from/to query parameters.
const dateLayout = "2006-01-02"

// queryParams carries the raw filter parameters before validation.
type queryParams struct {
	From string `validate:"omitempty,datetime=2006-01-02"`
	To   string `validate:"omitempty,datetime=2006-01-02"`
}

// parseQuery reads the shared filter parameters: from and to as YYYY-MM-DD
// dates (both inclusive) and categories as a comma-separated list.
func parseQuery(r *http.Request) (services.Query, error) {
	params := queryParams{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if err := validate.Struct(params); err != nil {
		return services.Query{}, apierrors.NewValidationError("from and to must be YYYY-MM-DD dates")
	}

	var q services.Query
	if params.From != "" {
		from, _ := time.Parse(dateLayout, params.From)
		q.From = &from
	}
	if params.To != "" {
		// inclusive upper bound covers the whole day
		to, _ := time.Parse(dateLayout, params.To)
		to = to.Add(24*time.Hour - time.Second)
		q.To = &to
	}
	if q.From != nil && q.To != nil && q.To.Before(*q.From) {
		return services.Query{}, apierrors.NewValidationError("to must not be before from")
	}

	if raw := r.URL.Query().Get("categories"); raw != "" {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				q.Categories = append(q.Categories, c)
			}
		}
	}

	return q, nil
}

// parsePositiveInt reads an optional positive integer parameter, returning
// fallback when absent.
func parsePositiveInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, apierrors.NewValidationError(fmt.Sprintf("%s must be a positive integer", name))
	}
	return value, nil
}
