package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dealerhub/dealership-system/internal/api/middleware"
	"github.com/dealerhub/dealership-system/internal/core/ports"
)

// bind decodes the request into dst and runs struct validation. Decoding
// failures are a 400; validation failures surface as a ValidationError.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator != nil {
		return c.Validate(dst)
	}
	return nil
}

// decode only decodes. Public forms use it so that the abuse gate, not the
// validator, is the first thing a submission meets.
func decode(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}

// publicContext collects the abuse-mitigation inputs of an anonymous request.
// A token in the body wins over the header.
func publicContext(c echo.Context, bodyToken string) ports.PublicContext {
	token := strings.TrimSpace(bodyToken)
	if token == "" {
		token = c.Request().Header.Get(middleware.HeaderChallengeToken)
	}
	return ports.PublicContext{
		Fingerprint:    middleware.Fingerprint(c),
		ChallengeToken: token,
	}
}

type pageQuery struct {
	Page  int `query:"page"  validate:"omitempty,min=1"`
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (q pageQuery) request() ports.PageRequest {
	return ports.PageRequest{Page: q.Page, Limit: q.Limit}
}

// pageResponse is the list envelope shared by every paginated endpoint.
type pageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func toPage[T, R any](p *ports.Page[T], mapFn func(T) R) pageResponse[R] {
	items := make([]R, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, mapFn(it))
	}
	return pageResponse[R]{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages,
	}
}

func identity[T any](v T) T { return v }
