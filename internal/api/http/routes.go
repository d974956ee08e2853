package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/taskgeo/ghcnd-fetcher/internal/ghcnd"
	"github.com/taskgeo/ghcnd-fetcher/internal/store"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *ghcnd.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/observations", func(c *fiber.Ctx) error {
		var req observationsQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		table, fetchErrs, err := service.Fetch(c.UserContext(), req.Countries, req.Start, req.End, req.Metrics)
		if err != nil {
			var unknown *ghcnd.UnknownCountryError
			if errors.As(err, &unknown) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to fetch observation data")
		}

		return c.JSON(fiber.Map{
			"columns": table.Columns,
			"rows":    table.Rows,
			"errors":  fetchErrs,
		})
	})

	v1.Get("/observations/latest", func(c *fiber.Ctx) error {
		countries, err := parseCountries(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshot, err := service.GetLatest(countries)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no observation data for requested countries")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch observation data")
		}

		return c.JSON(snapshot)
	})

	v1.Get("/observations/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := service.GetRange(req.Countries, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no observation history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch observation history")
		}

		return c.JSON(fiber.Map{
			"countries": req.Countries,
			"from":      req.From,
			"to":        req.To,
			"snapshots": snapshots,
		})
	})

	v1.Get("/stations", func(c *fiber.Ctx) error {
		country := c.Query("country")
		if country == "" {
			return fiber.NewError(fiber.StatusBadRequest, "country query parameter is required")
		}

		stations, err := service.Stations(country)
		if err != nil {
			var unknown *ghcnd.UnknownCountryError
			if errors.As(err, &unknown) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to resolve stations")
		}

		return c.JSON(fiber.Map{
			"country":  country,
			"stations": stations,
		})
	})
}

// observationsQuery holds query parameters for the observations endpoint.
type observationsQuery struct {
	Countries []string  `validate:"required,min=1,dive,required"`
	Start     time.Time `validate:"required"`
	End       time.Time
	Metrics   []ghcnd.Metric
}

func (q *observationsQuery) bind(c *fiber.Ctx) error {
	countries, err := parseCountries(c)
	if err != nil {
		return err
	}
	q.Countries = countries

	startStr := c.Query("start")
	if startStr == "" {
		return errors.New("start query parameter is required")
	}
	start, err := parseDate(startStr)
	if err != nil {
		return err
	}
	q.Start = start

	if endStr := c.Query("end"); endStr != "" {
		end, err := parseDate(endStr)
		if err != nil {
			return err
		}
		if end.Before(start) {
			return errors.New("end date must not be before start date")
		}
		q.End = end
	}

	if metricsStr := c.Query("metrics"); metricsStr != "" {
		for _, part := range splitCSV(metricsStr) {
			m, err := ghcnd.ParseMetric(part)
			if err != nil {
				return err
			}
			q.Metrics = append(q.Metrics, m)
		}
	}

	return nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Countries []string  `validate:"required,min=1,dive,required"`
	From      time.Time `validate:"required"`
	To        time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	countries, err := parseCountries(c)
	if err != nil {
		return err
	}
	h.Countries = countries

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

func parseCountries(c *fiber.Ctx) ([]string, error) {
	countries := splitCSV(c.Query("countries"))
	if len(countries) == 0 {
		return nil, errors.New("countries query parameter is required")
	}
	return countries, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDate parses an ISO calendar date; time-of-day is never accepted.
func parseDate(s string) (time.Time, error) {
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, errors.New("invalid date format; use YYYY-MM-DD")
	}
	return ts, nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
