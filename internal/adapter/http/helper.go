package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

const dateLayout = "2006-01-02"

// ---- helpers ----

func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// mustDate parses a request date already validated with datetime=2006-01-02.
func mustDate(s string) time.Time {
	t, _ := time.Parse(dateLayout, s)
	return t
}
