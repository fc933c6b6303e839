package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"songapi/internal/validation"
)

const (
	defaultPage = 0
	defaultSize = 10
)

// UserIDHeader carries the acting user for like/unlike.
const UserIDHeader = "User-Id"

// intParam parses an integer from raw. Blank input yields def. Parse failures
// are collected into vs so that every bad parameter is reported together.
func intParam(vs *validation.Violations, field, raw string, def int64) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		*vs = append(*vs, validation.Violation{Field: field, Rule: "integer", Message: "must be an integer"})
		return def
	}
	return n
}

// pageParams reads ?page and ?size with their defaults. Range checks belong
// to the service.
func pageParams(c *fiber.Ctx, vs *validation.Violations) (page, size int) {
	page = int(intParam(vs, "page", c.Query("page"), defaultPage))
	size = int(intParam(vs, "size", c.Query("size"), defaultSize))
	return page, size
}
