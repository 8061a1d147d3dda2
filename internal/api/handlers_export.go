package api

import (
	"bytes"
	"encoding/csv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ssclab/internal/services"
)

// ExportWinsCSV writes the wins in scope, filtered like ListWins.
func (handler *Handler) ExportWinsCSV(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidTag)
	}
	rows, err := handler.services.Export.BuildCSVRows(c.Query("scope"), criteria, handler.notice(c, "collection.uncategorized"))
	if err != nil {
		return handler.serviceError(c, "export_wins", err)
	}

	var output bytes.Buffer
	writer := csv.NewWriter(&output)
	if err := writer.Write(services.ExportCSVHeaders); err != nil {
		return apiError(c, fiber.StatusInternalServerError, codeInternal)
	}
	for _, row := range rows {
		if err := writer.Write(row.Columns()); err != nil {
			return apiError(c, fiber.StatusInternalServerError, codeInternal)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return apiError(c, fiber.StatusInternalServerError, codeInternal)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, exportDisposition("csv"))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportWinsJSON(c *fiber.Ctx) error {
	criteria, err := parseCriteria(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, codeInvalidTag)
	}
	scope := c.Query("scope")

	summary, err := handler.services.Export.BuildSummary(scope, criteria)
	if err != nil {
		return handler.serviceError(c, "export_wins", err)
	}
	entries, err := handler.services.Export.BuildJSONEntries(scope, criteria)
	if err != nil {
		return handler.serviceError(c, "export_wins", err)
	}

	c.Set(fiber.HeaderContentDisposition, exportDisposition("json"))
	return c.JSON(fiber.Map{"summary": summary, "wins": entries})
}

func exportDisposition(extension string) string {
	return `attachment; filename="ssclab-wins-` + time.Now().UTC().Format(dateLayout) + `.` + extension + `"`
}
