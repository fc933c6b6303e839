package handler

import (
	"regexp"

	"github.com/gofiber/fiber/v2"

	"songapi/internal/service"
	"songapi/internal/validation"
)

var datasetFileName = regexp.MustCompile(`(?i)\.(ndjson|jsonl|json)$`)

// IngestSongs godoc
// @Summary Ingest the configured song dataset
// @Tags ingestion
// @Produce json
// @Success 200 {object} CommonResponse[model.IngestionResult]
// @Failure 500 {object} errorPayload
// @Router /api/songs/ingest [get]
func IngestSongs(svc service.IngestionService, path string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.IngestFile(c.UserContext(), path)
		if err != nil {
			return err
		}
		return success(c, res)
	}
}

// UploadDataset godoc
// @Summary Upload and ingest an NDJSON dataset
// @Description Stores the file in object storage, then ingests the stored copy.
// @Tags ingestion
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "NDJSON dataset"
// @Success 200 {object} CommonResponse[model.IngestionResult]
// @Failure 400 {object} errorPayload
// @Failure 503 {object} errorPayload
// @Router /api/songs/datasets [post]
func UploadDataset(svc service.IngestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "file is required")
		}
		if err := validation.Validate(
			validation.Field("file", fh.Filename, validation.Length(1, 255),
				validation.Pattern(datasetFileName, "an .ndjson, .jsonl or .json file")),
			validation.Field("size", fh.Size, validation.Tag("gt=0")),
		).Err(); err != nil {
			return err
		}

		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.IngestDataset(c.UserContext(), fh.Filename, f, fh.Size)
		if err != nil {
			return err
		}
		return success(c, res)
	}
}
