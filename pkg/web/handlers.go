package web

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/teslashibe/go-smile/pkg/smile"
	"github.com/teslashibe/go-smile/pkg/video"
)

// defaultVideoExt is used when the upload has no file extension.
const defaultVideoExt = ".mp4"

// handleUpload runs the picker on an uploaded video and returns the best
// frame as a JPEG.
func (s *Server) handleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile(s.config.FieldName)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("missing form field %q", s.config.FieldName),
		})
	}

	id := uuid.NewString()
	logger := s.logger.With("request_id", id)

	ext := filepath.Ext(file.Filename)
	if ext == "" {
		ext = defaultVideoExt
	}
	videoPath := filepath.Join(s.config.TempDir, id+ext)
	if err := c.SaveFile(file, videoPath); err != nil {
		logger.Error("save upload failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save upload",
		})
	}
	logger.Info("upload received", "filename", file.Filename, "size", humanize.Bytes(uint64(file.Size)), "path", videoPath)

	src, err := s.open(videoPath)
	if errors.Is(err, video.ErrOpen) {
		// An undecodable upload yields no frames, so no face either.
		logger.Info("upload is not a readable video", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": s.config.NoFaceMessage,
		})
	}
	if err != nil {
		logger.Error("open video failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open upload",
		})
	}

	res, err := s.finder.FindBest(c.UserContext(), src, nil)
	if errors.Is(err, smile.ErrNoFace) {
		logger.Info("no face in upload", "frames", res.Frames)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": s.config.NoFaceMessage,
		})
	}
	if err != nil {
		logger.Error("pick failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to process video",
		})
	}

	var buf bytes.Buffer
	if err := video.EncodeJPEG(&buf, res.Frame, s.config.JPEGQuality); err != nil {
		logger.Error("encode result failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to encode result",
		})
	}

	imagePath := filepath.Join(s.config.TempDir, id+".jpg")
	if err := os.WriteFile(imagePath, buf.Bytes(), 0o644); err != nil {
		logger.Error("write result failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to write result",
		})
	}

	logger.Info("best frame selected",
		"frame", res.Index,
		"frames", res.Frames,
		"smile_score", res.Score,
		"size", humanize.Bytes(uint64(buf.Len())),
		"path", imagePath,
	)

	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(buf.Bytes())
}
