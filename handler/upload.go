package handler

import (
	"fmt"
	"time"

	"github.com/ciby9833/xspace-sub002/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

const maxImageSize = 5 * 1024 * 1024

// UploadOrderImages pushes booking attachments (payment proofs, venue photos)
// to image storage and returns the URLs. The caller attaches them to an order
// through the order update endpoint.
func (h *Handler) UploadOrderImages(c *fiber.Ctx) error {
	if h.Cloudinary == nil {
		return utils.ErrorResponse(c, fiber.StatusServiceUnavailable, "UPLOAD_UNAVAILABLE", "Image storage is not configured", nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid multipart form: "+err.Error(), nil)
	}
	files := form.File["images"]
	if len(files) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "No images provided", nil)
	}

	uploaded := []fiber.Map{}
	failed := []fiber.Map{}

	for idx, file := range files {
		if file.Size > maxImageSize {
			failed = append(failed, fiber.Map{
				"filename": file.Filename,
				"error":    "File exceeds 5MB",
			})
			continue
		}

		f, err := file.Open()
		if err != nil {
			failed = append(failed, fiber.Map{
				"filename": file.Filename,
				"error":    "Cannot open file",
			})
			continue
		}

		publicID := fmt.Sprintf("order_image_%d_%d", time.Now().UnixNano(), idx)
		result, err := h.Cloudinary.Upload.Upload(c.Context(), f, uploader.UploadParams{
			Folder:       "orders/images",
			PublicID:     publicID,
			ResourceType: "image",
		})
		f.Close()

		if err != nil {
			failed = append(failed, fiber.Map{
				"filename": file.Filename,
				"error":    "Upload failed: " + err.Error(),
			})
			continue
		}

		uploaded = append(uploaded, fiber.Map{
			"filename": file.Filename,
			"url":      result.SecureURL,
			"publicId": result.PublicID,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"uploaded": uploaded,
		"failed":   failed,
	})
}
