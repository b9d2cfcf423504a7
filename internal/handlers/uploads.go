package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/marblesound/marblesound-api/internal/errors"
	"github.com/marblesound/marblesound-api/internal/storage"
)

// storeUpload reads one multipart file field and writes it into
// storage. It responds with the appropriate error itself and reports
// success via the bool. A missing optional field yields (nil, true).
func storeUpload(c *gin.Context, store *storage.Storage, category storage.Category, field string, required bool) (*string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) && !required {
			return nil, true
		}
		apierrors.BadRequest(c, "Missing file field: "+field)
		return nil, false
	}

	src, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Unreadable file field: "+field)
		return nil, false
	}
	defer src.Close()

	path, err := store.Store(category, fileHeader.Filename, src)
	if err != nil {
		if errors.Is(err, storage.ErrDisallowedExtension) {
			apierrors.BadRequest(c, err.Error())
			return nil, false
		}
		apierrors.InternalError(c, "Failed to store file")
		return nil, false
	}

	return &path, true
}
