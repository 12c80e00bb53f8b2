package camera

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/saptarshiroy39/Krishi-Sakhi-SIH-25-sub000/internal/model/chat"
)

// ErrNotImage means the picked file is not an image.
var ErrNotImage = errors.New("picked file is not an image")

// PickFile loads an image from disk. It is the fallback when no live
// camera device is available, standing in for the platform file picker.
func PickFile(path string) (chat.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chat.Attachment{}, fmt.Errorf("failed to read image file: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return chat.Attachment{}, ErrNotImage
	}

	return chat.Attachment{
		Name:    filepath.Base(path),
		MIME:    mimeType,
		Data:    data,
		Preview: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}
