package domain

import (
	"fmt"

	"dashboard-client/pkg/utils"
)

// FileSelection is a file the user picked, fully read into memory.
type FileSelection struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f FileSelection) Size() int64 {
	return int64(len(f.Data))
}

func (f FileSelection) IsImage() bool {
	return utils.IsImage(f.ContentType)
}

// ValidateImage checks the type and, when limit > 0, the size of one file.
func ValidateImage(op string, f FileSelection, limit int64) error {
	if !f.IsImage() {
		return NewError(KindInvalidFile, op, "Please select an image file", nil)
	}
	if limit > 0 && f.Size() > limit {
		return NewError(KindInvalidFile, op, fmt.Sprintf("File size should be less than %s", utils.HumanBytes(limit)), nil)
	}
	return nil
}
