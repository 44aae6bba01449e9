package storage

import (
	"context"
	"os"
)

type FileSeedState struct {
	FilePath string
}

func NewFileSeedState(filePath string) *FileSeedState {
	return &FileSeedState{FilePath: filePath}
}

func (f *FileSeedState) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(f.FilePath)
}
