package audio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/multierr"
)

// TempFile — временный аудиобуфер на диске на время одного цикла.
// Release безопасно вызывать несколько раз.
type TempFile struct {
	path     string
	size     int
	released bool
}

// NewTempFile пишет буфер во временный файл; при ошибке файл уже удалён.
func NewTempFile(data []byte, suffix string) (*TempFile, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio buffer")
	}

	f, err := os.CreateTemp("", "voice-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("create tmp audio: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		return nil, multierr.Combine(
			fmt.Errorf("write tmp audio: %w", err),
			f.Close(),
			os.Remove(f.Name()),
		)
	}
	if err := f.Close(); err != nil {
		return nil, multierr.Append(fmt.Errorf("close tmp audio: %w", err), os.Remove(f.Name()))
	}

	return &TempFile{path: f.Name(), size: len(data)}, nil
}

func (t *TempFile) Path() string {
	return t.path
}

func (t *TempFile) Size() int {
	return t.size
}

func (t *TempFile) Release() error {
	if t == nil || t.released {
		return nil
	}
	t.released = true
	if err := os.Remove(t.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove tmp audio: %w", err)
	}
	return nil
}

// SuffixFor подбирает расширение по MIME-типу — Whisper смотрит на имя файла.
func SuffixFor(contentType string) string {
	ct := strings.ToLower(contentType)
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	switch strings.TrimSpace(ct) {
	case "audio/webm", "video/webm":
		return ".webm"
	case "audio/ogg", "audio/opus":
		return ".ogg"
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return ".m4a"
	}
	return ".wav"
}
