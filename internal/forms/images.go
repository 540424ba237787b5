package forms

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// Image limits.
const (
	MaxImages    = 3
	MaxImageSize = 5 * 1024 * 1024
)

// ImageFile is a local file picked for upload.
type ImageFile struct {
	Path        string
	Name        string
	ContentType string // declared type, from the file extension
	Size        int64
}

// StatImage describes the file at path without reading it.
func StatImage(path string) (ImageFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ImageFile{}, fmt.Errorf("forms.StatImage: %w", err)
	}
	if info.IsDir() {
		return ImageFile{}, fmt.Errorf("forms.StatImage: %s is a directory", path)
	}
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ImageFile{
		Path:        path,
		Name:        filepath.Base(path),
		ContentType: ct,
		Size:        info.Size(),
	}, nil
}

// ImageErrorKind says which image rule was broken.
type ImageErrorKind int

const (
	KindType ImageErrorKind = iota + 1
	KindSize
	KindCount
)

// ImageError rejects a whole batch.
type ImageError struct {
	Kind ImageErrorKind
	File string // offending file for KindType and KindSize
}

func (e *ImageError) Error() string {
	switch e.Kind {
	case KindType:
		return "Разрешены только JPG или JPEG изображения"
	case KindSize:
		return "Каждое изображение должно быть не больше 5 МБ"
	case KindCount:
		return "Максимум 3 изображения"
	}
	return "Некорректное изображение"
}

// ImageSet is the ordered list of images attached to a listing form.
type ImageSet struct {
	files []ImageFile
}

// Add appends batch if every file passes. Files are checked in order for
// type then size; the count limit is checked after. The first violation
// rejects the whole batch and the set is left unchanged.
func (s *ImageSet) Add(batch ...ImageFile) error {
	for _, f := range batch {
		if f.ContentType != "image/jpeg" && f.ContentType != "image/jpg" {
			return &ImageError{Kind: KindType, File: f.Name}
		}
		if f.Size > MaxImageSize {
			return &ImageError{Kind: KindSize, File: f.Name}
		}
	}
	if len(s.files)+len(batch) > MaxImages {
		return &ImageError{Kind: KindCount}
	}
	s.files = append(s.files, batch...)
	return nil
}

// Files returns a copy of the accepted files.
func (s *ImageSet) Files() []ImageFile {
	return append([]ImageFile(nil), s.files...)
}

func (s *ImageSet) Len() int { return len(s.files) }

func (s *ImageSet) Reset() { s.files = nil }

// ParsePaths splits a comma-separated list of paths, dropping blanks.
func ParsePaths(input string) []string {
	var out []string
	for _, p := range strings.Split(input, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
