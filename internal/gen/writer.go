package gen

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/zeebo/xxh3"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteResult lists what WriteFiles did with each file.
type WriteResult struct {
	Written   []string
	Unchanged []string
}

// WriteFiles writes all generated files, creating their directories. A file
// whose current content hashes the same as the generated content is left
// untouched, so regeneration without a schema change modifies nothing.
func WriteFiles(files []GeneratedFile) (WriteResult, error) {
	var res WriteResult

	for _, file := range files {
		outputPath := file.Path()

		same, err := sameContent(outputPath, file.Content)
		if err != nil {
			return res, err
		}

		if same {
			res.Unchanged = append(res.Unchanged, outputPath)
			continue
		}

		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return res, fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(outputPath, file.Content, filePerm); err != nil {
			return res, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		res.Written = append(res.Written, outputPath)
	}

	return res, nil
}

// sameContent reports whether the file at path already holds content. The
// existing file is streamed through the hasher rather than read into memory;
// a size mismatch answers without reading at all.
func sameContent(path string, content []byte) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	if info.Size() != int64(len(content)) {
		return false, nil
	}

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	return h.Sum64() == xxh3.Hash(content), nil
}
