package vault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BALASANKARP/Edurecap/internal/recording"
)

// Vault is the permanent home of saved audio: <root>/<name>.m4a.
type Vault struct {
	root string
}

func New(root string) *Vault {
	return &Vault{root: root}
}

func (v *Vault) Root() string {
	return v.root
}

// PathFor returns where the payload for name lives once committed.
func (v *Vault) PathFor(name string) string {
	return filepath.Join(v.root, name+recording.Extension)
}

// ValidateName rejects names that cannot be used as a payload file name.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	switch {
	case trimmed == "":
		return fmt.Errorf("%w: name is required", recording.ErrValidation)
	case strings.ContainsAny(name, `/\`) || trimmed == "." || trimmed == "..":
		return fmt.Errorf("%w: name %q must not contain path separators", recording.ErrValidation, name)
	}
	return nil
}

// Commit moves src into the vault under name and returns the new path.
// It never overwrites an existing payload.
func (v *Vault) Commit(src, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if err := os.MkdirAll(v.root, 0755); err != nil {
		return "", fmt.Errorf("%w: create %s: %v", recording.ErrStorage, v.root, err)
	}

	dst := v.PathFor(name)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("%w: %s already exists", recording.ErrValidation, dst)
	}

	if err := move(src, dst); err != nil {
		return "", fmt.Errorf("%w: move %s: %v", recording.ErrStorage, src, err)
	}
	return dst, nil
}

// Restore moves a committed payload back to its source location.
func (v *Vault) Restore(committed, src string) error {
	if err := move(committed, src); err != nil {
		return fmt.Errorf("%w: restore %s: %v", recording.ErrStorage, src, err)
	}
	return nil
}

// Remove deletes a payload. A missing file is not an error.
func (v *Vault) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %v", recording.ErrStorage, path, err)
	}
	return nil
}

// move renames src to dst, copying across filesystems when rename fails.
func move(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	in.Close()
	return os.Remove(src)
}
