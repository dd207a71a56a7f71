package collector

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rileyhilliard/rtop/internal/telemetry"
)

// SysFS reads kernel pseudo-files relative to a root directory. Production
// code uses "/"; tests point it at a fixture tree.
type SysFS struct {
	root string
}

// NewSysFS returns a SysFS rooted at root. An empty root means "/".
func NewSysFS(root string) SysFS {
	if root == "" {
		root = "/"
	}
	return SysFS{root: root}
}

// Path maps an absolute host path such as /sys/class/drm into the root.
func (s SysFS) Path(elem ...string) string {
	return filepath.Join(append([]string{s.root}, elem...)...)
}

// ReadString reads a file and trims surrounding whitespace.
func (s SysFS) ReadString(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// ReadUint reads an unsigned integer file.
func (s SysFS) ReadUint(path string) (uint64, error) {
	raw, err := s.ReadString(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(raw, 10, 64)
}

// ReadFloat reads a floating point file.
func (s SysFS) ReadFloat(path string) (float64, error) {
	raw, err := s.ReadString(path)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(raw, 64)
}

// Exists reports whether path exists.
func (s SysFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path is a directory.
func (s SysFS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Entries lists the names in dir, sorted. Unreadable dirs yield nil.
func (s SysFS) Entries(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// Readable reports whether dir can be listed.
func (s SysFS) Readable(dir string) bool {
	_, err := os.ReadDir(dir)
	return err == nil
}

// readNote maps a read error onto the note shown next to an absent value.
func readNote(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fs.ErrPermission):
		return telemetry.NoteNoPerm
	case errors.Is(err, fs.ErrNotExist):
		return telemetry.NoteNA
	default:
		return telemetry.NoteUnread
	}
}

func isPermission(err error) bool {
	return errors.Is(err, fs.ErrPermission)
}

func sortedUnique(paths []string) []string {
	sort.Strings(paths)
	var out []string
	for _, p := range paths {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	return out
}
