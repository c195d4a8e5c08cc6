// Package archive writes directory trees to tar streams and extracts tar streams to disk.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/buildpacks/libcnb/internal/style"
)

// RootEntryName is the name under which the archived directory itself is written.
const RootEntryName = "./"

var NormalizedDateTime time.Time

func init() {
	NormalizedDateTime = time.Date(1980, time.January, 1, 0, 0, 1, 0, time.UTC)
}

// Filter reports whether the entry at the slash separated relPath should be left out of an archive.
type Filter func(relPath string, fi os.FileInfo) bool

// WriteDirToTar writes srcDir and everything below it to tw. The directory itself comes first as
// RootEntryName; other entries are named by their slash separated path relative to srcDir.
func WriteDirToTar(tw *tar.Writer, srcDir string, uid, gid int, filter Filter) error {
	return filepath.Walk(srcDir, func(file string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if fi.Mode()&os.ModeSocket != 0 {
			return nil
		}

		relPath, err := filepath.Rel(srcDir, file)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if relPath != "." && filter != nil && filter(relPath, fi) {
			if fi.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		var header *tar.Header
		if fi.Mode()&os.ModeSymlink != 0 {
			target, err := os.Readlink(file)
			if err != nil {
				return err
			}

			header, err = tar.FileInfoHeader(fi, target)
			if err != nil {
				return err
			}
		} else {
			header, err = tar.FileInfoHeader(fi, fi.Name())
			if err != nil {
				return err
			}
		}

		if relPath == "." {
			header.Name = RootEntryName
		} else {
			header.Name = relPath
		}
		finalizeHeader(header, uid, gid)

		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		if fi.Mode().IsRegular() {
			f, err := os.Open(filepath.Clean(file))
			if err != nil {
				return err
			}
			defer f.Close()

			if _, err := io.Copy(tw, f); err != nil {
				return err
			}
		}

		return nil
	})
}

func finalizeHeader(header *tar.Header, uid, gid int) {
	header.ModTime = NormalizedDateTime
	header.AccessTime = time.Time{}
	header.ChangeTime = time.Time{}
	header.Uid = uid
	header.Gid = gid
	header.Uname = ""
	header.Gname = ""
}

// ErrUnsafePath marks an entry whose path would resolve outside of the destination.
var ErrUnsafePath = errors.New("path escapes destination")

// ErrUnsupportedType marks an entry of a type that is not extracted.
var ErrUnsupportedType = errors.New("unsupported entry type")

type extractSettings struct {
	prefix string
	onSkip func(name string, reason error)
}

// ExtractOption configures ExtractTar.
type ExtractOption func(*extractSettings)

// WithStripPrefix requires every entry to live under prefix and removes it from the extracted path.
// Entries equal to prefix itself are not written.
func WithStripPrefix(prefix string) ExtractOption {
	return func(s *extractSettings) {
		s.prefix = prefix
	}
}

// WithSkipHandler is called for each entry that is left out of the extraction.
func WithSkipHandler(fn func(name string, reason error)) ExtractOption {
	return func(s *extractSettings) {
		s.onSkip = fn
	}
}

// ExtractTar unpacks the tar stream r into dest. Entries with unsafe paths, symlinks leaving dest,
// entries below a symlink and unsupported types are skipped rather than failing the extraction. A
// header that cannot be read ends the extraction without an error.
func ExtractTar(r io.Reader, dest string, opts ...ExtractOption) error {
	settings := &extractSettings{onSkip: func(string, error) {}}
	for _, opt := range opts {
		opt(settings)
	}

	prefix, err := cleanRelative(settings.prefix)
	if err != nil {
		return errors.Wrapf(err, "invalid prefix %s", style.Symbol(settings.prefix))
	}

	if err := os.MkdirAll(dest, 0750); err != nil {
		return errors.Wrapf(err, "creating destination %s", style.Symbol(dest))
	}

	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			// the reader cannot resume after a bad header
			settings.onSkip("", errors.Wrap(err, "reading next tar entry"))
			return nil
		}

		name, err := cleanRelative(hdr.Name)
		if err != nil {
			settings.onSkip(hdr.Name, err)
			continue
		}
		if name == "" {
			continue
		}

		name, err = stripPrefix(name, prefix)
		if err != nil {
			return err
		}
		if name == "" {
			continue
		}

		linked, err := underSymlink(dest, name)
		if err != nil {
			return err
		}
		if linked {
			settings.onSkip(hdr.Name, ErrUnsafePath)
			continue
		}

		path := filepath.Join(dest, filepath.FromSlash(name))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(path, hdr.FileInfo().Mode().Perm()|0700); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeFile(tr, path, hdr.FileInfo().Mode().Perm()); err != nil {
				return errors.Wrapf(err, "extracting %s", style.Symbol(hdr.Name))
			}
		case tar.TypeSymlink:
			if !safeLinkTarget(name, hdr.Linkname) {
				settings.onSkip(hdr.Name, ErrUnsafePath)
				continue
			}
			if err := ensureParent(path); err != nil {
				return err
			}
			if err := os.Symlink(hdr.Linkname, path); err != nil {
				return errors.Wrapf(err, "creating symlink %s", style.Symbol(hdr.Name))
			}
		case tar.TypeLink:
			target, err := cleanRelative(hdr.Linkname)
			if err == nil {
				target, err = stripPrefix(target, prefix)
			}
			if err != nil || target == "" {
				settings.onSkip(hdr.Name, ErrUnsafePath)
				continue
			}
			if err := ensureParent(path); err != nil {
				return err
			}
			if err := os.Link(filepath.Join(dest, filepath.FromSlash(target)), path); err != nil {
				return errors.Wrapf(err, "creating hard link %s", style.Symbol(hdr.Name))
			}
		default:
			settings.onSkip(hdr.Name, errors.Wrapf(ErrUnsupportedType, "type %s", style.SymbolF("%c", hdr.Typeflag)))
		}
	}
}

func writeFile(r io.Reader, path string, mode os.FileMode) error {
	if err := ensureParent(path); err != nil {
		return err
	}

	if fi, err := os.Lstat(path); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(path); err != nil {
			return err
		}
	}

	fh, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(fh, r); err != nil {
		fh.Close()
		return err
	}

	return fh.Close()
}

func ensureParent(path string) error {
	_, err := os.Stat(filepath.Dir(path))
	if os.IsNotExist(err) {
		return os.MkdirAll(filepath.Dir(path), 0750)
	}
	return err
}

// cleanRelative normalizes an entry name to a slash separated path without leading "./" or "/".
// The archive root becomes the empty string.
func cleanRelative(name string) (string, error) {
	for _, part := range strings.Split(strings.ReplaceAll(name, "\\", "/"), "/") {
		if part == ".." {
			return "", ErrUnsafePath
		}
	}

	cleaned := strings.TrimPrefix(path.Clean("/"+name), "/")
	return cleaned, nil
}

// underSymlink reports whether a directory between dest and the slash separated name is a symlink.
func underSymlink(dest, name string) (bool, error) {
	parts := strings.Split(name, "/")
	current := dest
	for _, part := range parts[:len(parts)-1] {
		current = filepath.Join(current, part)
		fi, err := os.Lstat(current)
		if os.IsNotExist(err) {
			return false, nil
		} else if err != nil {
			return false, err
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return true, nil
		}
	}
	return false, nil
}

// safeLinkTarget reports whether linkname, read from the directory of name, stays inside the
// extraction root. Only leading ".." components are accepted.
func safeLinkTarget(name, linkname string) bool {
	if linkname == "" || path.IsAbs(linkname) || filepath.IsAbs(linkname) {
		return false
	}

	target := strings.ReplaceAll(linkname, "\\", "/")
	descending := false
	for _, part := range strings.Split(target, "/") {
		switch part {
		case "", ".":
		case "..":
			if descending {
				return false
			}
		default:
			descending = true
		}
	}

	resolved := path.Join(path.Dir(name), target)
	return resolved != ".." && !strings.HasPrefix(resolved, "../")
}

// stripPrefix removes prefix from name matching whole path components.
func stripPrefix(name, prefix string) (string, error) {
	if prefix == "" {
		return name, nil
	}

	if name == prefix {
		return "", nil
	}

	if strings.HasPrefix(name, prefix+"/") {
		return strings.TrimPrefix(name, prefix+"/"), nil
	}

	return "", fmt.Errorf("entry %s does not start with prefix %s", style.Symbol(name), style.Symbol(prefix))
}
