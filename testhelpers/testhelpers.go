package testhelpers

import (
	"archive/tar"
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ulikunitz/xz"
)

// Assert deep equality (and provide useful difference as a test failure)
func AssertEq(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if diff := cmp.Diff(actual, expected); diff != "" {
		t.Fatal(diff)
	}
}

// Assert the simplistic pointer (or literal value) equality
func AssertSameInstance(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if actual != expected {
		t.Fatalf("Expected %s and %s to be pointers to the variable", actual, expected)
	}
}

func AssertError(t *testing.T, actual error, expected string) {
	t.Helper()
	if actual == nil {
		t.Fatalf("Expected an error but got nil")
	}
	if !strings.Contains(actual.Error(), expected) {
		t.Fatalf(`Expected error to contain "%s", got "%s"`, expected, actual.Error())
	}
}

func AssertContains(t *testing.T, actual, expected string) {
	t.Helper()
	if !strings.Contains(actual, expected) {
		t.Fatalf("Expected: '%s' to contain '%s'", actual, expected)
	}
}

func AssertNotContains(t *testing.T, actual, expected string) {
	t.Helper()
	if strings.Contains(actual, expected) {
		t.Fatalf("Expected: '%s' to not contain '%s'", actual, expected)
	}
}

func AssertMatch(t *testing.T, actual string, expected string) {
	t.Helper()
	if !regexp.MustCompile(expected).MatchString(actual) {
		t.Fatalf("Expected: '%s' to match regex '%s'", actual, expected)
	}
}

func AssertNil(t *testing.T, actual interface{}) {
	t.Helper()
	if !isNil(actual) {
		t.Fatalf("Expected nil: %s", actual)
	}
}

func AssertNotNil(t *testing.T, actual interface{}) {
	t.Helper()
	if isNil(actual) {
		t.Fatal("Expected not nil")
	}
}

func isNil(value interface{}) bool {
	return value == nil || (reflect.TypeOf(value).Kind() == reflect.Ptr && reflect.ValueOf(value).IsNil())
}

func AssertNotEq(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if diff := cmp.Diff(actual, expected); diff == "" {
		t.Fatalf("Expected values to differ: %s", actual)
	}
}

func AssertDirContainsFileWithContents(t *testing.T, dir string, file string, expected string) {
	t.Helper()
	path := filepath.Join(dir, file)
	bytes, err := os.ReadFile(path)
	AssertNil(t, err)
	if string(bytes) != expected {
		t.Fatalf("file %s in dir %s has wrong contents: %s != %s", file, dir, string(bytes), expected)
	}
}

func AssertPathExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); err != nil {
		t.Fatalf("Expected %s to exist: %s", path, err)
	}
}

func AssertPathDoesNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Lstat(path); !os.IsNotExist(err) {
		t.Fatalf("Expected %s to not exist", path)
	}
}

// TarEntry describes one entry written by CreateTarXz. A non-empty Linkname produces a symlink; an
// empty Contents with a trailing slash in Name produces a directory.
type TarEntry struct {
	Name     string
	Contents string
	Linkname string
	Mode     int64
}

// CreateTarXz returns the bytes of an xz compressed tar holding entries, in order.
func CreateTarXz(t *testing.T, entries ...TarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	writeTarEntries(t, tw, entries)
	AssertNil(t, tw.Close())
	return compressXz(t, buf.Bytes())
}

// CreateTruncatedTarXz writes entries without the end of archive marker, appends trailer and
// compresses the result.
func CreateTruncatedTarXz(t *testing.T, trailer []byte, entries ...TarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	writeTarEntries(t, tw, entries)
	AssertNil(t, tw.Flush())
	buf.Write(trailer)
	return compressXz(t, buf.Bytes())
}

func writeTarEntries(t *testing.T, tw *tar.Writer, entries []TarEntry) {
	t.Helper()

	for _, entry := range entries {
		mode := entry.Mode
		switch {
		case entry.Linkname != "":
			if mode == 0 {
				mode = 0777
			}
			AssertNil(t, tw.WriteHeader(&tar.Header{Name: entry.Name, Typeflag: tar.TypeSymlink, Linkname: entry.Linkname, Mode: mode}))
		case strings.HasSuffix(entry.Name, "/"):
			if mode == 0 {
				mode = 0755
			}
			AssertNil(t, tw.WriteHeader(&tar.Header{Name: entry.Name, Typeflag: tar.TypeDir, Mode: mode}))
		default:
			if mode == 0 {
				mode = 0644
			}
			AssertNil(t, tw.WriteHeader(&tar.Header{
				Name:     entry.Name,
				Typeflag: tar.TypeReg,
				Mode:     mode,
				Size:     int64(len(entry.Contents)),
			}))
			_, err := tw.Write([]byte(entry.Contents))
			AssertNil(t, err)
		}
	}
}

func compressXz(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	AssertNil(t, err)
	_, err = xw.Write(data)
	AssertNil(t, err)
	AssertNil(t, xw.Close())
	return buf.Bytes()
}

// WriteFiles creates every file in files (relative path to contents) under dir.
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, contents := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		AssertNil(t, os.MkdirAll(filepath.Dir(path), 0755))
		AssertNil(t, os.WriteFile(path, []byte(contents), 0644))
	}
}

// ReadFiles returns every regular file under dir keyed by its slash separated relative path.
func ReadFiles(t *testing.T, dir string) map[string]string {
	t.Helper()
	files := map[string]string{}
	err := filepath.Walk(dir, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.Mode().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(contents)
		return nil
	})
	AssertNil(t, err)
	return files
}

func SkipIf(t *testing.T, expression bool, reason string) {
	t.Helper()
	if expression {
		t.Skip(reason)
	}
}
