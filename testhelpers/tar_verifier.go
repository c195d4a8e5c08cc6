package testhelpers

import (
	"archive/tar"
	"io"
	"testing"
	"time"

	"github.com/ulikunitz/xz"
)

type TarVerifier struct {
	T   *testing.T
	Tr  *tar.Reader
	Uid int
	Gid int
}

// NewTarXzVerifier reads an xz compressed tar stream from r.
func NewTarXzVerifier(t *testing.T, r io.Reader, uid, gid int) *TarVerifier {
	t.Helper()
	xr, err := xz.NewReader(r)
	AssertNil(t, err)
	return &TarVerifier{T: t, Tr: tar.NewReader(xr), Uid: uid, Gid: gid}
}

func (v *TarVerifier) next(name string, typeflag byte) *tar.Header {
	v.T.Helper()
	header, err := v.Tr.Next()
	if err != nil {
		v.T.Fatalf("Failed to get next file: %s", err)
	}

	if header.Name != name {
		v.T.Fatalf(`expected entry with name %s, got %s`, name, header.Name)
	}
	if header.Typeflag != typeflag {
		v.T.Fatalf(`expected %s to have type %c, got %c`, header.Name, typeflag, header.Typeflag)
	}
	if header.Uid != v.Uid {
		v.T.Fatalf(`expected %s to have Uid %d but, got: %d`, header.Name, v.Uid, header.Uid)
	}
	if header.Gid != v.Gid {
		v.T.Fatalf(`expected %s to have Gid %d but, got: %d`, header.Name, v.Gid, header.Gid)
	}
	if !header.ModTime.Equal(time.Date(1980, time.January, 1, 0, 0, 1, 0, time.UTC)) {
		v.T.Fatalf(`expected %s to have been normalized, got: %s`, header.Name, header.ModTime.String())
	}
	return header
}

func (v *TarVerifier) NextDirectory(name string) {
	v.T.Helper()
	v.next(name, tar.TypeDir)
}

func (v *TarVerifier) NextFile(name, expectedFileContents string) {
	v.T.Helper()
	v.next(name, tar.TypeReg)

	fileContents, err := io.ReadAll(v.Tr)
	AssertNil(v.T, err)
	if string(fileContents) != expectedFileContents {
		v.T.Fatalf(`expected %s to have %s got %s`, name, expectedFileContents, string(fileContents))
	}
}

func (v *TarVerifier) NextSymLink(name, link string) {
	v.T.Helper()
	header := v.next(name, tar.TypeSymlink)
	if header.Linkname != link {
		v.T.Fatalf(`expected %s to have target %s got: %s`, name, link, header.Linkname)
	}
}

func (v *TarVerifier) NoMoreFilesExist() {
	v.T.Helper()
	header, err := v.Tr.Next()
	if err == nil {
		v.T.Fatalf(`expected no more files but found: %s`, header.Name)
	} else if err != io.EOF {
		v.T.Error(err.Error())
	}
}
