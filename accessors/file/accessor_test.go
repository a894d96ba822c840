package file_test

import (
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/stretchr/testify/suite"
	"www.velocidex.com/golang/rbdump/accessors/file"
)

type AccessorTestSuite struct {
	suite.Suite
	tmpdir string
}

func (self *AccessorTestSuite) SetupTest() {
	tmpdir, err := ioutil.TempDir("", "accessor_test")
	assert.NoError(self.T(), err)

	self.tmpdir = tmpdir
}

func (self *AccessorTestSuite) TearDownTest() {
	os.RemoveAll(self.tmpdir) // clean up
}

// This looks like
// tmpdir/subdir/1.txt
// tmpdir/b.txt
// tmpdir/a.txt
func (self *AccessorTestSuite) TestReadDir() {
	dirname := filepath.Join(self.tmpdir, "subdir")
	assert.NoError(self.T(), os.Mkdir(dirname, 0777))

	assert.NoError(self.T(), ioutil.WriteFile(
		filepath.Join(dirname, "1.txt"), []byte("Hello world"), 0666))
	assert.NoError(self.T(), ioutil.WriteFile(
		filepath.Join(self.tmpdir, "b.txt"), []byte("bb"), 0666))
	assert.NoError(self.T(), ioutil.WriteFile(
		filepath.Join(self.tmpdir, "a.txt"), []byte("a"), 0666))

	accessor := file.NewOSFileSystemAccessor()
	children, err := accessor.ReadDir(self.tmpdir)
	assert.NoError(self.T(), err)

	// Sorted by name
	names := []string{}
	for _, c := range children {
		names = append(names, c.Name())
	}
	assert.Equal(self.T(), []string{"a.txt", "b.txt", "subdir"}, names)

	assert.Equal(self.T(), int64(1), children[0].Size())
	assert.False(self.T(), children[0].IsDir())
	assert.True(self.T(), children[2].IsDir())
	assert.Equal(self.T(), filepath.Join(self.tmpdir, "subdir"),
		children[2].FullPath())
	assert.False(self.T(), children[0].Mtime().IsZero())
}

func (self *AccessorTestSuite) TestLstatAndOpen() {
	filename := filepath.Join(self.tmpdir, "1.txt")
	assert.NoError(self.T(), ioutil.WriteFile(
		filename, []byte("Hello world"), 0666))

	accessor := file.NewOSFileSystemAccessor()
	stat, err := accessor.Lstat(filename)
	assert.NoError(self.T(), err)
	assert.Equal(self.T(), int64(11), stat.Size())
	assert.Equal(self.T(), "1.txt", stat.Name())

	fd, err := accessor.Open(filename)
	assert.NoError(self.T(), err)
	defer fd.Close()

	buf := make([]byte, 5)
	n, err := fd.ReadAt(buf, 6)
	assert.NoError(self.T(), err)
	assert.Equal(self.T(), "world", string(buf[:n]))

	// Closing twice is fine.
	assert.NoError(self.T(), fd.Close())
}

func (self *AccessorTestSuite) TestMissing() {
	accessor := file.NewOSFileSystemAccessor()
	_, err := accessor.Lstat(filepath.Join(self.tmpdir, "nothere"))
	assert.Error(self.T(), err)
	assert.True(self.T(), errors.Is(err, os.ErrNotExist))

	_, err = accessor.ReadDir(filepath.Join(self.tmpdir, "nothere"))
	assert.True(self.T(), errors.Is(err, os.ErrNotExist))
}

func TestFileAccessor(t *testing.T) {
	suite.Run(t, &AccessorTestSuite{})
}
