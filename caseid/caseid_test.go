package caseid

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDir = "/tests"

func Test_GivenFilesWithDuplicateIDs_WhenExtract_ThenReturnsSortedUniqueIDs(t *testing.T) {
	// Given
	fs := newFs(t, map[string]string{
		"login_test.go":   `t.Run("C123: login test", func(t *testing.T) {})`,
		"logout_test.go":  "// C123 also here\n// C7:\tlogout\n",
		"payment_test.go": "C45\tpayment\nC3: refund\n",
	})
	extractor := NewExtractor(fs)

	// When
	ids, err := extractor.Extract(testDir)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []int{3, 7, 45, 123}, ids)
}

func Test_GivenSameCorpus_WhenExtractTwice_ThenResultsAreIdentical(t *testing.T) {
	// Given
	fs := newFs(t, map[string]string{
		"a_test.go": "C9: a\nC2 b\nC9 c\n",
		"b_test.go": "C5: d\n",
	})
	extractor := NewExtractor(fs)

	// When
	first, err := extractor.Extract(testDir)
	require.NoError(t, err)
	second, err := extractor.Extract(testDir)
	require.NoError(t, err)

	// Then
	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1], first[i])
	}
}

func Test_GivenTokensWithoutDelimiter_WhenExtract_ThenReturnsEmpty(t *testing.T) {
	// Given
	fs := newFs(t, map[string]string{
		"a_test.go": "C12a abc123: C C: C0: D12 C99",
	})
	extractor := NewExtractor(fs)

	// When
	ids, err := extractor.Extract(testDir)

	// Then
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func Test_GivenNestedDirectory_WhenExtract_ThenSkipsIt(t *testing.T) {
	// Given
	fs := newFs(t, map[string]string{
		"a_test.go":        "C1: top level\n",
		"nested/b_test.go": "C2: nested\n",
	})
	extractor := NewExtractor(fs)

	// When
	ids, err := extractor.Extract(testDir)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)
}

func Test_GivenMissingDirectory_WhenExtract_ThenFails(t *testing.T) {
	// Given
	extractor := NewExtractor(afero.NewMemMapFs())

	// When
	ids, err := extractor.Extract("/missing")

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/missing")
	assert.Nil(t, ids)
}

func Test_GivenUnreadableFile_WhenExtract_ThenFailsWithoutPartialResult(t *testing.T) {
	// Given
	fs := newFs(t, map[string]string{
		"a_test.go": "C1: readable\n",
		"b_test.go": "C2: unreadable\n",
	})
	broken := filepath.Join(testDir, "b_test.go")
	extractor := NewExtractor(failingFs{Fs: fs, path: broken})

	// When
	ids, err := extractor.Extract(testDir)

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken)
	assert.Nil(t, ids)
}

func Test_MatchTitle(t *testing.T) {
	tests := []struct {
		title string
		want  []int
	}{
		{title: "Login C100 C200", want: []int{100, 200}},
		{title: "C42: checkout", want: []int{42}},
		{title: "TestLogin C7", want: []int{7}},
		{title: "Login flow", want: nil},
		{title: "C12a and XC13", want: nil},
		{title: "", want: nil},
		{title: "C5 then C5 again", want: []int{5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchTitle(tt.title))
		})
	}
}

func newFs(t *testing.T, files map[string]string) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testDir, 0755))
	for name, content := range files {
		pth := filepath.Join(testDir, name)
		require.NoError(t, fs.MkdirAll(filepath.Dir(pth), 0755))
		require.NoError(t, afero.WriteFile(fs, pth, []byte(content), 0644))
	}
	return fs
}

type failingFs struct {
	afero.Fs
	path string
}

func (f failingFs) Open(name string) (afero.File, error) {
	if name == f.path {
		return nil, errors.New("permission denied")
	}
	return f.Fs.Open(name)
}
