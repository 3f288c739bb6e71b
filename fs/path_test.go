package fs_test

import (
	"testing"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		hash string
		want string
	}{
		{
			name: "simple path",
			url:  "https://example.com/docs/api/users",
			hash: "abc123",
			want: "example.com/docs/api/users.abc123.html",
		},
		{
			name: "trailing slash becomes index",
			url:  "https://example.com/docs/",
			hash: "abc123",
			want: "example.com/docs/index.abc123.html",
		},
		{
			name: "root path becomes index",
			url:  "https://example.com/",
			hash: "abc123",
			want: "example.com/index.abc123.html",
		},
		{
			name: "empty path becomes index",
			url:  "https://example.com",
			hash: "abc123",
			want: "example.com/index.abc123.html",
		},
		{
			name: "ignores query string and fragment",
			url:  "https://example.com/docs/api?version=2#top",
			hash: "abc123",
			want: "example.com/docs/api.abc123.html",
		},
		{
			name: "lowercases host and drops port",
			url:  "https://Example.COM:8080/Page",
			hash: "abc123",
			want: "example.com/Page.abc123.html",
		},
		{
			name: "shortens long hashes",
			url:  "https://example.com/a",
			hash: "0123456789abcdef",
			want: "example.com/a.01234567.html",
		},
		{
			name: "omits an empty hash",
			url:  "https://example.com/a",
			want: "example.com/a.html",
		},
		{
			name: "replaces unsafe characters",
			url:  "https://example.com/a:b/c*d",
			hash: "h",
			want: "example.com/a_b/c_d.h.html",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.FragmentPath(tt.url, tt.hash)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects path traversal", func(t *testing.T) {
		t.Parallel()

		_, err := fs.FragmentPath("https://example.com/../../etc/passwd", "h")

		assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
		assert.Contains(t, distill.ErrorMessage(err), "path traversal")
	})

	t.Run("rejects unparseable URLs", func(t *testing.T) {
		t.Parallel()

		_, err := fs.FragmentPath("http://[::1", "h")

		assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
	})
}

func TestMarkdownPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com/a.h.md", fs.MarkdownPath("example.com/a.h.html"))
}
