package release_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mekorot/linker/pkg/release"
)

func TestDeriveChannel(t *testing.T) {
	tests := []struct {
		name   string
		branch string
		want   string
	}{
		{
			name:   "main stays main",
			branch: "main",
			want:   "main",
		},
		{
			name:   "inner segment extracted and lowercased",
			branch: "feature/foo-Bar/baz",
			want:   "foo-bar",
		},
		{
			name:   "plain branch used as-is",
			branch: "hotfix",
			want:   "hotfix",
		},
		{
			name:   "invalid characters stripped",
			branch: "feat/My_Branch!/x",
			want:   "mybranch",
		},
		{
			name:   "single slash keeps whole name minus the slash",
			branch: "feature/foo",
			want:   "featurefoo",
		},
		{
			name:   "deep path takes penultimate segment",
			branch: "a/b/c/d",
			want:   "c",
		},
		{
			name:   "dots and dashes survive",
			branch: "release/v1.2-rc/next",
			want:   "v1.2-rc",
		},
		{
			name:   "all-invalid name degrades to empty",
			branch: "___",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, release.DeriveChannel(tt.branch), tt.want)
		})
	}
}
