package repourl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *RepoInfo
		wantErr string
	}{
		{
			name:  "valid repository URL",
			input: "https://github.com/testorg/testrepo",
			want: &RepoInfo{
				Owner: "testorg",
				Name:  "testrepo",
			},
		},
		{
			name:  "repository URL with .git suffix",
			input: "https://github.com/testorg/testrepo.git",
			want: &RepoInfo{
				Owner: "testorg",
				Name:  "testrepo",
			},
		},
		{
			name:  "repository URL with trailing slash",
			input: "https://github.com/testorg/testrepo/",
			want: &RepoInfo{
				Owner: "testorg",
				Name:  "testrepo",
			},
		},
		{
			name:  "bare owner/repo path",
			input: "testorg/testrepo",
			want: &RepoInfo{
				Owner: "testorg",
				Name:  "testrepo",
			},
		},
		{
			name:    "invalid URL",
			input:   "://github.com/testorg/testrepo",
			wantErr: "invalid URL",
		},
		{
			name:    "non-GitHub URL",
			input:   "https://gitlab.com/testorg/testrepo",
			wantErr: "not a GitHub URL",
		},
		{
			name:    "URL with extra path components",
			input:   "https://github.com/testorg/testrepo/tree/main",
			wantErr: "invalid repository URL format",
		},
		{
			name:    "path without repository",
			input:   "testorg",
			wantErr: "invalid repository path",
		},
		{
			name:    "path with empty owner",
			input:   "/testrepo",
			wantErr: "invalid repository path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepoInfoPath(t *testing.T) {
	info := &RepoInfo{Owner: "testorg", Name: "testrepo"}
	assert.Equal(t, "testorg/testrepo", info.Path())
	assert.Equal(t, "https://github.com/testorg/testrepo", info.URL())
}
