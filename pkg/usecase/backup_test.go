package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octobak/pkg/domain/interfaces"
	"github.com/m-mizutani/octobak/pkg/domain/mock"
	"github.com/m-mizutani/octobak/pkg/domain/model"
	"github.com/m-mizutani/octobak/pkg/domain/types"
	"github.com/m-mizutani/octobak/pkg/infra"
	"github.com/m-mizutani/octobak/pkg/infra/github"
	"github.com/m-mizutani/octobak/pkg/infra/reporter"
	"github.com/m-mizutani/octobak/pkg/usecase"
	"github.com/m-mizutani/octobak/pkg/utils/testutil"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
)

func threeRepos() []*model.Repository {
	return []*model.Repository{
		{Name: "alpha", FullName: "acme/alpha", UpdatedAt: "2024-03-03T00:00:00Z", DefaultBranch: "main"},
		{Name: "beta", FullName: "acme/beta", UpdatedAt: "2024-03-02T00:00:00Z", DefaultBranch: "master"},
		{Name: "gamma", FullName: "acme/gamma", UpdatedAt: "2024-03-01T00:00:00Z", DefaultBranch: "main"},
	}
}

func archiveBody(name string) io.ReadCloser {
	return io.NopCloser(strings.NewReader("zip of " + name))
}

func TestBackup(t *testing.T) {
	t.Run("one failing repository does not stop the others", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data")
		events := &eventLog{}
		mockGH := &mock.GitHubMock{
			ListRepositoriesFunc: func(ctx context.Context, owner string, ownerType types.OwnerType) ([]*model.Repository, error) {
				gt.V(t, owner).Equal("acme")
				gt.V(t, ownerType).Equal(types.OwnerTypeOrganization)
				return threeRepos(), nil
			},
			OpenArchiveFunc: func(ctx context.Context, input *interfaces.OpenArchiveInput) (io.ReadCloser, error) {
				if input.Repo == "beta" {
					return nil, &types.APIError{StatusCode: http.StatusInternalServerError, Repo: "acme/beta"}
				}
				return archiveBody(input.Repo), nil
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHub(mockGH), infra.WithReporter(events.reporter())))

		summary := gt.R1(uc.Backup(context.Background(), &model.BackupTarget{
			Owner:     "acme",
			OwnerType: types.OwnerTypeOrganization,
			OutputDir: dir,
		})).NoError(t)

		gt.V(t, summary.Total).Equal(3)
		gt.V(t, summary.Downloaded).Equal(2)
		gt.V(t, summary.Skipped).Equal(0)
		gt.V(t, summary.Failed).Equal(1)
		gt.A(t, summary.Failures).Length(1)
		gt.V(t, summary.Failures[0].Repo).Equal("acme/beta")
		gt.S(t, summary.Failures[0].Error).Contains("500")

		gt.V(t, testutil.ListDir(t, dir)).Equal([]string{
			"acme_alpha_2024-03-03.zip",
			"acme_gamma_2024-03-01.zip",
		})

		calls := mockGH.OpenArchiveCalls()
		gt.A(t, calls).Length(3)
		gt.V(t, calls[1].Input.Ref).Equal(types.BranchName("master"))

		gt.V(t, events.types()).Equal([]model.EventType{
			model.EventRunStarted,
			model.EventRepositoriesListed,
			model.EventArchiveDownloaded,
			model.EventArchiveFailed,
			model.EventArchiveDownloaded,
			model.EventRunCompleted,
		})
		failed := events.ofType(model.EventArchiveFailed)
		gt.V(t, failed[0].RepoName()).Equal("acme/beta")
	})

	t.Run("second run skips existing archives", func(t *testing.T) {
		dir := t.TempDir()
		mockGH := &mock.GitHubMock{
			ListRepositoriesFunc: func(ctx context.Context, owner string, ownerType types.OwnerType) ([]*model.Repository, error) {
				return threeRepos(), nil
			},
			OpenArchiveFunc: func(ctx context.Context, input *interfaces.OpenArchiveInput) (io.ReadCloser, error) {
				return archiveBody(input.Repo), nil
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHub(mockGH)))
		target := &model.BackupTarget{Owner: "acme", OutputDir: dir}

		first := gt.R1(uc.Backup(context.Background(), target)).NoError(t)
		gt.V(t, first.Downloaded).Equal(3)
		before := testutil.ListDir(t, dir)

		second := gt.R1(uc.Backup(context.Background(), target)).NoError(t)
		gt.V(t, second.Downloaded).Equal(0)
		gt.V(t, second.Skipped).Equal(3)
		gt.V(t, second.Succeeded()).Equal(3)
		gt.A(t, mockGH.OpenArchiveCalls()).Length(3)
		gt.V(t, testutil.ListDir(t, dir)).Equal(before)
	})

	t.Run("empty account completes without downloads", func(t *testing.T) {
		dir := t.TempDir()
		events := &eventLog{}
		mockGH := &mock.GitHubMock{
			ListRepositoriesFunc: func(ctx context.Context, owner string, ownerType types.OwnerType) ([]*model.Repository, error) {
				return nil, nil
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHub(mockGH), infra.WithReporter(events.reporter())))

		summary := gt.R1(uc.Backup(context.Background(), &model.BackupTarget{Owner: "acme", OutputDir: dir})).NoError(t)
		gt.V(t, summary.Total).Equal(0)
		gt.A(t, mockGH.OpenArchiveCalls()).Length(0)
		gt.A(t, events.ofType(model.EventRunCompleted)).Length(1)
		gt.A(t, testutil.ListDir(t, dir)).Length(0)
	})

	t.Run("listing failure is fatal", func(t *testing.T) {
		mockGH := &mock.GitHubMock{
			ListRepositoriesFunc: func(ctx context.Context, owner string, ownerType types.OwnerType) ([]*model.Repository, error) {
				return nil, &types.APIError{StatusCode: http.StatusUnauthorized}
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHub(mockGH)))

		summary, err := uc.Backup(context.Background(), &model.BackupTarget{Owner: "acme", OutputDir: t.TempDir()})
		gt.Error(t, err)
		gt.True(t, summary == nil)
		gt.A(t, mockGH.OpenArchiveCalls()).Length(0)
	})

	t.Run("output directory that cannot be created is fatal", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		gt.NoError(t, os.WriteFile(file, nil, 0644))

		mockGH := &mock.GitHubMock{}
		uc := usecase.New(infra.New(infra.WithGitHub(mockGH)))

		_, err := uc.Backup(context.Background(), &model.BackupTarget{Owner: "acme", OutputDir: filepath.Join(file, "data")})
		gt.True(t, errors.Is(err, types.ErrIO))
		gt.A(t, mockGH.ListRepositoriesCalls()).Length(0)
	})

	t.Run("invalid target", func(t *testing.T) {
		uc := usecase.New(infra.New(infra.WithGitHub(&mock.GitHubMock{})))
		_, err := uc.Backup(context.Background(), &model.BackupTarget{OutputDir: t.TempDir()})
		gt.True(t, errors.Is(err, types.ErrInvalidOption))
	})

	t.Run("cancellation stops before the next repository", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		mockGH := &mock.GitHubMock{
			ListRepositoriesFunc: func(ctx context.Context, owner string, ownerType types.OwnerType) ([]*model.Repository, error) {
				return threeRepos(), nil
			},
			OpenArchiveFunc: func(ctx context.Context, input *interfaces.OpenArchiveInput) (io.ReadCloser, error) {
				cancel()
				return archiveBody(input.Repo), nil
			},
		}
		uc := usecase.New(infra.New(infra.WithGitHub(mockGH)))

		summary, err := uc.Backup(ctx, &model.BackupTarget{Owner: "acme", OutputDir: t.TempDir()})
		gt.True(t, errors.Is(err, context.Canceled))
		gt.V(t, summary.Downloaded).Equal(1)
		gt.A(t, mockGH.OpenArchiveCalls()).Length(1)
	})
}

func TestBackupWithMirror(t *testing.T) {
	t.Run("downloaded and skipped archives are mirrored", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "acme_alpha_2024-03-03.zip"), []byte("old"), 0644))

		mockGH := &mock.GitHubMock{
			ListRepositoriesFunc: func(ctx context.Context, owner string, ownerType types.OwnerType) ([]*model.Repository, error) {
				return threeRepos()[:2], nil
			},
			OpenArchiveFunc: func(ctx context.Context, input *interfaces.OpenArchiveInput) (io.ReadCloser, error) {
				return archiveBody(input.Repo), nil
			},
		}
		mockMirror := &mock.MirrorMock{
			SyncFunc: func(ctx context.Context, localPath string, key string) (string, bool, error) {
				gt.V(t, filepath.Base(localPath)).Equal(key)
				return "s3://backup/" + key, key != "acme_alpha_2024-03-03.zip", nil
			},
		}
		events := &eventLog{}
		uc := usecase.New(infra.New(
			infra.WithGitHub(mockGH),
			infra.WithMirror(mockMirror),
			infra.WithReporter(events.reporter()),
		))

		summary := gt.R1(uc.Backup(context.Background(), &model.BackupTarget{Owner: "acme", OutputDir: dir})).NoError(t)
		gt.V(t, summary.Skipped).Equal(1)
		gt.V(t, summary.Downloaded).Equal(1)
		gt.A(t, mockMirror.SyncCalls()).Length(2)

		mirrored := events.ofType(model.EventArchiveMirrored)
		gt.A(t, mirrored).Length(1)
		gt.V(t, mirrored[0].Location).Equal("s3://backup/acme_beta_2024-03-02.zip")
	})

	t.Run("mirror failure counts as repository failure", func(t *testing.T) {
		mockGH := &mock.GitHubMock{
			ListRepositoriesFunc: func(ctx context.Context, owner string, ownerType types.OwnerType) ([]*model.Repository, error) {
				return threeRepos(), nil
			},
			OpenArchiveFunc: func(ctx context.Context, input *interfaces.OpenArchiveInput) (io.ReadCloser, error) {
				return archiveBody(input.Repo), nil
			},
		}
		mockMirror := &mock.MirrorMock{
			SyncFunc: func(ctx context.Context, localPath string, key string) (string, bool, error) {
				if strings.Contains(key, "gamma") {
					return "", false, errors.New("access denied")
				}
				return "s3://backup/" + key, true, nil
			},
		}
		events := &eventLog{}
		metrics := reporter.NewMetrics()
		uc := usecase.New(infra.New(
			infra.WithGitHub(mockGH),
			infra.WithMirror(mockMirror),
			infra.WithReporter(reporter.NewMulti(events.reporter(), metrics)),
		))

		summary := gt.R1(uc.Backup(context.Background(), &model.BackupTarget{Owner: "acme", OutputDir: t.TempDir()})).NoError(t)
		gt.V(t, summary.Downloaded).Equal(2)
		gt.V(t, summary.Failed).Equal(1)
		gt.V(t, summary.Failures[0].Repo).Equal("acme/gamma")
		gt.S(t, summary.Failures[0].Error).Contains("access denied")

		// one outcome per repository
		gt.V(t, events.types()).Equal([]model.EventType{
			model.EventRunStarted,
			model.EventRepositoriesListed,
			model.EventArchiveDownloaded,
			model.EventArchiveMirrored,
			model.EventArchiveDownloaded,
			model.EventArchiveMirrored,
			model.EventArchiveFailed,
			model.EventRunCompleted,
		})
		gt.NoError(t, promtestutil.GatherAndCompare(metrics.Registry(), strings.NewReader(`
# HELP octobak_archives_total Number of archive backup attempts by result
# TYPE octobak_archives_total counter
octobak_archives_total{result="downloaded"} 2
octobak_archives_total{result="failed"} 1
octobak_archives_total{result="mirrored"} 2
`), "octobak_archives_total"))
	})
}

// TestBackupOverHTTP runs the whole flow against a fake GitHub API served over HTTP
func TestBackupOverHTTP(t *testing.T) {
	var listCalls atomic.Int32
	big := bytes.Repeat([]byte{0x50, 0x4b, 0x03, 0x04}, 10000)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/users/acme/repos":
			listCalls.Add(1)
			if r.URL.Query().Get("page") != "1" {
				_, _ = io.WriteString(w, "[]")
				return
			}
			var items []string
			for _, repo := range threeRepos() {
				items = append(items, fmt.Sprintf(`{"name":%q,"full_name":%q,"updated_at":%q,"default_branch":%q}`,
					repo.Name, repo.FullName, repo.UpdatedAt, repo.DefaultBranch))
			}
			_, _ = io.WriteString(w, "["+strings.Join(items, ",")+"]")

		case r.URL.Path == "/repos/acme/beta/zipball/master":
			w.WriteHeader(http.StatusInternalServerError)

		case strings.HasPrefix(r.URL.Path, "/repos/acme/"):
			w.Header().Set("Content-Type", "application/zip")
			_, _ = w.Write(big)

		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	client := gt.R1(github.New("test-token", github.WithBaseURL(srv.URL))).NoError(t)
	uc := usecase.New(infra.New(infra.WithGitHub(client)))
	dir := t.TempDir()

	summary := gt.R1(uc.Backup(context.Background(), &model.BackupTarget{Owner: "acme", OutputDir: dir})).NoError(t)
	gt.V(t, listCalls.Load()).Equal(int32(2))
	gt.V(t, summary.Downloaded).Equal(2)
	gt.V(t, summary.Failed).Equal(1)
	gt.V(t, summary.Bytes).Equal(int64(2 * len(big)))

	gt.V(t, summary.Failures[0].Repo).Equal("acme/beta")
	gt.S(t, summary.Failures[0].Error).Contains("500")

	data := gt.R1(os.ReadFile(filepath.Join(dir, "acme_gamma_2024-03-01.zip"))).NoError(t)
	gt.V(t, data).Equal(big)
}
