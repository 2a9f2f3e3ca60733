package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/octobak/pkg/infra/s3"
	"github.com/m-mizutani/octobak/pkg/utils/testutil"
)

// fakeBucket serves HEAD and PUT of path-style object URLs
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]bool
	puts    []string
}

func (x *fakeBucket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	x.mu.Lock()
	defer x.mu.Unlock()

	key := strings.TrimPrefix(r.URL.Path, "/")
	switch r.Method {
	case http.MethodHead:
		if x.objects[key] {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	case http.MethodPut:
		_, _ = io.Copy(io.Discard, r.Body)
		x.objects[key] = true
		x.puts = append(x.puts, key)
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newMirror(t *testing.T, srv *httptest.Server, prefix string) *s3.Mirror {
	t.Helper()
	return gt.R1(s3.New(context.Background(), "backup", prefix,
		s3.WithRegion("us-east-1"),
		s3.WithEndpoint(srv.URL),
		s3.WithPathStyle(true),
		s3.WithStaticCredentials("AKIAEXAMPLE", "secret"),
	)).NoError(t)
}

func TestNew(t *testing.T) {
	_, err := s3.New(context.Background(), "", "")
	gt.Error(t, err)
}

func TestSync(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "acme_widget_2024-03-01.zip")
	gt.NoError(t, os.WriteFile(archive, []byte("PK\x03\x04zipdata"), 0600))

	t.Run("uploads missing object once", func(t *testing.T) {
		bucket := &fakeBucket{objects: map[string]bool{}}
		srv := httptest.NewServer(bucket)
		defer srv.Close()

		mirror := newMirror(t, srv, "github")

		loc, uploaded, err := mirror.Sync(context.Background(), archive, "acme_widget_2024-03-01.zip")
		gt.NoError(t, err)
		gt.True(t, uploaded)
		gt.V(t, loc).Equal("s3://backup/github/acme_widget_2024-03-01.zip")

		loc, uploaded, err = mirror.Sync(context.Background(), archive, "acme_widget_2024-03-01.zip")
		gt.NoError(t, err)
		gt.False(t, uploaded)
		gt.V(t, loc).Equal("s3://backup/github/acme_widget_2024-03-01.zip")

		gt.A(t, bucket.puts).Length(1)
		gt.V(t, bucket.puts[0]).Equal("backup/github/acme_widget_2024-03-01.zip")
	})

	t.Run("missing local file", func(t *testing.T) {
		bucket := &fakeBucket{objects: map[string]bool{}}
		srv := httptest.NewServer(bucket)
		defer srv.Close()

		_, uploaded, err := newMirror(t, srv, "").Sync(context.Background(), filepath.Join(t.TempDir(), "none.zip"), "none.zip")
		gt.Error(t, err)
		gt.False(t, uploaded)
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		_, _, err := newMirror(t, srv, "").Sync(context.Background(), archive, "x.zip")
		gt.Error(t, err)
	})
}

func TestSync_Integration(t *testing.T) {
	bucket := testutil.GetEnvOrSkip(t, "TEST_S3_BUCKET")
	mirror := gt.R1(s3.New(context.Background(), bucket, "octobak-test")).NoError(t)

	archive := filepath.Join(t.TempDir(), "integration.zip")
	gt.NoError(t, os.WriteFile(archive, []byte("PK\x03\x04"), 0600))

	_, _, err := mirror.Sync(context.Background(), archive, "integration.zip")
	gt.NoError(t, err)
}
