package e2e

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/igungor/gofakes3"
	"github.com/igungor/gofakes3/backend/s3bolt"
	"github.com/igungor/gofakes3/backend/s3mem"
	"gotest.tools/v3/fs"
)

func s3ServerEndpoint(t *testing.T, testdir *fs.Dir, loglvl, backend string) string {
	var s3backend gofakes3.Backend
	switch backend {
	case "mem":
		s3backend = s3mem.New()
	case "bolt":
		var err error
		s3backend, err = s3bolt.NewFile(testdir.Join("s3.boltdb"))
		if err != nil {
			t.Fatal(err)
		}
	default:
		t.Fatalf("unknown s3 backend %q", backend)
	}

	faker := gofakes3.New(
		s3backend,
		gofakes3.WithLogger(
			gofakes3.GlobalLog(
				gofakes3.LogLevel(strings.ToUpper(loglvl)),
			),
		),
	)
	s3srv := httptest.NewServer(faker.Server())

	t.Cleanup(func() {
		s3srv.Close()
		// no need to remove boltdb file since 'testdir' will be cleaned up
		// after each test.
	})

	return s3srv.URL
}
