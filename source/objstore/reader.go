// Package objstore reads workbooks and CSV tables stored in an S3 compatible
// object store.
//
// Locators look like s3://bucket/path/game.xlsx for one workbook or CSV file,
// and s3://bucket/path/ for every .csv object under a prefix. The objects are
// downloaded to a temporary directory and read with the local readers.
package objstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"sheetgen/errs"
	"sheetgen/source"
	"sheetgen/source/csvfile"
	"sheetgen/source/xlsx"
	"sheetgen/table"
)

// Kind is the registered source kind.
const Kind = "objstore"

const scheme = "s3://"

func init() {
	source.Register(source.Info{Kind: Kind, Label: "Object storage"}, func(ctx context.Context, spec source.Spec) (table.Reader, error) {
		secure, err := strconv.ParseBool(spec.Option("secure", "true"))
		if err != nil {
			return nil, errs.Wrap(errs.KindInvalidConfig, "objstore option secure", err)
		}

		return Open(ctx, spec.Locator, Config{
			Endpoint:  spec.Option("endpoint", ""),
			AccessKey: spec.Option("access_key", os.Getenv("SHEETGEN_S3_ACCESS_KEY")),
			SecretKey: spec.Option("secret_key", os.Getenv("SHEETGEN_S3_SECRET_KEY")),
			Region:    spec.Option("region", ""),
			UseSSL:    secure,
		})
	})
}

// Config holds the object store connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// ParseLocator splits an s3:// locator into bucket and key.
func ParseLocator(locator string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(locator, scheme)
	if !ok {
		return "", "", errs.Newf(errs.KindInvalidConfig, "object locator %q must start with %s", locator, scheme)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", errs.Newf(errs.KindInvalidConfig, "object locator %q has no bucket", locator)
	}

	return bucket, key, nil
}

// fetcher is the part of the object store client the reader uses.
type fetcher interface {
	list(ctx context.Context, bucket, prefix string) ([]string, error)
	download(ctx context.Context, bucket, key string, w io.Writer) error
}

type minioFetcher struct {
	client *miniogo.Client
}

func (m minioFetcher) list(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string

	for obj := range m.client.ListObjects(ctx, bucket, miniogo.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, obj.Err
		}

		keys = append(keys, obj.Key)
	}

	return keys, nil
}

func (m minioFetcher) download(ctx context.Context, bucket, key string, w io.Writer) error {
	obj, err := m.client.GetObject(ctx, bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer obj.Close()

	_, err = io.Copy(w, obj)

	return err
}

// Reader is a local reader over a downloaded copy of the objects.
type Reader struct {
	table.Reader
	locator string
	dir     string
}

// Open downloads the objects named by locator and opens them.
func Open(ctx context.Context, locator string, cfg Config) (*Reader, error) {
	if cfg.Endpoint == "" {
		return nil, errs.New(errs.KindInvalidConfig, "objstore: endpoint option is required")
	}

	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, source.Unavailable(locator, "create object store client", err)
	}

	return open(ctx, locator, minioFetcher{client: client})
}

func open(ctx context.Context, locator string, f fetcher) (*Reader, error) {
	bucket, key, err := ParseLocator(locator)
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "sheetgen-objstore-*")
	if err != nil {
		return nil, source.Unavailable(locator, "create download directory", err)
	}

	inner, err := fetchAndOpen(ctx, bucket, key, dir, f)
	if err != nil {
		_ = os.RemoveAll(dir)
		return nil, source.Unavailable(locator, "fetch", err)
	}

	return &Reader{Reader: inner, locator: locator, dir: dir}, nil
}

func fetchAndOpen(ctx context.Context, bucket, key, dir string, f fetcher) (table.Reader, error) {
	if key == "" || strings.HasSuffix(key, "/") {
		keys, err := f.list(ctx, bucket, key)
		if err != nil {
			return nil, err
		}

		for _, k := range keys {
			if strings.EqualFold(path.Ext(k), ".csv") {
				if err := saveObject(ctx, bucket, k, dir, f); err != nil {
					return nil, err
				}
			}
		}

		return csvfile.Open(dir, ",")
	}

	if err := saveObject(ctx, bucket, key, dir, f); err != nil {
		return nil, err
	}

	local := filepath.Join(dir, path.Base(key))

	switch strings.ToLower(path.Ext(key)) {
	case ".xlsx", ".xlsm":
		return xlsx.Open(local)
	case ".csv":
		return csvfile.Open(local, ",")
	default:
		return nil, fmt.Errorf("unsupported object %q: expected .xlsx or .csv", key)
	}
}

func saveObject(ctx context.Context, bucket, key, dir string, f fetcher) error {
	out, err := os.Create(filepath.Join(dir, path.Base(key)))
	if err != nil {
		return err
	}

	err = f.download(ctx, bucket, key, out)

	return errors.Join(err, out.Close())
}

func (r *Reader) Locator() string { return r.locator }

// Close closes the local reader and removes the downloaded files.
func (r *Reader) Close() error {
	return errors.Join(r.Reader.Close(), os.RemoveAll(r.dir))
}
