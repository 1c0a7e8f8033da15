// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package include

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/errors"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/log"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/grailbio/base/retry"
)

const (
	s3concurrency = 4
	s3maxTries    = 5
)

var s3policy = retry.MaxTries(retry.Backoff(100*time.Millisecond, 5*time.Second, 1.5), s3maxTries)

// S3 resolves files from an S3 bucket. Include paths are keys
// relative to Prefix:
//
//	s3://bucket/<prefix>/<path>
type S3 struct {
	Client s3iface.S3API
	Bucket string
	Prefix string
	// Log, if not nil, receives retry diagnostics.
	Log *log.Logger
}

// URL returns the S3 URL of the object at the given include path.
func (r *S3) URL(p string) string {
	return fmt.Sprintf("s3://%s/%s", r.Bucket, r.key(p))
}

func (r *S3) key(p string) string {
	return path.Join(r.Prefix, p)
}

// Resolve downloads the object at path. Transient S3 errors are
// retried.
func (r *S3) Resolve(ctx context.Context, p string) ([]byte, error) {
	var (
		head *s3.HeadObjectOutput
		err  error
	)
	for retries := 0; ; retries++ {
		head, err = r.Client.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(r.Bucket),
			Key:    aws.String(r.key(p)),
		})
		if err == nil || !retryable(err) {
			break
		}
		r.Log.Debugf("head %s: %v (try %d)", r.URL(p), err, retries+1)
		if werr := retry.Wait(ctx, s3policy, retries); werr != nil {
			break
		}
	}
	if err != nil {
		return nil, r.error(p, err)
	}
	var size int64
	if head.ContentLength != nil {
		size = *head.ContentLength
	}
	buf := aws.NewWriteAtBuffer(make([]byte, 0, size))
	d := s3manager.NewDownloaderWithClient(r.Client, func(d *s3manager.Downloader) {
		d.Concurrency = s3concurrency
	})
	_, err = d.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(r.key(p)),
	})
	if err != nil {
		return nil, r.error(p, err)
	}
	return buf.Bytes(), nil
}

func (r *S3) error(p string, err error) error {
	if aerr, ok := err.(awserr.Error); ok {
		switch aerr.Code() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return errors.E("resolve", r.URL(p), errors.NotExist, err)
		case "AccessDenied":
			return errors.E("resolve", r.URL(p), errors.NotAllowed, err)
		}
	}
	return errors.E("resolve", r.URL(p), err)
}

func retryable(err error) bool {
	return request.IsErrorRetryable(err) || request.IsErrorThrottle(err)
}
