// Copyright 2017 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package s3config defines a configuration provider named "s3"
// which can be used to resolve include files from an S3 bucket.
// Files are looked up in S3 after the resolver configured by the
// include key fails to find them; includes naming absolute URLs
// (s3://bucket/key) are fetched from their bucket directly.
package s3config

import (
	"errors"
	"strings"

	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/config"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/include"
	"github.com/Pat-Lafon-Synthesis/program-synthesis-parser/syntax"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

func init() {
	config.Register(config.S3, "s3", "bucket[/prefix]", "resolve includes from an S3 bucket",
		func(cfg config.Config, arg string) (config.Config, error) {
			if arg == "" {
				return nil, errors.New("bucket name not provided")
			}
			bucket, prefix := arg, ""
			if i := strings.Index(arg, "/"); i >= 0 {
				bucket, prefix = arg[:i], arg[i+1:]
			}
			return &resolver{Config: cfg, Bucket: bucket, Prefix: prefix}, nil
		},
	)
}

type resolver struct {
	config.Config
	Bucket, Prefix string
}

// Resolver returns a resolver that consults the underlying
// configuration's resolver, then the configured S3 bucket. S3 URLs
// are resolved against their own bucket.
func (r *resolver) Resolver() (syntax.Resolver, error) {
	local, err := r.Config.Resolver()
	if err != nil {
		return nil, err
	}
	region, err := r.AWSRegion()
	if err != nil {
		return nil, err
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, err
	}
	log, err := r.Logger()
	if err != nil {
		return nil, err
	}
	client := s3.New(sess)
	mux := include.Mux{
		"": include.Chain{local, &include.S3{
			Client: client,
			Bucket: r.Bucket,
			Prefix: r.Prefix,
			Log:    log,
		}},
	}
	mux.HandleFunc("s3", include.S3URLs(client, log))
	return mux, nil
}
