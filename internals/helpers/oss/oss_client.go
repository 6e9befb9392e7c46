// file: internals/helpers/oss/oss_client.go
package oss

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	aliyun "github.com/aliyun/aliyun-oss-go-sdk/oss"

	"skripsiku_backend/internals/helpers/apperr"
)

/* =======================================================================
   OSS Storage (Aliyun)
======================================================================= */

type OSSStorage struct {
	Client     *aliyun.Client
	Bucket     *aliyun.Bucket
	Endpoint   string
	BucketName string
	Prefix     string // optional: "skripsiku/"
	PublicBase string
}

func NewOSSStorageFromEnv(prefix string) (*OSSStorage, error) {
	endpoint := getEnv("ALI_OSS_ENDPOINT")
	ak := getEnv("ALI_OSS_ACCESS_KEY")
	sk := getEnv("ALI_OSS_SECRET_KEY")
	sts := getEnv("ALI_OSS_SECURITY_TOKEN")
	bucketName := getEnv("ALI_OSS_BUCKET")
	if endpoint == "" || ak == "" || sk == "" || bucketName == "" {
		return nil, fmt.Errorf("missing env: ALI_OSS_ENDPOINT/ACCESS_KEY/SECRET_KEY/BUCKET")
	}

	var (
		client *aliyun.Client
		err    error
	)
	if sts != "" {
		client, err = aliyun.New(endpoint, ak, sk, aliyun.SecurityToken(sts))
	} else {
		client, err = aliyun.New(endpoint, ak, sk)
	}
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bkt, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	if loc, err := client.GetBucketLocation(bucketName); err != nil {
		if se, ok := err.(aliyun.ServiceError); ok && se.StatusCode == 403 {
			log.Printf("[OSS] warn: skip location check (AccessDenied) bucket=%s", bucketName)
		} else {
			return nil, fmt.Errorf("verify bucket: %w", err)
		}
	} else {
		log.Printf("[OSS] bucket %s location: %s", bucketName, loc)
	}

	return &OSSStorage{
		Client:     client,
		Bucket:     bkt,
		Endpoint:   endpoint,
		BucketName: bucketName,
		Prefix:     strings.Trim(prefix, "/"),
		PublicBase: getEnv("ALI_OSS_PUBLIC_BASE"),
	}, nil
}

func (s *OSSStorage) fullKey(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.Prefix == "" {
		return key
	}
	return s.Prefix + "/" + key
}

func (s *OSSStorage) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty key")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	opts := []aliyun.Option{
		aliyun.WithContext(ctx),
		aliyun.ContentType(contentType),
		aliyun.ContentDisposition("inline"),
	}
	if err := s.Bucket.PutObject(s.fullKey(key), bytes.NewReader(data), opts...); err != nil {
		return "", err
	}
	return s.PublicURL(key), nil
}

func (s *OSSStorage) Get(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.Bucket.GetObject(s.fullKey(key), aliyun.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("File tidak ditemukan di storage")
		}
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (s *OSSStorage) Delete(ctx context.Context, key string) error {
	err := s.Bucket.DeleteObject(s.fullKey(key), aliyun.WithContext(ctx))
	if err != nil && isNotFound(err) {
		return nil
	}
	return err
}

func (s *OSSStorage) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	full := s.fullKey(key)
	if s.PublicBase != "" {
		return strings.TrimRight(s.PublicBase, "/") + "/" + full
	}
	end := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.BucketName, end, full)
}

func isNotFound(err error) bool {
	if e, ok := err.(aliyun.ServiceError); ok {
		return e.StatusCode == 404
	}
	return false
}
