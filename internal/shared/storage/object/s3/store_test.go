package s3

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "file.json", want: "file.json"},
		{name: "simple prefix", prefix: "root", key: "file.json", want: "root/file.json"},
		{name: "prefix trailing slash", prefix: "root/", key: "file.json", want: "root/file.json"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/file.json", want: "root/file.json"},
		{name: "nested prefix", prefix: "root/sub", key: "file.json", want: "root/sub/file.json"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

type fakeClient struct {
	putInput  *s3.PutObjectInput
	putBody   string
	deleted   []string
	listPages []*s3.ListObjectsV2Output
}

func (f *fakeClient) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInput = params
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.putBody = string(data)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	page := f.listPages[0]
	f.listPages = f.listPages[1:]
	return page, nil
}

func (f *fakeClient) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestSaveUploadsUnderPrefix(t *testing.T) {
	client := &fakeClient{}
	store := NewWithClient(client, "bucket", "/sessions/", "")

	n, err := store.Save(context.Background(), "2024-01-02T03-04-05_abc123xyz_log.json", strings.NewReader(`{"a":1}`))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if n != 7 {
		t.Fatalf("expected 7 bytes, got %d", n)
	}
	if got := aws.ToString(client.putInput.Key); got != "sessions/2024-01-02T03-04-05_abc123xyz_log.json" {
		t.Fatalf("unexpected key %q", got)
	}
	if client.putBody != `{"a":1}` {
		t.Fatalf("unexpected body %q", client.putBody)
	}
	if client.putInput.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256 encryption")
	}
	if aws.ToString(client.putInput.IfNoneMatch) != "*" {
		t.Fatalf("expected conditional put")
	}
}

func TestSaveUsesKMSWhenConfigured(t *testing.T) {
	client := &fakeClient{}
	store := NewWithClient(client, "bucket", "", "kms-key")

	if _, err := store.Save(context.Background(), "a.csv", strings.NewReader("x,y")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if client.putInput.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms {
		t.Fatalf("expected KMS encryption")
	}
	if aws.ToString(client.putInput.SSEKMSKeyId) != "kms-key" {
		t.Fatalf("expected kms key id")
	}
}

func TestListStripsPrefixAndSkipsNested(t *testing.T) {
	modTime := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{listPages: []*s3.ListObjectsV2Output{{
		Contents: []s3types.Object{
			{Key: aws.String("sessions/a.json"), Size: aws.Int64(10), LastModified: aws.Time(modTime)},
			{Key: aws.String("sessions/archive/b.json"), Size: aws.Int64(20), LastModified: aws.Time(modTime)},
		},
		IsTruncated: aws.Bool(false),
	}}}
	store := NewWithClient(client, "bucket", "sessions", "")

	entries, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %+v", entries)
	}
	if entries[0].Key != "a.json" || entries[0].Size != 10 || !entries[0].ModTime.Equal(modTime) {
		t.Fatalf("unexpected entry %+v", entries[0])
	}

	if err := store.Delete(context.Background(), "a.json"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(client.deleted) != 1 || client.deleted[0] != "sessions/a.json" {
		t.Fatalf("unexpected deletes %v", client.deleted)
	}
}
