package storage

import "testing"

func TestObjectURL(t *testing.T) {
	cases := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "endpoint http",
			opts: Options{Endpoint: "localhost:9000", BucketName: "previews"},
			want: "http://localhost:9000/previews/previews/2026/a.png",
		},
		{
			name: "endpoint https",
			opts: Options{Endpoint: "s3.example.com", BucketName: "previews", UseSSL: true},
			want: "https://s3.example.com/previews/previews/2026/a.png",
		},
		{
			name: "public url override",
			opts: Options{Endpoint: "minio:9000", BucketName: "previews", PublicURL: "https://cdn.example.com/"},
			want: "https://cdn.example.com/previews/previews/2026/a.png",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := newStore(tc.opts)
			if err != nil {
				t.Fatalf("newStore error: %v", err)
			}
			if got := s.objectURL("previews/2026/a.png"); got != tc.want {
				t.Errorf("objectURL = %q, want %q", got, tc.want)
			}
		})
	}
}
